/*
Package script converts Pāli text between Roman transcription and other
scripts.

A Table holds the rendering of every letter of the Pāli alphabet in one
script. Brahmic scripts (Devanagari, Sinhala, Thai, …) write consonants with
an inherent vowel 'a'. Other vowels following a consonant are written as
dependent signs, and a consonant followed by another consonant (or by
nothing) takes a virama. A Converter applies these rules to the token
sequence of a Roman string, and parses script text back into Roman
transcription.

Tables are compiled-in and validated once, when a Converter is created.
*/
package script

import (
	"fmt"
	"strings"

	"github.com/npillmayer/pali"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'pali.script'
func tracer() tracing.Trace {
	return tracing.Select("pali.script")
}

// Glyphs is the rendering of one letter.
type Glyphs struct {
	// Letter is the consonant with inherent vowel, the independent vowel,
	// or the niggahita sign.
	Letter string
	// Sign is the dependent vowel sign, written after a consonant. It is
	// empty for the inherent vowel 'a' and for non-vowels.
	Sign string
	// SignBefore is set for vowel signs written before their consonant
	// (Thai 'e' and 'o').
	SignBefore bool
}

// Table maps the Pāli alphabet to one script. A Table is read-only once a
// Converter has been created from it.
type Table struct {
	Name    string
	Brahmic bool   // consonants carry an inherent 'a'
	Virama  string // vowel killer, Brahmic scripts only
	Units   [pali.NumUnits]Glyphs
}

// Validate checks that t is total over the alphabet and that no glyph
// cluster is used for two purposes. Errors are of type *pali.ConfigError.
func (t *Table) Validate() error {
	if t == nil {
		return &pali.ConfigError{Table: "<nil>", Msg: "no script table"}
	}
	fail := func(format string, args ...any) error {
		return &pali.ConfigError{Table: t.Name, Msg: fmt.Sprintf(format, args...)}
	}
	if strings.TrimSpace(t.Name) == "" {
		return fail("script table without name")
	}
	if t.Brahmic && t.Virama == "" {
		return fail("Brahmic script without virama")
	}
	for u := pali.A; u < pali.NumUnits; u++ {
		g := t.Units[u]
		if g.Letter == "" {
			return fail("no rendering for %s", u)
		}
		if !t.Brahmic {
			continue
		}
		switch {
		case u == pali.A && g.Sign != "":
			return fail("inherent vowel a must not have a sign")
		case u != pali.A && u.Class() == pali.Vowel && g.Sign == "":
			return fail("no vowel sign for %s", u)
		case u.Class() != pali.Vowel && (g.Sign != "" || g.SignBefore):
			return fail("vowel sign for non-vowel %s", u)
		}
	}
	if t.Brahmic {
		if _, err := t.glyphKeys(); err != nil {
			return err
		}
	}
	return nil
}

// glyphKind tells how a glyph cluster found in script text is to be read.
type glyphKind uint8

const (
	consonantGlyph glyphKind = iota
	vowelGlyph               // independent vowel
	signGlyph                // dependent vowel sign
	viramaGlyph
	nasalGlyph
)

type glyph struct {
	kind       glyphKind
	unit       pali.Unit
	signBefore bool
}

// glyphKeys collects all glyph clusters of a Brahmic table for the inverse
// mapping. Every cluster must have exactly one reading.
func (t *Table) glyphKeys() (map[string]glyph, error) {
	keys := make(map[string]glyph, 2*pali.NumUnits)
	add := func(key string, g glyph) error {
		if prev, dup := keys[key]; dup {
			return &pali.ConfigError{Table: t.Name,
				Msg: fmt.Sprintf("glyph %q renders both %s and %s", key, prev.unit, g.unit)}
		}
		keys[key] = g
		return nil
	}
	for u := pali.A; u < pali.NumUnits; u++ {
		g := t.Units[u]
		var err error
		switch u.Class() {
		case pali.Consonant:
			err = add(g.Letter, glyph{kind: consonantGlyph, unit: u})
		case pali.Nasalization:
			err = add(g.Letter, glyph{kind: nasalGlyph, unit: u})
		case pali.Vowel:
			err = add(g.Letter, glyph{kind: vowelGlyph, unit: u})
			if err == nil && g.Sign != "" {
				err = add(g.Sign, glyph{kind: signGlyph, unit: u, signBefore: g.SignBefore})
			}
		}
		if err != nil {
			return nil, err
		}
	}
	if err := add(t.Virama, glyph{kind: viramaGlyph}); err != nil {
		return nil, err
	}
	return keys, nil
}
