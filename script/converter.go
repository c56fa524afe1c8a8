package script

import (
	"strings"
	"unicode/utf8"

	"github.com/derekparker/trie"
	"github.com/npillmayer/pali"
	"golang.org/x/text/unicode/norm"
)

// Converter renders Pāli text in one target script and reads it back.
// A Converter is immutable and safe for concurrent use.
type Converter struct {
	alphabet *pali.Alphabet
	table    *Table
	inverse  *trie.Trie // glyph cluster → glyph, Brahmic scripts only
	maxKey   int        // length of the longest glyph cluster in bytes
}

// NewConverter validates table and creates a converter reading Roman input
// with the spellings of alphabet. A nil alphabet selects pali.Default().
// A malformed table results in a *pali.ConfigError.
func NewConverter(alphabet *pali.Alphabet, table *Table) (*Converter, error) {
	if err := table.Validate(); err != nil {
		tracer().Errorf("script table rejected: %v", err)
		return nil, err
	}
	if alphabet == nil {
		alphabet = pali.Default()
	}
	c := &Converter{alphabet: alphabet, table: table}
	if table.Brahmic {
		keys, err := table.glyphKeys()
		if err != nil {
			return nil, err
		}
		c.inverse = trie.New()
		for key, g := range keys {
			key = norm.NFC.String(key)
			c.inverse.Add(key, g)
			c.maxKey = max(c.maxKey, len(key))
		}
		tracer().Infof("script %s: %d glyph clusters in inverse table", table.Name, len(keys))
	}
	return c, nil
}

// MustNewConverter is like NewConverter, but panics on configuration errors.
func MustNewConverter(alphabet *pali.Alphabet, table *Table) *Converter {
	c, err := NewConverter(alphabet, table)
	if err != nil {
		panic(err)
	}
	return c
}

// ForScript creates a converter for a built-in script, reading Roman input
// with the default alphabet.
func ForScript(name string) (*Converter, error) {
	table, ok := Lookup(name)
	if !ok {
		return nil, &pali.ConfigError{Table: name, Msg: "unknown script"}
	}
	return NewConverter(nil, table)
}

// Script returns the name of the target script.
func (c *Converter) Script() string {
	return c.table.Name
}

// Convert renders Roman text s in the target script. Characters which are
// not Pāli letters are passed through unchanged; in particular text already
// written in the target script is left alone.
func (c *Converter) Convert(s string) string {
	return c.render(c.alphabet.Segments(s))
}

// TransliterateFromRoman renders s, which is asserted to be in Roman
// transcription, in the target script. It is the same operation as Convert.
func (c *Converter) TransliterateFromRoman(s string) string {
	return c.Convert(s)
}

// --- Rendering -------------------------------------------------------------

func (c *Converter) render(segs []pali.Segment) string {
	if !c.table.Brahmic {
		var b strings.Builder
		for _, seg := range segs {
			if seg.IsUnit() {
				b.WriteString(c.table.Units[seg.Unit()].Letter)
			} else {
				b.WriteString(seg.Text)
			}
		}
		return b.String()
	}
	out := make([]byte, 0, 3*len(segs))
	open := false // last written consonant still waits for its vowel
	start := 0    // byte offset of the last written consonant
	closeConsonant := func() {
		if open {
			out = append(out, c.table.Virama...)
			open = false
		}
	}
	for _, seg := range segs {
		if !seg.IsUnit() {
			closeConsonant()
			out = append(out, seg.Text...)
			continue
		}
		g := c.table.Units[seg.Unit()]
		switch seg.Unit().Class() {
		case pali.Consonant:
			closeConsonant()
			start = len(out)
			out = append(out, g.Letter...)
			open = true
		case pali.Vowel:
			if !open {
				out = append(out, g.Letter...)
				break
			}
			if g.SignBefore {
				out = insertAt(out, start, g.Sign)
			} else {
				out = append(out, g.Sign...)
			}
			open = false
		case pali.Nasalization:
			closeConsonant()
			out = append(out, g.Letter...)
		}
	}
	closeConsonant()
	return string(out)
}

func insertAt(b []byte, at int, s string) []byte {
	b = append(b, s...)
	copy(b[at+len(s):], b[at:len(b)-len(s)])
	copy(b[at:], s)
	return b
}

// --- Reading back ----------------------------------------------------------

// ToRoman reads text written in the target script and returns it in
// canonical Roman transcription. Characters outside the script table are
// passed through unchanged. For a Roman target, ToRoman normalizes the
// spelling of s.
func (c *Converter) ToRoman(s string) string {
	if !c.table.Brahmic {
		return c.alphabet.Canonical(s)
	}
	s = norm.NFC.String(s)
	var b strings.Builder
	pending := false     // consonant read, vowel not yet known
	var before pali.Unit // pre-base vowel sign waiting for its consonant
	hasBefore := false
	flush := func() {
		if pending {
			b.WriteString(pali.A.String())
			pending = false
		}
		if hasBefore { // pre-base sign without consonant
			b.WriteString(before.String())
			hasBefore = false
		}
	}
	for at := 0; at < len(s); {
		g, n := c.longestGlyph(s[at:])
		if n == 0 {
			flush()
			_, size := utf8.DecodeRuneInString(s[at:])
			b.WriteString(s[at : at+size])
			at += size
			continue
		}
		switch g.kind {
		case consonantGlyph:
			if pending {
				b.WriteString(pali.A.String())
			}
			b.WriteString(g.unit.String())
			pending = !hasBefore
			if hasBefore {
				b.WriteString(before.String())
				hasBefore = false
			}
		case signGlyph:
			switch {
			case g.signBefore:
				flush()
				before, hasBefore = g.unit, true
			case pending:
				b.WriteString(g.unit.String())
				pending = false
			default: // stray sign
				flush()
				b.WriteString(g.unit.String())
			}
		case viramaGlyph:
			if pending {
				pending = false
			} else {
				flush()
				b.WriteString(s[at : at+n])
			}
		case vowelGlyph, nasalGlyph:
			flush()
			b.WriteString(g.unit.String())
		}
		at += n
	}
	flush()
	return b.String()
}

// longestGlyph returns the glyph of the longest cluster prefixing s, and the
// cluster's length in bytes.
func (c *Converter) longestGlyph(s string) (glyph, int) {
	var best glyph
	length := 0
	for i := 0; i < len(s) && i < c.maxKey; {
		_, size := utf8.DecodeRuneInString(s[i:])
		i += size
		prefix := s[:i]
		if !c.inverse.HasKeysWithPrefix(prefix) {
			break
		}
		if node, ok := c.inverse.Find(prefix); ok {
			best, length = node.Meta().(glyph), i
		}
	}
	return best, length
}

// Tokens reads script text into Pāli tokens, see ToRoman.
func (c *Converter) Tokens(s string) pali.Tokens {
	return c.alphabet.Tokenize(c.ToRoman(s))
}
