package pali

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// Unit is a letter of the Pāli alphabet. The numeric value of a unit is its
// rank in the canonical alphabet order (0-based, dense).
type Unit uint8

// The 41 letters of the Pāli alphabet, in canonical order.
const (
	A  Unit = iota // a
	AA             // ā
	I              // i
	II             // ī
	U              // u
	UU             // ū
	E              // e
	O              // o
	// gutturals
	K
	KH
	G
	GH
	VelarN // ṅ
	// palatals
	C
	CH
	J
	JH
	PalatalN // ñ
	// retroflex (cerebrals)
	RetroT  // ṭ
	RetroTH // ṭh
	RetroD  // ḍ
	RetroDH // ḍh
	RetroN  // ṇ
	// dentals
	T
	TH
	D
	DH
	N
	// labials
	P
	PH
	B
	BH
	M
	// semi-vowels, sibilant, aspirate
	Y
	R
	L
	V
	S
	H
	RetroL    // ḷ
	Niggahita // ṃ
	// NumUnits is the size of the alphabet.
	NumUnits
)

// canonical holds the canonical (IAST) Roman spelling of every unit, by rank.
var canonical = [NumUnits]string{
	"a", "ā", "i", "ī", "u", "ū", "e", "o",
	"k", "kh", "g", "gh", "ṅ",
	"c", "ch", "j", "jh", "ñ",
	"ṭ", "ṭh", "ḍ", "ḍh", "ṇ",
	"t", "th", "d", "dh", "n",
	"p", "ph", "b", "bh", "m",
	"y", "r", "l", "v", "s", "h", "ḷ",
	"ṃ",
}

// Class is the phonetic class of a unit.
type Class uint8

// Classes of units. Script renderers need to tell vowels from consonants
// because consonants carry an inherent vowel in the Brahmic scripts.
const (
	Vowel Class = iota
	Consonant
	Nasalization // niggahita
)

// Rank returns the position of u in the canonical alphabet order.
func (u Unit) Rank() int {
	return int(u)
}

// Valid reports whether u is a letter of the alphabet.
func (u Unit) Valid() bool {
	return u < NumUnits
}

// Class returns the phonetic class of u.
func (u Unit) Class() Class {
	switch {
	case u <= O:
		return Vowel
	case u == Niggahita:
		return Nasalization
	}
	return Consonant
}

// Spellings returns the Roman spellings of u accepted by the default
// alphabet, canonical spelling first.
func (u Unit) Spellings() []string {
	return Default().Spellings(u)
}

// String returns the canonical Roman spelling of u.
func (u Unit) String() string {
	if !u.Valid() {
		return fmt.Sprintf("Unit(%d)", int(u))
	}
	return canonical[u]
}

// --- Spelling schemes ------------------------------------------------------

// SpellingScheme lists Roman spellings accepted in addition to the canonical
// IAST spelling of each unit.
type SpellingScheme struct {
	Name         string
	Alternatives map[Unit][]string
}

// IAST accepts the canonical spellings, plus 'ṁ' (m with dot above) for
// niggahita, as used by many digital Pāli texts.
var IAST = SpellingScheme{
	Name: "iast",
	Alternatives: map[Unit][]string{
		Niggahita: {"ṁ"},
	},
}

// Velthuis extends IAST by the ASCII-only spellings of the Velthuis scheme.
// Note that with this scheme "aa" is always read as 'ā', never as two 'a'.
var Velthuis = SpellingScheme{
	Name: "velthuis",
	Alternatives: map[Unit][]string{
		AA:        {"aa"},
		II:        {"ii"},
		UU:        {"uu"},
		VelarN:    {`"n`},
		PalatalN:  {"~n"},
		RetroT:    {".t"},
		RetroTH:   {".th"},
		RetroD:    {".d"},
		RetroDH:   {".dh"},
		RetroN:    {".n"},
		RetroL:    {".l"},
		Niggahita: {".m", "ṁ"},
	},
}

// SchemeByName returns a predefined spelling scheme.
func SchemeByName(name string) (SpellingScheme, bool) {
	switch strings.ToLower(name) {
	case "", "iast":
		return IAST, true
	case "velthuis":
		return Velthuis, true
	}
	return SpellingScheme{}, false
}

// --- Configuration errors --------------------------------------------------

// ConfigError reports a malformed alphabet or script table. Tables are
// compiled-in, so a ConfigError is a startup failure, never a per-call one.
type ConfigError struct {
	Table string // name of the offending table
	Msg   string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid table %q: %s", e.Table, e.Msg)
}

// --- Alphabet --------------------------------------------------------------

// Alphabet is the Pāli alphabet together with a set of accepted Roman
// spellings. An Alphabet is immutable after construction and safe for
// concurrent use.
type Alphabet struct {
	name             string
	spellings        [NumUnits][]string
	index            spellingTrie
	bySpellingLength []Unit
}

// tableEntry is one row of an alphabet definition.
type tableEntry struct {
	unit      Unit
	spellings []string
}

// NewAlphabet creates an alphabet accepting the canonical spellings plus the
// alternatives of scheme. It returns a *ConfigError if the resulting table
// is inconsistent, e.g. if two units claim the same spelling.
func NewAlphabet(scheme SpellingScheme) (*Alphabet, error) {
	entries := make([]tableEntry, NumUnits)
	for u := A; u < NumUnits; u++ {
		entries[u] = tableEntry{
			unit:      u,
			spellings: append([]string{canonical[u]}, scheme.Alternatives[u]...),
		}
	}
	for u := range scheme.Alternatives {
		if !u.Valid() {
			return nil, &ConfigError{Table: scheme.Name, Msg: fmt.Sprintf("spelling for unknown unit %d", u)}
		}
	}
	return newAlphabet(scheme.Name, entries)
}

// MustNewAlphabet is like NewAlphabet, but panics on configuration errors.
func MustNewAlphabet(scheme SpellingScheme) *Alphabet {
	a, err := NewAlphabet(scheme)
	if err != nil {
		panic(err)
	}
	return a
}

func newAlphabet(name string, entries []tableEntry) (*Alphabet, error) {
	if len(entries) != int(NumUnits) {
		return nil, &ConfigError{Table: name,
			Msg: fmt.Sprintf("expected %d units, have %d", NumUnits, len(entries))}
	}
	a := &Alphabet{name: name}
	seen := make(map[Unit]bool, NumUnits)
	owner := make(map[string]Unit)
	for _, e := range entries {
		if !e.unit.Valid() {
			return nil, &ConfigError{Table: name, Msg: fmt.Sprintf("rank %d out of range", e.unit)}
		}
		if seen[e.unit] {
			return nil, &ConfigError{Table: name, Msg: fmt.Sprintf("duplicate rank %d", e.unit)}
		}
		seen[e.unit] = true
		for _, sp := range e.spellings {
			key := foldSpelling(sp)
			if key == "" {
				return nil, &ConfigError{Table: name, Msg: fmt.Sprintf("empty spelling for rank %d", e.unit)}
			}
			if prev, dup := owner[key]; dup {
				if prev == e.unit {
					continue
				}
				return nil, &ConfigError{Table: name,
					Msg: fmt.Sprintf("spelling %q claimed by ranks %d and %d", sp, prev, e.unit)}
			}
			for _, r := range key {
				if r > 0xFFFF {
					return nil, &ConfigError{Table: name,
						Msg: fmt.Sprintf("spelling %q uses rune %U outside the BMP", sp, r)}
				}
			}
			owner[key] = e.unit
			a.spellings[e.unit] = append(a.spellings[e.unit], norm.NFC.String(sp))
		}
		if len(a.spellings[e.unit]) == 0 {
			return nil, &ConfigError{Table: name, Msg: fmt.Sprintf("no spelling for rank %d", e.unit)}
		}
	}
	// with NumUnits entries, all valid and none duplicate, ranks are contiguous
	assert(len(seen) == int(NumUnits), "alphabet ranks not contiguous")
	index, err := buildSpellingIndex(name, owner)
	if err != nil {
		return nil, err
	}
	a.index = index
	a.bySpellingLength = sortBySpellingLength(a.spellings)
	return a, nil
}

// foldSpelling brings a spelling to the form used as a trie key.
func foldSpelling(sp string) string {
	return strings.ToLower(norm.NFC.String(sp))
}

func sortBySpellingLength(spellings [NumUnits][]string) []Unit {
	longest := func(u Unit) int {
		n := 0
		for _, sp := range spellings[u] {
			n = max(n, utf8.RuneCountInString(sp))
		}
		return n
	}
	units := make([]Unit, NumUnits)
	for u := range units {
		units[u] = Unit(u)
	}
	sort.SliceStable(units, func(i, j int) bool {
		return longest(units[i]) > longest(units[j])
	})
	return units
}

// Name returns the name of the spelling scheme of a.
func (a *Alphabet) Name() string {
	return a.name
}

// RankOf returns the canonical rank of u.
func (a *Alphabet) RankOf(u Unit) int {
	return u.Rank()
}

// Spellings returns the accepted Roman spellings of u, canonical first.
func (a *Alphabet) Spellings(u Unit) []string {
	if !u.Valid() {
		return nil
	}
	sp := make([]string, len(a.spellings[u]))
	copy(sp, a.spellings[u])
	return sp
}

// UnitsBySpellingLength returns all units, ordered by the length of their
// longest Roman spelling, longest first. Units of equal length keep their
// alphabet order.
func (a *Alphabet) UnitsBySpellingLength() []Unit {
	units := make([]Unit, len(a.bySpellingLength))
	copy(units, a.bySpellingLength)
	return units
}

// IndexStats reports density metrics for the underlying spelling trie.
func (a *Alphabet) IndexStats() (backend string, usedSlots, totalSlots int, fillRatio float64) {
	if a == nil || a.index == nil {
		return "", 0, 0, 0
	}
	stats := a.index.Stats()
	return stats.Backend, stats.UsedSlots, stats.TotalSlots, stats.FillRatio()
}

var (
	defaultAlphabet *Alphabet
	defaultOnce     sync.Once
)

// Default returns the process-wide alphabet with IAST spellings.
// It panics on first use if the compiled-in alphabet table is malformed.
func Default() *Alphabet {
	defaultOnce.Do(func() {
		defaultAlphabet = MustNewAlphabet(IAST)
	})
	return defaultAlphabet
}
