package script

import (
	"errors"
	"reflect"
	"strings"
	"sync"
	"testing"
	"testing/quick"

	"github.com/davecgh/go-spew/spew"
	"github.com/npillmayer/pali"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func mustConverter(t *testing.T, name string) *Converter {
	t.Helper()
	c, err := ForScript(name)
	if err != nil {
		t.Fatalf("cannot create converter for %s: %v", name, err)
	}
	return c
}

func TestBuiltinTablesAreValid(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pali.script")
	defer teardown()
	//
	for _, name := range Names() {
		c := mustConverter(t, name)
		if c.Script() != name {
			t.Fatalf("converter for %s reports script %s", name, c.Script())
		}
	}
	if _, err := ForScript("klingon"); err == nil {
		t.Fatalf("expected error for unknown script")
	}
}

func TestConvertDevanagari(t *testing.T) {
	c := mustConverter(t, "devanagari")
	tests := []struct {
		roman string
		want  string
	}{
		{"buddho", "बुद्धो"},
		{"bhagavā", "भगवा"},
		{"dhammo", "धम्मो"},
		{"saṃgho", "संघो"},
		{"ariya", "अरिय"},
		{"ñāṇa", "ञाण"},
		{"evaṃ me sutaṃ", "एवं मे सुतं"},
		{"kamma 1", "कम्म 1"},
		{"ahesuṃ", "अहेसुं"},
		{"buddh", "बुद्ध्"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := c.Convert(tt.roman); got != tt.want {
			t.Fatalf("%q should render as %q, is %q", tt.roman, tt.want, got)
		}
	}
}

func TestConvertSinhala(t *testing.T) {
	c := mustConverter(t, "sinhala")
	tests := []struct {
		roman string
		want  string
	}{
		{"buddho", "බුද්ධො"},
		{"bhagavā", "භගවා"},
		{"evaṃ", "එවං"},
		{"ṭhāna", "ඨාන"},
	}
	for _, tt := range tests {
		if got := c.Convert(tt.roman); got != tt.want {
			t.Fatalf("%q should render as %q, is %q", tt.roman, tt.want, got)
		}
	}
}

func TestConvertThaiPreBaseVowels(t *testing.T) {
	c := mustConverter(t, "thai")
	tests := []struct {
		roman string
		want  string
	}{
		{"buddho", "พุทฺโธ"},
		{"me", "เม"},
		{"evaṃ", "เอวํ"},
		{"tve", "ตฺเว"},
		{"bhagavā", "ภควา"},
		{"ariya", "อริย"},
	}
	for _, tt := range tests {
		if got := c.Convert(tt.roman); got != tt.want {
			t.Fatalf("%q should render as %q, is %q", tt.roman, tt.want, got)
		}
	}
}

func TestRomanNormalizesSpelling(t *testing.T) {
	c, err := NewConverter(pali.MustNewAlphabet(pali.Velthuis), Roman)
	if err != nil {
		t.Fatal(err)
	}
	if got := c.Convert("Bhagavaa sa.mgha"); got != "bhagavā saṃgha" {
		t.Fatalf("unexpected Roman rendering %q", got)
	}
	if got := c.ToRoman("saṁsāra"); got != "saṃsāra" {
		t.Fatalf("unexpected Roman normalization %q", got)
	}
}

func TestTransliterateFromRomanIsConvert(t *testing.T) {
	c := mustConverter(t, "devanagari")
	for _, s := range []string{"buddho", "abc123", "धम्म"} {
		if c.TransliterateFromRoman(s) != c.Convert(s) {
			t.Fatalf("TransliterateFromRoman(%q) differs from Convert", s)
		}
	}
	// already in target script: passed through
	if got := c.Convert("धम्म"); got != "धम्म" {
		t.Fatalf("script text should pass through, got %q", got)
	}
}

func TestToRoman(t *testing.T) {
	tests := []struct {
		script string
		text   string
		want   string
	}{
		{"devanagari", "बुद्धो", "buddho"},
		{"devanagari", "भगवा", "bhagavā"},
		{"devanagari", "एवं मे सुतं", "evaṃ me sutaṃ"},
		{"devanagari", "कआ", "kaā"},
		{"sinhala", "බුද්ධො", "buddho"},
		{"sinhala", "බුද්ධ\u0dd9\u0dcf", "buddho"}, // decomposed vowel sign o
		{"thai", "พุทฺโธ", "buddho"},
		{"thai", "ตฺเว", "tve"},
		{"thai", "เอวํ", "evaṃ"},
		{"thai", "กเก", "kake"},
		// pre-base sign without consonant, stray vowel sign, stray virama
		{"thai", "เ1", "e1"},
		{"devanagari", "ा", "ā"},
		{"devanagari", "्", "्"},
	}
	for _, tt := range tests {
		c := mustConverter(t, tt.script)
		if got := c.ToRoman(tt.text); got != tt.want {
			t.Fatalf("%s %q should read as %q, is %q", tt.script, tt.text, tt.want, got)
		}
	}
}

// canonicalSpellings are used to generate words made of canonical spellings only.
var canonicalSpellings = func() []string {
	sp := make([]string, pali.NumUnits)
	for u := pali.A; u < pali.NumUnits; u++ {
		sp[u] = u.String()
	}
	return append(sp, " ", "1", "-")
}()

func canonicalWord(seed []byte) string {
	var b strings.Builder
	for _, x := range seed {
		b.WriteString(canonicalSpellings[int(x)%len(canonicalSpellings)])
	}
	return b.String()
}

func TestRoundTrip(t *testing.T) {
	for _, name := range Names() {
		c := mustConverter(t, name)
		roundTrip := func(seed []byte) bool {
			roman := canonicalWord(seed)
			back := c.Tokens(c.Convert(roman))
			return reflect.DeepEqual(back, pali.Tokenize(roman))
		}
		if err := quick.Check(roundTrip, &quick.Config{MaxCount: 500}); err != nil {
			t.Fatalf("round trip failed for %s: %v", name, err)
		}
	}
}

func TestRoundTripAllUnitPairs(t *testing.T) {
	for _, name := range Names() {
		c := mustConverter(t, name)
		for u1 := pali.A; u1 < pali.NumUnits; u1++ {
			for u2 := pali.A; u2 < pali.NumUnits; u2++ {
				roman := u1.String() + u2.String()
				want := pali.Tokenize(roman)
				if back := c.Tokens(c.Convert(roman)); !reflect.DeepEqual(back, want) {
					t.Fatalf("%s: %q does not round-trip, got %s", name, roman, spew.Sdump(back))
				}
			}
		}
	}
}

func TestConcurrentUse(t *testing.T) {
	c := mustConverter(t, "thai")
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				if got := c.ToRoman(c.Convert("buddho")); got != "buddho" {
					t.Errorf("concurrent round trip gave %q", got)
					return
				}
			}
		}()
	}
	wg.Wait()
}

func TestMalformedScriptTables(t *testing.T) {
	incomplete := *Devanagari
	incomplete.Units[pali.RetroL] = Glyphs{}
	noVirama := *Devanagari
	noVirama.Virama = ""
	ambiguous := *Devanagari
	ambiguous.Units[pali.RetroL] = Glyphs{Letter: "ल"}
	noSign := *Devanagari
	noSign.Units[pali.II].Sign = ""
	inherent := *Devanagari
	inherent.Units[pali.A].Sign = "ा"
	consonantSign := *Devanagari
	consonantSign.Units[pali.K].Sign = "ि"
	unnamed := *Roman
	unnamed.Name = ""
	tests := []struct {
		name  string
		table *Table
	}{
		{"nil", nil},
		{"incomplete", &incomplete},
		{"no virama", &noVirama},
		{"ambiguous", &ambiguous},
		{"no vowel sign", &noSign},
		{"sign on inherent vowel", &inherent},
		{"sign on consonant", &consonantSign},
		{"unnamed", &unnamed},
	}
	for _, tt := range tests {
		_, err := NewConverter(nil, tt.table)
		var cerr *pali.ConfigError
		if !errors.As(err, &cerr) {
			t.Fatalf("%s: expected configuration error, got %v", tt.name, err)
		}
	}
}
