package script

import (
	"strings"

	"github.com/npillmayer/pali"
)

// brahmic assembles a table from parallel lists in alphabet order:
// 8 independent vowels, 8 vowel signs, 32 consonants, niggahita.
func brahmic(name, virama string, vowels, signs, consonants []string, niggahita string) *Table {
	t := &Table{Name: name, Brahmic: true, Virama: virama}
	for i, v := range vowels {
		t.Units[pali.A+pali.Unit(i)] = Glyphs{Letter: v, Sign: signs[i]}
	}
	for i, c := range consonants {
		t.Units[pali.K+pali.Unit(i)] = Glyphs{Letter: c}
	}
	t.Units[pali.Niggahita] = Glyphs{Letter: niggahita}
	return t
}

// Roman renders canonical IAST. Converting to Roman normalizes alternative
// spellings and letter case.
var Roman = func() *Table {
	t := &Table{Name: "roman"}
	for u := pali.A; u < pali.NumUnits; u++ {
		t.Units[u] = Glyphs{Letter: u.String()}
	}
	return t
}()

// Devanagari renders Pāli in Devanagari.
var Devanagari = brahmic("devanagari", "्",
	[]string{"अ", "आ", "इ", "ई", "उ", "ऊ", "ए", "ओ"},
	[]string{"", "ा", "ि", "ी", "ु", "ू", "े", "ो"},
	[]string{
		"क", "ख", "ग", "घ", "ङ",
		"च", "छ", "ज", "झ", "ञ",
		"ट", "ठ", "ड", "ढ", "ण",
		"त", "थ", "द", "ध", "न",
		"प", "फ", "ब", "भ", "म",
		"य", "र", "ल", "व", "स", "ह", "ळ",
	},
	"ं")

// Sinhala renders Pāli in Sinhala.
var Sinhala = brahmic("sinhala", "්",
	[]string{"අ", "ආ", "ඉ", "ඊ", "උ", "ඌ", "එ", "ඔ"},
	[]string{"", "ා", "ි", "ී", "ු", "ූ", "ෙ", "ො"},
	[]string{
		"ක", "ඛ", "ග", "ඝ", "ඞ",
		"ච", "ඡ", "ජ", "ඣ", "ඤ",
		"ට", "ඨ", "ඩ", "ඪ", "ණ",
		"ත", "ථ", "ද", "ධ", "න",
		"ප", "ඵ", "බ", "භ", "ම",
		"ය", "ර", "ල", "ව", "ස", "හ", "ළ",
	},
	"ං")

// Thai renders Pāli in Thai script, using phinthu as virama and อ as the
// carrier of independent vowels.
var Thai = func() *Table {
	t := brahmic("thai", "ฺ",
		[]string{"อ", "อา", "อิ", "อี", "อุ", "อู", "เอ", "โอ"},
		[]string{"", "า", "ิ", "ี", "ุ", "ู", "เ", "โ"},
		[]string{
			"ก", "ข", "ค", "ฆ", "ง",
			"จ", "ฉ", "ช", "ฌ", "ญ",
			"ฏ", "ฐ", "ฑ", "ฒ", "ณ",
			"ต", "ถ", "ท", "ธ", "น",
			"ป", "ผ", "พ", "ภ", "ม",
			"ย", "ร", "ล", "ว", "ส", "ห", "ฬ",
		},
		"ํ")
	t.Units[pali.E].SignBefore = true
	t.Units[pali.O].SignBefore = true
	return t
}()

var tables = []*Table{Roman, Devanagari, Sinhala, Thai}

// Lookup returns the built-in table for a script name (case-insensitive).
func Lookup(name string) (*Table, bool) {
	for _, t := range tables {
		if strings.EqualFold(t.Name, name) {
			return t, true
		}
	}
	return nil, false
}

// Names lists the names of the built-in scripts.
func Names() []string {
	names := make([]string, len(tables))
	for i, t := range tables {
		names[i] = t.Name
	}
	return names
}
