/*
Package pali implements collation, measuring and tokenization of Pāli text
in Roman transcription.

Pāli is usually written in Roman script with diacritic letters (macrons,
subscript dots, tildes) and aspirated consonants spelled as digraphs ("kh",
"ṭh"). Neither Unicode code-point order nor rune counts mean anything for
such text: "ṭ" sorts after "t" in code-point order but before it in the Pāli
alphabet, and "bhagavā" has six letters, not seven. This package defines the
fixed 41-letter Pāli alphabet and operates on sequences of its units.

A string is split into units by a longest-match tokenizer over all Roman
spellings of the alphabet. The spellings are compiled into a frozen
double-array trie (package dat). Characters that do not start any spelling
are kept as unrecognized tokens, so every input has a tokenization and no
input causes an error.

Ordering

Units compare by their rank in the alphabet. Unrecognized runes compare by
code point and sort after all alphabet units. A sequence which is a strict
prefix of another sorts first.

	pali.Compare("cc", "b")          // -1: 'c' precedes 'b' in the Pāli alphabet
	pali.Length("bhagavā")           // 6
	pali.Compare("abc123", "abc124") // -1

Further Reading

	https://en.wikipedia.org/wiki/Pali#Alphabet_with_diacritics
	https://en.wikipedia.org/wiki/International_Alphabet_of_Sanskrit_Transliteration

----------------------------------------------------------------------

# BSD License

Copyright (c) Norbert Pillmayer <norbert@pillmayer@com>

All rights reserved.

License information is available in the LICENSE file.
*/
package pali

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'pali'
func tracer() tracing.Trace {
	return tracing.Select("pali")
}

func assert(condition bool, msg string) {
	if !condition {
		panic(msg)
	}
}
