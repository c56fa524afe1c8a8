package pali

import (
	"sort"
)

// CompareTokens orders two tokens. Units compare by rank, unrecognized runes
// by code point, and every unit sorts before every unrecognized rune.
func CompareTokens(x, y Token) int {
	switch {
	case x.recognized && y.recognized:
		return sign(int(x.unit) - int(y.unit))
	case !x.recognized && !y.recognized:
		return sign(int(x.raw) - int(y.raw))
	case x.recognized:
		return -1
	}
	return 1
}

// Compare orders two token sequences lexicographically. A strict prefix
// sorts first.
func (toks Tokens) Compare(other Tokens) int {
	n := min(len(toks), len(other))
	for i := 0; i < n; i++ {
		if c := CompareTokens(toks[i], other[i]); c != 0 {
			return c
		}
	}
	return sign(len(toks) - len(other))
}

// Compare returns -1 if s1 sorts before s2 in Pāli alphabet order, +1 if it
// sorts after s2, and 0 if both tokenize to the same sequence.
func (a *Alphabet) Compare(s1, s2 string) int {
	return a.Tokenize(s1).Compare(a.Tokenize(s2))
}

// Less reports whether s1 sorts before s2.
func (a *Alphabet) Less(s1, s2 string) bool {
	return a.Compare(s1, s2) < 0
}

// Sort sorts words in place in Pāli alphabet order. Sorting is stable.
// Every word is tokenized once.
func (a *Alphabet) Sort(words []string) {
	keyed := make([]keyedWord, len(words))
	for i, w := range words {
		keyed[i] = keyedWord{word: w, toks: a.Tokenize(w)}
	}
	sort.SliceStable(keyed, func(i, j int) bool {
		return keyed[i].toks.Compare(keyed[j].toks) < 0
	})
	for i := range keyed {
		words[i] = keyed[i].word
	}
}

type keyedWord struct {
	word string
	toks Tokens
}

// Sort keys are byte strings ordered like the token sequences they encode:
// a unit is one byte 0x01+rank, an unrecognized rune is a marker byte
// followed by three bytes of code point, big endian.
const otherKeyMarker = 0xF0

// SortKey returns a byte string k(s) such that
// bytes.Compare(k(s1), k(s2)) == a.Compare(s1, s2).
// Sort keys may be stored in a database column and ordered there.
func (a *Alphabet) SortKey(s string) []byte {
	key := make([]byte, 0, len(s))
	a.scan(s, func(tok Token, _ string) {
		key = tok.appendKey(key)
	})
	return key
}

func (tok Token) appendKey(key []byte) []byte {
	if tok.recognized {
		return append(key, byte(0x01+tok.unit))
	}
	r := uint32(tok.raw)
	return append(key, otherKeyMarker, byte(r>>16), byte(r>>8), byte(r))
}

func sign(n int) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	}
	return 0
}

// --- Default alphabet ------------------------------------------------------

// Compare orders s1 and s2 by the default alphabet, see Alphabet.Compare.
// The sign convention is that of strings.Compare.
func Compare(s1, s2 string) int {
	return Default().Compare(s1, s2)
}

// Less reports whether s1 sorts before s2 in the default alphabet.
func Less(s1, s2 string) bool {
	return Default().Less(s1, s2)
}

// Sort sorts words in place using the default alphabet.
func Sort(words []string) {
	Default().Sort(words)
}

// SortKey returns the sort key of s in the default alphabet.
func SortKey(s string) []byte {
	return Default().SortKey(s)
}
