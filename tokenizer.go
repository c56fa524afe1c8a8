package pali

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// Token is either a unit of the Pāli alphabet or a rune which does not start
// any known spelling. Tokens are comparable with ==.
type Token struct {
	unit       Unit
	raw        rune
	recognized bool
}

// UnitToken returns a token for an alphabet unit.
func UnitToken(u Unit) Token {
	return Token{unit: u, recognized: true}
}

// OtherToken returns a token for an unrecognized rune.
func OtherToken(r rune) Token {
	return Token{raw: r}
}

// IsUnit reports whether tok is an alphabet unit.
func (tok Token) IsUnit() bool {
	return tok.recognized
}

// Unit returns the alphabet unit of tok. It is meaningful only if IsUnit().
func (tok Token) Unit() Unit {
	return tok.unit
}

// Rune returns the unrecognized rune of tok. It is meaningful only if !IsUnit().
func (tok Token) Rune() rune {
	return tok.raw
}

func (tok Token) String() string {
	if tok.recognized {
		return tok.unit.String()
	}
	return string(tok.raw)
}

// GoString is used by %#v and by test dumps.
func (tok Token) GoString() string {
	if tok.recognized {
		return fmt.Sprintf("Unit(%s)", tok.unit)
	}
	return fmt.Sprintf("Other(%q)", tok.raw)
}

// Tokens is the token sequence of one input string.
type Tokens []Token

// String concatenates the canonical spellings of recognized units and the
// unrecognized runes, i.e. it returns the canonical form of the input.
func (toks Tokens) String() string {
	var b strings.Builder
	for _, tok := range toks {
		b.WriteString(tok.String())
	}
	return b.String()
}

// Units returns the alphabet units of toks, skipping unrecognized runes.
func (toks Tokens) Units() []Unit {
	units := make([]Unit, 0, len(toks))
	for _, tok := range toks {
		if tok.recognized {
			units = append(units, tok.unit)
		}
	}
	return units
}

// Segment is a token together with the text it was read from.
type Segment struct {
	Token
	Text string
}

// --- Tokenizing ------------------------------------------------------------

// Tokenize splits s into tokens, always choosing the longest spelling
// matching at the current position. Runes which do not start any spelling
// become unrecognized tokens. s is normalized to NFC first, so decomposed
// diacritics are recognized as well.
func (a *Alphabet) Tokenize(s string) Tokens {
	toks := make(Tokens, 0, len(s))
	a.scan(s, func(tok Token, _ string) {
		toks = append(toks, tok)
	})
	return toks
}

// Segments is like Tokenize, but keeps the (normalized) surface text of
// every token.
func (a *Alphabet) Segments(s string) []Segment {
	segs := make([]Segment, 0, len(s))
	a.scan(s, func(tok Token, text string) {
		segs = append(segs, Segment{Token: tok, Text: text})
	})
	return segs
}

// Length returns the number of tokens in s. A digraph like "kh" counts as
// one letter, and so does every unrecognized rune.
func (a *Alphabet) Length(s string) int {
	n := 0
	a.scan(s, func(Token, string) {
		n++
	})
	return n
}

// Canonical rewrites s using canonical IAST spellings, in lower case for
// recognized units. Unrecognized text is kept.
func (a *Alphabet) Canonical(s string) string {
	return a.Tokenize(s).String()
}

func (a *Alphabet) scan(s string, emit func(Token, string)) {
	if !norm.NFC.IsNormalString(s) {
		s = norm.NFC.String(s)
	}
	for at := 0; at < len(s); {
		if u, n := a.match(s[at:]); n > 0 {
			emit(UnitToken(u), s[at:at+n])
			at += n
			continue
		}
		r, size := utf8.DecodeRuneInString(s[at:])
		emit(OtherToken(r), s[at:at+size])
		at += size
	}
}

// match returns the unit of the longest spelling which prefixes s, and the
// byte length of that spelling. It returns a length of 0 if no spelling
// matches.
func (a *Alphabet) match(s string) (Unit, int) {
	var unit Unit
	length := 0
	it := a.index.Iterator()
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size <= 1 {
			break
		}
		if !it.Next(r) {
			break
		}
		i += size
		if u, ok := it.Accepting(); ok {
			unit, length = u, i
		}
	}
	return unit, length
}

// --- Default alphabet ------------------------------------------------------

// Tokenize splits s into tokens of the default alphabet.
func Tokenize(s string) Tokens {
	return Default().Tokenize(s)
}

// Length returns the number of letters of s in the default alphabet.
func Length(s string) int {
	return Default().Length(s)
}
