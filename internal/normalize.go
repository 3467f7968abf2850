package internal

import (
	"strings"
	"unicode"
)

// Normalizer canonicalizes text before vectorization: lower-case,
// punctuation stripped except an allow-set, whitespace collapsed to
// single spaces. The same normalizer must be used for corpus text and
// query text or similarity scores are meaningless.
type Normalizer struct {
	keep map[rune]bool
}

// NewNormalizer builds a normalizer that preserves the runes in keep in
// addition to letters, digits and underscores. Hyphens are kept by
// default so compound terms survive as single tokens.
func NewNormalizer(keep string) *Normalizer {
	keepSet := make(map[rune]bool, len(keep))
	for _, r := range keep {
		keepSet[r] = true
	}
	return &Normalizer{keep: keepSet}
}

func DefaultNormalizer() *Normalizer {
	return NewNormalizer("-")
}

// Normalize is pure and idempotent: Normalize(Normalize(s)) == Normalize(s).
func (n *Normalizer) Normalize(s string) string {
	s = strings.ToLower(s)

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_':
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteRune(' ')
		case n.keep[r]:
			b.WriteRune(r)
		}
	}

	return strings.Join(strings.Fields(b.String()), " ")
}
