package tally

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Normalize folds a whitespace-delimited token into a dictionary word.
//
// ASCII letters are kept and lowercased. Any other rune is dropped when it is
// the first or last rune of the token and rejects the whole token anywhere in
// between, so "'Hello," becomes "hello" while "Don't" and "ABC123" are
// rejected. The boolean is false when the token yields no word.
func Normalize(token string) (string, bool) {
	last := utf8.RuneCountInString(token) - 1

	var b strings.Builder
	b.Grow(len(token))

	pos := 0
	for _, r := range token {
		if r >= 'A' && r <= 'Z' {
			r += 'a' - 'A'
		}
		switch {
		case r >= 'a' && r <= 'z':
			b.WriteByte(byte(r))
		case pos != 0 && pos != last:
			return "", false
		}
		pos++
	}

	if b.Len() == 0 {
		return "", false
	}
	return b.String(), true
}

// Fields splits text into whitespace-delimited tokens.
func Fields(text string) []string {
	return strings.FieldsFunc(text, isSeparator)
}

// isSeparator matches Unicode White_Space plus the ASCII file, group, record
// and unit separators, which plain-text corpora treat as whitespace too.
func isSeparator(r rune) bool {
	return unicode.IsSpace(r) || (r >= 0x1c && r <= 0x1f)
}
