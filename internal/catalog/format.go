package catalog

import (
	"strings"
	"unicode"
)

// FormatName turns a registry tag id into a human-readable display name.
// Hyphens and underscores become spaces, a space is inserted before runs
// of digits and between a lowercase letter and a following uppercase
// letter, each word is title-cased, and repeated whitespace collapses.
// "superMario64" becomes "Super Mario 64".
func FormatName(id string) string {
	var b strings.Builder
	b.Grow(len(id) + 8)

	runes := []rune(id)
	for i, r := range runes {
		if r == '-' || r == '_' {
			b.WriteRune(' ')
			continue
		}
		if i > 0 {
			prev := runes[i-1]
			switch {
			case unicode.IsDigit(r) && !unicode.IsDigit(prev) && prev != '-' && prev != '_' && prev != ' ':
				b.WriteRune(' ')
			case unicode.IsUpper(r) && unicode.IsLower(prev):
				b.WriteRune(' ')
			}
		}
		b.WriteRune(r)
	}

	words := strings.Fields(b.String())
	for i, word := range words {
		words[i] = titleWord(word)
	}
	return strings.Join(words, " ")
}

// titleWord uppercases the first rune and lowercases the rest.
func titleWord(word string) string {
	runes := []rune(word)
	for i, r := range runes {
		if i == 0 {
			runes[i] = unicode.ToUpper(r)
		} else {
			runes[i] = unicode.ToLower(r)
		}
	}
	return string(runes)
}
