package techstack

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Matcher decides whether a vocabulary term occurs in a lower-cased text.
type Matcher interface {
	Match(text, term string) bool
}

// Substring matches any occurrence of the term, including inside other words.
// It reproduces the historical behavior: "go" matches "django" and "r"
// matches almost everything.
type Substring struct{}

// Match reports whether term is a substring of text.
func (Substring) Match(text, term string) bool {
	return term != "" && strings.Contains(text, term)
}

// TokenBoundary matches a term only when it is not glued to surrounding
// letters or digits. Punctuation inside the term ("c++", "next.js") is kept.
type TokenBoundary struct{}

// Match reports whether term occurs in text delimited by non-alphanumerics.
func (TokenBoundary) Match(text, term string) bool {
	if term == "" {
		return false
	}
	for offset := 0; offset < len(text); {
		idx := strings.Index(text[offset:], term)
		if idx < 0 {
			return false
		}
		start := offset + idx
		end := start + len(term)
		if boundaryBefore(text, start) && boundaryAfter(text, end) {
			return true
		}
		_, size := utf8.DecodeRuneInString(text[start:])
		offset = start + size
	}
	return false
}

func boundaryBefore(text string, i int) bool {
	if i == 0 {
		return true
	}
	r, _ := utf8.DecodeLastRuneInString(text[:i])
	return !isWordRune(r)
}

func boundaryAfter(text string, i int) bool {
	if i >= len(text) {
		return true
	}
	r, _ := utf8.DecodeRuneInString(text[i:])
	return !isWordRune(r)
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}
