// Package text provides rune-aware helpers for article excerpts and titles.
package text

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Ellipsis is appended by Truncate when it shortens text.
const Ellipsis = "…"

// CountRunes counts Unicode characters rather than bytes.
//
//	CountRunes("hello")      // 5
//	CountRunes("こんにちは")  // 5
//	CountRunes("Hello👋")    // 6
func CountRunes(text string) int {
	return utf8.RuneCountInString(text)
}

// Truncate shortens text to at most max runes (Ellipsis excluded), cutting at
// the last word boundary when one exists in the second half of the window.
// Text that already fits is returned unchanged apart from surrounding space.
func Truncate(text string, max int) string {
	text = strings.TrimSpace(text)
	if max <= 0 {
		return ""
	}
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}

	cut := max
	for i := max; i > max/2; i-- {
		if unicode.IsSpace(runes[i]) {
			cut = i
			break
		}
	}

	out := strings.TrimRightFunc(string(runes[:cut]), func(r rune) bool {
		return unicode.IsSpace(r) || unicode.IsPunct(r)
	})
	return out + Ellipsis
}

// CollapseSpace replaces every run of whitespace with a single space.
func CollapseSpace(text string) string {
	return strings.Join(strings.Fields(text), " ")
}
