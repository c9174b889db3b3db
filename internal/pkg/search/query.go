// Package search normalizes user search input and escapes it for the
// stores' pattern matchers so that it is always matched literally.
package search

import (
	"errors"
	"strings"

	"williampedia/internal/utils/text"
)

const (
	// MaxQueryLength bounds a search query, in runes.
	MaxQueryLength = 200
	// ResultLimit is the maximum number of title matches returned.
	ResultLimit = 10
)

// ErrQueryTooLong is returned by NormalizeQuery for queries over MaxQueryLength.
var ErrQueryTooLong = errors.New("search query too long")

// NormalizeQuery enforces MaxQueryLength and returns q unchanged, surrounding
// whitespace included. A blank query normalizes to "", which means "no search":
// callers answer with an empty list without touching the store.
func NormalizeQuery(q string) (string, error) {
	if strings.TrimSpace(q) == "" {
		return "", nil
	}
	if text.CountRunes(q) > MaxQueryLength {
		return "", ErrQueryTooLong
	}
	return q, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// EscapeLike escapes LIKE/ILIKE wildcards using backslash, to be paired with
// ESCAPE '\' in the SQL statement.
//
//	EscapeLike("100%_done") // `100\%\_done`
func EscapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// ContainsPattern wraps an escaped term for a substring LIKE match.
func ContainsPattern(s string) string {
	return "%" + EscapeLike(s) + "%"
}
