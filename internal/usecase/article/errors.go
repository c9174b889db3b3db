// Package article provides the read, navigation and voting use cases of
// the encyclopedia. It turns repository "no row" results into
// ErrArticleNotFound and validates user input before touching the store.
package article

import (
	"errors"
	"fmt"

	"williampedia/internal/domain/entity"
	"williampedia/internal/pkg/search"
)

// Sentinel errors for article use case operations. Each wraps the matching
// domain sentinel so the HTTP layer can map on entity errors alone.
var (
	// ErrArticleNotFound indicates that no article matches the slug or id.
	ErrArticleNotFound = fmt.Errorf("article not found: %w", entity.ErrNotFound)

	// ErrInvalidArticleID indicates an id the active store cannot parse.
	ErrInvalidArticleID = fmt.Errorf("invalid article ID: %w", entity.ErrInvalidInput)

	// ErrInvalidVoteDirection indicates a direction other than "up" or "down".
	ErrInvalidVoteDirection = fmt.Errorf("invalid vote direction: %w", entity.ErrInvalidInput)

	// ErrQueryTooLong indicates a search query above search.MaxQueryLength.
	ErrQueryTooLong = fmt.Errorf("%w: %w", search.ErrQueryTooLong, entity.ErrInvalidInput)

	// ErrDuplicateSlug indicates that an article with the same slug already exists.
	ErrDuplicateSlug = fmt.Errorf("article with this slug already exists: %w", entity.ErrConflict)
)

// isInvalidInput is a helper for repositories that reject malformed ids.
func isInvalidInput(err error) bool {
	return errors.Is(err, entity.ErrInvalidInput)
}
