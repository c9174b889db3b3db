package repository

import (
	"context"

	"williampedia/internal/domain/entity"
)

// ArticleRepository is the article store abstraction shared by the Mongo,
// Postgres and SQLite adapters.
//
// Lookups that find nothing return (nil, nil); callers decide whether absence
// is an error. Every ordered query orders by (CreatedAt, ID) so that articles
// sharing a timestamp still have a stable, total order.
type ArticleRepository interface {
	// GetBySlug returns the full article with the given slug.
	GetBySlug(ctx context.Context, slug string) (*entity.Article, error)
	// GetByID returns the article with the given internal id.
	// A malformed id for the backend returns an error wrapping entity.ErrInvalidInput.
	GetByID(ctx context.Context, id string) (*entity.Article, error)

	// Previous returns the article immediately before pos in creation order.
	Previous(ctx context.Context, pos entity.Position) (*entity.ArticleRef, error)
	// Next returns the article immediately after pos in creation order.
	Next(ctx context.Context, pos entity.Position) (*entity.ArticleRef, error)

	// ListNewest returns up to limit article refs, newest first, skipping offset rows.
	ListNewest(ctx context.Context, offset, limit int) ([]entity.ArticleRef, error)
	// Count returns the total number of stored articles.
	Count(ctx context.Context) (int64, error)

	// SearchTitles returns up to limit refs whose title contains query,
	// case-insensitively. query is matched literally; no pattern syntax is honoured.
	SearchTitles(ctx context.Context, query string, limit int) ([]entity.ArticleRef, error)

	// Latest returns the most recently created article.
	Latest(ctx context.Context) (*entity.Article, error)
	// At returns the article at offset in the store's natural order.
	At(ctx context.Context, offset int64) (*entity.Article, error)
	// Sample returns up to size distinct articles chosen at random.
	Sample(ctx context.Context, size int) ([]*entity.Article, error)

	// IncrementVote atomically adds one to the selected tally.
	// found is false when no article has the slug.
	IncrementVote(ctx context.Context, slug string, dir entity.VoteDirection) (found bool, err error)
	// Create stores a new article and sets its ID.
	// A duplicate slug returns an error wrapping entity.ErrConflict.
	Create(ctx context.Context, article *entity.Article) error
	// NormalizeVotes rewrites legacy vote representations into {up, down}
	// and reports how many articles changed.
	NormalizeVotes(ctx context.Context) (int64, error)

	Ping(ctx context.Context) error
}
