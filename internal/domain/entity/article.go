// Package entity defines the core domain entities and validation logic for the application.
// It contains the encyclopedia Article, its lightweight reference form, vote tallies,
// and the domain-specific errors shared by every layer.
package entity

import (
	"fmt"
	"time"
)

// PlaceholderImageURL is served for articles stored without an image.
const PlaceholderImageURL = "/placeholder.svg"

// Article represents a single encyclopedia entry.
// Articles are immutable after creation except for their vote tallies.
type Article struct {
	ID        string
	Slug      string
	Title     string
	Content   string
	ImageURL  string
	CreatedAt time.Time
	Votes     Votes
}

// Ref returns the summary form of the article used in navigation and listings.
func (a *Article) Ref() ArticleRef {
	return ArticleRef{ID: a.ID, Slug: a.Slug, Title: a.Title, CreatedAt: a.CreatedAt}
}

// Position returns the article's place in the creation order.
func (a *Article) Position() Position {
	return Position{CreatedAt: a.CreatedAt, ID: a.ID}
}

// ImageOrPlaceholder returns the stored image URL or PlaceholderImageURL when empty.
func (a *Article) ImageOrPlaceholder() string {
	if a.ImageURL == "" {
		return PlaceholderImageURL
	}
	return a.ImageURL
}

// ArticleRef is the projection of an article returned by sequence,
// history and search lookups.
type ArticleRef struct {
	ID        string
	Slug      string
	Title     string
	CreatedAt time.Time
}

// Position identifies a point in the total creation order of articles.
// Articles sharing a CreatedAt are ordered by ID.
type Position struct {
	CreatedAt time.Time
	ID        string
}

// Votes holds the up and down tallies of an article.
type Votes struct {
	Up   int64
	Down int64
}

// VoteDirection selects which tally a vote increments.
type VoteDirection string

const (
	VoteUp   VoteDirection = "up"
	VoteDown VoteDirection = "down"
)

// ParseVoteDirection converts user input into a VoteDirection.
func ParseVoteDirection(s string) (VoteDirection, error) {
	switch VoteDirection(s) {
	case VoteUp, VoteDown:
		return VoteDirection(s), nil
	default:
		return "", &ValidationError{Field: "direction", Message: fmt.Sprintf("must be %q or %q", VoteUp, VoteDown)}
	}
}
