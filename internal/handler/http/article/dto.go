// Package article provides the HTTP handlers of the encyclopedia API:
// single articles, navigation, history, search, random picks and votes.
package article

import (
	"time"

	"williampedia/internal/common/pagination"
	"williampedia/internal/domain/entity"
	artUC "williampedia/internal/usecase/article"
)

// DTO represents the JSON structure of a full article.
type DTO struct {
	ID        string    `json:"id" example:"65f1c0ffee0123456789abcd"`
	Slug      string    `json:"slug" example:"ada-lovelace"`
	Title     string    `json:"title" example:"Ada Lovelace"`
	Content   string    `json:"content" example:"# Ada Lovelace\n\nAda Lovelace was a mathematician..."`
	ImageURL  string    `json:"imageUrl,omitempty" example:"/images/ada.png"`
	CreatedAt time.Time `json:"createdAt" example:"2025-01-02T10:00:00Z"`
	Votes     VotesDTO  `json:"votes"`
}

// VotesDTO is the canonical vote tally.
type VotesDTO struct {
	Up   int64 `json:"up" example:"12"`
	Down int64 `json:"down" example:"3"`
}

// RefDTO is an article reference in a sequence response.
type RefDTO struct {
	Slug      string    `json:"slug" example:"alan-turing"`
	Title     string    `json:"title" example:"Alan Turing"`
	CreatedAt time.Time `json:"createdAt" example:"2025-01-01T10:00:00Z"`
}

// SequenceResponse is the article with its neighbours in creation order.
type SequenceResponse struct {
	Current  RefDTO  `json:"current"`
	Previous *RefDTO `json:"previous"`
	Next     *RefDTO `json:"next"`
}

// HistoryItemDTO is one row of the history listing.
type HistoryItemDTO struct {
	ID        string    `json:"id" example:"42"`
	Slug      string    `json:"slug" example:"grace-hopper"`
	Title     string    `json:"title" example:"Grace Hopper"`
	CreatedAt time.Time `json:"createdAt" example:"2025-01-03T10:00:00Z"`
}

// HistoryResponse is one newest-first page.
type HistoryResponse struct {
	Articles   []HistoryItemDTO    `json:"articles"`
	Pagination pagination.Metadata `json:"pagination"`
}

// SearchItemDTO is a title match.
type SearchItemDTO struct {
	Title string `json:"title" example:"C++"`
	Slug  string `json:"slug" example:"c-plus-plus"`
}

// SearchResponse wraps the title matches.
type SearchResponse struct {
	Articles []SearchItemDTO `json:"articles"`
}

// SlugResponse is the result of an id lookup.
type SlugResponse struct {
	Slug string `json:"slug" example:"ada-lovelace"`
}

// ImageDTO wraps an image URL.
type ImageDTO struct {
	URL string `json:"url" example:"/placeholder.svg"`
}

// FeaturedDTO is a featured article card. ID carries the slug.
type FeaturedDTO struct {
	ID      string   `json:"id" example:"ada-lovelace"`
	Title   string   `json:"title" example:"Ada Lovelace"`
	Slug    string   `json:"slug" example:"ada-lovelace"`
	Content string   `json:"content"`
	Excerpt string   `json:"excerpt" example:"Ada Lovelace was a mathematician and writer..."`
	Image   ImageDTO `json:"image"`
}

// VoteRequest is the body of a vote.
type VoteRequest struct {
	Direction string `json:"direction" example:"up" enums:"up,down"`
}

// VoteResponse acknowledges a recorded vote.
type VoteResponse struct {
	Slug      string `json:"slug" example:"ada-lovelace"`
	Direction string `json:"direction" example:"up"`
	OK        bool   `json:"ok" example:"true"`
}

func toDTO(a *entity.Article) DTO {
	return DTO{
		ID:        a.ID,
		Slug:      a.Slug,
		Title:     a.Title,
		Content:   a.Content,
		ImageURL:  a.ImageURL,
		CreatedAt: a.CreatedAt,
		Votes:     VotesDTO{Up: a.Votes.Up, Down: a.Votes.Down},
	}
}

func toRefDTO(r entity.ArticleRef) RefDTO {
	return RefDTO{Slug: r.Slug, Title: r.Title, CreatedAt: r.CreatedAt}
}

func toOptionalRefDTO(r *entity.ArticleRef) *RefDTO {
	if r == nil {
		return nil
	}
	out := toRefDTO(*r)
	return &out
}

func toFeaturedDTO(f artUC.FeaturedArticle) FeaturedDTO {
	return FeaturedDTO{
		ID:      f.Article.Slug,
		Title:   f.Article.Title,
		Slug:    f.Article.Slug,
		Content: f.Article.Content,
		Excerpt: f.Excerpt,
		Image:   ImageDTO{URL: f.Article.ImageOrPlaceholder()},
	}
}
