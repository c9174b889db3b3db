package entity

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	// maxURLLength defines the maximum allowed length for image URLs.
	maxURLLength = 2048

	// MaxTitleLength bounds article titles.
	MaxTitleLength = 300

	// MaxSlugLength bounds article slugs.
	MaxSlugLength = 200
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// ValidateSlug checks that s is a lowercase, hyphen separated slug.
func ValidateSlug(s string) error {
	if s == "" {
		return &ValidationError{Field: "slug", Message: "slug is required"}
	}
	if len(s) > MaxSlugLength {
		return &ValidationError{Field: "slug", Message: fmt.Sprintf("slug must not exceed %d characters", MaxSlugLength)}
	}
	if !slugPattern.MatchString(s) {
		return &ValidationError{Field: "slug", Message: "slug must contain only lowercase letters, digits and single hyphens"}
	}
	return nil
}

// ValidateImageURL validates an optional image URL.
// Empty values and site-relative paths ("/images/x.png") are accepted;
// absolute URLs must use http or https and carry a host.
func ValidateImageURL(rawURL string) error {
	if rawURL == "" {
		return nil
	}

	if len(rawURL) > maxURLLength {
		return &ValidationError{
			Field:   "image_url",
			Message: fmt.Sprintf("image_url must not exceed %d characters", maxURLLength),
		}
	}

	if strings.HasPrefix(rawURL, "/") && !strings.HasPrefix(rawURL, "//") {
		return nil
	}

	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return &ValidationError{Field: "image_url", Message: "image_url is malformed"}
	}

	// HTTPまたはHTTPSスキームのみ許可
	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return &ValidationError{Field: "image_url", Message: "image_url must use http or https scheme"}
	}

	if parsedURL.Host == "" {
		return &ValidationError{Field: "image_url", Message: "image_url must have a valid host"}
	}

	return nil
}

// Validate checks the fields required to store a new article.
func (a *Article) Validate() error {
	if strings.TrimSpace(a.Title) == "" {
		return &ValidationError{Field: "title", Message: "title is required"}
	}
	if utf8.RuneCountInString(a.Title) > MaxTitleLength {
		return &ValidationError{Field: "title", Message: fmt.Sprintf("title must not exceed %d characters", MaxTitleLength)}
	}
	if err := ValidateSlug(a.Slug); err != nil {
		return err
	}
	if strings.TrimSpace(a.Content) == "" {
		return &ValidationError{Field: "content", Message: "content is required"}
	}
	if a.CreatedAt.IsZero() {
		return &ValidationError{Field: "created_at", Message: "created_at is required"}
	}
	if a.Votes.Up < 0 || a.Votes.Down < 0 {
		return &ValidationError{Field: "votes", Message: "votes must not be negative"}
	}
	return ValidateImageURL(a.ImageURL)
}
