// Package render turns article markdown into short plain-text excerpts.
package render

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"williampedia/internal/utils/text"
)

// DefaultExcerptLength is the excerpt size used by the featured endpoint, in runes.
const DefaultExcerptLength = 280

// Renderer converts markdown to HTML and extracts excerpts from it.
// It is safe for concurrent use.
type Renderer struct {
	md goldmark.Markdown
}

// New returns a Renderer with GitHub-flavoured markdown enabled.
func New() *Renderer {
	return &Renderer{
		md: goldmark.New(goldmark.WithExtensions(extension.GFM)),
	}
}

// HTML renders markdown to HTML. Raw HTML in the source is omitted.
func (r *Renderer) HTML(markdown string) (string, error) {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(markdown), &buf); err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return buf.String(), nil
}

// Excerpt returns the text of the first non-empty paragraph, truncated to max
// runes on a word boundary. Content without paragraphs (only headings or
// lists) falls back to the whole document text.
func (r *Renderer) Excerpt(markdown string, max int) (string, error) {
	html, err := r.HTML(markdown)
	if err != nil {
		return "", err
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("parse rendered HTML: %w", err)
	}

	var first string
	doc.Find("p").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		first = text.CollapseSpace(s.Text())
		return first == ""
	})
	if first == "" {
		first = text.CollapseSpace(doc.Text())
	}

	return text.Truncate(first, max), nil
}
