// Package fixtures provides deterministic article data and an in-memory
// article repository for use-case and handler tests.
package fixtures

import (
	"fmt"
	"strings"
	"time"

	"williampedia/internal/domain/entity"
)

// Epoch is the creation time of the first generated article.
var Epoch = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

// Article builds a single article created at Epoch + offset.
func Article(slug, title string, offset time.Duration) *entity.Article {
	return &entity.Article{
		Slug:      slug,
		Title:     title,
		Content:   GenerateBody(title, 400),
		CreatedAt: Epoch.Add(offset),
	}
}

// Articles builds n articles with slugs "article-1".."article-n", created a
// day apart in slug order.
//
//	repo := fixtures.NewMemoryRepo(fixtures.Articles(25)...)
func Articles(n int) []*entity.Article {
	out := make([]*entity.Article, 0, n)
	for i := 1; i <= n; i++ {
		out = append(out, Article(
			fmt.Sprintf("article-%d", i),
			fmt.Sprintf("Article %d", i),
			time.Duration(i-1)*24*time.Hour,
		))
	}
	return out
}

var bodySentences = []string{
	"The subject has been studied by scholars for several centuries.",
	"Early accounts describe it in terms that modern readers find surprising.",
	"Later work refined these descriptions with careful measurement.",
	"Its influence on neighbouring fields is widely acknowledged.",
	"Several competing explanations were proposed during the nineteenth century.",
	"Contemporary research continues to revise the accepted picture.",
	"Popular culture often presents a simplified version of the topic.",
	"Critics have questioned the reliability of some primary sources.",
}

// GenerateBody returns a markdown article body of roughly targetLength runes:
// a heading followed by paragraphs of three sentences each.
func GenerateBody(title string, targetLength int) string {
	var b strings.Builder
	b.WriteString("# " + title + "\n\n")

	for i := 0; len([]rune(b.String())) < targetLength; i++ {
		b.WriteString(bodySentences[i%len(bodySentences)])
		if i%3 == 2 {
			b.WriteString("\n\n")
		} else {
			b.WriteString(" ")
		}
	}
	return strings.TrimSpace(b.String())
}
