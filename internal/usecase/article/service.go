package article

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/gosimple/slug"
	"golang.org/x/sync/errgroup"

	"williampedia/internal/common/pagination"
	"williampedia/internal/domain/entity"
	"williampedia/internal/infra/render"
	"williampedia/internal/observability/metrics"
	"williampedia/internal/pkg/search"
	"williampedia/internal/repository"
	"williampedia/internal/utils/text"
)

// FeaturedCount is the number of articles returned by Featured.
const FeaturedCount = 3

// Service provides article use cases.
// It handles business logic for article operations and delegates persistence to the repository.
type Service struct {
	Repo       repository.ArticleRepository
	Pagination pagination.Config
	// Renderer produces featured excerpts; nil uses render.New().
	Renderer *render.Renderer
	// RandInt64N returns a uniform value in [0, n); nil uses math/rand/v2.
	RandInt64N func(n int64) int64
	// Now defaults to time.Now.
	Now func() time.Time
}

// SequenceResult is an article with its neighbours in creation order.
type SequenceResult struct {
	Current  entity.ArticleRef
	Previous *entity.ArticleRef
	Next     *entity.ArticleRef
}

// HistoryResult is one newest-first page of articles.
type HistoryResult struct {
	Articles   []entity.ArticleRef
	Pagination pagination.Metadata
}

// FeaturedArticle pairs an article with a plain-text excerpt of its content.
type FeaturedArticle struct {
	Article *entity.Article
	Excerpt string
}

// CreateInput represents the input parameters for creating a new article.
// Slug is derived from Title when empty; CreatedAt defaults to now.
type CreateInput struct {
	Title     string
	Slug      string
	Content   string
	ImageURL  string
	CreatedAt time.Time
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Get retrieves a single article by slug.
func (s *Service) Get(ctx context.Context, slug string) (*entity.Article, error) {
	article, err := s.Repo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("get article: %w", err)
	}
	if article == nil {
		return nil, ErrArticleNotFound
	}
	return article, nil
}

// Sequence resolves slug and looks up its previous and next articles
// concurrently. Either neighbour is nil at the ends of the order.
func (s *Service) Sequence(ctx context.Context, slug string) (*SequenceResult, error) {
	current, err := s.Get(ctx, slug)
	if err != nil {
		return nil, err
	}

	res := &SequenceResult{Current: current.Ref()}
	pos := current.Position()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		prev, err := s.Repo.Previous(gctx, pos)
		if err != nil {
			return fmt.Errorf("previous article: %w", err)
		}
		res.Previous = prev
		return nil
	})
	g.Go(func() error {
		next, err := s.Repo.Next(gctx, pos)
		if err != nil {
			return fmt.Errorf("next article: %w", err)
		}
		res.Next = next
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return res, nil
}

// History returns a newest-first page. Out-of-range params are clamped,
// and a page beyond the end is empty rather than an error.
func (s *Service) History(ctx context.Context, params pagination.Params) (*HistoryResult, error) {
	start := time.Now()
	params = params.WithDefaults(s.Pagination)
	strategy := pagination.OffsetStrategy{}
	q := strategy.CalculateQuery(params)

	total, err := s.Repo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count articles: %w", err)
	}
	pagination.ArticlesSeen.Set(float64(total))

	refs := []entity.ArticleRef{}
	if int64(q.Offset) < total {
		refs, err = s.Repo.ListNewest(ctx, q.Offset, q.Limit)
		if err != nil {
			return nil, fmt.Errorf("list articles: %w", err)
		}
	}

	pagination.ObserveLayer("service", start)
	return &HistoryResult{
		Articles:   refs,
		Pagination: strategy.BuildMetadata(params, total),
	}, nil
}

// Search returns up to search.ResultLimit titles containing query,
// case-insensitively. A blank query yields an empty result.
func (s *Service) Search(ctx context.Context, query string) ([]entity.ArticleRef, error) {
	q, err := search.NormalizeQuery(query)
	if err != nil {
		return nil, ErrQueryTooLong
	}
	if q == "" {
		metrics.RecordSearch(q, 0)
		return []entity.ArticleRef{}, nil
	}

	refs, err := s.Repo.SearchTitles(ctx, q, search.ResultLimit)
	if err != nil {
		return nil, fmt.Errorf("search articles: %w", err)
	}
	metrics.RecordSearch(q, len(refs))
	return refs, nil
}

// Random picks a uniformly random offset in [0, count) and returns the
// article there in natural store order.
func (s *Service) Random(ctx context.Context) (*entity.Article, error) {
	n, err := s.Repo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count articles: %w", err)
	}
	if n == 0 {
		return nil, ErrArticleNotFound
	}

	randN := s.RandInt64N
	if randN == nil {
		randN = rand.Int64N
	}
	article, err := s.Repo.At(ctx, randN(n))
	if err != nil {
		return nil, fmt.Errorf("random article: %w", err)
	}
	// 件数取得後に削除されたなどでオフセットが消えた
	if article == nil {
		return nil, ErrArticleNotFound
	}
	return article, nil
}

// OfTheDay returns the most recently created article.
func (s *Service) OfTheDay(ctx context.Context) (*entity.Article, error) {
	article, err := s.Repo.Latest(ctx)
	if err != nil {
		return nil, fmt.Errorf("latest article: %w", err)
	}
	if article == nil {
		return nil, ErrArticleNotFound
	}
	return article, nil
}

// SlugByID maps an internal id to the article slug.
func (s *Service) SlugByID(ctx context.Context, id string) (string, error) {
	if strings.TrimSpace(id) == "" {
		return "", ErrInvalidArticleID
	}
	article, err := s.Repo.GetByID(ctx, id)
	if isInvalidInput(err) {
		return "", fmt.Errorf("%w: %q", ErrInvalidArticleID, id)
	}
	if err != nil {
		return "", fmt.Errorf("get article by id: %w", err)
	}
	if article == nil {
		return "", ErrArticleNotFound
	}
	return article.Slug, nil
}

// Featured returns up to FeaturedCount random articles with excerpts.
func (s *Service) Featured(ctx context.Context) ([]FeaturedArticle, error) {
	articles, err := s.Repo.Sample(ctx, FeaturedCount)
	if err != nil {
		return nil, fmt.Errorf("sample articles: %w", err)
	}
	if len(articles) == 0 {
		return nil, ErrArticleNotFound
	}

	renderer := s.Renderer
	if renderer == nil {
		renderer = render.New()
	}
	out := make([]FeaturedArticle, 0, len(articles))
	for _, a := range articles {
		excerpt, err := renderer.Excerpt(a.Content, render.DefaultExcerptLength)
		if err != nil {
			slog.WarnContext(ctx, "excerpt rendering failed, using raw content",
				slog.String("slug", a.Slug), slog.Any("error", err))
			excerpt = text.Truncate(text.CollapseSpace(a.Content), render.DefaultExcerptLength)
		}
		out = append(out, FeaturedArticle{Article: a, Excerpt: excerpt})
	}
	return out, nil
}

// Vote increments the tally selected by direction.
func (s *Service) Vote(ctx context.Context, slug, direction string) (entity.VoteDirection, error) {
	dir, err := entity.ParseVoteDirection(direction)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidVoteDirection, err)
	}

	ok, err := s.Repo.IncrementVote(ctx, slug, dir)
	if err != nil {
		return "", fmt.Errorf("increment vote: %w", err)
	}
	if !ok {
		return "", ErrArticleNotFound
	}
	metrics.RecordVote(string(dir))
	return dir, nil
}

// Create validates in and stores a new article.
// Returns ErrDuplicateSlug when the slug is taken.
func (s *Service) Create(ctx context.Context, in CreateInput) (*entity.Article, error) {
	art, err := s.prepare(in, s.now())
	if err != nil {
		return nil, err
	}
	if err := s.store(ctx, art); err != nil {
		return nil, err
	}
	return art, nil
}

// prepare builds a validated article from in, filling the slug from the
// title and the creation time from defaultTime.
func (s *Service) prepare(in CreateInput, defaultTime time.Time) (*entity.Article, error) {
	art := &entity.Article{
		Slug:      strings.TrimSpace(in.Slug),
		Title:     strings.TrimSpace(in.Title),
		Content:   in.Content,
		ImageURL:  strings.TrimSpace(in.ImageURL),
		CreatedAt: in.CreatedAt,
	}
	if art.Slug == "" {
		art.Slug = slug.Make(art.Title)
	}
	if art.CreatedAt.IsZero() {
		art.CreatedAt = defaultTime
	}
	art.CreatedAt = art.CreatedAt.UTC()

	if err := art.Validate(); err != nil {
		return nil, fmt.Errorf("validate article: %w", err)
	}
	return art, nil
}

func (s *Service) store(ctx context.Context, art *entity.Article) error {
	if err := s.Repo.Create(ctx, art); err != nil {
		if errors.Is(err, entity.ErrConflict) {
			return fmt.Errorf("%w: %q", ErrDuplicateSlug, art.Slug)
		}
		return fmt.Errorf("create article: %w", err)
	}
	return nil
}

// NormalizeVotes rewrites legacy vote counters into {up, down}.
func (s *Service) NormalizeVotes(ctx context.Context) (int64, error) {
	n, err := s.Repo.NormalizeVotes(ctx)
	if err != nil {
		return 0, fmt.Errorf("normalize votes: %w", err)
	}
	metrics.RecordVotesNormalized(n)
	return n, nil
}

// Count returns the number of stored articles and updates the articles_total gauge.
func (s *Service) Count(ctx context.Context) (int64, error) {
	n, err := s.Repo.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("count articles: %w", err)
	}
	metrics.UpdateArticlesTotal(n)
	return n, nil
}
