package fixtures

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"williampedia/internal/domain/entity"
	"williampedia/internal/repository"
)

// MemoryRepo is an in-memory repository.ArticleRepository with the same
// ordering and not-found semantics as the real adapters. IDs are decimal.
type MemoryRepo struct {
	mu       sync.Mutex
	articles []*entity.Article // insertion order
	nextID   int64

	// Err, when set, is returned by every operation.
	Err error
}

var _ repository.ArticleRepository = (*MemoryRepo)(nil)

// NewMemoryRepo stores seed in order, assigning IDs.
func NewMemoryRepo(seed ...*entity.Article) *MemoryRepo {
	r := &MemoryRepo{nextID: 1}
	for _, a := range seed {
		_ = r.Create(context.Background(), a)
	}
	return r
}

func less(a, b entity.Position) bool {
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.Before(b.CreatedAt)
	}
	ai, _ := strconv.ParseInt(a.ID, 10, 64)
	bi, _ := strconv.ParseInt(b.ID, 10, 64)
	return ai < bi
}

// ordered returns a copy sorted oldest first. Callers hold mu.
func (r *MemoryRepo) ordered() []*entity.Article {
	out := append([]*entity.Article(nil), r.articles...)
	sort.Slice(out, func(i, j int) bool { return less(out[i].Position(), out[j].Position()) })
	return out
}

func clone(a *entity.Article) *entity.Article {
	c := *a
	return &c
}

func (r *MemoryRepo) GetBySlug(_ context.Context, slug string) (*entity.Article, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	for _, a := range r.articles {
		if a.Slug == slug {
			return clone(a), nil
		}
	}
	return nil, nil
}

func (r *MemoryRepo) GetByID(_ context.Context, id string) (*entity.Article, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	if n, err := strconv.ParseInt(id, 10, 64); err != nil || n <= 0 {
		return nil, fmt.Errorf("GetByID: id %q: %w", id, entity.ErrInvalidInput)
	}
	for _, a := range r.articles {
		if a.ID == id {
			return clone(a), nil
		}
	}
	return nil, nil
}

func (r *MemoryRepo) Previous(_ context.Context, pos entity.Position) (*entity.ArticleRef, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	all := r.ordered()
	for i := len(all) - 1; i >= 0; i-- {
		if less(all[i].Position(), pos) {
			ref := all[i].Ref()
			return &ref, nil
		}
	}
	return nil, nil
}

func (r *MemoryRepo) Next(_ context.Context, pos entity.Position) (*entity.ArticleRef, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	for _, a := range r.ordered() {
		if less(pos, a.Position()) {
			ref := a.Ref()
			return &ref, nil
		}
	}
	return nil, nil
}

func (r *MemoryRepo) ListNewest(_ context.Context, offset, limit int) ([]entity.ArticleRef, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	all := r.ordered()
	refs := make([]entity.ArticleRef, 0, limit)
	for i := len(all) - 1 - offset; i >= 0 && len(refs) < limit; i-- {
		refs = append(refs, all[i].Ref())
	}
	return refs, nil
}

func (r *MemoryRepo) Count(context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return 0, r.Err
	}
	return int64(len(r.articles)), nil
}

func (r *MemoryRepo) SearchTitles(_ context.Context, query string, limit int) ([]entity.ArticleRef, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	all := r.ordered()
	q := strings.ToLower(query)
	refs := make([]entity.ArticleRef, 0)
	for i := len(all) - 1; i >= 0 && len(refs) < limit; i-- {
		if strings.Contains(strings.ToLower(all[i].Title), q) {
			refs = append(refs, all[i].Ref())
		}
	}
	return refs, nil
}

func (r *MemoryRepo) Latest(context.Context) (*entity.Article, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	all := r.ordered()
	if len(all) == 0 {
		return nil, nil
	}
	return clone(all[len(all)-1]), nil
}

func (r *MemoryRepo) At(_ context.Context, offset int64) (*entity.Article, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	if offset < 0 {
		return nil, fmt.Errorf("At: negative offset %d: %w", offset, entity.ErrInvalidInput)
	}
	if offset >= int64(len(r.articles)) {
		return nil, nil
	}
	return clone(r.articles[offset]), nil
}

// Sample returns the first size articles in insertion order.
func (r *MemoryRepo) Sample(_ context.Context, size int) ([]*entity.Article, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	out := make([]*entity.Article, 0, size)
	for _, a := range r.articles {
		if len(out) == size {
			break
		}
		out = append(out, clone(a))
	}
	return out, nil
}

func (r *MemoryRepo) IncrementVote(_ context.Context, slug string, dir entity.VoteDirection) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return false, r.Err
	}
	for _, a := range r.articles {
		if a.Slug != slug {
			continue
		}
		switch dir {
		case entity.VoteUp:
			a.Votes.Up++
		case entity.VoteDown:
			a.Votes.Down++
		default:
			return false, fmt.Errorf("IncrementVote: direction %q: %w", dir, entity.ErrInvalidInput)
		}
		return true, nil
	}
	return false, nil
}

func (r *MemoryRepo) Create(_ context.Context, article *entity.Article) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	for _, a := range r.articles {
		if a.Slug == article.Slug {
			return fmt.Errorf("Create: slug %q: %w", article.Slug, entity.ErrConflict)
		}
	}
	article.ID = strconv.FormatInt(r.nextID, 10)
	article.CreatedAt = article.CreatedAt.UTC().Truncate(time.Microsecond)
	r.nextID++
	r.articles = append(r.articles, clone(article))
	return nil
}

func (r *MemoryRepo) NormalizeVotes(context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return 0, r.Err
}

func (r *MemoryRepo) Ping(context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.Err
}
