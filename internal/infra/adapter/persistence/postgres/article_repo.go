// Package postgres implements the article store on PostgreSQL through
// database/sql and the pgx stdlib driver.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5/pgconn"

	"williampedia/internal/domain/entity"
	"williampedia/internal/infra/adapter/persistence/storeerr"
	"williampedia/internal/pkg/search"
	"williampedia/internal/repository"
)

// uniqueViolation is the SQLSTATE for a unique constraint failure.
const uniqueViolation = "23505"

const articleColumns = `id, slug, title, content, image_url, created_at, votes_up, votes_down`

const refColumns = `id, slug, title, created_at`

type ArticleRepo struct {
	db *sql.DB
}

func NewArticleRepo(db *sql.DB) *ArticleRepo {
	return &ArticleRepo{db: db}
}

var _ repository.ArticleRepository = (*ArticleRepo)(nil)

type rowScanner interface {
	Scan(dest ...any) error
}

func scanArticle(row rowScanner) (*entity.Article, error) {
	var (
		a  entity.Article
		id int64
	)
	if err := row.Scan(&id, &a.Slug, &a.Title, &a.Content, &a.ImageURL,
		&a.CreatedAt, &a.Votes.Up, &a.Votes.Down); err != nil {
		return nil, err
	}
	a.ID = strconv.FormatInt(id, 10)
	a.CreatedAt = a.CreatedAt.UTC()
	return &a, nil
}

func scanRef(row rowScanner) (*entity.ArticleRef, error) {
	var (
		r  entity.ArticleRef
		id int64
	)
	if err := row.Scan(&id, &r.Slug, &r.Title, &r.CreatedAt); err != nil {
		return nil, err
	}
	r.ID = strconv.FormatInt(id, 10)
	r.CreatedAt = r.CreatedAt.UTC()
	return &r, nil
}

// parseID converts a domain id into the BIGSERIAL key.
func parseID(op, id string) (int64, error) {
	n, err := strconv.ParseInt(id, 10, 64)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%s: id %q: %w", op, id, entity.ErrInvalidInput)
	}
	return n, nil
}

func (repo *ArticleRepo) queryArticle(ctx context.Context, op, query string, args ...any) (*entity.Article, error) {
	a, err := scanArticle(repo.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, storeerr.Wrap(op, err)
	}
	return a, nil
}

func (repo *ArticleRepo) queryRef(ctx context.Context, op, query string, args ...any) (*entity.ArticleRef, error) {
	r, err := scanRef(repo.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, storeerr.Wrap(op, err)
	}
	return r, nil
}

func (repo *ArticleRepo) queryRefs(ctx context.Context, op string, capacity int, query string, args ...any) ([]entity.ArticleRef, error) {
	rows, err := repo.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, storeerr.Wrap(op, err)
	}
	defer func() { _ = rows.Close() }()

	refs := make([]entity.ArticleRef, 0, capacity)
	for rows.Next() {
		r, err := scanRef(rows)
		if err != nil {
			return nil, storeerr.Wrap(op+": Scan", err)
		}
		refs = append(refs, *r)
	}
	if err := rows.Err(); err != nil {
		return nil, storeerr.Wrap(op, err)
	}
	return refs, nil
}

func (repo *ArticleRepo) GetBySlug(ctx context.Context, slug string) (*entity.Article, error) {
	const query = `SELECT ` + articleColumns + `
FROM articles
WHERE slug = $1
LIMIT 1`
	return repo.queryArticle(ctx, "GetBySlug", query, slug)
}

func (repo *ArticleRepo) GetByID(ctx context.Context, id string) (*entity.Article, error) {
	n, err := parseID("GetByID", id)
	if err != nil {
		return nil, err
	}
	const query = `SELECT ` + articleColumns + `
FROM articles
WHERE id = $1`
	return repo.queryArticle(ctx, "GetByID", query, n)
}

// Previous returns the article immediately before pos in (created_at, id) order.
func (repo *ArticleRepo) Previous(ctx context.Context, pos entity.Position) (*entity.ArticleRef, error) {
	n, err := parseID("Previous", pos.ID)
	if err != nil {
		return nil, err
	}
	const query = `SELECT ` + refColumns + `
FROM articles
WHERE (created_at, id) < ($1, $2)
ORDER BY created_at DESC, id DESC
LIMIT 1`
	return repo.queryRef(ctx, "Previous", query, pos.CreatedAt, n)
}

// Next returns the article immediately after pos in (created_at, id) order.
func (repo *ArticleRepo) Next(ctx context.Context, pos entity.Position) (*entity.ArticleRef, error) {
	n, err := parseID("Next", pos.ID)
	if err != nil {
		return nil, err
	}
	const query = `SELECT ` + refColumns + `
FROM articles
WHERE (created_at, id) > ($1, $2)
ORDER BY created_at ASC, id ASC
LIMIT 1`
	return repo.queryRef(ctx, "Next", query, pos.CreatedAt, n)
}

// ListNewest uses LIMIT/OFFSET; idx_articles_created_at_id serves the sort.
func (repo *ArticleRepo) ListNewest(ctx context.Context, offset, limit int) ([]entity.ArticleRef, error) {
	const query = `SELECT ` + refColumns + `
FROM articles
ORDER BY created_at DESC, id DESC
LIMIT $1 OFFSET $2`
	return repo.queryRefs(ctx, "ListNewest", limit, query, limit, offset)
}

func (repo *ArticleRepo) Count(ctx context.Context) (int64, error) {
	const query = `SELECT COUNT(*) FROM articles`
	var count int64
	if err := repo.db.QueryRowContext(ctx, query).Scan(&count); err != nil {
		return 0, storeerr.Wrap("Count", err)
	}
	return count, nil
}

// SearchTitles matches query literally and case-insensitively anywhere in the title.
func (repo *ArticleRepo) SearchTitles(ctx context.Context, query string, limit int) ([]entity.ArticleRef, error) {
	const stmt = `SELECT ` + refColumns + `
FROM articles
WHERE title ILIKE $1 ESCAPE '\'
ORDER BY created_at DESC, id DESC
LIMIT $2`
	return repo.queryRefs(ctx, "SearchTitles", limit, stmt, search.ContainsPattern(query), limit)
}

func (repo *ArticleRepo) Latest(ctx context.Context) (*entity.Article, error) {
	const query = `SELECT ` + articleColumns + `
FROM articles
ORDER BY created_at DESC, id DESC
LIMIT 1`
	return repo.queryArticle(ctx, "Latest", query)
}

// At returns the article at offset in id order.
func (repo *ArticleRepo) At(ctx context.Context, offset int64) (*entity.Article, error) {
	if offset < 0 {
		return nil, fmt.Errorf("At: negative offset %d: %w", offset, entity.ErrInvalidInput)
	}
	const query = `SELECT ` + articleColumns + `
FROM articles
ORDER BY id
LIMIT 1 OFFSET $1`
	return repo.queryArticle(ctx, "At", query, offset)
}

func (repo *ArticleRepo) Sample(ctx context.Context, size int) ([]*entity.Article, error) {
	const query = `SELECT ` + articleColumns + `
FROM articles
ORDER BY random()
LIMIT $1`
	rows, err := repo.db.QueryContext(ctx, query, size)
	if err != nil {
		return nil, storeerr.Wrap("Sample", err)
	}
	defer func() { _ = rows.Close() }()

	articles := make([]*entity.Article, 0, size)
	for rows.Next() {
		a, err := scanArticle(rows)
		if err != nil {
			return nil, storeerr.Wrap("Sample: Scan", err)
		}
		articles = append(articles, a)
	}
	if err := rows.Err(); err != nil {
		return nil, storeerr.Wrap("Sample", err)
	}
	return articles, nil
}

// IncrementVote bumps one tally in a single UPDATE so concurrent votes never lose increments.
func (repo *ArticleRepo) IncrementVote(ctx context.Context, slug string, dir entity.VoteDirection) (bool, error) {
	var query string
	switch dir {
	case entity.VoteUp:
		query = `UPDATE articles SET votes_up = votes_up + 1 WHERE slug = $1`
	case entity.VoteDown:
		query = `UPDATE articles SET votes_down = votes_down + 1 WHERE slug = $1`
	default:
		return false, fmt.Errorf("IncrementVote: direction %q: %w", dir, entity.ErrInvalidInput)
	}

	res, err := repo.db.ExecContext(ctx, query, slug)
	if err != nil {
		return false, storeerr.Wrap("IncrementVote", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, storeerr.Wrap("IncrementVote: RowsAffected", err)
	}
	return n > 0, nil
}

// Create inserts article and sets its ID. A taken slug yields entity.ErrConflict.
func (repo *ArticleRepo) Create(ctx context.Context, article *entity.Article) error {
	const query = `
INSERT INTO articles (slug, title, content, image_url, created_at, votes_up, votes_down)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING id`
	var id int64
	err := repo.db.QueryRowContext(ctx, query,
		article.Slug, article.Title, article.Content, article.ImageURL,
		article.CreatedAt.UTC(), article.Votes.Up, article.Votes.Down,
	).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return storeerr.Conflict("Create", err)
		}
		return storeerr.Wrap("Create", err)
	}
	article.ID = strconv.FormatInt(id, 10)
	return nil
}

// NormalizeVotes is a no-op: the schema stores separate up/down columns.
func (repo *ArticleRepo) NormalizeVotes(context.Context) (int64, error) {
	return 0, nil
}

func (repo *ArticleRepo) Ping(ctx context.Context) error {
	if err := repo.db.PingContext(ctx); err != nil {
		return storeerr.Wrap("Ping", err)
	}
	return nil
}

// Stats exposes connection pool statistics for health checks and metrics.
func (repo *ArticleRepo) Stats() sql.DBStats {
	return repo.db.Stats()
}
