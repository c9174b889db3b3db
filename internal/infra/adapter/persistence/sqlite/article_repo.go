// Package sqlite implements the article store on SQLite through the
// pure-Go modernc.org/sqlite driver. It backs local development and tests.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	msqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"williampedia/internal/domain/entity"
	"williampedia/internal/infra/adapter/persistence/storeerr"
	"williampedia/internal/pkg/search"
	"williampedia/internal/repository"
)

const articleColumns = `id, slug, title, content, image_url, created_at, votes_up, votes_down`

const refColumns = `id, slug, title, created_at`

// ArticleRepo implements repository.ArticleRepository using SQLite.
// created_at is stored as Unix nanoseconds.
type ArticleRepo struct{ db *sql.DB }

// NewArticleRepo creates a new SQLite-backed article repository.
func NewArticleRepo(db *sql.DB) *ArticleRepo {
	return &ArticleRepo{db: db}
}

var _ repository.ArticleRepository = (*ArticleRepo)(nil)

type rowScanner interface {
	Scan(dest ...any) error
}

func fromNanos(n int64) time.Time {
	return time.Unix(0, n).UTC()
}

func scanArticle(row rowScanner) (*entity.Article, error) {
	var (
		a      entity.Article
		id, ts int64
	)
	if err := row.Scan(&id, &a.Slug, &a.Title, &a.Content, &a.ImageURL,
		&ts, &a.Votes.Up, &a.Votes.Down); err != nil {
		return nil, err
	}
	a.ID = strconv.FormatInt(id, 10)
	a.CreatedAt = fromNanos(ts)
	return &a, nil
}

func scanRef(row rowScanner) (*entity.ArticleRef, error) {
	var (
		r      entity.ArticleRef
		id, ts int64
	)
	if err := row.Scan(&id, &r.Slug, &r.Title, &ts); err != nil {
		return nil, err
	}
	r.ID = strconv.FormatInt(id, 10)
	r.CreatedAt = fromNanos(ts)
	return &r, nil
}

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
	const query = `SELECT ` + articleColumns + ` FROM articles WHERE slug = ? LIMIT 1`
	return repo.queryArticle(ctx, "GetBySlug", query, slug)
}

func (repo *ArticleRepo) GetByID(ctx context.Context, id string) (*entity.Article, error) {
	n, err := parseID("GetByID", id)
	if err != nil {
		return nil, err
	}
	const query = `SELECT ` + articleColumns + ` FROM articles WHERE id = ?`
	return repo.queryArticle(ctx, "GetByID", query, n)
}

func (repo *ArticleRepo) Previous(ctx context.Context, pos entity.Position) (*entity.ArticleRef, error) {
	n, err := parseID("Previous", pos.ID)
	if err != nil {
		return nil, err
	}
	const query = `SELECT ` + refColumns + `
FROM articles
WHERE (created_at, id) < (?, ?)
ORDER BY created_at DESC, id DESC
LIMIT 1`
	return repo.queryRef(ctx, "Previous", query, pos.CreatedAt.UnixNano(), n)
}

func (repo *ArticleRepo) Next(ctx context.Context, pos entity.Position) (*entity.ArticleRef, error) {
	n, err := parseID("Next", pos.ID)
	if err != nil {
		return nil, err
	}
	const query = `SELECT ` + refColumns + `
FROM articles
WHERE (created_at, id) > (?, ?)
ORDER BY created_at ASC, id ASC
LIMIT 1`
	return repo.queryRef(ctx, "Next", query, pos.CreatedAt.UnixNano(), n)
}

func (repo *ArticleRepo) ListNewest(ctx context.Context, offset, limit int) ([]entity.ArticleRef, error) {
	const query = `SELECT ` + refColumns + `
FROM articles
ORDER BY created_at DESC, id DESC
LIMIT ? OFFSET ?`
	return repo.queryRefs(ctx, "ListNewest", limit, query, limit, offset)
}

func (repo *ArticleRepo) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := repo.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM articles`).Scan(&count); err != nil {
		return 0, storeerr.Wrap("Count", err)
	}
	return count, nil
}

// SearchTitles matches on case-folded titles so non-ASCII letters compare
// the same way as in the Postgres and Mongo stores.
func (repo *ArticleRepo) SearchTitles(ctx context.Context, query string, limit int) ([]entity.ArticleRef, error) {
	const stmt = `SELECT ` + refColumns + `
FROM articles
WHERE ` + foldFunc + `(title) LIKE ? ESCAPE '\'
ORDER BY created_at DESC, id DESC
LIMIT ?`
	return repo.queryRefs(ctx, "SearchTitles", limit, stmt, search.ContainsPattern(Fold(query)), limit)
}

func (repo *ArticleRepo) Latest(ctx context.Context) (*entity.Article, error) {
	const query = `SELECT ` + articleColumns + `
FROM articles
ORDER BY created_at DESC, id DESC
LIMIT 1`
	return repo.queryArticle(ctx, "Latest", query)
}

func (repo *ArticleRepo) At(ctx context.Context, offset int64) (*entity.Article, error) {
	if offset < 0 {
		return nil, fmt.Errorf("At: negative offset %d: %w", offset, entity.ErrInvalidInput)
	}
	const query = `SELECT ` + articleColumns + ` FROM articles ORDER BY id LIMIT 1 OFFSET ?`
	return repo.queryArticle(ctx, "At", query, offset)
}

func (repo *ArticleRepo) Sample(ctx context.Context, size int) ([]*entity.Article, error) {
	const query = `SELECT ` + articleColumns + ` FROM articles ORDER BY random() LIMIT ?`
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

func (repo *ArticleRepo) IncrementVote(ctx context.Context, slug string, dir entity.VoteDirection) (bool, error) {
	var query string
	switch dir {
	case entity.VoteUp:
		query = `UPDATE articles SET votes_up = votes_up + 1 WHERE slug = ?`
	case entity.VoteDown:
		query = `UPDATE articles SET votes_down = votes_down + 1 WHERE slug = ?`
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

func (repo *ArticleRepo) Create(ctx context.Context, article *entity.Article) error {
	const query = `
INSERT INTO articles (slug, title, content, image_url, created_at, votes_up, votes_down)
VALUES (?, ?, ?, ?, ?, ?, ?)`
	res, err := repo.db.ExecContext(ctx, query,
		article.Slug, article.Title, article.Content, article.ImageURL,
		article.CreatedAt.UnixNano(), article.Votes.Up, article.Votes.Down,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return storeerr.Conflict("Create", err)
		}
		return storeerr.Wrap("Create", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return storeerr.Wrap("Create: LastInsertId", err)
	}
	article.ID = strconv.FormatInt(id, 10)
	return nil
}

func isUniqueViolation(err error) bool {
	var sqliteErr *msqlite.Error
	return errors.As(err, &sqliteErr) && sqliteErr.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE
}

// NormalizeVotes is a no-op: tallies are separate integer columns.
func (repo *ArticleRepo) NormalizeVotes(context.Context) (int64, error) {
	return 0, nil
}

func (repo *ArticleRepo) Ping(ctx context.Context) error {
	if err := repo.db.PingContext(ctx); err != nil {
		return storeerr.Wrap("Ping", err)
	}
	return nil
}

func (repo *ArticleRepo) Stats() sql.DBStats {
	return repo.db.Stats()
}
