package postgres_test

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/go-cmp/cmp"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"williampedia/internal/domain/entity"
	pg "williampedia/internal/infra/adapter/persistence/postgres"
)

/* ─────────────────────────── ヘルパ ─────────────────────────── */

var (
	articleCols = []string{"id", "slug", "title", "content", "image_url", "created_at", "votes_up", "votes_down"}
	refCols     = []string{"id", "slug", "title", "created_at"}
	t0          = time.Date(2025, 7, 19, 0, 0, 0, 0, time.UTC)
)

func newRepo(t *testing.T) (*pg.ArticleRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		_ = db.Close()
	})
	return pg.NewArticleRepo(db), mock
}

func articleRow(id int64, slug string, at time.Time) *sqlmock.Rows {
	return sqlmock.NewRows(articleCols).
		AddRow(id, slug, "Title "+slug, "# "+slug, "", at, int64(3), int64(1))
}

/* ─────────────────────────── 1. GetBySlug / GetByID ─────────────────────────── */

func TestArticleRepo_GetBySlug(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM articles\nWHERE slug = $1")).
		WithArgs("gravity").
		WillReturnRows(articleRow(7, "gravity", t0))

	got, err := repo.GetBySlug(context.Background(), "gravity")
	require.NoError(t, err)

	want := &entity.Article{
		ID: "7", Slug: "gravity", Title: "Title gravity", Content: "# gravity",
		CreatedAt: t0, Votes: entity.Votes{Up: 3, Down: 1},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}

func TestArticleRepo_GetBySlug_NotFound(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery("FROM articles").WithArgs("missing").WillReturnRows(sqlmock.NewRows(articleCols))

	got, err := repo.GetBySlug(context.Background(), "missing")
	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestArticleRepo_GetByID(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE id = $1")).
		WithArgs(int64(42)).
		WillReturnRows(articleRow(42, "optics", t0))

	got, err := repo.GetByID(context.Background(), "42")
	require.NoError(t, err)
	assert.Equal(t, "optics", got.Slug)
}

func TestArticleRepo_GetByID_Malformed(t *testing.T) {
	repo, _ := newRepo(t)

	for _, id := range []string{"abc", "0", "-1", "65f1c0ffee00000000000000"} {
		_, err := repo.GetByID(context.Background(), id)
		assert.ErrorIs(t, err, entity.ErrInvalidInput, id)
	}
}

/* ─────────────────────────── 2. Previous / Next ─────────────────────────── */

func TestArticleRepo_PreviousNext(t *testing.T) {
	repo, mock := newRepo(t)
	pos := entity.Position{CreatedAt: t0, ID: "5"}

	mock.ExpectQuery(regexp.QuoteMeta("WHERE (created_at, id) < ($1, $2)\nORDER BY created_at DESC, id DESC")).
		WithArgs(t0, int64(5)).
		WillReturnRows(sqlmock.NewRows(refCols).AddRow(int64(4), "before", "Before", t0))
	mock.ExpectQuery(regexp.QuoteMeta("WHERE (created_at, id) > ($1, $2)\nORDER BY created_at ASC, id ASC")).
		WithArgs(t0, int64(5)).
		WillReturnRows(sqlmock.NewRows(refCols))

	prev, err := repo.Previous(context.Background(), pos)
	require.NoError(t, err)
	assert.Equal(t, &entity.ArticleRef{ID: "4", Slug: "before", Title: "Before", CreatedAt: t0}, prev)

	next, err := repo.Next(context.Background(), pos)
	require.NoError(t, err)
	assert.Nil(t, next, "last article has no next")
}

/* ─────────────────────────── 3. ListNewest / Count ─────────────────────────── */

func TestArticleRepo_ListNewest(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("LIMIT $1 OFFSET $2")).
		WithArgs(2, 4).
		WillReturnRows(sqlmock.NewRows(refCols).
			AddRow(int64(9), "c", "C", t0.Add(2*time.Hour)).
			AddRow(int64(8), "b", "B", t0.Add(time.Hour)))

	got, err := repo.ListNewest(context.Background(), 4, 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "c", got[0].Slug)
	assert.Equal(t, "9", got[0].ID)
}

func TestArticleRepo_Count(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM articles")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(12)))

	n, err := repo.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(12), n)
}

/* ─────────────────────────── 4. SearchTitles ─────────────────────────── */

func TestArticleRepo_SearchTitles_EscapesWildcards(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta(`WHERE title ILIKE $1 ESCAPE '\'`)).
		WithArgs(`%100\%\_pure%`, 10).
		WillReturnRows(sqlmock.NewRows(refCols).AddRow(int64(1), "pure", "100%_pure", t0))

	got, err := repo.SearchTitles(context.Background(), "100%_pure", 10)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "pure", got[0].Slug)
}

/* ─────────────────────────── 5. Latest / At / Sample ─────────────────────────── */

func TestArticleRepo_Latest(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY created_at DESC, id DESC\nLIMIT 1")).
		WillReturnRows(articleRow(3, "newest", t0))

	got, err := repo.Latest(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "newest", got.Slug)
}

func TestArticleRepo_At(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY id\nLIMIT 1 OFFSET $1")).
		WithArgs(int64(2)).
		WillReturnRows(sqlmock.NewRows(articleCols))

	got, err := repo.At(context.Background(), 2)
	assert.NoError(t, err)
	assert.Nil(t, got, "offset vanished")

	_, err = repo.At(context.Background(), -1)
	assert.ErrorIs(t, err, entity.ErrInvalidInput)
}

func TestArticleRepo_Sample(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY random()")).
		WithArgs(3).
		WillReturnRows(sqlmock.NewRows(articleCols).
			AddRow(int64(1), "a", "A", "a", "https://img.example/a.png", t0, int64(0), int64(0)).
			AddRow(int64(2), "b", "B", "b", "", t0, int64(0), int64(0)))

	got, err := repo.Sample(context.Background(), 3)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "https://img.example/a.png", got[0].ImageURL)
}

/* ─────────────────────────── 6. IncrementVote ─────────────────────────── */

func TestArticleRepo_IncrementVote(t *testing.T) {
	tests := []struct {
		name    string
		dir     entity.VoteDirection
		stmt    string
		rows    int64
		want    bool
		wantErr error
	}{
		{"up", entity.VoteUp, "SET votes_up = votes_up + 1", 1, true, nil},
		{"down", entity.VoteDown, "SET votes_down = votes_down + 1", 1, true, nil},
		{"missing slug", entity.VoteUp, "SET votes_up = votes_up + 1", 0, false, nil},
		{"bad direction", entity.VoteDirection("sideways"), "", 0, false, entity.ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newRepo(t)
			if tt.stmt != "" {
				mock.ExpectExec(regexp.QuoteMeta(tt.stmt)).
					WithArgs("gravity").
					WillReturnResult(sqlmock.NewResult(0, tt.rows))
			}

			got, err := repo.IncrementVote(context.Background(), "gravity", tt.dir)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

/* ─────────────────────────── 7. Create ─────────────────────────── */

func TestArticleRepo_Create(t *testing.T) {
	repo, mock := newRepo(t)

	a := &entity.Article{Slug: "gravity", Title: "Gravity", Content: "c", CreatedAt: t0}
	mock.ExpectQuery("INSERT INTO articles").
		WithArgs("gravity", "Gravity", "c", "", t0, int64(0), int64(0)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(77)))

	require.NoError(t, repo.Create(context.Background(), a))
	assert.Equal(t, "77", a.ID)
}

func TestArticleRepo_Create_DuplicateSlug(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery("INSERT INTO articles").
		WillReturnError(&pgconn.PgError{Code: "23505", Message: "duplicate key value violates unique constraint"})

	err := repo.Create(context.Background(), &entity.Article{Slug: "gravity", CreatedAt: t0})
	assert.ErrorIs(t, err, entity.ErrConflict)
}

/* ─────────────────────────── 8. エラー分類 ─────────────────────────── */

func TestArticleRepo_ClassifiesConnectionErrors(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery("FROM articles").WillReturnError(io.ErrUnexpectedEOF)
	mock.ExpectQuery("SELECT COUNT").WillReturnError(errors.New("relation \"articles\" does not exist"))

	_, err := repo.GetBySlug(context.Background(), "gravity")
	assert.ErrorIs(t, err, entity.ErrStoreUnavailable)

	_, err = repo.Count(context.Background())
	assert.Error(t, err)
	assert.NotErrorIs(t, err, entity.ErrStoreUnavailable)
}

func TestArticleRepo_PingAndStats(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer func() { _ = db.Close() }()
	repo := pg.NewArticleRepo(db)

	mock.ExpectPing()
	mock.ExpectPing().WillReturnError(sql.ErrConnDone)

	assert.NoError(t, repo.Ping(context.Background()))
	assert.ErrorIs(t, repo.Ping(context.Background()), entity.ErrStoreUnavailable)
	assert.GreaterOrEqual(t, repo.Stats().OpenConnections, 0)

	n, err := repo.NormalizeVotes(context.Background())
	assert.NoError(t, err)
	assert.Zero(t, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}
