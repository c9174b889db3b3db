package sqlite_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"williampedia/internal/domain/entity"
	"williampedia/internal/infra/adapter/persistence/sqlite"
	"williampedia/internal/infra/db"
)

/* ────────────────────────────  ヘルパ  ──────────────────────────── */

var base = time.Date(2025, 7, 19, 0, 0, 0, 0, time.UTC)

func newRepo(t *testing.T) *sqlite.ArticleRepo {
	t.Helper()
	conn, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	// :memory: は接続ごとに別DBになるため1本に固定
	conn.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = conn.Close() })

	require.NoError(t, db.MigrateUp(context.Background(), conn, db.DialectSQLite))
	return sqlite.NewArticleRepo(conn)
}

func seed(t *testing.T, repo *sqlite.ArticleRepo, slug, title string, at time.Time) *entity.Article {
	t.Helper()
	a := &entity.Article{Slug: slug, Title: title, Content: "# " + title, CreatedAt: at}
	require.NoError(t, repo.Create(context.Background(), a))
	return a
}

/* ──────────────────────────── 1. Create / Get ──────────────────────────── */

func TestArticleRepo_CreateAndGet(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	created := &entity.Article{
		Slug: "gravity", Title: "Gravity", Content: "Falls.",
		ImageURL: "https://img.example/g.png", CreatedAt: base.Add(123 * time.Nanosecond),
		Votes: entity.Votes{Up: 2},
	}
	require.NoError(t, repo.Create(ctx, created))
	require.NotEmpty(t, created.ID)

	bySlug, err := repo.GetBySlug(ctx, "gravity")
	require.NoError(t, err)
	if diff := cmp.Diff(created, bySlug); diff != "" {
		t.Fatalf("GetBySlug mismatch (-want +got):\n%s", diff)
	}

	byID, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "gravity", byID.Slug)
}

func TestArticleRepo_GetMissing(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	a, err := repo.GetBySlug(ctx, "nope")
	assert.NoError(t, err)
	assert.Nil(t, a)

	a, err = repo.GetByID(ctx, "999")
	assert.NoError(t, err)
	assert.Nil(t, a)

	_, err = repo.GetByID(ctx, "not-a-number")
	assert.ErrorIs(t, err, entity.ErrInvalidInput)
}

func TestArticleRepo_Create_DuplicateSlug(t *testing.T) {
	repo := newRepo(t)
	seed(t, repo, "gravity", "Gravity", base)

	err := repo.Create(context.Background(), &entity.Article{Slug: "gravity", Title: "Again", CreatedAt: base})
	assert.ErrorIs(t, err, entity.ErrConflict)
}

/* ──────────────────────────── 2. Previous / Next ──────────────────────────── */

func TestArticleRepo_PreviousNext_TieBreakByID(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	first := seed(t, repo, "first", "First", base)
	// 同時刻の2件は id 順
	tieA := seed(t, repo, "tie-a", "Tie A", base.Add(time.Minute))
	tieB := seed(t, repo, "tie-b", "Tie B", base.Add(time.Minute))
	last := seed(t, repo, "last", "Last", base.Add(time.Hour))

	prev, err := repo.Previous(ctx, tieB.Position())
	require.NoError(t, err)
	assert.Equal(t, tieA.Slug, prev.Slug)

	next, err := repo.Next(ctx, tieA.Position())
	require.NoError(t, err)
	assert.Equal(t, tieB.Slug, next.Slug)

	prev, err = repo.Previous(ctx, tieA.Position())
	require.NoError(t, err)
	assert.Equal(t, first.Slug, prev.Slug)

	prev, err = repo.Previous(ctx, first.Position())
	require.NoError(t, err)
	assert.Nil(t, prev)

	next, err = repo.Next(ctx, last.Position())
	require.NoError(t, err)
	assert.Nil(t, next)
}

/* ──────────────────────────── 3. ListNewest / Count ──────────────────────────── */

func TestArticleRepo_ListNewest(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()
	for i, slug := range []string{"a", "b", "c", "d", "e"} {
		seed(t, repo, slug, slug, base.Add(time.Duration(i)*time.Hour))
	}

	page, err := repo.ListNewest(ctx, 0, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"e", "d"}, slugs(page))

	page, err = repo.ListNewest(ctx, 4, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, slugs(page))

	page, err = repo.ListNewest(ctx, 10, 2)
	require.NoError(t, err)
	assert.Empty(t, page)

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(5), n)
}

func slugs(refs []entity.ArticleRef) []string {
	out := make([]string, len(refs))
	for i, r := range refs {
		out[i] = r.Slug
	}
	return out
}

/* ──────────────────────────── 4. SearchTitles ──────────────────────────── */

func TestArticleRepo_SearchTitles(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()
	seed(t, repo, "gravity", "Gravity", base)
	seed(t, repo, "quantum-gravity", "Quantum Gravity", base.Add(time.Hour))
	seed(t, repo, "percent", "100% Juice", base.Add(2*time.Hour))
	seed(t, repo, "hundred", "1000 Juice", base.Add(3*time.Hour))
	seed(t, repo, "aerzte", "Ärzte ohne Grenzen", base.Add(4*time.Hour))
	seed(t, repo, "hellas", "Ελλάδα", base.Add(5*time.Hour))
	seed(t, repo, "strasse", "Hauptstraße", base.Add(6*time.Hour))

	tests := []struct {
		name  string
		query string
		limit int
		want  []string
	}{
		{"case insensitive, newest first", "GRAV", 10, []string{"quantum-gravity", "gravity"}},
		{"limit applies", "grav", 1, []string{"quantum-gravity"}},
		{"percent is literal", "100%", 10, []string{"percent"}},
		{"underscore is literal", "_", 10, []string{}},
		{"no match", "zebra", 10, []string{}},
		{"non-ascii lower query", "ärzte", 10, []string{"aerzte"}},
		{"non-ascii upper query", "ΕΛΛΆΔΑ", 10, []string{"hellas"}},
		{"ascii inside non-ascii title", "OHNE", 10, []string{"aerzte"}},
		{"sharp s folds", "STRASSE", 10, []string{"strasse"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repo.SearchTitles(ctx, tt.query, tt.limit)
			require.NoError(t, err)
			assert.Equal(t, tt.want, slugs(got))
		})
	}
}

/* ──────────────────────────── 5. Latest / At / Sample ──────────────────────────── */

func TestArticleRepo_LatestAtSample(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	latest, err := repo.Latest(ctx)
	require.NoError(t, err)
	assert.Nil(t, latest, "empty store")

	one := seed(t, repo, "one", "One", base.Add(time.Hour))
	two := seed(t, repo, "two", "Two", base)

	latest, err = repo.Latest(ctx)
	require.NoError(t, err)
	assert.Equal(t, one.Slug, latest.Slug)

	at, err := repo.At(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, two.Slug, at.Slug, "At follows insertion id order")

	at, err = repo.At(ctx, 2)
	require.NoError(t, err)
	assert.Nil(t, at)

	sample, err := repo.Sample(ctx, 3)
	require.NoError(t, err)
	assert.Len(t, sample, 2)
}

/* ──────────────────────────── 6. IncrementVote ──────────────────────────── */

func TestArticleRepo_IncrementVote(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()
	seed(t, repo, "gravity", "Gravity", base)

	for _, dir := range []entity.VoteDirection{entity.VoteUp, entity.VoteUp, entity.VoteDown} {
		ok, err := repo.IncrementVote(ctx, "gravity", dir)
		require.NoError(t, err)
		assert.True(t, ok)
	}

	a, err := repo.GetBySlug(ctx, "gravity")
	require.NoError(t, err)
	assert.Equal(t, entity.Votes{Up: 2, Down: 1}, a.Votes)

	ok, err := repo.IncrementVote(ctx, "missing", entity.VoteUp)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = repo.IncrementVote(ctx, "gravity", entity.VoteDirection("left"))
	assert.ErrorIs(t, err, entity.ErrInvalidInput)
}

/* ──────────────────────────── 7. Ping / NormalizeVotes ──────────────────────────── */

func TestArticleRepo_PingAndNormalize(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	assert.NoError(t, repo.Ping(ctx))
	n, err := repo.NormalizeVotes(ctx)
	assert.NoError(t, err)
	assert.Zero(t, n)
	assert.Equal(t, 1, repo.Stats().MaxOpenConnections)
}
