package article_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"williampedia/internal/common/pagination"
	"williampedia/internal/domain/entity"
	artUC "williampedia/internal/usecase/article"
	"williampedia/tests/fixtures"
)

func TestService_Import(t *testing.T) {
	repo := fixtures.NewMemoryRepo(fixtures.Article("taken", "Taken", 0))
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	svc := &artUC.Service{Repo: repo, Pagination: pagination.DefaultConfig(), Now: func() time.Time { return now }}

	explicit := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	report, err := svc.Import(context.Background(), []artUC.CreateInput{
		{Title: "First Entry", Content: "one"},
		{Title: "Taken", Content: "dup"},
		{Title: "", Content: "no title"},
		{Title: "Second Entry", Content: "two"},
		{Title: "Old Entry", Content: "three", CreatedAt: explicit},
	}, false)
	require.NoError(t, err)

	assert.Equal(t, 3, report.Created)
	assert.Equal(t, 1, report.Skipped)
	assert.Equal(t, 1, report.Invalid)

	statuses := make([]string, 0, len(report.Results))
	for _, r := range report.Results {
		statuses = append(statuses, r.Status)
	}
	assert.Equal(t, []string{
		artUC.ImportCreated, artUC.ImportSkipped, artUC.ImportInvalid, artUC.ImportCreated, artUC.ImportCreated,
	}, statuses)
	assert.ErrorIs(t, report.Results[1].Err, artUC.ErrDuplicateSlug)
	assert.ErrorIs(t, report.Results[2].Err, entity.ErrValidationFailed)

	// ファイル順が作成順になるよう 1ms ずつずらす
	first, err := repo.GetBySlug(context.Background(), "first-entry")
	require.NoError(t, err)
	second, err := repo.GetBySlug(context.Background(), "second-entry")
	require.NoError(t, err)
	assert.Equal(t, now, first.CreatedAt)
	assert.Equal(t, now.Add(3*artUC.ImportSpacing), second.CreatedAt)

	old, err := repo.GetBySlug(context.Background(), "old-entry")
	require.NoError(t, err)
	assert.Equal(t, explicit, old.CreatedAt)
}

func TestService_Import_DryRun(t *testing.T) {
	repo := fixtures.NewMemoryRepo()
	svc := &artUC.Service{Repo: repo}

	report, err := svc.Import(context.Background(), []artUC.CreateInput{
		{Title: "Dry Entry", Content: "body"},
		{Title: "Bad Image", Content: "body", ImageURL: "ftp://x/y.png"},
	}, true)
	require.NoError(t, err)

	assert.Equal(t, 1, report.Created)
	assert.Equal(t, 1, report.Invalid)
	assert.Equal(t, "dry-entry", report.Results[0].Slug)

	n, err := repo.Count(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n, "dry run writes nothing")
}

func TestService_Import_StoreErrorAborts(t *testing.T) {
	repo := fixtures.NewMemoryRepo()
	repo.Err = entity.ErrStoreUnavailable
	svc := &artUC.Service{Repo: repo}

	report, err := svc.Import(context.Background(), []artUC.CreateInput{
		{Title: "A", Content: "a"},
		{Title: "B", Content: "b"},
	}, false)
	assert.ErrorIs(t, err, entity.ErrStoreUnavailable)
	assert.Empty(t, report.Results)
}
