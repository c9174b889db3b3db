package importfile

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	artUC "williampedia/internal/usecase/article"
)

const sample = `
- title: Ada Lovelace
  content: |
    # Ada Lovelace

    First programmer.
  image_url: /images/ada.png
  created_at: 2024-03-01T12:00:00Z
- title: Alan Turing
  slug: turing
  content: Mathematician.
`

func TestParse(t *testing.T) {
	records, err := Parse(strings.NewReader(sample))
	require.NoError(t, err)
	require.Len(t, records, 2)

	created := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	want := []artUC.CreateInput{
		{Title: "Ada Lovelace", Content: "# Ada Lovelace\n\nFirst programmer.\n", ImageURL: "/images/ada.png", CreatedAt: created},
		{Title: "Alan Turing", Slug: "turing", Content: "Mathematician."},
	}
	if diff := cmp.Diff(want, Inputs(records)); diff != "" {
		t.Fatalf("inputs mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"unknown key", "- title: X\n  imageUrl: /x.png\n"},
		{"not a list", "title: X\n"},
		{"bad time", "- title: X\n  created_at: yesterday\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.input))
			assert.Error(t, err)
		})
	}
}

func TestParse_Empty(t *testing.T) {
	records, err := Parse(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "articles.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o600))

	records, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, records, 2)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
