package search

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeQuery(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr error
	}{
		// 前後の空白も検索語の一部
		{"keeps surrounding spaces", "gravity ", "gravity ", nil},
		{"blank becomes empty", "   ", "", nil},
		{"empty", "", "", nil},
		{"regex metacharacters kept verbatim", "a.*(b)", "a.*(b)", nil},
		{"exactly max", strings.Repeat("x", MaxQueryLength), strings.Repeat("x", MaxQueryLength), nil},
		{"max counted in runes", strings.Repeat("é", MaxQueryLength), strings.Repeat("é", MaxQueryLength), nil},
		{"too long", strings.Repeat("x", MaxQueryLength+1), "", ErrQueryTooLong},
		{"padding counts", " " + strings.Repeat("x", MaxQueryLength), "", ErrQueryTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeQuery(tt.input)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEscapeLike(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"plain", "plain"},
		{"100%", `100\%`},
		{"snake_case", `snake\_case`},
		{`back\slash`, `back\\slash`},
		{`%_\`, `\%\_\\`},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, EscapeLike(tt.in), tt.in)
	}
	assert.Equal(t, `%a\%b%`, ContainsPattern("a%b"))
}
