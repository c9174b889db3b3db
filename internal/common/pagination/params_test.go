package pagination_test

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"williampedia/internal/common/pagination"
)

func TestParseQueryParams(t *testing.T) {
	t.Parallel()

	cfg := pagination.DefaultConfig()

	tests := []struct {
		name  string
		query string
		want  pagination.Params
	}{
		{name: "no parameters", query: "", want: pagination.Params{Page: 1, Limit: 10}},
		{name: "explicit values", query: "?page=3&limit=25", want: pagination.Params{Page: 3, Limit: 25}},
		{name: "page zero clamps to one", query: "?page=0", want: pagination.Params{Page: 1, Limit: 10}},
		{name: "negative page clamps to one", query: "?page=-4", want: pagination.Params{Page: 1, Limit: 10}},
		{name: "non numeric page", query: "?page=abc&limit=5", want: pagination.Params{Page: 1, Limit: 5}},
		{name: "non numeric limit", query: "?limit=lots", want: pagination.Params{Page: 1, Limit: 10}},
		{name: "zero limit uses default", query: "?limit=0", want: pagination.Params{Page: 1, Limit: 10}},
		{name: "limit capped", query: "?limit=5000", want: pagination.Params{Page: 1, Limit: 100}},
		{name: "whitespace tolerated", query: "?page=%202%20", want: pagination.Params{Page: 2, Limit: 10}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			r := httptest.NewRequest("GET", "/api/history"+tt.query, nil)
			assert.Equal(t, tt.want, pagination.ParseQueryParams(r, cfg))
		})
	}
}

func TestParams_WithDefaults(t *testing.T) {
	cfg := pagination.Config{DefaultPage: 1, DefaultLimit: 10, MaxLimit: 50}

	tests := []struct {
		name string
		in   pagination.Params
		want pagination.Params
	}{
		{name: "zero values", in: pagination.Params{}, want: pagination.Params{Page: 1, Limit: 10}},
		{name: "limit over max", in: pagination.Params{Page: 2, Limit: 80}, want: pagination.Params{Page: 2, Limit: 50}},
		{name: "already valid", in: pagination.Params{Page: 4, Limit: 5}, want: pagination.Params{Page: 4, Limit: 5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.in.WithDefaults(cfg))
		})
	}
}
