package pathutil

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestParam(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		want    string
		wantErr bool
	}{
		{name: "slug", value: "ada-lovelace", want: "ada-lovelace"},
		{name: "trimmed", value: " c-plus-plus ", want: "c-plus-plus"},
		{name: "blank", value: "   ", wantErr: true},
		{name: "too long", value: strings.Repeat("a", 201), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/api/article/x", nil)
			r.SetPathValue("slug", tt.value)

			got, err := Param(r, "slug")
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidParam) {
					t.Fatalf("expected ErrInvalidParam, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Param = %q, want %q", got, tt.want)
			}
		})
	}
}
