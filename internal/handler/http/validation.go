package http

import (
	"net/http"

	"williampedia/internal/handler/http/respond"
)

const (
	maxPathLength  = 2048
	maxQueryLength = 4096
)

// InputValidation rejects oversized paths and query strings before routing.
// Per-parameter rules (slug length, search length) live in the handlers.
func InputValidation() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if len(r.URL.Path) > maxPathLength {
				respond.Error(w, http.StatusRequestURITooLong, "URI too long")
				return
			}
			if len(r.URL.RawQuery) > maxQueryLength {
				respond.Error(w, http.StatusRequestURITooLong, "query string too long")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
