package pagination

import (
	"net/http"
	"strconv"
	"strings"
)

// Params represents pagination query parameters from an HTTP request.
type Params struct {
	Page  int // 1-based page number
	Limit int // Items per page
}

// ParseQueryParams reads page and limit from the request query string.
// It never fails: unparseable values fall back to the configured defaults,
// page < 1 is clamped to 1 and limit is capped at config.MaxLimit.
func ParseQueryParams(r *http.Request, config Config) Params {
	q := r.URL.Query()
	params := Params{
		Page:  parseInt(q.Get("page")),
		Limit: parseInt(q.Get("limit")),
	}
	return params.WithDefaults(config)
}

func parseInt(s string) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}

// WithDefaults clamps the params against config: a non-positive page or
// limit takes the default, and limit is capped at MaxLimit.
func (p Params) WithDefaults(config Config) Params {
	config = config.Normalize()
	if p.Page <= 0 {
		p.Page = config.DefaultPage
	}
	if p.Limit <= 0 {
		p.Limit = config.DefaultLimit
	}
	if p.Limit > config.MaxLimit {
		p.Limit = config.MaxLimit
	}
	return p
}
