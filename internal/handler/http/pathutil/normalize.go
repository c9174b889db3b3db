package pathutil

import (
	"strings"
)

// OtherRoute labels any path the API does not serve.
const OtherRoute = "other"

// staticRoutes are served as-is.
var staticRoutes = map[string]struct{}{
	"/":                       {},
	"/api/history":            {},
	"/api/search":             {},
	"/api/random-article":     {},
	"/api/article-of-the-day": {},
	"/api/featured-articles":  {},
	"/health":                 {},
	"/ready":                  {},
	"/live":                   {},
	"/metrics":                {},
}

// templated routes, matched segment by segment; ":x" matches one segment
// and "*" matches the rest.
var templates = [][]string{
	{"api", "article", ":slug", "vote"},
	{"api", "article", ":slug"},
	{"api", "article-sequence", ":slug"},
	{"api", "slug", ":id"},
	{"swagger", "*"},
}

// NormalizePath maps a request path to a bounded route label for metrics
// and span names. Slugs and ids collapse to their template; unknown paths
// become OtherRoute.
//
//	NormalizePath("/api/article/ada-lovelace/vote")  // "/api/article/:slug/vote"
//	NormalizePath("/api/history?page=2")             // "/api/history"
//	NormalizePath("/wp-admin")                       // "other"
func NormalizePath(path string) string {
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path = path[:i]
	}
	if len(path) > 1 {
		path = strings.TrimSuffix(path, "/")
	}
	if _, ok := staticRoutes[path]; ok {
		return path
	}

	segs := strings.Split(strings.TrimPrefix(path, "/"), "/")
	for _, tpl := range templates {
		if match(tpl, segs) {
			return "/" + strings.Join(tpl, "/")
		}
	}
	return OtherRoute
}

func match(tpl, segs []string) bool {
	for i, t := range tpl {
		if t == "*" {
			return true
		}
		if i >= len(segs) || segs[i] == "" {
			return false
		}
		if !strings.HasPrefix(t, ":") && t != segs[i] {
			return false
		}
	}
	return len(tpl) == len(segs)
}
