package middleware

import (
	"net/http"
	"strings"

	"williampedia/pkg/security/csp"
)

// CSPConfig selects a Content-Security-Policy per path prefix.
type CSPConfig struct {
	Default *csp.Policy
	// PathPolicies maps path prefixes to policies; the longest match wins.
	PathPolicies map[string]*csp.Policy
	ReportOnly   bool
}

// DefaultCSPConfig applies csp.APIPolicy everywhere except the Swagger UI.
func DefaultCSPConfig(reportOnly bool) CSPConfig {
	return CSPConfig{
		Default:      csp.APIPolicy(),
		PathPolicies: map[string]*csp.Policy{"/swagger/": csp.SwaggerUIPolicy()},
		ReportOnly:   reportOnly,
	}
}

// CSP sets the policy header along with X-Content-Type-Options: nosniff.
// Header values are rendered once, when the middleware is built.
func CSP(cfg CSPConfig) func(http.Handler) http.Handler {
	header := csp.HeaderEnforce
	if cfg.ReportOnly {
		header = csp.HeaderReportOnly
	}

	defaultValue := ""
	if cfg.Default != nil {
		defaultValue = cfg.Default.String()
	}
	prefixes := make(map[string]string, len(cfg.PathPolicies))
	for prefix, p := range cfg.PathPolicies {
		prefixes[prefix] = p.String()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			value, best := defaultValue, -1
			for prefix, v := range prefixes {
				if strings.HasPrefix(r.URL.Path, prefix) && len(prefix) > best {
					value, best = v, len(prefix)
				}
			}
			if value != "" {
				w.Header().Set(header, value)
			}
			w.Header().Set("X-Content-Type-Options", "nosniff")
			next.ServeHTTP(w, r)
		})
	}
}
