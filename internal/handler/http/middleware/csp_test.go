package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"williampedia/pkg/security/csp"
)

func TestCSP(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })

	tests := []struct {
		name       string
		cfg        CSPConfig
		path       string
		wantHeader string
		wantValue  string
	}{
		{"api default", DefaultCSPConfig(false), "/api/history", csp.HeaderEnforce, csp.APIPolicy().String()},
		{"swagger prefix", DefaultCSPConfig(false), "/swagger/index.html", csp.HeaderEnforce, csp.SwaggerUIPolicy().String()},
		{"report only", DefaultCSPConfig(true), "/api/search", csp.HeaderReportOnly, csp.APIPolicy().String()},
		{
			"longest prefix wins",
			CSPConfig{
				Default: csp.APIPolicy(),
				PathPolicies: map[string]*csp.Policy{
					"/swagger/":      csp.SwaggerUIPolicy(),
					"/swagger/docs/": new(csp.Policy).With("default-src", "'self'"),
				},
			},
			"/swagger/docs/doc.json", csp.HeaderEnforce, "default-src 'self'",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			CSP(tt.cfg)(ok).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, tt.path, nil))

			assert.Equal(t, tt.wantValue, rr.Header().Get(tt.wantHeader))
			assert.Equal(t, "nosniff", rr.Header().Get("X-Content-Type-Options"))
		})
	}
}
