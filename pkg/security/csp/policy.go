// Package csp builds Content-Security-Policy header values.
package csp

import "strings"

// Header names.
const (
	HeaderEnforce    = "Content-Security-Policy"
	HeaderReportOnly = "Content-Security-Policy-Report-Only"
)

// Policy is an ordered list of directives. The zero value is an empty policy.
type Policy struct {
	directives []directive
}

type directive struct {
	name    string
	sources []string
}

// With sets directive name to sources, replacing an earlier value while
// keeping its position. It returns the policy for chaining.
//
//	p := new(csp.Policy).With("default-src", "'none'").With("frame-ancestors", "'none'")
func (p *Policy) With(name string, sources ...string) *Policy {
	for i := range p.directives {
		if p.directives[i].name == name {
			p.directives[i].sources = sources
			return p
		}
	}
	p.directives = append(p.directives, directive{name: name, sources: sources})
	return p
}

// String renders the header value, e.g. "default-src 'none'; frame-ancestors 'none'".
func (p *Policy) String() string {
	parts := make([]string, 0, len(p.directives))
	for _, d := range p.directives {
		if len(d.sources) == 0 {
			continue
		}
		parts = append(parts, d.name+" "+strings.Join(d.sources, " "))
	}
	return strings.Join(parts, "; ")
}

// APIPolicy is the policy for JSON responses, which never load subresources.
func APIPolicy() *Policy {
	return new(Policy).
		With("default-src", "'none'").
		With("frame-ancestors", "'none'").
		With("base-uri", "'none'").
		With("form-action", "'none'")
}

// SwaggerUIPolicy allows the inline bootstrap script and styles the Swagger
// UI page needs, and lets it fetch doc.json from the same origin.
func SwaggerUIPolicy() *Policy {
	return new(Policy).
		With("default-src", "'self'").
		With("script-src", "'self'", "'unsafe-inline'").
		With("style-src", "'self'", "'unsafe-inline'").
		With("img-src", "'self'", "data:").
		With("connect-src", "'self'").
		With("frame-ancestors", "'none'").
		With("object-src", "'none'")
}
