package middleware

import (
	"strings"
)

// WhitelistValidator matches origins exactly (case-insensitive, trailing slash
// ignored). The single entry "*" allows every origin.
type WhitelistValidator struct {
	allowAll       bool
	allowedOrigins map[string]struct{}
}

// NewWhitelistValidator builds a validator from origins; blank entries are dropped.
func NewWhitelistValidator(origins []string) *WhitelistValidator {
	v := &WhitelistValidator{allowedOrigins: make(map[string]struct{}, len(origins))}
	for _, origin := range origins {
		origin = normalizeOrigin(origin)
		if origin == "" {
			continue
		}
		if origin == "*" {
			v.allowAll = true
			continue
		}
		v.allowedOrigins[origin] = struct{}{}
	}
	return v
}

// IsAllowed reports whether origin is in the whitelist.
func (v *WhitelistValidator) IsAllowed(origin string) bool {
	origin = normalizeOrigin(origin)
	if origin == "" {
		return false
	}
	if v.allowAll {
		return true
	}
	_, ok := v.allowedOrigins[origin]
	return ok
}

// GetAllowedOrigins returns a copy of the normalized whitelist.
func (v *WhitelistValidator) GetAllowedOrigins() []string {
	out := make([]string, 0, len(v.allowedOrigins)+1)
	if v.allowAll {
		out = append(out, "*")
	}
	for origin := range v.allowedOrigins {
		out = append(out, origin)
	}
	return out
}

func normalizeOrigin(origin string) string {
	origin = strings.ToLower(strings.TrimSpace(origin))
	return strings.TrimSuffix(origin, "/")
}
