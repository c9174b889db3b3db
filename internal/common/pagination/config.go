// Package pagination provides the offset-based paging rules used by the
// history listing: query parsing with lenient clamping, offset and page
// arithmetic, and the metadata block returned to clients.
package pagination

// Config holds pagination configuration settings.
// Values are populated from the application config file and environment.
type Config struct {
	DefaultPage  int // Default page number (typically 1)
	DefaultLimit int // Default items per page (typically 10)
	MaxLimit     int // Maximum allowed items per page (typically 100)
}

// DefaultConfig returns the default pagination configuration.
// Default values: page=1, limit=10, max=100
func DefaultConfig() Config {
	return Config{
		DefaultPage:  1,
		DefaultLimit: 10,
		MaxLimit:     100,
	}
}

// Normalize fills zero or inconsistent fields from DefaultConfig.
func (c Config) Normalize() Config {
	d := DefaultConfig()
	if c.DefaultPage < 1 {
		c.DefaultPage = d.DefaultPage
	}
	if c.MaxLimit < 1 {
		c.MaxLimit = d.MaxLimit
	}
	if c.DefaultLimit < 1 {
		c.DefaultLimit = d.DefaultLimit
	}
	if c.DefaultLimit > c.MaxLimit {
		c.DefaultLimit = c.MaxLimit
	}
	return c
}
