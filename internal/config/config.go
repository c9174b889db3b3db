// Package config loads the service configuration.
//
// Values are resolved in three layers: built-in defaults, an optional YAML
// file, then environment variables. The result is validated before use.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	pkgconfig "williampedia/internal/pkg/config"
	envconfig "williampedia/pkg/config"
)

// Store drivers.
const (
	DriverMongo    = "mongo"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config is the root configuration.
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Store      StoreConfig      `yaml:"store"`
	Pagination PaginationConfig `yaml:"pagination"`
	RateLimit  RateLimitConfig  `yaml:"vote_rate_limit"`
	Tracing    TracingConfig    `yaml:"tracing"`
	Worker     WorkerConfig     `yaml:"worker"`
	Log        LogConfig        `yaml:"log"`
}

// ServerConfig configures the public HTTP server.
type ServerConfig struct {
	Addr               string        `yaml:"addr"`
	ReadHeaderTimeout  time.Duration `yaml:"read_header_timeout"`
	RequestTimeout     time.Duration `yaml:"request_timeout"`
	ShutdownTimeout    time.Duration `yaml:"shutdown_timeout"`
	MaxBodyBytes       int64         `yaml:"max_body_bytes"`
	ExposeErrorDetails bool          `yaml:"expose_error_details"`
	CORSOrigins        []string      `yaml:"cors_origins"`
	TrustedProxies     []string      `yaml:"trusted_proxies"`
	CSPReportOnly      bool          `yaml:"csp_report_only"`
}

// StoreConfig selects and configures the article store.
type StoreConfig struct {
	Driver          string        `yaml:"driver"`
	URI             string        `yaml:"uri"`
	Database        string        `yaml:"database"`   // mongo only
	Collection      string        `yaml:"collection"` // mongo only; SQL drivers use the articles table
	ConnectTimeout  time.Duration `yaml:"connect_timeout"`
	MaxOpenConns    int           `yaml:"max_open_conns"`
	MaxIdleConns    int           `yaml:"max_idle_conns"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime"`

	// BreakerCooldown is how long the store breaker stays open before probing.
	BreakerCooldown time.Duration `yaml:"breaker_cooldown"`
	// ReadRetries is the number of extra attempts for a read that found the
	// store unavailable. Writes are never retried.
	ReadRetries int `yaml:"read_retries"`
}

// PaginationConfig configures /api/history.
type PaginationConfig struct {
	DefaultLimit int `yaml:"default_limit"`
	MaxLimit     int `yaml:"max_limit"`
}

// RateLimitConfig configures the per-IP vote limiter.
type RateLimitConfig struct {
	Enabled bool    `yaml:"enabled"`
	RPS     float64 `yaml:"rps"`
	Burst   int     `yaml:"burst"`
}

// TracingConfig configures the OpenTelemetry tracer provider.
type TracingConfig struct {
	Enabled     bool    `yaml:"enabled"`
	ServiceName string  `yaml:"service_name"`
	SampleRatio float64 `yaml:"sample_ratio"`
}

// WorkerConfig configures the maintenance worker.
type WorkerConfig struct {
	Schedule    string        `yaml:"schedule"`
	Timezone    string        `yaml:"timezone"`
	JobTimeout  time.Duration `yaml:"job_timeout"`
	MetricsAddr string        `yaml:"metrics_addr"`
}

// LogConfig configures slog.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // json | text
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Addr:              ":8080",
			ReadHeaderTimeout: 5 * time.Second,
			RequestTimeout:    10 * time.Second,
			ShutdownTimeout:   10 * time.Second,
			MaxBodyBytes:      64 << 10,
			CORSOrigins:       []string{"http://localhost:3000"},
		},
		Store: StoreConfig{
			Driver:          DriverMongo,
			URI:             "mongodb://localhost:27017",
			Database:        "williampedia",
			Collection:      "articles",
			ConnectTimeout:  10 * time.Second,
			MaxOpenConns:    25,
			MaxIdleConns:    10,
			ConnMaxLifetime: 5 * time.Minute,
			BreakerCooldown: 30 * time.Second,
			ReadRetries:     1,
		},
		Pagination: PaginationConfig{DefaultLimit: 10, MaxLimit: 100},
		RateLimit:  RateLimitConfig{Enabled: true, RPS: 1, Burst: 5},
		Tracing:    TracingConfig{Enabled: true, ServiceName: "williampedia", SampleRatio: 1.0},
		Worker: WorkerConfig{
			Schedule:    "*/15 * * * *",
			Timezone:    "UTC",
			JobTimeout:  2 * time.Minute,
			MetricsAddr: ":9091",
		},
		Log: LogConfig{Level: "info", Format: "json"},
	}
}

// Load builds the configuration from defaults, the YAML file at path (skipped
// when path is empty) and the environment, then validates it.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		if err := cfg.loadFile(path); err != nil {
			return Config{}, err
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	// #nosec G304 -- path comes from the -config flag or CONFIG_FILE
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	// 空ファイルは io.EOF
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("failed to parse config: %w", err)
	}
	return nil
}

func (c *Config) applyEnv() {
	c.Server.Addr = envconfig.GetEnvString("HTTP_ADDR", c.Server.Addr)
	c.Server.RequestTimeout = envconfig.GetEnvDuration("REQUEST_TIMEOUT", c.Server.RequestTimeout)
	c.Server.ShutdownTimeout = envconfig.GetEnvDuration("SHUTDOWN_TIMEOUT", c.Server.ShutdownTimeout)
	c.Server.ExposeErrorDetails = envconfig.GetEnvBool("EXPOSE_ERROR_DETAILS", c.Server.ExposeErrorDetails)
	c.Server.CORSOrigins = envconfig.GetEnvStringList("CORS_ALLOWED_ORIGINS", c.Server.CORSOrigins)
	c.Server.TrustedProxies = envconfig.GetEnvStringList("TRUSTED_PROXIES", c.Server.TrustedProxies)
	c.Server.CSPReportOnly = envconfig.GetEnvBool("CSP_REPORT_ONLY", c.Server.CSPReportOnly)

	c.Store.Driver = envconfig.GetEnvString("STORE_DRIVER", c.Store.Driver)
	// MONGODB_URI は後方互換
	c.Store.URI = envconfig.GetEnvString("STORE_URI", envconfig.GetEnvString("MONGODB_URI", c.Store.URI))
	c.Store.Database = envconfig.GetEnvString("STORE_DATABASE", c.Store.Database)
	c.Store.Collection = envconfig.GetEnvString("STORE_COLLECTION", c.Store.Collection)
	c.Store.ConnectTimeout = envconfig.GetEnvDuration("STORE_CONNECT_TIMEOUT", c.Store.ConnectTimeout)
	c.Store.MaxOpenConns = envconfig.GetEnvInt("STORE_MAX_OPEN_CONNS", c.Store.MaxOpenConns)
	c.Store.MaxIdleConns = envconfig.GetEnvInt("STORE_MAX_IDLE_CONNS", c.Store.MaxIdleConns)
	c.Store.BreakerCooldown = envconfig.GetEnvDuration("STORE_BREAKER_COOLDOWN", c.Store.BreakerCooldown)
	c.Store.ReadRetries = envconfig.GetEnvInt("STORE_READ_RETRIES", c.Store.ReadRetries)

	c.Pagination.DefaultLimit = envconfig.GetEnvInt("PAGINATION_DEFAULT_LIMIT", c.Pagination.DefaultLimit)
	c.Pagination.MaxLimit = envconfig.GetEnvInt("PAGINATION_MAX_LIMIT", c.Pagination.MaxLimit)

	c.RateLimit.Enabled = envconfig.GetEnvBool("VOTE_RATE_LIMIT_ENABLED", c.RateLimit.Enabled)
	c.RateLimit.RPS = envconfig.GetEnvFloat("VOTE_RATE_LIMIT_RPS", c.RateLimit.RPS)
	c.RateLimit.Burst = envconfig.GetEnvInt("VOTE_RATE_LIMIT_BURST", c.RateLimit.Burst)

	c.Tracing.Enabled = envconfig.GetEnvBool("TRACING_ENABLED", c.Tracing.Enabled)
	c.Tracing.ServiceName = envconfig.GetEnvString("TRACING_SERVICE_NAME", c.Tracing.ServiceName)
	c.Tracing.SampleRatio = envconfig.GetEnvFloat("TRACING_SAMPLE_RATIO", c.Tracing.SampleRatio)

	c.Worker.Schedule = envconfig.GetEnvString("WORKER_SCHEDULE", c.Worker.Schedule)
	c.Worker.Timezone = envconfig.GetEnvString("WORKER_TIMEZONE", c.Worker.Timezone)
	c.Worker.JobTimeout = envconfig.GetEnvDuration("WORKER_JOB_TIMEOUT", c.Worker.JobTimeout)
	c.Worker.MetricsAddr = envconfig.GetEnvString("WORKER_METRICS_ADDR", c.Worker.MetricsAddr)

	c.Log.Level = envconfig.GetEnvString("LOG_LEVEL", c.Log.Level)
	c.Log.Format = envconfig.GetEnvString("LOG_FORMAT", c.Log.Format)
}

// Validate checks every section and joins all problems into one error.
func (c Config) Validate() error {
	var errs []error

	if err := pkgconfig.ValidateListenAddr(c.Server.Addr); err != nil {
		errs = append(errs, fmt.Errorf("server.addr: %w", err))
	}
	if err := envconfig.ValidatePositiveDuration(c.Server.ReadHeaderTimeout); err != nil {
		errs = append(errs, fmt.Errorf("server.read_header_timeout: %w", err))
	}
	if err := envconfig.ValidateDurationRange(c.Server.RequestTimeout, 100*time.Millisecond, 5*time.Minute); err != nil {
		errs = append(errs, fmt.Errorf("server.request_timeout: %w", err))
	}
	if err := envconfig.ValidatePositiveDuration(c.Server.ShutdownTimeout); err != nil {
		errs = append(errs, fmt.Errorf("server.shutdown_timeout: %w", err))
	}
	if c.Server.MaxBodyBytes <= 0 {
		errs = append(errs, errors.New("server.max_body_bytes must be positive"))
	}

	switch c.Store.Driver {
	case DriverMongo:
		if c.Store.Database == "" {
			errs = append(errs, errors.New("store.database is required for mongo"))
		}
		if c.Store.Collection == "" {
			errs = append(errs, errors.New("store.collection is required for mongo"))
		}
	case DriverPostgres, DriverSQLite:
	default:
		errs = append(errs, fmt.Errorf("store.driver %q: must be one of mongo, postgres, sqlite", c.Store.Driver))
	}
	if strings.TrimSpace(c.Store.URI) == "" {
		errs = append(errs, errors.New("store.uri is required"))
	}
	if err := envconfig.ValidatePositiveDuration(c.Store.ConnectTimeout); err != nil {
		errs = append(errs, fmt.Errorf("store.connect_timeout: %w", err))
	}
	if err := pkgconfig.ValidateIntRange(c.Store.MaxOpenConns, 1, 1000); err != nil {
		errs = append(errs, fmt.Errorf("store.max_open_conns: %w", err))
	}
	if err := pkgconfig.ValidateIntRange(c.Store.MaxIdleConns, 0, c.Store.MaxOpenConns); err != nil {
		errs = append(errs, fmt.Errorf("store.max_idle_conns: %w", err))
	}
	// 0 は無制限
	if err := envconfig.ValidateNonNegativeDuration(c.Store.ConnMaxLifetime); err != nil {
		errs = append(errs, fmt.Errorf("store.conn_max_lifetime: %w", err))
	}
	if err := envconfig.ValidateDurationRange(c.Store.BreakerCooldown, time.Second, 10*time.Minute); err != nil {
		errs = append(errs, fmt.Errorf("store.breaker_cooldown: %w", err))
	}
	if err := pkgconfig.ValidateIntRange(c.Store.ReadRetries, 0, 5); err != nil {
		errs = append(errs, fmt.Errorf("store.read_retries: %w", err))
	}

	if err := pkgconfig.ValidateIntRange(c.Pagination.MaxLimit, 1, 1000); err != nil {
		errs = append(errs, fmt.Errorf("pagination.max_limit: %w", err))
	}
	if err := pkgconfig.ValidateIntRange(c.Pagination.DefaultLimit, 1, c.Pagination.MaxLimit); err != nil {
		errs = append(errs, fmt.Errorf("pagination.default_limit: %w", err))
	}

	if c.RateLimit.Enabled {
		if c.RateLimit.RPS <= 0 {
			errs = append(errs, errors.New("vote_rate_limit.rps must be positive"))
		}
		if c.RateLimit.Burst < 1 {
			errs = append(errs, errors.New("vote_rate_limit.burst must be at least 1"))
		}
	}

	if c.Tracing.SampleRatio < 0 || c.Tracing.SampleRatio > 1 {
		errs = append(errs, fmt.Errorf("tracing.sample_ratio %v: must be between 0 and 1", c.Tracing.SampleRatio))
	}

	if err := pkgconfig.ValidateCronSchedule(c.Worker.Schedule); err != nil {
		errs = append(errs, fmt.Errorf("worker.schedule: %w", err))
	}
	if err := pkgconfig.ValidateTimezone(c.Worker.Timezone); err != nil {
		errs = append(errs, fmt.Errorf("worker.timezone: %w", err))
	}
	if err := envconfig.ValidatePositiveDuration(c.Worker.JobTimeout); err != nil {
		errs = append(errs, fmt.Errorf("worker.job_timeout: %w", err))
	}
	if err := pkgconfig.ValidateListenAddr(c.Worker.MetricsAddr); err != nil {
		errs = append(errs, fmt.Errorf("worker.metrics_addr: %w", err))
	}

	switch strings.ToLower(c.Log.Format) {
	case "json", "text":
	default:
		errs = append(errs, fmt.Errorf("log.format %q: must be json or text", c.Log.Format))
	}

	return errors.Join(errs...)
}
