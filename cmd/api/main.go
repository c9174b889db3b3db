package main

import (
	"context"
	"errors"
	"flag"
	"io/fs"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"williampedia/internal/common/pagination"
	"williampedia/internal/config"
	"williampedia/internal/infra/store"
	"williampedia/internal/observability/logging"
	"williampedia/internal/observability/metrics"
	"williampedia/internal/observability/tracing"
	artUC "williampedia/internal/usecase/article"

	hhttp "williampedia/internal/handler/http"
	harticle "williampedia/internal/handler/http/article"
	"williampedia/internal/handler/http/middleware"
	"williampedia/internal/handler/http/requestid"
	"williampedia/internal/handler/http/respond"

	_ "williampedia/docs" // swagger docs
)

// @title           Williampedia API
// @version         1.0
// @description     Wikipedia 風百科事典 Williampedia の記事 API。
// @description     記事取得、前後ナビゲーション、履歴、検索、ランダム記事、投票を提供します。

// @contact.name   API Support

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      localhost:8080
// @BasePath  /

func main() {
	configPath := flag.String("config", os.Getenv("CONFIG_FILE"), "path to YAML config file")
	flag.Parse()

	loadDotEnv()
	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}

	logger := initLogger(cfg.Log)
	respond.SetExposeDetails(cfg.Server.ExposeErrorDetails)

	tp, err := tracing.Setup(tracing.Config{
		Enabled:     cfg.Tracing.Enabled,
		ServiceName: cfg.Tracing.ServiceName,
		SampleRatio: cfg.Tracing.SampleRatio,
	})
	if err != nil {
		logger.Error("failed to set up tracing", slog.Any("error", err))
		os.Exit(1)
	}

	handle := initStore(logger, cfg.Store)
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := handle.Close(ctx); err != nil {
			logger.Error("failed to close store", slog.Any("error", err))
		}
		if tp != nil {
			if err := tp.Shutdown(ctx); err != nil {
				logger.Error("failed to shut down tracer provider", slog.Any("error", err))
			}
		}
	}()

	version := getVersion()
	components := setupServer(logger, cfg, handle, version)
	runServer(logger, cfg.Server, components, handle, version)
}

// loadDotEnv loads .env when present. Variables already set win.
func loadDotEnv() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Warn("failed to load .env", slog.Any("error", err))
	}
}

// initLogger initializes and returns a structured logger based on configuration.
func initLogger(cfg config.LogConfig) *slog.Logger {
	logger := logging.New(logging.Options{Level: cfg.Level, Format: cfg.Format})
	slog.SetDefault(logger)
	return logger
}

// initStore connects to the configured article store. The schema or indexes
// are prepared before it is returned.
func initStore(logger *slog.Logger, cfg config.StoreConfig) *store.Handle {
	handle, err := store.Open(context.Background(), cfg)
	if err != nil {
		logger.Error("failed to open article store",
			slog.String("driver", cfg.Driver),
			slog.String("error", respond.SanitizeError(err)))
		os.Exit(1)
	}
	logger.Info("article store ready", slog.String("driver", handle.Driver))
	return handle
}

// getVersion returns the application version from environment or default.
func getVersion() string {
	version := os.Getenv("VERSION")
	if version == "" {
		version = "dev"
	}
	return version
}

// ServerComponents holds components needed for server operation and cleanup.
type ServerComponents struct {
	Handler     http.Handler
	VoteLimiter *middleware.RateLimiter
}

// setupServer configures and returns the HTTP handler with all routes and middleware.
func setupServer(logger *slog.Logger, cfg config.Config, handle *store.Handle, version string) *ServerComponents {
	artSvc := &artUC.Service{
		Repo: handle.Repo,
		Pagination: pagination.Config{
			DefaultPage:  1,
			DefaultLimit: cfg.Pagination.DefaultLimit,
			MaxLimit:     cfg.Pagination.MaxLimit,
		},
	}

	// 起動時に記事数ゲージを初期化
	if n, err := artSvc.Count(context.Background()); err != nil {
		logger.Warn("failed to count articles at startup", slog.Any("error", err))
	} else {
		logger.Info("articles available", slog.Int64("count", n))
	}

	proxyConfig, err := middleware.ParseTrustedProxies(cfg.Server.TrustedProxies)
	if err != nil {
		logger.Error("failed to load trusted proxy configuration", slog.Any("error", err))
		os.Exit(1)
	}

	var ipExtractor middleware.IPExtractor
	if proxyConfig.Enabled {
		ipExtractor = middleware.NewTrustedProxyExtractor(proxyConfig)
		logger.Info("rate limiting: trusted proxy mode enabled",
			slog.Int("trusted_proxies_count", len(proxyConfig.AllowedCIDRs)))
	} else {
		ipExtractor = &middleware.RemoteAddrExtractor{}
		logger.Info("rate limiting: using RemoteAddr (proxy headers ignored)")
	}

	var voteLimiter *middleware.RateLimiter
	var voteMiddleware []func(http.Handler) http.Handler
	if cfg.RateLimit.Enabled {
		rlCfg := middleware.DefaultRateLimitConfig()
		rlCfg.RPS = cfg.RateLimit.RPS
		rlCfg.Burst = cfg.RateLimit.Burst
		voteLimiter = middleware.NewRateLimiter(rlCfg, ipExtractor)
		voteMiddleware = append(voteMiddleware, voteLimiter.Middleware)
		logger.Info("vote rate limiting initialized",
			slog.Float64("rps", cfg.RateLimit.RPS),
			slog.Int("burst", cfg.RateLimit.Burst))
	} else {
		logger.Warn("vote rate limiting is DISABLED")
	}

	mux := http.NewServeMux()
	harticle.Register(mux, artSvc, artSvc.Pagination, logger, voteMiddleware...)

	// ヘルスチェック
	health := &hhttp.HealthHandler{
		Store:   handle.Repo,
		Driver:  handle.Driver,
		Breaker: handle.Repo,
		Version: version,
	}
	if handle.DB != nil {
		health.Pool = handle
	}
	mux.Handle("GET /health", health)
	mux.Handle("GET /ready", &hhttp.ReadyHandler{Store: handle.Repo})
	mux.Handle("GET /live", &hhttp.LiveHandler{})
	mux.Handle("GET /metrics", hhttp.MetricsHandler())
	mux.Handle("GET /swagger/", httpSwagger.WrapHandler)

	return &ServerComponents{
		Handler:     applyMiddleware(logger, cfg.Server, mux),
		VoteLimiter: voteLimiter,
	}
}

// applyMiddleware wraps the handler with the middleware chain.
// Order: CORS → Request ID → Tracing → Recovery → Logging → Input validation
// → Body limit → CSP → Metrics → Timeout.
func applyMiddleware(logger *slog.Logger, cfg config.ServerConfig, handler http.Handler) http.Handler {
	corsConfig := middleware.DefaultCORSConfig(cfg.CORSOrigins, logger)
	logger.Info("CORS enabled",
		slog.Any("allowed_origins", corsConfig.Validator.GetAllowedOrigins()),
		slog.Any("allowed_methods", corsConfig.AllowedMethods))

	if cfg.CSPReportOnly {
		logger.Warn("CSP in report-only mode")
	}

	return hhttp.Chain(handler,
		middleware.CORS(corsConfig),
		requestid.Middleware,
		tracing.Middleware,
		hhttp.Recover(logger),
		hhttp.Logging(logger),
		hhttp.InputValidation(),
		hhttp.LimitRequestBody(cfg.MaxBodyBytes),
		middleware.CSP(middleware.DefaultCSPConfig(cfg.CSPReportOnly)),
		hhttp.MetricsMiddleware,
		hhttp.Timeout(cfg.RequestTimeout),
	)
}

// runServer starts the HTTP server and handles graceful shutdown.
func runServer(logger *slog.Logger, cfg config.ServerConfig, components *ServerComponents, handle *store.Handle, version string) {
	// Create a context for background goroutines
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if components.VoteLimiter != nil {
		go startRateLimitCleanup(ctx, logger, components.VoteLimiter, time.Minute)
	}
	if handle.DB != nil {
		go reportPoolStats(ctx, handle, 15*time.Second)
	}

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           components.Handler,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout, // Prevent Slowloris attacks
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	go func() {
		logger.Info("server starting",
			slog.String("addr", cfg.Addr),
			slog.String("version", version))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", slog.Any("error", err))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server...")

	shutdownServer(logger, srv, cancel, cfg.ShutdownTimeout)
	logger.Info("server stopped")
}

// shutdownServer drains in-flight requests, then cancels the base context
// shared by requests and background goroutines.
func shutdownServer(logger *slog.Logger, srv *http.Server, cancel context.CancelFunc, timeout time.Duration) {
	defer cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), timeout)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", slog.Any("error", err))
	}
}

// startRateLimitCleanup evicts idle vote buckets until ctx is done.
func startRateLimitCleanup(ctx context.Context, logger *slog.Logger, rl *middleware.RateLimiter, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := rl.Cleanup(); n > 0 {
				logger.Debug("vote rate limiter cleanup", slog.Int("evicted", n))
			}
		}
	}
}

// reportPoolStats publishes SQL pool usage to the db connection gauges.
func reportPoolStats(ctx context.Context, handle *store.Handle, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			stats := handle.Stats()
			metrics.UpdateDBConnectionStats(stats.InUse, stats.Idle)
		}
	}
}
