package main

import (
	"context"
	"errors"
	"flag"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"williampedia/internal/config"
	"williampedia/internal/handler/http/respond"
	"williampedia/internal/infra/store"
	workerPkg "williampedia/internal/infra/worker"
	"williampedia/internal/observability/logging"
	artUC "williampedia/internal/usecase/article"
)

func main() {
	configPath := flag.String("config", os.Getenv("CONFIG_FILE"), "path to YAML config file")
	runOnce := flag.Bool("once", false, "run every job once and exit")
	flag.Parse()

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Warn("failed to load .env", slog.Any("error", err))
	}
	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}

	logger := logging.New(logging.Options{Level: cfg.Log.Level, Format: cfg.Log.Format})
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	handle, err := store.Open(ctx, cfg.Store)
	if err != nil {
		logger.Error("failed to open article store", slog.String("error", respond.SanitizeError(err)))
		os.Exit(1)
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := handle.Close(closeCtx); err != nil {
			logger.Error("failed to close store", slog.Any("error", err))
		}
	}()

	svc := &artUC.Service{Repo: handle.Repo}
	workerCfg := workerPkg.FromAppConfig(cfg.Worker)
	metrics := workerPkg.NewMetrics(prometheus.DefaultRegisterer)

	scheduler, err := workerPkg.NewScheduler(workerCfg, logger, metrics, jobs(logger, svc)...)
	if err != nil {
		logger.Error("failed to create scheduler", slog.Any("error", err))
		os.Exit(1)
	}

	if *runOnce {
		if err := scheduler.RunAll(ctx); err != nil {
			os.Exit(1)
		}
		return
	}

	healthServer := workerPkg.NewHealthServer(workerCfg.Addr, logger, handle.Repo, nil)
	go func() {
		if err := healthServer.Start(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("health server failed", slog.Any("error", err))
		}
	}()

	// 起動直後に一度実行して articles_total を埋める
	_ = scheduler.WarmUp(ctx)

	scheduler.Start()
	healthServer.SetReady(true)
	logger.Info("worker marked as ready")

	<-ctx.Done()
	logger.Info("shutting down worker...")
	healthServer.SetReady(false)

	stopCtx, cancel := context.WithTimeout(context.Background(), cfg.Worker.JobTimeout)
	defer cancel()
	if err := scheduler.Stop(stopCtx); err != nil {
		logger.Warn("running job did not finish before shutdown", slog.Any("error", err))
	}
	logger.Info("worker stopped")
}

// jobs lists the maintenance tasks run on each tick.
func jobs(logger *slog.Logger, svc *artUC.Service) []workerPkg.Job {
	return []workerPkg.Job{
		{
			Name: "normalize-votes",
			Run: func(ctx context.Context) error {
				n, err := svc.NormalizeVotes(ctx)
				if err != nil {
					return err
				}
				if n > 0 {
					logger.Info("legacy vote counters normalized", slog.Int64("documents", n))
				}
				return nil
			},
		},
		{
			Name: "count-articles",
			Run: func(ctx context.Context) error {
				n, err := svc.Count(ctx)
				if err != nil {
					return err
				}
				logger.Debug("articles counted", slog.Int64("count", n))
				return nil
			},
		},
	}
}
