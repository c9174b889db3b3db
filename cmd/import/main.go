// Command import loads articles from a YAML file into the configured store.
//
//	import -file articles.yaml [-dry-run] [-reset] [-config config.yaml]
//
// -reset drops and recreates the SQL schema before importing. It deletes
// every stored article and is rejected for mongo.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"williampedia/internal/config"
	"williampedia/internal/handler/http/respond"
	"williampedia/internal/infra/db"
	"williampedia/internal/infra/importfile"
	"williampedia/internal/infra/store"
	"williampedia/internal/observability/logging"
	artUC "williampedia/internal/usecase/article"
)

func main() {
	configPath := flag.String("config", os.Getenv("CONFIG_FILE"), "path to YAML config file")
	file := flag.String("file", "", "YAML file of articles to import (required)")
	dryRun := flag.Bool("dry-run", false, "validate the file without writing")
	reset := flag.Bool("reset", false, "drop and recreate the SQL schema first (deletes all articles)")
	flag.Parse()

	if *file == "" {
		fmt.Fprintln(os.Stderr, "import: -file is required")
		flag.Usage()
		os.Exit(2)
	}

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

	opts := runOptions{path: *file, dryRun: *dryRun, reset: *reset}
	if err := run(logger, cfg, opts); err != nil {
		logger.Error("import failed", slog.String("error", respond.SanitizeError(err)))
		os.Exit(1)
	}
}

type runOptions struct {
	path   string
	dryRun bool
	reset  bool
}

func run(logger *slog.Logger, cfg config.Config, opts runOptions) error {
	path, dryRun := opts.path, opts.dryRun
	if opts.reset && cfg.Store.Driver == config.DriverMongo {
		return errors.New("-reset is only supported for SQL stores")
	}

	records, err := importfile.Load(path)
	if err != nil {
		return err
	}
	logger.Info("import file loaded", slog.String("file", path), slog.Int("records", len(records)))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	svc := &artUC.Service{}
	if !dryRun {
		handle, err := store.Open(ctx, cfg.Store)
		if err != nil {
			return fmt.Errorf("open article store: %w", err)
		}
		defer func() {
			if err := handle.Close(context.Background()); err != nil {
				logger.Error("failed to close store", slog.Any("error", err))
			}
		}()
		if opts.reset {
			if err := resetSchema(ctx, handle); err != nil {
				return err
			}
			logger.Warn("article schema reset", slog.String("driver", handle.Driver))
		}
		svc.Repo = handle.Repo
	}

	report, err := svc.Import(ctx, importfile.Inputs(records), dryRun)
	if report != nil {
		logger.Info("import finished",
			slog.Bool("dry_run", dryRun),
			slog.Int("created", report.Created),
			slog.Int("skipped", report.Skipped),
			slog.Int("invalid", report.Invalid))
	}
	if err != nil {
		return err
	}
	if report.Invalid > 0 {
		return fmt.Errorf("%d invalid records", report.Invalid)
	}
	return nil
}

func resetSchema(ctx context.Context, h *store.Handle) error {
	dialect := db.DialectPostgres
	if h.Driver == config.DriverSQLite {
		dialect = db.DialectSQLite
	}
	if err := db.MigrateDown(ctx, h.DB); err != nil {
		return err
	}
	return db.MigrateUp(ctx, h.DB, dialect)
}
