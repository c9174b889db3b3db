// Package store opens the article store selected by configuration and
// wraps it with the guarded decorator.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"go.mongodb.org/mongo-driver/mongo"

	"williampedia/internal/config"
	"williampedia/internal/infra/adapter/persistence/guarded"
	"williampedia/internal/infra/adapter/persistence/mongodb"
	"williampedia/internal/infra/adapter/persistence/postgres"
	"williampedia/internal/infra/adapter/persistence/sqlite"
	"williampedia/internal/infra/db"
	"williampedia/internal/repository"
	"williampedia/internal/resilience/circuitbreaker"
	"williampedia/internal/resilience/retry"
)

// Handle owns the connection behind Repo. Close it on shutdown.
type Handle struct {
	Driver string
	// Repo is the guarded repository the application uses.
	Repo *guarded.Store
	// DB is set for SQL drivers and nil for mongo.
	DB *sql.DB

	close func(context.Context) error
}

// Stats reports SQL pool statistics; the zero value for mongo.
func (h *Handle) Stats() sql.DBStats {
	if h.DB == nil {
		return sql.DBStats{}
	}
	return h.DB.Stats()
}

func (h *Handle) Close(ctx context.Context) error {
	if h.close == nil {
		return nil
	}
	return h.close(ctx)
}

// Open connects to the configured store. SQL schemas are migrated and
// mongo indexes ensured before the handle is returned.
func Open(ctx context.Context, cfg config.StoreConfig, opts ...guarded.Option) (*Handle, error) {
	connectCtx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout*5)
	defer cancel()

	var (
		inner repository.ArticleRepository
		h     = &Handle{Driver: cfg.Driver}
	)
	switch cfg.Driver {
	case config.DriverMongo:
		client, err := mongodb.Connect(connectCtx, mongodb.ClientConfig{
			URI:            cfg.URI,
			ConnectTimeout: cfg.ConnectTimeout,
			MaxPoolSize:    uint64(cfg.MaxOpenConns),
			MinPoolSize:    uint64(cfg.MaxIdleConns),
		})
		if err != nil {
			return nil, err
		}
		repo := mongodb.NewArticleRepo(client.Database(cfg.Database).Collection(cfg.Collection))
		if err := repo.EnsureIndexes(connectCtx); err != nil {
			// 既存データに重複 slug がある場合もあるので起動は続ける
			slog.Warn("mongodb index creation failed", slog.Any("error", err))
		}
		inner = repo
		h.close = func(ctx context.Context) error { return disconnect(ctx, client) }

	case config.DriverPostgres, config.DriverSQLite:
		dialect := db.DialectPostgres
		if cfg.Driver == config.DriverSQLite {
			dialect = db.DialectSQLite
		}
		pool := db.DefaultConnectionConfig()
		pool.MaxOpenConns = cfg.MaxOpenConns
		pool.MaxIdleConns = cfg.MaxIdleConns
		pool.ConnMaxLifetime = cfg.ConnMaxLifetime

		conn, err := db.Open(connectCtx, dialect, cfg.URI, pool)
		if err != nil {
			return nil, err
		}
		if err := db.MigrateUp(connectCtx, conn, dialect); err != nil {
			_ = conn.Close()
			return nil, err
		}
		if dialect == db.DialectSQLite {
			inner = sqlite.NewArticleRepo(conn)
		} else {
			inner = postgres.NewArticleRepo(conn)
		}
		h.DB = conn
		h.close = func(context.Context) error { return conn.Close() }

	default:
		return nil, fmt.Errorf("store: unsupported driver %q", cfg.Driver)
	}

	h.Repo = guarded.New(inner, append(GuardOptions(cfg), opts...)...)
	return h, nil
}

// GuardOptions turns the breaker and retry settings into guarded options.
func GuardOptions(cfg config.StoreConfig) []guarded.Option {
	breaker := circuitbreaker.StoreConfig()
	breaker.Name = "article-store-" + cfg.Driver
	if cfg.BreakerCooldown > 0 {
		breaker.Cooldown = cfg.BreakerCooldown
	}
	read := retry.ReadPolicy()
	read.Attempts = cfg.ReadRetries + 1
	return []guarded.Option{guarded.WithBreaker(breaker), guarded.WithReadRetry(read)}
}

func disconnect(ctx context.Context, client *mongo.Client) error {
	if err := client.Disconnect(ctx); err != nil {
		return fmt.Errorf("mongodb disconnect: %w", err)
	}
	return nil
}
