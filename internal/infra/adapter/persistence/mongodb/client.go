package mongodb

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"williampedia/internal/resilience/retry"
)

// ClientConfig configures the shared MongoDB client.
type ClientConfig struct {
	URI            string
	ConnectTimeout time.Duration
	MaxPoolSize    uint64
	MinPoolSize    uint64
}

// Connect creates a client and pings the primary until it answers or the
// connect retry budget is spent. The caller owns the client and must
// Disconnect it on shutdown.
func Connect(ctx context.Context, cfg ClientConfig) (*mongo.Client, error) {
	opts := options.Client().
		ApplyURI(cfg.URI).
		SetConnectTimeout(cfg.ConnectTimeout).
		SetServerSelectionTimeout(cfg.ConnectTimeout)
	if cfg.MaxPoolSize > 0 {
		opts.SetMaxPoolSize(cfg.MaxPoolSize)
	}
	if cfg.MinPoolSize > 0 {
		opts.SetMinPoolSize(cfg.MinPoolSize)
	}

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("Connect: %w", err)
	}

	ping := retry.ConnectPolicy("mongodb ping")
	ping.RetryIf = isUnavailable
	err = retry.Do(ctx, ping, func(ctx context.Context) error {
		return client.Ping(ctx, readpref.Primary())
	})
	if err != nil {
		_ = client.Disconnect(context.Background())
		return nil, wrap("Connect: ping", err)
	}

	slog.Info("mongodb connection established",
		slog.Uint64("max_pool_size", cfg.MaxPoolSize))
	return client, nil
}
