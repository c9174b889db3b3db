package db

import (
	"context"
	"database/sql"
	"fmt"
)

// Dialect selects the SQL flavour of the schema statements.
type Dialect string

const (
	DialectPostgres Dialect = "postgres"
	DialectSQLite   Dialect = "sqlite"
)

var postgresSchema = []string{`
CREATE TABLE IF NOT EXISTS articles (
    id          BIGSERIAL PRIMARY KEY,
    slug        TEXT NOT NULL UNIQUE,
    title       TEXT NOT NULL,
    content     TEXT NOT NULL DEFAULT '',
    image_url   TEXT NOT NULL DEFAULT '',
    created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
    votes_up    BIGINT NOT NULL DEFAULT 0,
    votes_down  BIGINT NOT NULL DEFAULT 0
)`,
	// 前後ナビゲーション・履歴の (created_at, id) 順ソート用
	`CREATE INDEX IF NOT EXISTS idx_articles_created_at_id ON articles(created_at DESC, id DESC)`,
}

// postgresOptional may fail without superuser rights; failures are ignored.
var postgresOptional = []string{
	// pg_trgm拡張を有効化(ILIKE検索高速化用)
	`CREATE EXTENSION IF NOT EXISTS pg_trgm`,
	`CREATE INDEX IF NOT EXISTS idx_articles_title_gin ON articles USING gin(title gin_trgm_ops)`,
}

// created_at holds Unix nanoseconds so ordering is exact.
var sqliteSchema = []string{`
CREATE TABLE IF NOT EXISTS articles (
    id          INTEGER PRIMARY KEY AUTOINCREMENT,
    slug        TEXT NOT NULL UNIQUE,
    title       TEXT NOT NULL,
    content     TEXT NOT NULL DEFAULT '',
    image_url   TEXT NOT NULL DEFAULT '',
    created_at  INTEGER NOT NULL,
    votes_up    INTEGER NOT NULL DEFAULT 0,
    votes_down  INTEGER NOT NULL DEFAULT 0
)`,
	`CREATE INDEX IF NOT EXISTS idx_articles_created_at_id ON articles(created_at DESC, id DESC)`,
}

// MigrateUp creates the articles schema for dialect. It is idempotent.
func MigrateUp(ctx context.Context, db *sql.DB, dialect Dialect) error {
	var required, optional []string
	switch dialect {
	case DialectPostgres:
		required, optional = postgresSchema, postgresOptional
	case DialectSQLite:
		required = sqliteSchema
	default:
		return fmt.Errorf("MigrateUp: unsupported dialect %q", dialect)
	}

	for _, stmt := range required {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("MigrateUp: %w", err)
		}
	}
	for _, stmt := range optional {
		_, _ = db.ExecContext(ctx, stmt)
	}
	return nil
}

// MigrateDown drops the articles table and its indexes.
// Use with caution: this deletes every article.
func MigrateDown(ctx context.Context, db *sql.DB) error {
	dropStatements := []string{
		`DROP INDEX IF EXISTS idx_articles_title_gin`,
		`DROP INDEX IF EXISTS idx_articles_created_at_id`,
		`DROP TABLE IF EXISTS articles`,
	}
	for _, stmt := range dropStatements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("MigrateDown: %w", err)
		}
	}
	return nil
}
