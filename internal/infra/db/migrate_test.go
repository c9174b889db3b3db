package db

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrateUp_Postgres(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS articles").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("CREATE INDEX IF NOT EXISTS idx_articles_created_at_id").
		WillReturnResult(sqlmock.NewResult(0, 0))
	// 権限不足でも失敗扱いにしない
	mock.ExpectExec("CREATE EXTENSION IF NOT EXISTS pg_trgm").
		WillReturnError(errors.New("permission denied to create extension"))
	mock.ExpectExec("CREATE INDEX IF NOT EXISTS idx_articles_title_gin").
		WillReturnError(errors.New("operator class \"gin_trgm_ops\" does not exist"))

	err = MigrateUp(context.Background(), db, DialectPostgres)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMigrateUp_TableError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS articles").
		WillReturnError(sql.ErrConnDone)

	err = MigrateUp(context.Background(), db, DialectPostgres)
	assert.ErrorIs(t, err, sql.ErrConnDone)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMigrateUp_UnsupportedDialect(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	assert.Error(t, MigrateUp(context.Background(), db, Dialect("mysql")))
}

func TestMigrateUp_SQLiteIdempotent(t *testing.T) {
	ctx := context.Background()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	defer func() { _ = db.Close() }()
	db.SetMaxOpenConns(1)

	require.NoError(t, MigrateUp(ctx, db, DialectSQLite))
	require.NoError(t, MigrateUp(ctx, db, DialectSQLite))

	_, err = db.ExecContext(ctx, `INSERT INTO articles (slug, title, created_at) VALUES ('a', 'A', 1)`)
	require.NoError(t, err)
	_, err = db.ExecContext(ctx, `INSERT INTO articles (slug, title, created_at) VALUES ('a', 'B', 2)`)
	assert.Error(t, err, "slug must be unique")
}

func TestMigrateDown(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	mock.ExpectExec(regexp.QuoteMeta("DROP INDEX IF EXISTS idx_articles_title_gin")).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta("DROP INDEX IF EXISTS idx_articles_created_at_id")).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta("DROP TABLE IF EXISTS articles")).
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.NoError(t, MigrateDown(context.Background(), db))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMigrateDown_Error(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	mock.ExpectExec("DROP INDEX").WillReturnError(sql.ErrConnDone)

	assert.ErrorIs(t, MigrateDown(context.Background(), db), sql.ErrConnDone)
}
