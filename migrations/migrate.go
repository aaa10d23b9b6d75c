// Package migrations embeds the SQL schema of the server (PostgreSQL) and of
// the client local queue (SQLite) and applies it with goose.
package migrations

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"

	"github.com/pressly/goose/v3"
)

//go:embed *.sql
var serverSchema embed.FS

//go:embed client/*.sql
var clientSchema embed.FS

var errNilDB = errors.New("db is nil")

// Migrate applies the server schema to a PostgreSQL database opened with the
// pgx driver.
func Migrate(ctx context.Context, db *sql.DB) error {
	return up(ctx, db, goose.DialectPostgres, serverSchema)
}

// MigrateClient applies the local queue schema to a SQLite database.
func MigrateClient(ctx context.Context, db *sql.DB) error {
	schema, err := fs.Sub(clientSchema, "client")
	if err != nil {
		return fmt.Errorf("migration error: %w", err)
	}
	return up(ctx, db, goose.DialectSQLite3, schema)
}

// up uses a goose provider instead of the package level state, so the two
// schemas never share a dialect setting.
func up(ctx context.Context, db *sql.DB, dialect goose.Dialect, schema fs.FS) error {
	if db == nil {
		return fmt.Errorf("migration error: %w", errNilDB)
	}

	provider, err := goose.NewProvider(dialect, db, schema)
	if err != nil {
		return fmt.Errorf("migration error: %w", err)
	}
	if _, err = provider.Up(ctx); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}
	return nil
}
