// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package migrations

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrate_NilDB(t *testing.T) {
	require.ErrorIs(t, Migrate(context.Background(), nil), errNilDB)
	require.ErrorIs(t, MigrateClient(context.Background(), nil), errNilDB)
}

func TestMigrate_DBError(t *testing.T) {
	// no expectations: every statement goose sends is refused
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	err = Migrate(context.Background(), db)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "migration error")
}

func TestMigrateClient_SQLite(t *testing.T) {
	db, err := sql.Open("sqlite3", filepath.Join(t.TempDir(), "queue.db"))
	require.NoError(t, err)
	defer db.Close()

	ctx := context.Background()
	require.NoError(t, MigrateClient(ctx, db))
	// повторный запуск ничего не меняет
	require.NoError(t, MigrateClient(ctx, db))

	for _, table := range []string{"sync_operations", "conflict_records", "conflict_decisions", "entity_snapshots"} {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, table).Scan(&name)
		require.NoError(t, err, table)
		assert.Equal(t, table, name)
	}
}

func TestMigrateClient_Canceled(t *testing.T) {
	db, err := sql.Open("sqlite3", filepath.Join(t.TempDir(), "queue.db"))
	require.NoError(t, err)
	defer db.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.Error(t, MigrateClient(ctx, db))
}
