// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/MKhiriev/go-story-sync/internal/logger"
	"github.com/MKhiriev/go-story-sync/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ─────────────────────────────────────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────────────────────────────────────

func newTestEntityRepo(t *testing.T) (*entityRepository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	l := logger.Nop()
	return &entityRepository{DB: &DB{DB: db, logger: l}, logger: l}, mock
}

func testOperation() models.SyncOperation {
	return models.SyncOperation{
		ID:          "op-1",
		Kind:        models.OperationUpdate,
		EntityType:  "scene",
		EntityID:    "s1",
		ProjectID:   10,
		Payload:     []byte(`{"title":"new"}`),
		BaseVersion: 3,
		DeviceID:    "dev-a",
		UserID:      1,
	}
}

var entityColumns = []string{"payload", "version", "deleted", "device_id"}

// ─────────────────────────────────────────────────────────────────────────────
// ApplyOperation
// ─────────────────────────────────────────────────────────────────────────────

func TestApplyOperation_AppliesOnMatchingBase(t *testing.T) {
	repo, mock := newTestEntityRepo(t)
	op := testOperation()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT version FROM applied_operations").
		WithArgs(op.ID).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectQuery("SELECT payload, version, deleted, device_id").
		WithArgs(op.ProjectID, op.EntityType, op.EntityID).
		WillReturnRows(sqlmock.NewRows(entityColumns).AddRow([]byte(`{"title":"old"}`), 3, false, "dev-b"))
	mock.ExpectExec("INSERT INTO entities").
		WithArgs(op.ProjectID, op.EntityType, op.EntityID, []byte(op.Payload), int64(4), false, op.DeviceID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO applied_operations").
		WithArgs(op.ID, op.UserID, op.DeviceID, int64(4)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("pg_advisory_xact_lock").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("INSERT INTO entity_changes").
		WithArgs(op.ProjectID, op.EntityType, op.EntityID, op.Kind, []byte(op.Payload), int64(4), op.DeviceID, op.UserID).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	result, err := repo.ApplyOperation(context.Background(), op)
	require.NoError(t, err)
	assert.Equal(t, models.ResultSuccess, result.Status)
	assert.Equal(t, int64(4), result.Version)
	assert.Nil(t, result.Remote)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestApplyOperation_AlreadyAppliedIsAcknowledged(t *testing.T) {
	repo, mock := newTestEntityRepo(t)
	op := testOperation()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT version FROM applied_operations").
		WithArgs(op.ID).
		WillReturnRows(sqlmock.NewRows([]string{"version"}).AddRow(7))
	mock.ExpectRollback()

	result, err := repo.ApplyOperation(context.Background(), op)
	require.NoError(t, err)
	assert.Equal(t, models.ResultSuccess, result.Status)
	assert.Equal(t, int64(7), result.Version)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestApplyOperation_ConflictOnStaleBase(t *testing.T) {
	repo, mock := newTestEntityRepo(t)
	op := testOperation()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT version FROM applied_operations").
		WithArgs(op.ID).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectQuery("SELECT payload, version, deleted, device_id").
		WithArgs(op.ProjectID, op.EntityType, op.EntityID).
		WillReturnRows(sqlmock.NewRows(entityColumns).AddRow([]byte(`{"title":"theirs"}`), 5, false, "dev-b"))
	mock.ExpectRollback()

	result, err := repo.ApplyOperation(context.Background(), op)
	require.NoError(t, err)
	assert.Equal(t, models.ResultConflict, result.Status)
	require.NotNil(t, result.Remote)
	assert.Equal(t, int64(5), result.Remote.Version)
	assert.Equal(t, "dev-b", result.Remote.DeviceID)
	assert.JSONEq(t, `{"title":"theirs"}`, string(result.Remote.Payload))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestApplyOperation_CreateOfUnknownEntity(t *testing.T) {
	repo, mock := newTestEntityRepo(t)
	op := testOperation()
	op.Kind = models.OperationCreate
	op.BaseVersion = 0

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT version FROM applied_operations").WillReturnError(sql.ErrNoRows)
	mock.ExpectQuery("SELECT payload, version, deleted, device_id").WillReturnError(sql.ErrNoRows)
	mock.ExpectExec("INSERT INTO entities").
		WithArgs(op.ProjectID, op.EntityType, op.EntityID, sqlmock.AnyArg(), int64(1), false, op.DeviceID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO applied_operations").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("pg_advisory_xact_lock").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("INSERT INTO entity_changes").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	result, err := repo.ApplyOperation(context.Background(), op)
	require.NoError(t, err)
	assert.Equal(t, models.ResultSuccess, result.Status)
	assert.Equal(t, int64(1), result.Version)
}

func TestApplyOperation_DeleteKeepsLastPayloadInTombstone(t *testing.T) {
	repo, mock := newTestEntityRepo(t)
	op := testOperation()
	op.Kind = models.OperationDelete
	op.Payload = nil

	last := []byte(`{"title":"old"}`)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT version FROM applied_operations").WillReturnError(sql.ErrNoRows)
	mock.ExpectQuery("SELECT payload, version, deleted, device_id").
		WillReturnRows(sqlmock.NewRows(entityColumns).AddRow(last, 3, false, "dev-b"))
	mock.ExpectExec("INSERT INTO entities").
		WithArgs(op.ProjectID, op.EntityType, op.EntityID, last, int64(4), true, op.DeviceID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO applied_operations").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("pg_advisory_xact_lock").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("INSERT INTO entity_changes").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	result, err := repo.ApplyOperation(context.Background(), op)
	require.NoError(t, err)
	assert.Equal(t, models.ResultSuccess, result.Status)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestApplyOperation_Errors(t *testing.T) {
	op := testOperation()

	tests := []struct {
		name    string
		setup   func(mock sqlmock.Sqlmock)
		wantErr error
	}{
		{
			name: "begin fails",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin().WillReturnError(errors.New("conn refused"))
			},
			wantErr: ErrBeginningTransaction,
		},
		{
			name: "idempotency lookup fails",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectQuery("SELECT version FROM applied_operations").WillReturnError(errors.New("boom"))
				mock.ExpectRollback()
			},
			wantErr: ErrExecutingQuery,
		},
		{
			name: "upsert fails",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectQuery("SELECT version FROM applied_operations").WillReturnError(sql.ErrNoRows)
				mock.ExpectQuery("SELECT payload, version, deleted, device_id").WillReturnError(sql.ErrNoRows)
				mock.ExpectExec("INSERT INTO entities").WillReturnError(errors.New("boom"))
				mock.ExpectRollback()
			},
			wantErr: ErrExecutingStatement,
		},
		{
			name: "change feed lock fails",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectQuery("SELECT version FROM applied_operations").WillReturnError(sql.ErrNoRows)
				mock.ExpectQuery("SELECT payload, version, deleted, device_id").WillReturnError(sql.ErrNoRows)
				mock.ExpectExec("INSERT INTO entities").WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectExec("INSERT INTO applied_operations").WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectExec("pg_advisory_xact_lock").WillReturnError(errors.New("lock timeout"))
				mock.ExpectRollback()
			},
			wantErr: ErrExecutingStatement,
		},
		{
			name: "commit fails",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectQuery("SELECT version FROM applied_operations").WillReturnError(sql.ErrNoRows)
				mock.ExpectQuery("SELECT payload, version, deleted, device_id").WillReturnError(sql.ErrNoRows)
				mock.ExpectExec("INSERT INTO entities").WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectExec("INSERT INTO applied_operations").WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectExec("pg_advisory_xact_lock").WillReturnResult(sqlmock.NewResult(0, 0))
				mock.ExpectExec("INSERT INTO entity_changes").WillReturnResult(sqlmock.NewResult(1, 1))
				mock.ExpectCommit().WillReturnError(errors.New("boom"))
			},
			wantErr: ErrCommitingTransaction,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newTestEntityRepo(t)
			tt.setup(mock)

			_, err := repo.ApplyOperation(context.Background(), op)
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestConflicts(t *testing.T) {
	tests := []struct {
		name    string
		op      models.SyncOperation
		current storedEntity
		want    bool
	}{
		{
			name:    "same base",
			op:      models.SyncOperation{DeviceID: "a", Kind: models.OperationUpdate, BaseVersion: 2},
			current: storedEntity{version: 2, deviceID: "b"},
			want:    false,
		},
		{
			name:    "stale base from another device",
			op:      models.SyncOperation{DeviceID: "a", Kind: models.OperationUpdate, BaseVersion: 1},
			current: storedEntity{version: 2, deviceID: "b"},
			want:    true,
		},
		{
			name:    "stale base from same device",
			op:      models.SyncOperation{DeviceID: "a", Kind: models.OperationUpdate, BaseVersion: 1},
			current: storedEntity{version: 2, deviceID: "a"},
			want:    false,
		},
		{
			name:    "create revives tombstone",
			op:      models.SyncOperation{DeviceID: "a", Kind: models.OperationCreate},
			current: storedEntity{version: 4, deviceID: "b", deleted: true},
			want:    false,
		},
		{
			name:    "update of tombstone conflicts",
			op:      models.SyncOperation{DeviceID: "a", Kind: models.OperationUpdate, BaseVersion: 3},
			current: storedEntity{version: 4, deviceID: "b", deleted: true},
			want:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, conflicts(tt.op, tt.current))
		})
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// ChangesSince
// ─────────────────────────────────────────────────────────────────────────────

func TestChangesSince(t *testing.T) {
	repo, mock := newTestEntityRepo(t)

	changedAt := time.Date(2026, 3, 1, 0, 1, 0, 0, time.UTC)

	rows := sqlmock.NewRows([]string{
		"change_id", "project_id", "entity_type", "entity_id", "kind", "payload", "version", "device_id", "changed_at",
	}).
		AddRow(11, 10, "scene", "s1", "update", []byte(`{"a":1}`), 2, "dev-b", changedAt).
		AddRow(12, 10, "note", "n1", "delete", nil, 5, "dev-c", changedAt)

	mock.ExpectQuery(`SELECT c.change_id.* c.change_id > \$2 .* ORDER BY c.change_id ASC LIMIT 500`).
		WithArgs(int64(1), int64(10), "dev-a").
		WillReturnRows(rows)

	changes, err := repo.ChangesSince(context.Background(), 1, "dev-a", 10, 500)
	require.NoError(t, err)
	require.Len(t, changes, 2)

	assert.Equal(t, int64(11), changes[0].ChangeID)
	assert.Equal(t, models.OperationUpdate, changes[0].Kind)
	assert.JSONEq(t, `{"a":1}`, string(changes[0].Payload))
	assert.Equal(t, models.OperationDelete, changes[1].Kind)
	assert.Empty(t, changes[1].Payload)
	require.NoError(t, mock.ExpectationsWereMet())
}

// Следующая страница начинается строго после последнего выданного change_id,
// даже если у строк одинаковый changed_at.
func TestChangesSince_PageContinuation(t *testing.T) {
	repo, mock := newTestEntityRepo(t)

	sameInstant := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	columns := []string{
		"change_id", "project_id", "entity_type", "entity_id", "kind", "payload", "version", "device_id", "changed_at",
	}

	mock.ExpectQuery(`c.change_id > \$2`).
		WithArgs(int64(1), int64(0), "dev-a").
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow(1, 10, "scene", "s1", "update", nil, 1, "dev-b", sameInstant).
			AddRow(2, 10, "scene", "s2", "update", nil, 1, "dev-b", sameInstant))
	mock.ExpectQuery(`c.change_id > \$2`).
		WithArgs(int64(1), int64(2), "dev-a").
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow(3, 10, "scene", "s3", "update", nil, 1, "dev-c", sameInstant))

	first, err := repo.ChangesSince(context.Background(), 1, "dev-a", 0, 2)
	require.NoError(t, err)
	require.Len(t, first, 2)

	second, err := repo.ChangesSince(context.Background(), 1, "dev-a", first[len(first)-1].ChangeID, 2)
	require.NoError(t, err)
	require.Len(t, second, 1)
	assert.Equal(t, "s3", second[0].EntityID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestChangesSince_QueryError(t *testing.T) {
	repo, mock := newTestEntityRepo(t)

	mock.ExpectQuery("SELECT c.change_id").WillReturnError(errors.New("boom"))

	_, err := repo.ChangesSince(context.Background(), 1, "dev-a", 0, 0)
	require.ErrorIs(t, err, ErrExecutingQuery)
}
