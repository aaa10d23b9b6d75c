// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/MKhiriev/go-story-sync/internal/logger"
	"github.com/MKhiriev/go-story-sync/internal/mock"
	"github.com/MKhiriev/go-story-sync/internal/store"
	"github.com/MKhiriev/go-story-sync/internal/validators"
	"github.com/MKhiriev/go-story-sync/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var serverNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

type syncFixture struct {
	devices       *mock.MockDeviceRepository
	entities      *mock.MockEntityRepository
	projects      *mock.MockProjectRepository
	classificator *mock.MockErrorClassificator
	svc           *syncService
}

func newSyncFixture(t *testing.T) *syncFixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	f := &syncFixture{
		devices:       mock.NewMockDeviceRepository(ctrl),
		entities:      mock.NewMockEntityRepository(ctrl),
		projects:      mock.NewMockProjectRepository(ctrl),
		classificator: mock.NewMockErrorClassificator(ctrl),
	}
	storages := &store.Storages{
		DeviceRepository:  f.devices,
		EntityRepository:  f.entities,
		ProjectRepository: f.projects,
	}
	f.svc = NewSyncService(storages, f.classificator, logger.Nop()).(*syncService)
	f.svc.now = func() time.Time { return serverNow }
	return f
}

func pushOp(id string, projectID int64) models.SyncOperation {
	return models.SyncOperation{
		ID:         id,
		Kind:       models.OperationUpdate,
		EntityType: "scene",
		EntityID:   "scene-" + id,
		ProjectID:  projectID,
		Priority:   models.PriorityMedium,
		Payload:    json.RawMessage(`{"title":"T"}`),
	}
}

func pushRequest(ops ...models.SyncOperation) models.PushRequest {
	return models.PushRequest{
		Device:     models.DeviceDescriptor{ID: "dev-1", Name: "laptop", ProtocolVersion: models.ProtocolVersion},
		Operations: ops,
	}
}

func success(op models.SyncOperation, version int64) (models.OperationResult, error) {
	return models.OperationResult{OperationID: op.ID, Status: models.ResultSuccess, Version: version}, nil
}

// ── ProcessBatch ─────────────────────────────────────────────────────────────

func TestSyncService_ProcessBatch_StampsAndApplies(t *testing.T) {
	f := newSyncFixture(t)
	ctx := context.Background()

	f.devices.EXPECT().UpsertDevice(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, d models.DeviceDescriptor) error {
			assert.Equal(t, int64(7), d.UserID)
			assert.Equal(t, serverNow, d.LastSeen)
			return nil
		},
	)
	// доступ к проекту проверяется один раз на батч
	f.projects.EXPECT().HasAccess(gomock.Any(), int64(7), int64(1)).Return(true, nil).Times(1)
	f.entities.EXPECT().ApplyOperation(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, op models.SyncOperation) (models.OperationResult, error) {
			assert.Equal(t, int64(7), op.UserID)
			assert.Equal(t, "dev-1", op.DeviceID)
			return success(op, 3)
		},
	).Times(2)

	resp, err := f.svc.ProcessBatch(ctx, 7, pushRequest(pushOp("a", 1), pushOp("b", 1)))
	require.NoError(t, err)
	require.Len(t, resp.Results, 2)
	assert.Equal(t, "a", resp.Results[0].OperationID)
	assert.Equal(t, "b", resp.Results[1].OperationID)
	assert.Equal(t, models.ResultSuccess, resp.Results[1].Status)
}

func TestSyncService_ProcessBatch_AccessDenied(t *testing.T) {
	f := newSyncFixture(t)

	f.devices.EXPECT().UpsertDevice(gomock.Any(), gomock.Any()).Return(nil)
	f.projects.EXPECT().HasAccess(gomock.Any(), int64(7), int64(1)).Return(true, nil)
	f.projects.EXPECT().HasAccess(gomock.Any(), int64(7), int64(2)).Return(false, nil)
	f.entities.EXPECT().ApplyOperation(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, op models.SyncOperation) (models.OperationResult, error) {
			return success(op, 1)
		},
	)

	resp, err := f.svc.ProcessBatch(context.Background(), 7, pushRequest(pushOp("a", 2), pushOp("b", 1), pushOp("c", 2)))
	require.NoError(t, err)
	require.Len(t, resp.Results, 3)

	assert.Equal(t, models.ResultInvalid, resp.Results[0].Status)
	assert.Equal(t, ErrAccessDenied.Error(), resp.Results[0].Error)
	assert.Equal(t, models.ResultSuccess, resp.Results[1].Status)
	assert.Equal(t, models.ResultInvalid, resp.Results[2].Status)
}

func TestSyncService_ProcessBatch_StorageFailures(t *testing.T) {
	tests := []struct {
		name       string
		class      store.ErrorClassification
		wantStatus models.OperationResultStatus
		wantMsg    string
	}{
		{name: "retryable", class: store.Retryable, wantStatus: models.ResultError, wantMsg: resultMsgStorageUnavailable},
		{name: "non retryable", class: store.NonRetryable, wantStatus: models.ResultInvalid, wantMsg: resultMsgRejected},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newSyncFixture(t)
			storageErr := errors.New("pq: something broke")

			f.devices.EXPECT().UpsertDevice(gomock.Any(), gomock.Any()).Return(nil)
			f.projects.EXPECT().HasAccess(gomock.Any(), gomock.Any(), gomock.Any()).Return(true, nil)
			gomock.InOrder(
				f.entities.EXPECT().ApplyOperation(gomock.Any(), gomock.Any()).Return(models.OperationResult{}, storageErr),
				f.entities.EXPECT().ApplyOperation(gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, op models.SyncOperation) (models.OperationResult, error) {
						return success(op, 2)
					},
				),
			)
			f.classificator.EXPECT().Classify(storageErr).Return(tt.class)

			resp, err := f.svc.ProcessBatch(context.Background(), 7, pushRequest(pushOp("a", 1), pushOp("b", 1)))
			require.NoError(t, err, "a failing operation never aborts the batch")
			require.Len(t, resp.Results, 2)

			assert.Equal(t, tt.wantStatus, resp.Results[0].Status)
			assert.Equal(t, tt.wantMsg, resp.Results[0].Error)
			assert.NotContains(t, resp.Results[0].Error, "pq:")
			assert.Equal(t, models.ResultSuccess, resp.Results[1].Status)
		})
	}
}

func TestSyncService_ProcessBatch_AccessCheckFailure(t *testing.T) {
	f := newSyncFixture(t)
	accessErr := errors.New("connection reset")

	f.devices.EXPECT().UpsertDevice(gomock.Any(), gomock.Any()).Return(nil)
	f.projects.EXPECT().HasAccess(gomock.Any(), gomock.Any(), gomock.Any()).Return(false, accessErr).Times(2)
	f.classificator.EXPECT().Classify(accessErr).Return(store.Retryable).Times(2)

	resp, err := f.svc.ProcessBatch(context.Background(), 7, pushRequest(pushOp("a", 1), pushOp("b", 1)))
	require.NoError(t, err)
	for _, r := range resp.Results {
		assert.Equal(t, models.ResultError, r.Status, "a failed check is not cached")
	}
}

func TestSyncService_ProcessBatch_DeviceFailure(t *testing.T) {
	f := newSyncFixture(t)

	f.devices.EXPECT().UpsertDevice(gomock.Any(), gomock.Any()).Return(store.ErrExecutingQuery)

	_, err := f.svc.ProcessBatch(context.Background(), 7, pushRequest(pushOp("a", 1)))
	require.ErrorIs(t, err, store.ErrExecutingQuery)
}

func TestSyncService_ProcessBatch_ContextCanceled(t *testing.T) {
	f := newSyncFixture(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	f.devices.EXPECT().UpsertDevice(gomock.Any(), gomock.Any()).Return(nil)

	_, err := f.svc.ProcessBatch(ctx, 7, pushRequest(pushOp("a", 1)))
	require.ErrorIs(t, err, context.Canceled)
}

// ── ChangesSince ─────────────────────────────────────────────────────────────

func TestSyncService_ChangesSince(t *testing.T) {
	t.Run("cursor moves to last change", func(t *testing.T) {
		f := newSyncFixture(t)
		changes := []models.RemoteChange{{ChangeID: 41}, {ChangeID: 44}}
		f.entities.EXPECT().ChangesSince(gomock.Any(), int64(7), "dev-1", int64(40), uint64(changeFeedLimit)).Return(changes, nil)

		resp, err := f.svc.ChangesSince(context.Background(), 7, models.PullRequest{DeviceID: "dev-1", After: 40})
		require.NoError(t, err)
		assert.Equal(t, changes, resp.Changes)
		assert.Equal(t, int64(44), resp.Cursor)
		assert.Equal(t, serverNow, resp.ServerTime)
	})

	t.Run("empty page keeps cursor", func(t *testing.T) {
		f := newSyncFixture(t)
		f.entities.EXPECT().ChangesSince(gomock.Any(), gomock.Any(), gomock.Any(), int64(40), gomock.Any()).Return(nil, nil)

		resp, err := f.svc.ChangesSince(context.Background(), 7, models.PullRequest{DeviceID: "dev-1", After: 40})
		require.NoError(t, err)
		assert.Empty(t, resp.Changes)
		assert.Equal(t, int64(40), resp.Cursor)
	})

	t.Run("full page ends at last change id", func(t *testing.T) {
		f := newSyncFixture(t)
		// одинаковый changed_at у всех строк: курсор всё равно по change_id
		changes := make([]models.RemoteChange, changeFeedLimit)
		for i := range changes {
			changes[i] = models.RemoteChange{ChangeID: int64(i + 1), ChangedAt: serverNow}
		}
		f.entities.EXPECT().ChangesSince(gomock.Any(), gomock.Any(), gomock.Any(), int64(0), gomock.Any()).Return(changes, nil)

		resp, err := f.svc.ChangesSince(context.Background(), 7, models.PullRequest{DeviceID: "dev-1"})
		require.NoError(t, err)
		assert.Equal(t, int64(changeFeedLimit), resp.Cursor)
	})

	t.Run("storage failure", func(t *testing.T) {
		f := newSyncFixture(t)
		f.entities.EXPECT().ChangesSince(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, store.ErrExecutingQuery)

		_, err := f.svc.ChangesSince(context.Background(), 7, models.PullRequest{DeviceID: "dev-1"})
		require.ErrorIs(t, err, store.ErrExecutingQuery)
	})
}

// ── SyncValidationService ────────────────────────────────────────────────────

// recordingSync is a SyncService stub that echoes the operations it receives.
type recordingSync struct {
	got    []models.SyncOperation
	pulled bool
	err    error
}

func (r *recordingSync) ProcessBatch(_ context.Context, _ int64, req models.PushRequest) (models.PushResponse, error) {
	if r.err != nil {
		return models.PushResponse{}, r.err
	}
	r.got = req.Operations
	results := make([]models.OperationResult, 0, len(req.Operations))
	for _, op := range req.Operations {
		results = append(results, models.OperationResult{OperationID: op.ID, Status: models.ResultSuccess, Version: 1})
	}
	return models.PushResponse{Results: results}, nil
}

func (r *recordingSync) ChangesSince(_ context.Context, _ int64, _ models.PullRequest) (models.PullResponse, error) {
	r.pulled = true
	return models.PullResponse{ServerTime: serverNow}, nil
}

func TestSyncValidationService_ProcessBatch_KeepsRequestOrder(t *testing.T) {
	inner := &recordingSync{}
	svc := NewSyncValidationService().Wrap(inner)

	bad := pushOp("bad", 1)
	bad.Kind = "rename"
	dup := pushOp("a", 1)
	noPayload := pushOp("empty", 1)
	noPayload.Payload = nil

	resp, err := svc.ProcessBatch(context.Background(), 7, pushRequest(bad, pushOp("a", 1), dup, pushOp("b", 1), noPayload))
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "b"}, ids(inner.got), "only valid operations reach storage")

	require.Len(t, resp.Results, 5)
	want := []struct {
		id     string
		status models.OperationResultStatus
	}{
		{"bad", models.ResultInvalid},
		{"a", models.ResultSuccess},
		{"a", models.ResultInvalid},
		{"b", models.ResultSuccess},
		{"empty", models.ResultInvalid},
	}
	for i, w := range want {
		assert.Equal(t, w.id, resp.Results[i].OperationID, fmt.Sprintf("result %d", i))
		assert.Equal(t, w.status, resp.Results[i].Status, fmt.Sprintf("result %d", i))
	}
	assert.Contains(t, resp.Results[2].Error, "duplicate")
}

func TestSyncValidationService_ProcessBatch_AllInvalid(t *testing.T) {
	inner := &recordingSync{}
	svc := NewSyncValidationService().Wrap(inner)

	bad := pushOp("x", 0)
	resp, err := svc.ProcessBatch(context.Background(), 7, pushRequest(bad))
	require.NoError(t, err)

	assert.Nil(t, inner.got, "inner service is not called")
	require.Len(t, resp.Results, 1)
	assert.Equal(t, models.ResultInvalid, resp.Results[0].Status)
}

func TestSyncValidationService_ProcessBatch_Envelope(t *testing.T) {
	tooMany := make([]models.SyncOperation, 101)
	for i := range tooMany {
		tooMany[i] = pushOp(fmt.Sprintf("op-%d", i), 1)
	}

	oldProtocol := pushRequest(pushOp("a", 1))
	oldProtocol.Device.ProtocolVersion = 0

	noDevice := pushRequest(pushOp("a", 1))
	noDevice.Device.ID = ""

	tests := []struct {
		name   string
		userID int64
		req    models.PushRequest
	}{
		{name: "anonymous", userID: 0, req: pushRequest(pushOp("a", 1))},
		{name: "no operations", userID: 7, req: pushRequest()},
		{name: "too many operations", userID: 7, req: pushRequest(tooMany...)},
		{name: "unsupported protocol", userID: 7, req: oldProtocol},
		{name: "missing device", userID: 7, req: noDevice},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inner := &recordingSync{}
			svc := NewSyncValidationService().Wrap(inner)

			_, err := svc.ProcessBatch(context.Background(), tt.userID, tt.req)
			require.ErrorIs(t, err, ErrInvalidDataProvided)
			assert.Nil(t, inner.got)
		})
	}
}

func TestSyncValidationService_ProcessBatch_InnerError(t *testing.T) {
	inner := &recordingSync{err: store.ErrExecutingQuery}
	svc := NewSyncValidationService().Wrap(inner)

	_, err := svc.ProcessBatch(context.Background(), 7, pushRequest(pushOp("a", 1)))
	require.ErrorIs(t, err, store.ErrExecutingQuery)
}

func TestSyncValidationService_ChangesSince(t *testing.T) {
	inner := &recordingSync{}
	svc := NewSyncValidationService().Wrap(inner)
	ctx := context.Background()

	_, err := svc.ChangesSince(ctx, 7, models.PullRequest{})
	require.ErrorIs(t, err, ErrInvalidDataProvided)
	_, err = svc.ChangesSince(ctx, 0, models.PullRequest{DeviceID: "dev-1"})
	require.ErrorIs(t, err, ErrInvalidDataProvided)
	_, err = svc.ChangesSince(ctx, 7, models.PullRequest{DeviceID: "dev-1", After: -1})
	require.ErrorIs(t, err, validators.ErrInvalidCursor)
	assert.False(t, inner.pulled)

	resp, err := svc.ChangesSince(ctx, 7, models.PullRequest{DeviceID: "dev-1"})
	require.NoError(t, err)
	assert.True(t, inner.pulled)
	assert.Equal(t, serverNow, resp.ServerTime)
}
