// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/MKhiriev/go-story-sync/internal/config"
	"github.com/MKhiriev/go-story-sync/internal/logger"
	"github.com/MKhiriev/go-story-sync/internal/utils"
	"github.com/MKhiriev/go-story-sync/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testHashKey = "testhashkey"

func newTestAdapter(t *testing.T, serverURL string) *httpServerAdapter {
	t.Helper()
	adapterCfg := config.ClientAdapter{HTTPAddress: serverURL, RequestTimeout: 5 * time.Second}
	appCfg := config.ClientApp{HashKey: testHashKey}

	a, err := NewHTTPServerAdapter(adapterCfg, appCfg, logger.Nop())
	require.NoError(t, err)
	return a.(*httpServerAdapter)
}

func signedToken(t *testing.T, userID int64) string {
	t.Helper()
	token, err := utils.GenerateJWTToken("story-sync", userID, time.Hour, "sign-key")
	require.NoError(t, err)
	return token.SignedString
}

func writeJSON(t *testing.T, w http.ResponseWriter, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	assert.NoError(t, json.NewEncoder(w).Encode(v))
}

// ── Constructor ─────────────────────────────────────────────────────────────

func TestNewHTTPServerAdapter_Address(t *testing.T) {
	tests := []struct {
		name    string
		address string
		wantErr bool
	}{
		{"with scheme", "http://localhost:8080", false},
		{"without scheme", "localhost:8080", false},
		{"trailing slash", "http://localhost:8080/", false},
		{"empty", "  ", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewHTTPServerAdapter(config.ClientAdapter{HTTPAddress: tt.address}, config.ClientApp{}, logger.Nop())
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
		})
	}
}

// ── Register / Login ────────────────────────────────────────────────────────

func TestLogin_Success(t *testing.T) {
	tok := signedToken(t, 42)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/user/login", r.URL.Path)

		var u models.User
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&u))
		assert.Equal(t, "alice", u.Login)

		w.Header().Set("Authorization", "Bearer "+tok)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	got, err := a.Login(context.Background(), models.User{Login: "alice", Password: "pw"})

	require.NoError(t, err)
	assert.Equal(t, int64(42), got.UserID)
	assert.Equal(t, tok, got.SignedString)
	assert.Equal(t, tok, a.Token())
}

func TestRegister_Conflict(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/user/register", r.URL.Path)
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte("login already exists"))
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	_, err := a.Register(context.Background(), models.User{Login: "alice"})

	require.ErrorIs(t, err, ErrConflict)
	assert.Contains(t, err.Error(), "login already exists")
	assert.Empty(t, a.Token())
}

func TestLogin_MissingAuthorizationHeader(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	_, err := a.Login(context.Background(), models.User{Login: "alice"})

	require.ErrorIs(t, err, ErrMalformedResponse)
}

// ── PushBatch ───────────────────────────────────────────────────────────────

func TestPushBatch_Success(t *testing.T) {
	ops := []models.SyncOperation{
		{ID: "op-1", Kind: models.OperationCreate, EntityType: "scene", EntityID: "s1", ProjectID: 1, Payload: json.RawMessage(`{"title":"A"}`)},
		{ID: "op-2", Kind: models.OperationDelete, EntityType: "scene", EntityID: "s2", ProjectID: 1},
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/sync/push", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))

		var req models.PushRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "device-1", req.Device.ID)
		assert.Len(t, req.Operations, 2)

		want, err := utils.HashJSON(req.Operations, testHashKey)
		assert.NoError(t, err)
		assert.Equal(t, want, req.Hash)

		writeJSON(t, w, models.PushResponse{Results: []models.OperationResult{
			{OperationID: "op-1", Status: models.ResultSuccess, Version: 1},
			{OperationID: "op-2", Status: models.ResultConflict, Remote: &models.EntityVersion{Version: 3}},
		}})
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	a.SetToken("tok")

	resp, err := a.PushBatch(context.Background(), models.PushRequest{
		Device:     models.DeviceDescriptor{ID: "device-1", ProtocolVersion: models.ProtocolVersion},
		Operations: ops,
	})

	require.NoError(t, err)
	require.Len(t, resp.Results, 2)
	assert.Equal(t, models.ResultSuccess, resp.Results[0].Status)
	require.NotNil(t, resp.Results[1].Remote)
	assert.Equal(t, int64(3), resp.Results[1].Remote.Version)
}

func TestPushBatch_ResultCountMismatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, models.PushResponse{})
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	_, err := a.PushBatch(context.Background(), models.PushRequest{Operations: []models.SyncOperation{{ID: "op-1"}}})

	require.ErrorIs(t, err, ErrMalformedResponse)
}

func TestPushBatch_StatusMapping(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		want      error
		transient bool
	}{
		{"bad request", http.StatusBadRequest, ErrBadRequest, false},
		{"unauthorized", http.StatusUnauthorized, ErrUnauthorized, false},
		{"forbidden", http.StatusForbidden, ErrForbidden, false},
		{"internal", http.StatusInternalServerError, ErrInternalServerError, true},
		{"bad gateway", http.StatusBadGateway, ErrBadGateway, true},
		{"unavailable", http.StatusServiceUnavailable, ErrServerUnavailable, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))
			defer srv.Close()

			a := newTestAdapter(t, srv.URL)
			_, err := a.PushBatch(context.Background(), models.PushRequest{Operations: []models.SyncOperation{{ID: "op-1"}}})

			require.ErrorIs(t, err, tt.want)
			assert.Equal(t, tt.transient, IsTransient(err))
		})
	}
}

func TestPushBatch_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	a := newTestAdapter(t, url)
	_, err := a.PushBatch(context.Background(), models.PushRequest{Operations: []models.SyncOperation{{ID: "op-1"}}})

	require.ErrorIs(t, err, ErrNetwork)
	assert.True(t, IsTransient(err))
}

// ── PullChanges ─────────────────────────────────────────────────────────────

func TestPullChanges_Success(t *testing.T) {
	serverTime := time.Date(2026, 3, 1, 11, 0, 0, 0, time.UTC)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/sync/changes", r.URL.Path)
		assert.Equal(t, "device-1", r.URL.Query().Get("device_id"))
		assert.Equal(t, "4", r.URL.Query().Get("after"))

		writeJSON(t, w, models.PullResponse{
			Changes:    []models.RemoteChange{{ChangeID: 5, EntityType: "scene", EntityID: "s1", Version: 2}},
			Cursor:     5,
			ServerTime: serverTime,
		})
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	resp, err := a.PullChanges(context.Background(), models.PullRequest{DeviceID: "device-1", After: 4})

	require.NoError(t, err)
	require.Len(t, resp.Changes, 1)
	assert.Equal(t, int64(5), resp.Changes[0].ChangeID)
	assert.Equal(t, int64(5), resp.Cursor)
	assert.True(t, serverTime.Equal(resp.ServerTime))
}

func TestPullChanges_ZeroCursorOmitted(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.False(t, r.URL.Query().Has("after"))
		writeJSON(t, w, models.PullResponse{})
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	_, err := a.PullChanges(context.Background(), models.PullRequest{DeviceID: "d"})
	require.NoError(t, err)
}

func TestPullChanges_MalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("not json"))
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	_, err := a.PullChanges(context.Background(), models.PullRequest{DeviceID: "d"})
	require.ErrorIs(t, err, ErrMalformedResponse)
}

// ── Projects / Health ───────────────────────────────────────────────────────

func TestListProjects(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/projects", r.URL.Path)
		writeJSON(t, w, []models.Project{{ProjectID: 1, Name: "Saga"}, {ProjectID: 2, Name: "Drafts"}})
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	got, err := a.ListProjects(context.Background())

	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestCreateProject(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		var p models.Project
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&p))
		assert.Equal(t, "Saga", p.Name)
		writeJSON(t, w, models.Project{ProjectID: 9, Name: p.Name, Role: models.RoleOwner})
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	got, err := a.CreateProject(context.Background(), "Saga")

	require.NoError(t, err)
	assert.Equal(t, int64(9), got.ProjectID)
	assert.Equal(t, models.RoleOwner, got.Role)
}

func TestHealth(t *testing.T) {
	var unhealthy atomic.Bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/health", r.URL.Path)
		if unhealthy.Load() {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	require.NoError(t, a.Health(context.Background()))

	unhealthy.Store(true)
	require.ErrorIs(t, a.Health(context.Background()), ErrServerUnavailable)
}
