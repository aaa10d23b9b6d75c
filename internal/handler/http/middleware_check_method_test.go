// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMethodNotFound(t *testing.T) {
	h, _ := newHandlerWithMocks(t, "")
	router := h.Init()

	tests := []struct {
		method string
		path   string
	}{
		{http.MethodDelete, "/api/sync/push"},
		{http.MethodPut, "/api/projects"},
		{http.MethodPost, "/api/health"},
		{http.MethodPost, "/api/collab/doc-1/participants"},
		{http.MethodPatch, "/api/collab/ws"},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, nil))

			assert.Equal(t, http.StatusNotFound, rec.Code)
			assert.Empty(t, rec.Header().Get("Allow"))
		})
	}
}
