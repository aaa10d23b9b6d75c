// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetUserIDFromContext(t *testing.T) {
	tests := []struct {
		name   string
		ctx    context.Context
		wantID int64
		wantOK bool
	}{
		{name: "set by auth", ctx: context.WithValue(context.Background(), UserIDCtxKey, int64(42)), wantID: 42, wantOK: true},
		{name: "missing", ctx: context.Background()},
		{name: "plain int", ctx: context.WithValue(context.Background(), UserIDCtxKey, 42)},
		// ключ с тем же текстом, но другого типа, не подходит
		{name: "string key", ctx: context.WithValue(context.Background(), "userID", int64(42))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, ok := GetUserIDFromContext(tt.ctx)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantID, id)
		})
	}
}

func TestTraceIDFromContext(t *testing.T) {
	assert.Empty(t, TraceIDFromContext(context.Background()))

	ctx := WithTraceID(context.Background(), "round-1")
	assert.Equal(t, "round-1", TraceIDFromContext(ctx))
	assert.Equal(t, "traceID", traceIDCtxKey.String())
}
