// Package utils holds small helpers shared by the server and the client:
// request context keys, the batch integrity hash, JSON responses, the resty
// client and JWT handling.
package utils

import "context"

type contextKey string

func (c contextKey) String() string {
	return string(c)
}

// UserIDCtxKey holds the authenticated user id, an int64, set by the auth
// middlewares.
var UserIDCtxKey = contextKey("userID")

var traceIDCtxKey = contextKey("traceID")

// GetUserIDFromContext returns the user id and false when the key is
// missing or holds another type.
func GetUserIDFromContext(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(UserIDCtxKey).(int64)
	return userID, ok
}

// WithTraceID tags ctx with the id of a sync round. Requests built from ctx
// carry it to the server.
func WithTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, traceIDCtxKey, traceID)
}

// TraceIDFromContext returns the round id or an empty string.
func TraceIDFromContext(ctx context.Context) string {
	traceID, _ := ctx.Value(traceIDCtxKey).(string)
	return traceID
}
