package store

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/stretchr/testify/assert"
)

func TestPostgresErrorClassifier(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorClassification
	}{
		{"nil", nil, NonRetryable},
		{"serialization failure", pgError(pgerrcode.SerializationFailure), Retryable},
		{"deadlock", pgError(pgerrcode.DeadlockDetected), Retryable},
		{"connection failure", pgError(pgerrcode.ConnectionFailure), Retryable},
		{"database starting up", pgError(pgerrcode.CannotConnectNow), Retryable},
		{"too many connections", pgError(pgerrcode.TooManyConnections), Retryable},
		{"wrapped deadlock", fmt.Errorf("%w: %w", ErrExecutingStatement, pgError(pgerrcode.DeadlockDetected)), Retryable},
		{"statement cancelled", pgError(pgerrcode.QueryCanceled), NonRetryable},
		{"unique violation", pgError(pgerrcode.UniqueViolation), NonRetryable},
		{"foreign key", pgError(pgerrcode.ForeignKeyViolation), NonRetryable},
		{"bad json payload", pgError(pgerrcode.InvalidTextRepresentation), NonRetryable},
		{"undefined table", pgError(pgerrcode.UndefinedTable), NonRetryable},
		{"plain error", errors.New("plain"), NonRetryable},
		{"context cancelled", context.Canceled, NonRetryable},
	}

	c := NewPostgresErrorClassifier()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Classify(tt.err))
		})
	}
}
