package store

import (
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

// ErrorClassification tells the push path whether a failed apply is
// reported to the device as "error", so the operation is retried, or as
// "invalid", so it is dropped from the queue.
type ErrorClassification int

const (
	NonRetryable ErrorClassification = iota
	Retryable
)

// PostgresErrorClassifier implements [ErrorClassificator] for the server
// database.
type PostgresErrorClassifier struct{}

func NewPostgresErrorClassifier() *PostgresErrorClassifier {
	return &PostgresErrorClassifier{}
}

// Classify treats lost connections, rollbacks forced by concurrent pushes
// (serialization failures, deadlocks) and a database that is starting up or
// out of resources as transient. Constraint violations, bad data and
// everything unknown are final.
func (c *PostgresErrorClassifier) Classify(err error) ErrorClassification {
	if err == nil {
		return NonRetryable
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return classifyPgCode(pgErr.Code)
	}

	// the statement never reached the server
	if pgconn.SafeToRetry(err) || pgconn.Timeout(err) {
		return Retryable
	}
	return NonRetryable
}

func classifyPgCode(code string) ErrorClassification {
	switch {
	case pgerrcode.IsConnectionException(code),
		pgerrcode.IsTransactionRollback(code),
		pgerrcode.IsOperatorIntervention(code) && code != pgerrcode.QueryCanceled,
		pgerrcode.IsInsufficientResources(code):
		return Retryable
	default:
		return NonRetryable
	}
}
