package service

import (
	"time"

	"github.com/MKhiriev/go-story-sync/models"
)

const (
	defaultMaxRetries     = 3
	defaultRetryBaseDelay = time.Second
	defaultBatchSize      = 10
)

// RetryPolicy decides what happens to an operation the server reported as
// failed.
type RetryPolicy struct {
	MaxRetries int
	BaseDelay  time.Duration
}

// NewRetryPolicy returns a policy with the given cap and base delay,
// falling back to 3 retries and one second for non-positive values.
func NewRetryPolicy(maxRetries int, baseDelay time.Duration) RetryPolicy {
	if maxRetries <= 0 {
		maxRetries = defaultMaxRetries
	}
	if baseDelay <= 0 {
		baseDelay = defaultRetryBaseDelay
	}
	return RetryPolicy{MaxRetries: maxRetries, BaseDelay: baseDelay}
}

// Next records one more failed attempt on op. Once the retry count reaches
// the cap the operation becomes failed and permanent is true. Otherwise the
// next attempt is scheduled 2^RetryCount base delays from now.
func (p RetryPolicy) Next(op models.SyncOperation, errMsg string, now time.Time) (next models.SyncOperation, permanent bool) {
	op.RetryCount++
	op.LastError = errMsg

	if op.RetryCount >= p.MaxRetries {
		op.Status = models.OperationFailed
		op.NextRetryAt = nil
		return op, true
	}

	at := now.Add(p.Delay(op.RetryCount))
	op.NextRetryAt = &at
	return op, false
}

// Delay returns the backoff delay after retryCount failed attempts.
func (p RetryPolicy) Delay(retryCount int) time.Duration {
	if retryCount < 0 {
		retryCount = 0
	}
	return p.BaseDelay * time.Duration(1<<uint(retryCount))
}
