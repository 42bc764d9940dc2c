package store

import (
	"context"
	"log/slog"
	"time"

	"github.com/preston-bernstein/league-stats-service/internal/logging"
)

const (
	defaultRetryAttempts = 3
	defaultBackoff       = 200 * time.Millisecond
)

type backoffFunc func(attempt int) time.Duration

// retryingBlobs retries failed calls on networked backends with linear backoff.
type retryingBlobs struct {
	inner       Blobs
	logger      *slog.Logger
	maxAttempts int
	backoffFn   backoffFunc
}

// NewRetrying wraps inner with retries. If maxAttempts/backoff are <= 0, defaults are used.
func NewRetrying(inner Blobs, logger *slog.Logger, maxAttempts int, backoff time.Duration) Blobs {
	if maxAttempts <= 0 {
		maxAttempts = defaultRetryAttempts
	}
	if backoff <= 0 {
		backoff = defaultBackoff
	}
	return &retryingBlobs{
		inner:       inner,
		logger:      logger,
		maxAttempts: maxAttempts,
		backoffFn: func(attempt int) time.Duration {
			return time.Duration(attempt) * backoff
		},
	}
}

func (r *retryingBlobs) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var (
		value []byte
		found bool
	)
	err := r.do(ctx, OpGet, key, func() error {
		var err error
		value, found, err = r.inner.Get(ctx, key)
		return err
	})
	if err != nil {
		return nil, false, err
	}
	return value, found, nil
}

func (r *retryingBlobs) Put(ctx context.Context, key string, value []byte) error {
	return r.do(ctx, OpPut, key, func() error {
		return r.inner.Put(ctx, key, value)
	})
}

func (r *retryingBlobs) Delete(ctx context.Context, key string) error {
	return r.do(ctx, OpDelete, key, func() error {
		return r.inner.Delete(ctx, key)
	})
}

func (r *retryingBlobs) Ping(ctx context.Context) error {
	return r.inner.Ping(ctx)
}

func (r *retryingBlobs) Close() error {
	return r.inner.Close()
}

func (r *retryingBlobs) do(ctx context.Context, op, key string, call func() error) error {
	var lastErr error

	for attempt := 1; attempt <= r.maxAttempts; attempt++ {
		err := call()
		if err == nil {
			return nil
		}
		lastErr = err

		if attempt == r.maxAttempts {
			break
		}

		r.logWarn(ctx, "store call retry", "op", op, "key", key, "attempt", attempt, "max_attempts", r.maxAttempts, "err", err)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(r.backoffFn(attempt)):
		}
	}

	r.logWarn(ctx, "store call failed", "op", op, "key", key, "attempts", r.maxAttempts, "err", lastErr)
	return lastErr
}

func (r *retryingBlobs) logWarn(ctx context.Context, msg string, args ...any) {
	logging.Warn(logging.FromContext(ctx, r.logger), msg, args...)
}
