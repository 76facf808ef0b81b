package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v5"
	"go.uber.org/zap"

	"github.com/kiuyha/portfolio-content/internal/logger"
)

// ErrMiss is returned by SharedStore.Get when the key is absent
var ErrMiss = errors.New("shared cache miss")

var (
	// errPending signals that another process still holds the compute lock
	errPending = errors.New("shared value is still being computed")

	errLockAcquired = errors.New("shared compute lock acquired")
)

// SharedStore is a cross-process key/value store used to share one fetch between
// parallel build processes
type SharedStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	// Acquire takes the compute lock for key. It returns false when another process
	// holds it.
	Acquire(ctx context.Context, key string) (bool, error)
	Release(ctx context.Context, key string) error
}

// Partial is implemented by values that may hold fallback data. A partial value is
// returned to its caller but never published to the shared store.
type Partial interface {
	Partial() bool
}

// SharedOptions tunes how long a process waits for another process's computation
type SharedOptions struct {
	InitialInterval time.Duration
	MaxInterval     time.Duration
	MaxElapsed      time.Duration
	// Logger defaults to the process logger
	Logger *zap.SugaredLogger
}

// DefaultSharedOptions waits up to a minute, polling between 100ms and 2s apart
var DefaultSharedOptions = SharedOptions{
	InitialInterval: 100 * time.Millisecond,
	MaxInterval:     2 * time.Second,
	MaxElapsed:      time.Minute,
}

// Shared wraps compute so its result is read from and written to store as JSON.
// The process that takes the lock computes; others poll until the value appears or the
// lock is free again, and compute locally if neither happens in time. Store failures
// fall back to compute. A nil store returns compute unchanged.
func Shared[T any](store SharedStore, key string, compute func(ctx context.Context) (T, error)) func(ctx context.Context) (T, error) {
	return SharedWithOptions(store, key, DefaultSharedOptions, compute)
}

// SharedWithOptions is Shared with explicit polling options
func SharedWithOptions[T any](
	store SharedStore,
	key string,
	opts SharedOptions,
	compute func(ctx context.Context) (T, error),
) func(ctx context.Context) (T, error) {
	if store == nil {
		return compute
	}
	log := opts.Logger
	if log == nil {
		log = logger.Get()
	}

	return func(ctx context.Context) (T, error) {
		b := backoff.NewExponentialBackOff()
		b.InitialInterval = opts.InitialInterval
		b.MaxInterval = opts.MaxInterval

		v, err := backoff.Retry(ctx, func() (T, error) {
			v, err := sharedGet[T](ctx, store, key)
			if err == nil {
				return v, nil
			}
			if !errors.Is(err, ErrMiss) {
				return v, backoff.Permanent(err)
			}
			acquired, err := store.Acquire(ctx, key)
			if err != nil {
				return v, backoff.Permanent(err)
			}
			if acquired {
				return v, backoff.Permanent(errLockAcquired)
			}
			return v, errPending
		}, backoff.WithBackOff(b), backoff.WithMaxElapsedTime(opts.MaxElapsed))

		switch {
		case err == nil:
			return v, nil
		case errors.Is(err, errLockAcquired):
			return computeAndPublish(ctx, store, key, log, compute)
		case errors.Is(err, errPending):
			log.Warnw("Shared value did not become available, computing locally", "key", key)
		default:
			log.Warnw("Shared cache unavailable, computing locally", "key", key, "error", err)
		}
		return compute(ctx)
	}
}

func computeAndPublish[T any](
	ctx context.Context,
	store SharedStore,
	key string,
	log *zap.SugaredLogger,
	compute func(ctx context.Context) (T, error),
) (T, error) {
	defer func() {
		if err := store.Release(context.WithoutCancel(ctx), key); err != nil {
			log.Warnw("Failed to release shared cache lock", "key", key, "error", err)
		}
	}()

	// another process may have published between the miss and the lock
	if v, err := sharedGet[T](ctx, store, key); err == nil {
		return v, nil
	}

	v, err := compute(ctx)
	if err != nil {
		return v, err
	}
	if p, ok := any(v).(Partial); ok && p.Partial() {
		log.Infow("Not sharing value that fell back to defaults", "key", key)
		return v, nil
	}

	data, err := json.Marshal(v)
	if err != nil {
		log.Warnw("Failed to encode shared value", "key", key, "error", err)
		return v, nil
	}
	if err := store.Set(ctx, key, data); err != nil {
		log.Warnw("Failed to publish shared value", "key", key, "error", err)
	}
	return v, nil
}

func sharedGet[T any](ctx context.Context, store SharedStore, key string) (T, error) {
	var v T
	data, err := store.Get(ctx, key)
	if err != nil {
		return v, err
	}
	if err := json.Unmarshal(data, &v); err != nil {
		return v, fmt.Errorf("failed to decode shared value %q: %w", key, err)
	}
	return v, nil
}
