package cache

import (
	"context"
	"strconv"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/kiuyha/portfolio-content/internal/logger"
	"github.com/kiuyha/portfolio-content/internal/telemetry"
)

// memo is the single-flight memoization both strategies build on
type memo struct {
	strategy string
	logger   *zap.SugaredLogger
	metrics  *telemetry.CacheMetrics

	mu         sync.Mutex
	values     map[string]any
	generation uint64
	group      singleflight.Group
}

func newMemo(strategy string, o options) *memo {
	if o.logger == nil {
		o.logger = logger.Get()
	}
	return &memo{
		strategy: strategy,
		logger:   o.logger,
		metrics:  o.metrics,
		values:   map[string]any{},
	}
}

// GetOrCompute implements Cache
func (m *memo) GetOrCompute(ctx context.Context, key string, compute ComputeFunc) (any, error) {
	m.mu.Lock()
	if v, ok := m.values[key]; ok {
		m.mu.Unlock()
		m.metrics.RecordLookup(ctx, m.strategy, key, true)
		return v, nil
	}
	gen := m.generation
	m.mu.Unlock()

	m.metrics.RecordLookup(ctx, m.strategy, key, false)

	// Flights are scoped to a generation so callers arriving after Clear start fresh.
	flightKey := strconv.FormatUint(gen, 10) + "/" + key
	ch := m.group.DoChan(flightKey, func() (any, error) {
		// a flight that finished between our miss and DoChan already stored the value
		m.mu.Lock()
		if v, ok := m.values[key]; ok && m.generation == gen {
			m.mu.Unlock()
			return v, nil
		}
		m.mu.Unlock()

		// the computation outlives any single waiter
		v, err := compute(context.WithoutCancel(ctx))
		if err != nil {
			m.logger.Debugw("Cache computation failed", "strategy", m.strategy, "key", key, "error", err)
			return nil, err
		}
		m.mu.Lock()
		if m.generation == gen {
			m.values[key] = v
		}
		m.mu.Unlock()
		return v, nil
	})

	select {
	case res := <-ch:
		return res.Val, res.Err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Clear implements Cache
func (m *memo) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values = map[string]any{}
	m.generation++
}

// Len returns the number of cached keys
func (m *memo) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.values)
}
