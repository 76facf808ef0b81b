package sources

import (
	"context"
	"slices"
	"sync"

	"github.com/kiuyha/portfolio-content/internal/schema"
)

type fallbacksKey struct{}

// Fallbacks collects the kinds that resolved to their default during one load. It is
// carried on the context so the adapter interfaces keep returning plain values.
type Fallbacks struct {
	mu    sync.Mutex
	kinds []schema.Kind
}

// WithFallbacks returns a context whose fetches report into the returned Fallbacks
func WithFallbacks(ctx context.Context) (context.Context, *Fallbacks) {
	f := &Fallbacks{}
	return context.WithValue(ctx, fallbacksKey{}, f), f
}

// Add records that kind fell back to its default
func (f *Fallbacks) Add(kind schema.Kind) {
	if f == nil {
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if !slices.Contains(f.kinds, kind) {
		f.kinds = append(f.kinds, kind)
	}
}

// Kinds returns the recorded kinds in sorted order, or nil when nothing fell back
func (f *Fallbacks) Kinds() []string {
	if f == nil {
		return nil
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.kinds) == 0 {
		return nil
	}
	out := make([]string, 0, len(f.kinds))
	for _, k := range f.kinds {
		out = append(out, string(k))
	}
	slices.Sort(out)
	return out
}

func markFallback(ctx context.Context, kind schema.Kind) {
	f, _ := ctx.Value(fallbacksKey{}).(*Fallbacks)
	f.Add(kind)
}
