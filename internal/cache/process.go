package cache

// Process is the build-mode strategy: one value per key for the lifetime of the process.
// Construct one per build and inject it; call Clear to isolate tests.
type Process struct {
	*memo
	shared SharedStore
}

var _ Cache = (*Process)(nil)

// NewProcess creates an empty process-lifetime cache
func NewProcess(opts ...Option) *Process {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	return &Process{memo: newMemo("process", o), shared: o.shared}
}

// SharedStore returns the cross-process store, or nil
func (p *Process) SharedStore() SharedStore {
	return p.shared
}

// SharedOptions returns the default polling options logging through this cache's logger
func (p *Process) SharedOptions() SharedOptions {
	opts := DefaultSharedOptions
	opts.Logger = p.logger
	return opts
}
