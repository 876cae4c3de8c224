package reactive

import (
	"log/slog"
	"sync"
)

// DefaultMaxDepth is the default limit on nested computation runs before the
// runtime reports a reactive cycle.
const DefaultMaxDepth = 1000

// Runtime is one reactive graph. It holds the tracking state that would
// otherwise be ambient: the computation currently collecting dependencies,
// the batch depth and the queue of effects deferred by Batch.
//
// A Runtime is not safe for concurrent use; see Do.
type Runtime struct {
	mu sync.Mutex

	// listener is the computation whose body is running.
	// nil means reads are not tracked.
	listener computation

	// depth counts nested computation runs for the cycle guard.
	depth    int
	maxDepth int

	// batchDepth tracks nested Batch calls.
	batchDepth int

	// pending holds effects marked dirty while batching, in first-dirty order.
	pending []*Effect

	stats  Stats
	logger *slog.Logger
}

// Stats are cumulative counters for one runtime. They are cheap to read
// and are the basis of the re-run assertions in tests.
type Stats struct {
	// EffectRuns counts effect body executions, including first runs.
	EffectRuns uint64

	// MemoRuns counts memo recomputations.
	MemoRuns uint64

	// Writes counts signal writes that notified subscribers.
	Writes uint64

	// Notifications counts MarkDirty deliveries.
	Notifications uint64

	// Effects and Scopes are the numbers of live effects and scopes.
	Effects int
	Scopes  int
}

// Option configures a Runtime.
type Option func(*Runtime)

// WithMaxDepth sets the nested-run limit that trips ErrCycle.
// Zero disables the guard.
func WithMaxDepth(n int) Option {
	return func(rt *Runtime) {
		rt.maxDepth = n
	}
}

// WithLogger sets the runtime's logger.
func WithLogger(l *slog.Logger) Option {
	return func(rt *Runtime) {
		if l != nil {
			rt.logger = l
		}
	}
}

// NewRuntime creates an empty reactive graph.
func NewRuntime(opts ...Option) *Runtime {
	rt := &Runtime{
		maxDepth: DefaultMaxDepth,
		logger:   slog.Default().With("component", "reactive"),
	}
	for _, opt := range opts {
		opt(rt)
	}
	return rt
}

// NewRoot creates a root scope in this runtime.
func (rt *Runtime) NewRoot() *Scope {
	return newScope(rt, nil)
}

// Logger returns the runtime's logger.
func (rt *Runtime) Logger() *slog.Logger {
	return rt.logger
}

// Stats returns a snapshot of the runtime counters.
func (rt *Runtime) Stats() Stats {
	return rt.stats
}

// Do runs fn while holding the runtime's lock. Every entry point that can
// touch the graph from another goroutine (event loops, timers, HTTP
// handlers) must go through Do. Calls to Do must not nest.
func (rt *Runtime) Do(fn func()) {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	fn()
}

// Untrack runs fn without tracking signal reads as dependencies of the
// running computation.
func (rt *Runtime) Untrack(fn func()) {
	rt.withListener(nil, fn)
}

// Batch defers effect re-runs until fn returns. Memos are still
// invalidated immediately. Effects dirtied more than once run once, in the
// order they were first dirtied. Batches nest; only the outermost flushes.
// If fn panics the queued effects are dropped.
func (rt *Runtime) Batch(fn func()) {
	rt.batchDepth++
	completed := false
	defer func() {
		rt.batchDepth--
		if rt.batchDepth > 0 {
			return
		}
		if completed {
			rt.flush()
		} else {
			rt.discard()
		}
	}()
	fn()
	completed = true
}

// withListener runs fn with c as the tracking target and restores the
// previous target afterwards, even if fn panics.
func (rt *Runtime) withListener(c computation, fn func()) {
	old := rt.listener
	rt.listener = c
	defer func() { rt.listener = old }()
	fn()
}

// track subscribes the running computation to b.
func (rt *Runtime) track(b *signalBase) {
	c := rt.listener
	if c == nil || c.disposed() {
		return
	}
	if c.addSource(b) {
		b.subscribe(c)
	}
}

// enter records one more level of nested computation. It panics with
// ErrCycle when the depth guard trips.
func (rt *Runtime) enter(op string, id uint64) {
	rt.depth++
	if rt.maxDepth > 0 && rt.depth > rt.maxDepth {
		rt.depth--
		rt.logger.Error("reactive cycle", "op", op, "id", id, "depth", rt.maxDepth)
		fail(op, id, ErrCycle)
	}
}

func (rt *Runtime) leave() {
	rt.depth--
}

func (rt *Runtime) enqueue(e *Effect) {
	if e.queued {
		return
	}
	e.queued = true
	rt.pending = append(rt.pending, e)
}

// flush runs queued effects until none remain. Effects dirtied by a flushed
// effect run eagerly because the batch is already closed.
func (rt *Runtime) flush() {
	for len(rt.pending) > 0 {
		queue := rt.pending
		rt.pending = nil
		for _, e := range queue {
			e.queued = false
			if !e.isDisposed {
				e.run()
			}
		}
	}
}

func (rt *Runtime) discard() {
	for _, e := range rt.pending {
		e.queued = false
	}
	rt.pending = nil
}
