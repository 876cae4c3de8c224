package reactive

// Listener is anything that can be notified when a dependency changes.
// It is implemented by effects and memos.
type Listener interface {
	// MarkDirty notifies the listener that one of its dependencies changed.
	// Effects re-run (or queue when batching); memos invalidate their
	// cached value and propagate to their own subscribers.
	MarkDirty()

	// ID returns a unique identifier for this listener.
	ID() uint64
}

// Cleanup is returned by an effect body. It runs before the effect re-runs
// and when the effect is disposed.
type Cleanup func()

// Reader is a tracked read of a value. Signal, Memo and ReaderFunc
// implement it.
type Reader[T any] interface {
	Get() T
}

// ReaderFunc adapts a plain function to Reader. Signals read inside the
// function are tracked by the caller's computation.
type ReaderFunc[T any] func() T

// Get calls f.
func (f ReaderFunc[T]) Get() T { return f() }

// computation is a Listener that records the signals it reads.
type computation interface {
	Listener

	// addSource records b as a dependency. It reports false when b was
	// already recorded during the current run.
	addSource(b *signalBase) bool

	disposed() bool
}

// disposer is something a Scope tears down.
type disposer interface {
	dispose()
}
