package reactive

// Memo is a cached derived value that tracks its own dependencies.
//
// Memos are lazy: the computation runs on the first Get and again on the
// first Get after a dependency changed. A memo is itself a source: when it
// is invalidated it notifies its subscribers, who re-read it and trigger the
// recomputation. Chains of memos therefore propagate transitively.
type Memo[T any] struct {
	base  signalBase
	owner *Scope

	compute func() T
	value   T
	valid   bool

	// computing guards against a memo reading itself.
	computing bool

	sources    []*signalBase
	isDisposed bool
	runs       int
}

// NewMemo creates a memo owned by scope s. The computation does not run
// until the first Get or Peek.
func NewMemo[T any](s *Scope, compute func() T) *Memo[T] {
	s.mustLive("NewMemo")
	m := &Memo[T]{
		base: signalBase{
			id: nextID(),
			rt: s.rt,
		},
		owner:   s,
		compute: compute,
	}
	s.own(m)
	return m
}

// Get returns the memo's value, recomputing if necessary, and subscribes
// the running computation to the memo.
func (m *Memo[T]) Get() T {
	m.check("Memo.Get")
	m.base.rt.track(&m.base)
	if !m.valid {
		m.recompute()
	}
	return m.value
}

// Peek returns the memo's value without subscribing.
// It still recomputes an invalid value.
func (m *Memo[T]) Peek() T {
	m.check("Memo.Peek")
	if !m.valid {
		m.recompute()
	}
	return m.value
}

// MarkDirty invalidates the cached value and propagates to subscribers.
// Implements the Listener interface.
func (m *Memo[T]) MarkDirty() {
	if m.isDisposed || !m.valid {
		return
	}
	m.valid = false
	m.base.notify()
}

// ID returns the unique identifier for this memo.
// Implements the Listener interface.
func (m *Memo[T]) ID() uint64 {
	return m.base.id
}

// Runs returns how many times the computation has executed.
func (m *Memo[T]) Runs() int {
	return m.runs
}

func (m *Memo[T]) addSource(b *signalBase) bool {
	for _, s := range m.sources {
		if s == b {
			return false
		}
	}
	m.sources = append(m.sources, b)
	return true
}

func (m *Memo[T]) disposed() bool {
	return m.isDisposed
}

func (m *Memo[T]) recompute() {
	if m.computing {
		fail("Memo.Get", m.base.id, ErrCycle)
	}
	rt := m.base.rt
	rt.enter("Memo.recompute", m.base.id)
	defer rt.leave()

	m.computing = true
	defer func() { m.computing = false }()

	m.clearSources()
	m.runs++
	rt.stats.MemoRuns++

	var value T
	rt.withListener(m, func() {
		value = m.compute()
	})
	m.value = value
	m.valid = !m.isDisposed
}

func (m *Memo[T]) clearSources() {
	for _, source := range m.sources {
		source.unsubscribe(m)
	}
	clear(m.sources)
	m.sources = m.sources[:0]
}

func (m *Memo[T]) dispose() {
	if m.isDisposed {
		return
	}
	m.isDisposed = true
	m.valid = false
	m.clearSources()
	m.sources = nil
	m.base.release()
}

func (m *Memo[T]) check(op string) {
	if m.isDisposed {
		fail(op, m.base.id, ErrDisposed)
	}
}
