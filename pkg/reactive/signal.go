package reactive

// indexThreshold is the subscriber count above which signalBase keeps an
// id index so unsubscribe stays O(1).
const indexThreshold = 8

// signalBase provides type-erased subscriber management.
// It is embedded in Signal[T], Memo[T] and the per-key buckets of Selector.
//
// Subscribers are kept in registration order. Unsubscribing leaves a nil
// hole that is compacted lazily, so notification order is stable.
type signalBase struct {
	id uint64
	rt *Runtime

	subs  []computation
	live  int
	index map[uint64]int

	// onEmpty runs when the last subscriber leaves.
	onEmpty func()
}

// subscribe appends c to the subscribers. The caller guarantees, through
// computation.addSource, that c is not already subscribed.
func (s *signalBase) subscribe(c computation) {
	s.subs = append(s.subs, c)
	s.live++
	if s.index != nil {
		s.index[c.ID()] = len(s.subs) - 1
	} else if s.live > indexThreshold {
		s.reindex()
	}
}

// unsubscribe removes c from the subscribers, preserving the order of the rest.
func (s *signalBase) unsubscribe(c computation) {
	i := s.find(c.ID())
	if i < 0 {
		return
	}
	s.subs[i] = nil
	s.live--
	if s.index != nil {
		delete(s.index, c.ID())
	}

	if s.live == 0 {
		s.subs = s.subs[:0]
		s.index = nil
		if s.onEmpty != nil {
			s.onEmpty()
		}
		return
	}
	if holes := len(s.subs) - s.live; holes > indexThreshold && holes*2 > len(s.subs) {
		s.compact()
	}
}

func (s *signalBase) find(id uint64) int {
	if s.index != nil {
		if i, ok := s.index[id]; ok {
			return i
		}
		return -1
	}
	for i, c := range s.subs {
		if c != nil && c.ID() == id {
			return i
		}
	}
	return -1
}

func (s *signalBase) compact() {
	n := 0
	for _, c := range s.subs {
		if c != nil {
			s.subs[n] = c
			n++
		}
	}
	clear(s.subs[n:])
	s.subs = s.subs[:n]
	if s.index != nil {
		s.reindex()
	}
}

func (s *signalBase) reindex() {
	s.index = make(map[uint64]int, len(s.subs))
	for i, c := range s.subs {
		if c != nil {
			s.index[c.ID()] = i
		}
	}
}

// notify marks every current subscriber dirty, in registration order.
// It iterates a copy, so subscribers that unsubscribe or dispose during
// the walk are skipped by their own disposed check.
func (s *signalBase) notify() {
	if s.live == 0 {
		return
	}
	subs := make([]computation, 0, s.live)
	for _, c := range s.subs {
		if c != nil {
			subs = append(subs, c)
		}
	}
	s.rt.stats.Notifications += uint64(len(subs))
	for _, c := range subs {
		c.MarkDirty()
	}
}

// release drops every subscriber without notifying them.
func (s *signalBase) release() {
	clear(s.subs)
	s.subs = nil
	s.index = nil
	s.live = 0
}

// subscribers returns the number of live subscribers.
func (s *signalBase) subscribers() int {
	return s.live
}

// Signal is a reactive value container, the Cell of the reactive graph.
// Reading a Signal's value while a computation runs subscribes that
// computation; writing it re-runs every subscriber before returning.
type Signal[T any] struct {
	base  signalBase
	owner *Scope
	value T

	// equal, when set, suppresses writes of an equal value.
	equal func(T, T) bool
}

// SignalOption configures a Signal.
type SignalOption[T any] func(*Signal[T])

// WithEquals makes writes that are equal to the current value no-ops.
// By default every write notifies, so this changes observable re-run counts.
func WithEquals[T any](fn func(a, b T) bool) SignalOption[T] {
	return func(s *Signal[T]) {
		s.equal = fn
	}
}

// NewSignal creates a signal owned by scope s.
func NewSignal[T any](s *Scope, initial T, opts ...SignalOption[T]) *Signal[T] {
	s.mustLive("NewSignal")
	sig := &Signal[T]{
		base: signalBase{
			id: nextID(),
			rt: s.rt,
		},
		owner: s,
		value: initial,
	}
	for _, opt := range opts {
		opt(sig)
	}
	s.cells = append(s.cells, &sig.base)
	return sig
}

// Get returns the current value and subscribes the running computation.
func (s *Signal[T]) Get() T {
	s.check("Signal.Get")
	s.base.rt.track(&s.base)
	return s.value
}

// Peek returns the current value without subscribing.
func (s *Signal[T]) Peek() T {
	s.check("Signal.Peek")
	return s.value
}

// Set stores value and synchronously re-runs every subscriber.
func (s *Signal[T]) Set(value T) {
	s.check("Signal.Set")
	if s.equal != nil && s.equal(s.value, value) {
		return
	}
	s.value = value
	s.base.rt.stats.Writes++
	s.base.notify()
}

// Update replaces the value with fn(current). The read is not tracked, so
// a computation calling Update does not subscribe to s.
func (s *Signal[T]) Update(fn func(T) T) {
	s.check("Signal.Update")
	s.Set(fn(s.value))
}

// ID returns the unique identifier for this signal.
func (s *Signal[T]) ID() uint64 {
	return s.base.id
}

// Subscribers returns the number of computations currently subscribed.
func (s *Signal[T]) Subscribers() int {
	return s.base.subscribers()
}

func (s *Signal[T]) check(op string) {
	if s.owner.isDisposed {
		fail(op, s.base.id, ErrDisposed)
	}
}
