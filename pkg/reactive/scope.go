package reactive

// Scope is an ownership boundary for reactive primitives.
//
// Scopes form a tree. When a Scope is disposed, its child scopes are
// disposed first (last created first), then every computation it owns is
// unsubscribed from all of its sources, then the signals it owns are
// released and finally its cleanups run in reverse registration order.
//
// Children are kept in an intrusive list so that detaching one of
// thousands of row scopes is O(1).
type Scope struct {
	id     uint64
	rt     *Runtime
	parent *Scope

	firstChild, lastChild *Scope
	prevSibling           *Scope
	nextSibling           *Scope
	childCount            int

	// owned are the computations created in this scope.
	owned []disposer

	// cells are the signals created in this scope.
	cells []*signalBase

	// cleanups are functions registered via OnCleanup.
	cleanups []func()

	isDisposed bool
}

func newScope(rt *Runtime, parent *Scope) *Scope {
	s := &Scope{
		id:     nextID(),
		rt:     rt,
		parent: parent,
	}
	if parent != nil {
		parent.appendChild(s)
	}
	rt.stats.Scopes++
	return s
}

// ID returns the unique identifier for this scope.
func (s *Scope) ID() uint64 {
	return s.id
}

// Runtime returns the graph this scope belongs to.
func (s *Scope) Runtime() *Runtime {
	return s.rt
}

// Parent returns the parent scope, or nil for a root.
func (s *Scope) Parent() *Scope {
	return s.parent
}

// Children returns the number of live child scopes.
func (s *Scope) Children() int {
	return s.childCount
}

// IsDisposed reports whether Dispose has been called.
func (s *Scope) IsDisposed() bool {
	return s.isDisposed
}

// Child creates a nested scope that is disposed together with s.
func (s *Scope) Child() *Scope {
	s.mustLive("Scope.Child")
	return newScope(s.rt, s)
}

// OnCleanup registers fn to run when the scope is disposed. On a disposed
// scope fn runs immediately.
func (s *Scope) OnCleanup(fn func()) {
	if s.isDisposed {
		fn()
		return
	}
	s.cleanups = append(s.cleanups, fn)
}

// Dispose tears down the scope and everything it owns. It is idempotent,
// and it is safe to call from inside one of the scope's own computations:
// the running body completes but is never scheduled again.
func (s *Scope) Dispose() {
	if s.isDisposed {
		return
	}
	s.isDisposed = true
	s.rt.stats.Scopes--

	if s.parent != nil {
		s.parent.removeChild(s)
	}

	for c := s.lastChild; c != nil; {
		prev := c.prevSibling
		c.parent = nil
		c.prevSibling, c.nextSibling = nil, nil
		c.Dispose()
		c = prev
	}
	s.firstChild, s.lastChild = nil, nil
	s.childCount = 0

	s.rt.Untrack(func() {
		owned := s.owned
		s.owned = nil
		for _, d := range owned {
			d.dispose()
		}

		cells := s.cells
		s.cells = nil
		for _, c := range cells {
			c.release()
		}

		cleanups := s.cleanups
		s.cleanups = nil
		for i := len(cleanups) - 1; i >= 0; i-- {
			cleanups[i]()
		}
	})
}

func (s *Scope) own(d disposer) {
	s.owned = append(s.owned, d)
}

func (s *Scope) mustLive(op string) {
	if s == nil {
		panic(&Error{Op: op, Err: ErrNilScope})
	}
	if s.isDisposed {
		fail(op, s.id, ErrDisposed)
	}
}

func (s *Scope) appendChild(c *Scope) {
	c.prevSibling = s.lastChild
	if s.lastChild != nil {
		s.lastChild.nextSibling = c
	} else {
		s.firstChild = c
	}
	s.lastChild = c
	s.childCount++
}

func (s *Scope) removeChild(c *Scope) {
	if c.prevSibling != nil {
		c.prevSibling.nextSibling = c.nextSibling
	} else if s.firstChild == c {
		s.firstChild = c.nextSibling
	}
	if c.nextSibling != nil {
		c.nextSibling.prevSibling = c.prevSibling
	} else if s.lastChild == c {
		s.lastChild = c.prevSibling
	}
	c.prevSibling, c.nextSibling = nil, nil
	s.childCount--
}
