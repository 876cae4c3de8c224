package reactive

// Selector is a derived membership test over a single selected key.
//
// A naive per-row memo ("is this row selected?") makes every row depend on
// the selected cell, so each selection change re-evaluates all of them.
// Selector instead tracks the source once and keeps one subscriber bucket
// per key that has been asked about. When the selected key changes from A
// to B only the readers of A and B are notified.
type Selector[K comparable] struct {
	rt    *Runtime
	owner *Scope

	current K
	buckets map[K]*signalBase

	effect     *Effect
	isDisposed bool
}

// NewSelector creates a selector owned by scope s. source is tracked: its
// reads decide when the selector re-evaluates.
//
// Example:
//
//	isSelected := reactive.NewSelector(scope, selected.Get)
//	reactive.CreateEffect(rowScope, func() reactive.Cleanup {
//	    highlight(isSelected.Is(rowID))
//	    return nil
//	})
func NewSelector[K comparable](s *Scope, source func() K) *Selector[K] {
	s.mustLive("NewSelector")
	sel := &Selector[K]{
		rt:      s.rt,
		owner:   s,
		buckets: make(map[K]*signalBase),
	}
	s.own(sel)

	first := true
	sel.effect = CreateEffect(s, func() Cleanup {
		next := source()
		if first {
			first = false
			sel.current = next
			return nil
		}
		prev := sel.current
		if prev == next {
			return nil
		}
		sel.current = next
		sel.rt.Untrack(func() {
			if b := sel.buckets[prev]; b != nil {
				b.notify()
			}
			if b := sel.buckets[next]; b != nil {
				b.notify()
			}
		})
		return nil
	})
	return sel
}

// Is reports whether k is the selected key. The running computation is
// subscribed to changes of k's membership only.
func (sel *Selector[K]) Is(k K) bool {
	if sel.isDisposed {
		fail("Selector.Is", sel.effect.id, ErrDisposed)
	}
	if c := sel.rt.listener; c != nil && !c.disposed() {
		b := sel.bucket(k)
		if c.addSource(b) {
			b.subscribe(c)
		}
	}
	return sel.current == k
}

// Selected returns the current key without subscribing.
func (sel *Selector[K]) Selected() K {
	if sel.isDisposed {
		fail("Selector.Selected", sel.effect.id, ErrDisposed)
	}
	return sel.current
}

// Keys returns the number of keys that currently have subscribers.
func (sel *Selector[K]) Keys() int {
	return len(sel.buckets)
}

func (sel *Selector[K]) bucket(k K) *signalBase {
	if b, ok := sel.buckets[k]; ok {
		return b
	}
	b := &signalBase{
		id: nextID(),
		rt: sel.rt,
	}
	b.onEmpty = func() {
		if sel.buckets[k] == b {
			delete(sel.buckets, k)
		}
	}
	sel.buckets[k] = b
	return b
}

func (sel *Selector[K]) dispose() {
	if sel.isDisposed {
		return
	}
	sel.isDisposed = true
	sel.effect.dispose()
	for _, b := range sel.buckets {
		b.release()
	}
	clear(sel.buckets)
}
