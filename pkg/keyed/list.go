package keyed

import (
	"time"

	"github.com/vango-dev/reactor/pkg/dom"
	"github.com/vango-dev/reactor/pkg/reactive"
)

// Entry is the rendered state of one key.
type Entry[T any, K comparable] struct {
	Key  K
	Item T

	// Node is the row's root node.
	Node dom.Node

	// Scope owns every computation and signal created while rendering the
	// row. It is disposed before Node is detached.
	Scope *reactive.Scope

	index int
}

// Index returns the entry's position after the last pass.
func (e *Entry[T, K]) Index() int {
	return e.index
}

// List is a keyed list bound to a parent node.
type List[T any, K comparable] struct {
	doc    dom.Document
	parent dom.Node
	scope  *reactive.Scope
	effect *reactive.Effect

	key    func(T) K
	render func(*reactive.Scope, T) dom.Node
	config

	entries map[K]*Entry[T, K]
	order   []*Entry[T, K]

	passes int
	last   Stats
}

// For renders each into parent and keeps it in sync. The list is owned by
// a child scope of s; each row gets its own child scope of that.
//
// each is tracked: the list reconciles whenever it changes. render runs
// untracked, so signals it reads directly subscribe nothing; bindings it
// creates in the row scope track as usual.
func For[T any, K comparable](
	s *reactive.Scope,
	doc dom.Document,
	parent dom.Node,
	each reactive.Reader[[]T],
	key func(T) K,
	render func(*reactive.Scope, T) dom.Node,
	opts ...Option,
) *List[T, K] {
	l := &List[T, K]{
		doc:     doc,
		parent:  parent,
		scope:   s.Child(),
		key:     key,
		render:  render,
		entries: make(map[K]*Entry[T, K]),
	}
	l.logger = s.Runtime().Logger().With("component", "keyed")
	for _, opt := range opts {
		opt(&l.config)
	}
	if l.anchor != nil {
		l.exclusive = false
	}

	l.scope.OnCleanup(func() {
		clear(l.entries)
		l.order = nil
	})
	rt := s.Runtime()
	l.effect = reactive.CreateEffect(l.scope, func() reactive.Cleanup {
		items := each.Get()
		rt.Untrack(func() {
			l.reconcile(items)
		})
		return nil
	})
	return l
}

// Len returns the number of entries.
func (l *List[T, K]) Len() int {
	return len(l.order)
}

// Keys returns the keys in rendered order.
func (l *List[T, K]) Keys() []K {
	keys := make([]K, len(l.order))
	for i, e := range l.order {
		keys[i] = e.Key
	}
	return keys
}

// Entry returns the entry for k.
func (l *List[T, K]) Entry(k K) (*Entry[T, K], bool) {
	e, ok := l.entries[k]
	return e, ok
}

// Entries returns the entries in rendered order.
func (l *List[T, K]) Entries() []*Entry[T, K] {
	return append([]*Entry[T, K](nil), l.order...)
}

// LastStats returns the stats of the most recent pass.
func (l *List[T, K]) LastStats() Stats {
	return l.last
}

// Passes returns how many reconciliations have run.
func (l *List[T, K]) Passes() int {
	return l.passes
}

// Scope returns the scope owning the list and its rows.
func (l *List[T, K]) Scope() *reactive.Scope {
	return l.scope
}

// Dispose disposes every row, then detaches the row nodes.
func (l *List[T, K]) Dispose() {
	if l.scope.IsDisposed() {
		return
	}
	order := l.order
	l.scope.Dispose()
	for _, e := range order {
		l.doc.RemoveChild(l.parent, e.Node)
	}
}

func (l *List[T, K]) reconcile(items []T) {
	start := time.Now()
	st := Stats{}

	next, dups := l.dedupe(items)
	st.Duplicates = dups
	if dups > 0 {
		l.logger.Warn("duplicate keys in list, last occurrence wins", "duplicates", dups, "items", len(items))
	}

	// position of each key in the new order
	nextIndex := make(map[K]int, len(next))
	for j, item := range next {
		nextIndex[l.key(item)] = j
	}

	survivors := 0
	for _, e := range l.order {
		if _, ok := nextIndex[e.Key]; ok {
			survivors++
		}
	}

	switch {
	case len(l.order) > 0 && survivors == 0:
		st.Removed = l.clearAll()
		st.Cleared = true
	case survivors < len(l.order):
		for _, e := range l.order {
			if _, ok := nextIndex[e.Key]; ok {
				continue
			}
			e.Scope.Dispose()
			l.doc.RemoveChild(l.parent, e.Node)
			delete(l.entries, e.Key)
			st.Removed++
		}
	}

	order := make([]*Entry[T, K], len(next))
	prevIndex := make([]int, len(next))
	for j, item := range next {
		k := l.key(item)
		e, ok := l.entries[k]
		if ok {
			e.Item = item
			prevIndex[j] = e.index
		} else {
			e = l.create(k, item)
			prevIndex[j] = -1
			st.Created++
		}
		order[j] = e
	}

	if survivors == 0 {
		// Nothing to keep in place: append in order.
		for _, e := range order {
			l.doc.InsertBefore(l.parent, e.Node, l.anchor)
		}
	} else {
		keep := longestIncreasing(prevIndex)
		ref := l.anchor
		for j := len(order) - 1; j >= 0; j-- {
			e := order[j]
			if !keep[j] {
				l.doc.InsertBefore(l.parent, e.Node, ref)
				if prevIndex[j] >= 0 {
					st.Moved++
				}
			}
			ref = e.Node
		}
	}

	for j, e := range order {
		e.index = j
	}
	l.order = order
	l.passes++

	st.Len = len(order)
	st.Duration = time.Since(start)
	l.last = st
	l.logger.Debug("reconciled",
		"len", st.Len,
		"created", st.Created,
		"removed", st.Removed,
		"moved", st.Moved,
		"duration", st.Duration)
	if l.observer != nil {
		l.observer(st)
	}
}

// dedupe drops every item whose key appears again later in items.
func (l *List[T, K]) dedupe(items []T) ([]T, int) {
	lastAt := make(map[K]int, len(items))
	for i, item := range items {
		lastAt[l.key(item)] = i
	}
	if len(lastAt) == len(items) {
		return items, 0
	}
	out := make([]T, 0, len(lastAt))
	for i, item := range items {
		if lastAt[l.key(item)] == i {
			out = append(out, item)
		}
	}
	return out, len(items) - len(out)
}

func (l *List[T, K]) create(k K, item T) *Entry[T, K] {
	rowScope := l.scope.Child()
	e := &Entry[T, K]{
		Key:   k,
		Item:  item,
		Scope: rowScope,
		index: -1,
	}
	e.Node = l.render(rowScope, item)
	l.entries[k] = e
	return e
}

// clearAll disposes every entry and detaches its node, in one document
// operation when the list owns the parent.
func (l *List[T, K]) clearAll() int {
	n := len(l.order)
	nodes := make([]dom.Node, n)
	for i, e := range l.order {
		e.Scope.Dispose()
		nodes[i] = e.Node
	}
	if l.exclusive {
		dom.Clear(l.doc, l.parent, nodes)
	} else {
		for _, node := range nodes {
			l.doc.RemoveChild(l.parent, node)
		}
	}
	clear(l.entries)
	return n
}
