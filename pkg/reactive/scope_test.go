package reactive

import (
	"reflect"
	"testing"
)

func TestScopeHierarchy(t *testing.T) {
	_, root := newTestRoot()
	child1 := root.Child()
	child2 := root.Child()
	grandchild := child1.Child()

	if root.Parent() != nil || child1.Parent() != root || grandchild.Parent() != child1 {
		t.Error("unexpected parent links")
	}
	if root.Children() != 2 {
		t.Errorf("Children() = %d, want 2", root.Children())
	}
	child2.Dispose()
	if root.Children() != 1 {
		t.Errorf("Children() = %d after disposing one, want 1", root.Children())
	}
}

func TestScopeDisposeOrder(t *testing.T) {
	_, root := newTestRoot()
	child1 := root.Child()
	child2 := root.Child()
	grandchild := child1.Child()

	var order []string
	add := func(name string) func() {
		return func() { order = append(order, name) }
	}
	root.OnCleanup(add("root-1"))
	root.OnCleanup(add("root-2"))
	child1.OnCleanup(add("child1"))
	child2.OnCleanup(add("child2"))
	grandchild.OnCleanup(add("grandchild"))

	root.Dispose()

	want := []string{"child2", "grandchild", "child1", "root-2", "root-1"}
	if !reflect.DeepEqual(order, want) {
		t.Errorf("order = %v, want %v", order, want)
	}
	for _, s := range []*Scope{root, child1, child2, grandchild} {
		if !s.IsDisposed() {
			t.Errorf("scope %d not disposed", s.ID())
		}
	}
}

func TestScopeDisposeIdempotent(t *testing.T) {
	rt, root := newTestRoot()
	s := root.Child()
	calls := 0
	s.OnCleanup(func() { calls++ })
	s.Dispose()
	s.Dispose()
	if calls != 1 {
		t.Errorf("cleanup ran %d times, want 1", calls)
	}
	if rt.Stats().Scopes != 1 {
		t.Errorf("Scopes = %d, want 1", rt.Stats().Scopes)
	}

	late := 0
	s.OnCleanup(func() { late++ })
	if late != 1 {
		t.Error("cleanup on disposed scope should run immediately")
	}
	expectPanic(t, ErrDisposed, func() { s.Child() })
}

func TestScopeDisposalLeakFreedom(t *testing.T) {
	rt, root := newTestRoot()
	outer := NewSignal(root, 0)

	scope := root.Child()
	inner := scope.Child()
	runs := 0
	for _, s := range []*Scope{scope, inner} {
		CreateEffect(s, func() Cleanup {
			_ = outer.Get()
			runs++
			return nil
		})
	}
	m := NewMemo(scope, func() int { return outer.Get() })
	_ = m.Get()

	if outer.Subscribers() != 3 {
		t.Fatalf("Subscribers() = %d, want 3", outer.Subscribers())
	}
	scope.Dispose()
	if outer.Subscribers() != 0 {
		t.Errorf("Subscribers() = %d after dispose, want 0", outer.Subscribers())
	}

	outer.Set(1)
	if runs != 2 {
		t.Errorf("disposed effects re-ran: runs = %d", runs)
	}
	if st := rt.Stats(); st.Effects != 0 || st.Scopes != 1 {
		t.Errorf("stats after dispose = %+v", st)
	}
}

func TestScopeReleasesOwnedSignals(t *testing.T) {
	_, root := newTestRoot()
	data := root.Child()
	label := NewSignal(data, "x")

	row := root.Child()
	CreateEffect(row, func() Cleanup {
		_ = label.Get()
		return nil
	})
	data.Dispose()

	if label.Subscribers() != 0 {
		t.Errorf("released signal kept %d subscribers", label.Subscribers())
	}
	row.Dispose()
}

func TestDisposeCancelsQueuedRun(t *testing.T) {
	rt, root := newTestRoot()
	s := NewSignal(root, 0)
	scope := root.Child()
	e := CreateEffect(scope, func() Cleanup {
		_ = s.Get()
		return nil
	})

	rt.Batch(func() {
		s.Set(1) // queues e
		scope.Dispose()
	})
	if e.Runs() != 1 {
		t.Errorf("disposed effect ran after batch: runs = %d", e.Runs())
	}
}
