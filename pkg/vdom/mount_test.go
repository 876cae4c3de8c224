package vdom

import (
	"testing"

	"github.com/vango-dev/reactor/pkg/dom"
	"github.com/vango-dev/reactor/pkg/reactive"
)

func TestMountUnmount(t *testing.T) {
	rt := reactive.NewRuntime()
	root := rt.NewRoot()
	doc := dom.NewMemoryDocument()
	count := reactive.NewSignal(root, 1)

	var detachedAtCleanup bool
	r := Mount(root, doc, doc.Root(), func(s *reactive.Scope) *VNode {
		_ = count.Get()
		s.OnCleanup(func() {
			detachedAtCleanup = doc.Root().ChildCount() == 0
		})
		return Fragment(H1("title"), P(DynText(func() string {
			if count.Get() > 1 {
				return "many"
			}
			return "one"
		})))
	})

	if len(r.Nodes()) != 2 || doc.Root().ChildCount() != 2 {
		t.Fatalf("mounted %d nodes", len(r.Nodes()))
	}
	if count.Subscribers() != 1 {
		t.Errorf("root function read was tracked: %d subscribers", count.Subscribers())
	}

	r.Unmount()
	if detachedAtCleanup {
		t.Error("nodes were detached before the scope was disposed")
	}
	if doc.Root().ChildCount() != 0 || !r.Scope().IsDisposed() {
		t.Error("Unmount left state behind")
	}
	if count.Subscribers() != 0 {
		t.Error("bindings survive Unmount")
	}
	r.Unmount()
}

func TestMountRejectsRegionRoot(t *testing.T) {
	rt := reactive.NewRuntime()
	doc := dom.NewMemoryDocument()
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	Mount(rt.NewRoot(), doc, doc.Root(), func(*reactive.Scope) *VNode {
		return Region(func(*Builder, Slot) {})
	})
}
