package vdom

import (
	"github.com/vango-dev/reactor/pkg/dom"
	"github.com/vango-dev/reactor/pkg/reactive"
)

// Root is a mounted tree.
type Root struct {
	scope     *reactive.Scope
	doc       dom.Document
	container dom.Node
	nodes     []dom.Node
}

// Mount runs root once inside a child scope of s and appends the result to
// container. The description is produced untracked, so reads made while
// assembling it do not subscribe anything; bindings inside it track as
// usual.
//
// root must not produce a region at its top level: Unmount only detaches
// nodes appended directly to container.
func Mount(s *reactive.Scope, doc dom.Document, container dom.Node, root func(*reactive.Scope) *VNode) *Root {
	child := s.Child()
	r := &Root{
		scope:     child,
		doc:       doc,
		container: container,
	}
	child.Runtime().Untrack(func() {
		v := root(child)
		for _, top := range flatten([]*VNode{v}, nil) {
			if top.Kind == KindRegion {
				panic("vdom: Mount root cannot be a region")
			}
		}
		r.nodes = NewBuilder(doc, child).Build(v, container)
	})
	return r
}

// Scope returns the scope owning the mounted tree.
func (r *Root) Scope() *reactive.Scope {
	return r.scope
}

// Nodes returns the nodes appended to the container.
func (r *Root) Nodes() []dom.Node {
	return r.nodes
}

// Unmount disposes the tree's scope, then detaches its nodes. Calling it
// twice is a no-op.
func (r *Root) Unmount() {
	if r.scope.IsDisposed() {
		return
	}
	r.scope.Dispose()
	for _, n := range r.nodes {
		r.doc.RemoveChild(r.container, n)
	}
	r.nodes = nil
}
