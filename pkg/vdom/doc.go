// Package vdom describes rendered trees as values and lowers them into a
// dom.Document.
//
// A VNode is a tagged variant: an element, a static text, a reactive text,
// a fragment or a region. Nothing here is ever diffed. A tree description
// is built into the document exactly once by a Builder; every reactive part
// of it (DynText, DynAttr, ToggleClass) becomes one effect owned by the
// builder's scope that writes straight to the node it belongs to.
//
// # Element API
//
// Elements are created with variadic factory functions:
//
//	Tr(ToggleClass("danger", func() bool { return sel.Is(id) }),
//	    Td(Class("col-md-1"), Textf("%d", id)),
//	    Td(Class("col-md-4"), A(OnClick(h), DynText(label.Get))),
//	)
//
// # Regions
//
// A region hands part of a parent element to code that manages its own
// children, such as a keyed list. The builder passes it a Slot saying where
// to insert and whether the region owns the parent outright.
//
// # Mounting
//
// Mount builds a root description into a host container inside a fresh
// scope. Root.Unmount disposes that scope before detaching any node.
package vdom
