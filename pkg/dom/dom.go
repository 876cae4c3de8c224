package dom

// Node is a handle to a node owned by a Document.
type Node interface {
	NodeID() uint64
}

// Document is the tree-construction surface.
//
// Implementations may panic when handed a Node created by a different
// Document; that is a programming error.
type Document interface {
	// CreateElement creates a detached element.
	CreateElement(tag string) Node

	// CreateText creates a detached text node.
	CreateText(text string) Node

	// SetAttribute sets an attribute, replacing any previous value.
	SetAttribute(n Node, name, value string)

	// RemoveAttribute removes an attribute. Removing an absent attribute is
	// a no-op.
	RemoveAttribute(n Node, name string)

	// SetText replaces the content of a text node.
	SetText(n Node, text string)

	// AddEventListener attaches h for events of the given type.
	AddEventListener(n Node, event string, h EventHandler)

	// AppendChild inserts child as the last child of parent.
	AppendChild(parent, child Node)

	// InsertBefore inserts child immediately before ref. A nil ref appends.
	// If child is already attached it is moved.
	InsertBefore(parent, child, ref Node)

	// RemoveChild detaches child from parent.
	RemoveChild(parent, child Node)
}

// ChildClearer is an optional Document upgrade that detaches every child of
// a node in one operation.
type ChildClearer interface {
	ClearChildren(parent Node)
}

// Clear removes every child of parent listed in children, using
// ChildClearer when doc implements it. children must be exactly the
// current children of parent for the fast path to be valid.
func Clear(doc Document, parent Node, children []Node) {
	if c, ok := doc.(ChildClearer); ok {
		c.ClearChildren(parent)
		return
	}
	for _, child := range children {
		doc.RemoveChild(parent, child)
	}
}
