package live

import (
	"github.com/vango-dev/reactor/pkg/dom"
	"github.com/vango-dev/reactor/pkg/protocol"
)

// Recorder is a dom.Document that applies every call to an in-memory
// document and records it as a protocol op.
type Recorder struct {
	mem *dom.MemoryDocument
	ops []protocol.Op
}

var (
	_ dom.Document     = (*Recorder)(nil)
	_ dom.ChildClearer = (*Recorder)(nil)
)

// NewRecorder creates a recorder over a new memory document.
func NewRecorder() *Recorder {
	return &Recorder{mem: dom.NewMemoryDocument()}
}

// Memory returns the mirrored document.
func (r *Recorder) Memory() *dom.MemoryDocument {
	return r.mem
}

// Root returns the root of the mirrored document.
func (r *Recorder) Root() *dom.MemNode {
	return r.mem.Root()
}

// Pending returns the number of ops recorded since the last Flush.
func (r *Recorder) Pending() int {
	return len(r.ops)
}

// Flush returns the recorded ops and starts a new log.
func (r *Recorder) Flush() []protocol.Op {
	ops := r.ops
	r.ops = nil
	return ops
}

// Snapshot returns ops that rebuild the current children of the root on an
// empty client. It does not touch the pending log.
func (r *Recorder) Snapshot() []protocol.Op {
	var ops []protocol.Op
	root := r.mem.Root()
	for c := root.FirstChild(); c != nil; c = c.NextSibling() {
		ops = snapshot(ops, c)
		ops = append(ops, protocol.Insert(root.NodeID(), c.NodeID(), 0))
	}
	return ops
}

func snapshot(ops []protocol.Op, n *dom.MemNode) []protocol.Op {
	if n.Kind() == dom.TextNode {
		return append(ops, protocol.CreateText(n.NodeID(), n.Text()))
	}
	ops = append(ops, protocol.CreateElement(n.NodeID(), n.Tag()))
	for _, a := range n.Attrs() {
		ops = append(ops, protocol.SetAttr(n.NodeID(), a.Name, a.Value))
	}
	for _, ev := range n.Events() {
		ops = append(ops, protocol.Listen(n.NodeID(), ev))
	}
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		ops = snapshot(ops, c)
		ops = append(ops, protocol.Insert(n.NodeID(), c.NodeID(), 0))
	}
	return ops
}

// CreateElement implements dom.Document.
func (r *Recorder) CreateElement(tag string) dom.Node {
	n := r.mem.CreateElement(tag)
	r.ops = append(r.ops, protocol.CreateElement(n.NodeID(), tag))
	return n
}

// CreateText implements dom.Document.
func (r *Recorder) CreateText(text string) dom.Node {
	n := r.mem.CreateText(text)
	r.ops = append(r.ops, protocol.CreateText(n.NodeID(), text))
	return n
}

// SetAttribute implements dom.Document.
func (r *Recorder) SetAttribute(n dom.Node, name, value string) {
	r.mem.SetAttribute(n, name, value)
	r.ops = append(r.ops, protocol.SetAttr(n.NodeID(), name, value))
}

// RemoveAttribute implements dom.Document.
func (r *Recorder) RemoveAttribute(n dom.Node, name string) {
	r.mem.RemoveAttribute(n, name)
	r.ops = append(r.ops, protocol.RemoveAttr(n.NodeID(), name))
}

// SetText implements dom.Document.
func (r *Recorder) SetText(n dom.Node, text string) {
	r.mem.SetText(n, text)
	r.ops = append(r.ops, protocol.SetText(n.NodeID(), text))
}

// AddEventListener implements dom.Document. Only the first listener per
// node and event type is sent; the client forwards the event once and the
// server runs every handler.
func (r *Recorder) AddEventListener(n dom.Node, event string, h dom.EventHandler) {
	first := true
	if m, ok := n.(*dom.MemNode); ok {
		first = m.Listeners(event) == 0
	}
	r.mem.AddEventListener(n, event, h)
	if first {
		r.ops = append(r.ops, protocol.Listen(n.NodeID(), event))
	}
}

// AppendChild implements dom.Document.
func (r *Recorder) AppendChild(parent, child dom.Node) {
	r.InsertBefore(parent, child, nil)
}

// InsertBefore implements dom.Document.
func (r *Recorder) InsertBefore(parent, child, ref dom.Node) {
	r.mem.InsertBefore(parent, child, ref)
	var refID uint64
	if ref != nil {
		refID = ref.NodeID()
	}
	r.ops = append(r.ops, protocol.Insert(parent.NodeID(), child.NodeID(), refID))
}

// RemoveChild implements dom.Document.
func (r *Recorder) RemoveChild(parent, child dom.Node) {
	r.mem.RemoveChild(parent, child)
	r.ops = append(r.ops, protocol.Remove(parent.NodeID(), child.NodeID()))
}

// ClearChildren implements dom.ChildClearer.
func (r *Recorder) ClearChildren(parent dom.Node) {
	r.mem.ClearChildren(parent)
	r.ops = append(r.ops, protocol.Clear(parent.NodeID()))
}
