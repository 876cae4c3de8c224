package dom

import (
	"errors"
	"fmt"
	"sort"
)

// ErrUnknownNode is returned by Dispatch for ids that are not attached.
var ErrUnknownNode = errors.New("dom: unknown node")

// NodeKind discriminates MemNode.
type NodeKind uint8

const (
	ElementNode NodeKind = iota
	TextNode
)

// Attribute is a name/value pair in insertion order.
type Attribute struct {
	Name  string
	Value string
}

// MemNode is a node of a MemoryDocument. Children are kept in an intrusive
// doubly-linked list so inserts, moves and removals are O(1).
type MemNode struct {
	doc  *MemoryDocument
	id   uint64
	kind NodeKind
	tag  string
	text string

	attrs     []Attribute
	listeners map[string][]EventHandler

	parent      *MemNode
	first, last *MemNode
	prev, next  *MemNode
	children    int
}

// NodeID implements Node.
func (n *MemNode) NodeID() uint64 { return n.id }

// Kind returns the node kind.
func (n *MemNode) Kind() NodeKind { return n.kind }

// Tag returns the element tag, or "" for text nodes.
func (n *MemNode) Tag() string { return n.tag }

// Text returns the content of a text node.
func (n *MemNode) Text() string { return n.text }

// Attr returns the value of the named attribute.
func (n *MemNode) Attr(name string) (string, bool) {
	for _, a := range n.attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// Attrs returns the attributes in the order they were first set.
func (n *MemNode) Attrs() []Attribute {
	return n.attrs
}

// Parent returns the parent node, or nil.
func (n *MemNode) Parent() *MemNode { return n.parent }

// FirstChild returns the first child, or nil.
func (n *MemNode) FirstChild() *MemNode { return n.first }

// LastChild returns the last child, or nil.
func (n *MemNode) LastChild() *MemNode { return n.last }

// NextSibling returns the following sibling, or nil.
func (n *MemNode) NextSibling() *MemNode { return n.next }

// PrevSibling returns the preceding sibling, or nil.
func (n *MemNode) PrevSibling() *MemNode { return n.prev }

// ChildCount returns the number of children.
func (n *MemNode) ChildCount() int { return n.children }

// Children returns a snapshot of the children.
func (n *MemNode) Children() []*MemNode {
	out := make([]*MemNode, 0, n.children)
	for c := n.first; c != nil; c = c.next {
		out = append(out, c)
	}
	return out
}

// Child returns the i-th child, or nil if out of range.
func (n *MemNode) Child(i int) *MemNode {
	if i < 0 || i >= n.children {
		return nil
	}
	c := n.first
	for ; i > 0; i-- {
		c = c.next
	}
	return c
}

// TextContent returns the concatenated text of n and its descendants.
func (n *MemNode) TextContent() string {
	if n.kind == TextNode {
		return n.text
	}
	var out []byte
	n.walk(func(m *MemNode) {
		if m.kind == TextNode {
			out = append(out, m.text...)
		}
	})
	return string(out)
}

// Events returns the event types with at least one handler, sorted.
func (n *MemNode) Events() []string {
	if len(n.listeners) == 0 {
		return nil
	}
	events := make([]string, 0, len(n.listeners))
	for e := range n.listeners {
		events = append(events, e)
	}
	sort.Strings(events)
	return events
}

// Listeners returns the number of handlers attached for event.
func (n *MemNode) Listeners(event string) int {
	return len(n.listeners[event])
}

// walk visits n and all of its descendants, parents first.
func (n *MemNode) walk(fn func(*MemNode)) {
	fn(n)
	for c := n.first; c != nil; c = c.next {
		c.walk(fn)
	}
}

// Counters are cumulative operation counts of a MemoryDocument.
type Counters struct {
	Created    int // elements and text nodes created
	Inserted   int // inserts of detached nodes
	Moved      int // inserts of already attached nodes
	Removed    int // RemoveChild calls plus children dropped by ClearChildren
	Clears     int // ClearChildren calls
	AttrWrites int // SetAttribute and RemoveAttribute calls
	TextWrites int // SetText calls
	Listeners  int // AddEventListener calls
}

// MemoryDocument is an in-memory Document. It is not safe for concurrent
// use.
type MemoryDocument struct {
	root     *MemNode
	nextID   uint64
	nodes    map[uint64]*MemNode
	counters Counters
}

var (
	_ Document     = (*MemoryDocument)(nil)
	_ ChildClearer = (*MemoryDocument)(nil)
)

// NewMemoryDocument creates a document whose root is a <body> element.
func NewMemoryDocument() *MemoryDocument {
	d := &MemoryDocument{
		nodes: make(map[uint64]*MemNode),
	}
	d.root = d.newNode(ElementNode, "body", "")
	return d
}

// Root returns the document's root element. It is not counted as created.
func (d *MemoryDocument) Root() *MemNode {
	return d.root
}

// Counters returns the operation counts since creation or the last reset.
func (d *MemoryDocument) Counters() Counters {
	return d.counters
}

// ResetCounters zeroes the operation counts.
func (d *MemoryDocument) ResetCounters() {
	d.counters = Counters{}
}

// Lookup returns the node with the given id, if it exists and is not
// detached by a removal.
func (d *MemoryDocument) Lookup(id uint64) (*MemNode, bool) {
	n, ok := d.nodes[id]
	return n, ok
}

// Len returns the number of nodes the document can look up.
func (d *MemoryDocument) Len() int {
	return len(d.nodes)
}

// GetElementByID returns the first element in document order whose id
// attribute equals id.
func (d *MemoryDocument) GetElementByID(id string) *MemNode {
	var found *MemNode
	var find func(n *MemNode) bool
	find = func(n *MemNode) bool {
		if v, ok := n.Attr("id"); ok && v == id && n.kind == ElementNode {
			found = n
			return true
		}
		for c := n.first; c != nil; c = c.next {
			if find(c) {
				return true
			}
		}
		return false
	}
	find(d.root)
	return found
}

// Dispatch delivers an event of type typ to the node with the given id and
// bubbles it to the root. Handlers on one node run in registration order.
func (d *MemoryDocument) Dispatch(id uint64, typ string) error {
	target, ok := d.nodes[id]
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownNode, id)
	}
	e := &Event{Type: typ, Target: target}
	for n := target; n != nil; n = n.parent {
		hs := n.listeners[typ]
		if len(hs) == 0 {
			continue
		}
		e.CurrentTarget = n
		for _, h := range append([]EventHandler(nil), hs...) {
			h.HandleEvent(e)
		}
		if e.stopped {
			break
		}
	}
	return nil
}

// CreateElement implements Document.
func (d *MemoryDocument) CreateElement(tag string) Node {
	d.counters.Created++
	return d.newNode(ElementNode, tag, "")
}

// CreateText implements Document.
func (d *MemoryDocument) CreateText(text string) Node {
	d.counters.Created++
	return d.newNode(TextNode, "", text)
}

// SetAttribute implements Document.
func (d *MemoryDocument) SetAttribute(n Node, name, value string) {
	m := d.node(n)
	d.counters.AttrWrites++
	for i := range m.attrs {
		if m.attrs[i].Name == name {
			m.attrs[i].Value = value
			return
		}
	}
	m.attrs = append(m.attrs, Attribute{Name: name, Value: value})
}

// RemoveAttribute implements Document.
func (d *MemoryDocument) RemoveAttribute(n Node, name string) {
	m := d.node(n)
	d.counters.AttrWrites++
	for i := range m.attrs {
		if m.attrs[i].Name == name {
			m.attrs = append(m.attrs[:i], m.attrs[i+1:]...)
			return
		}
	}
}

// SetText implements Document.
func (d *MemoryDocument) SetText(n Node, text string) {
	m := d.node(n)
	if m.kind != TextNode {
		panic(fmt.Sprintf("dom: SetText on <%s>", m.tag))
	}
	d.counters.TextWrites++
	m.text = text
}

// AddEventListener implements Document.
func (d *MemoryDocument) AddEventListener(n Node, event string, h EventHandler) {
	m := d.node(n)
	d.counters.Listeners++
	if m.listeners == nil {
		m.listeners = make(map[string][]EventHandler)
	}
	m.listeners[event] = append(m.listeners[event], h)
}

// AppendChild implements Document.
func (d *MemoryDocument) AppendChild(parent, child Node) {
	d.InsertBefore(parent, child, nil)
}

// InsertBefore implements Document.
func (d *MemoryDocument) InsertBefore(parent, child, ref Node) {
	p := d.node(parent)
	c := d.node(child)
	if p.kind != ElementNode {
		panic("dom: insert into text node")
	}
	var r *MemNode
	if ref != nil {
		r = d.node(ref)
		if r.parent != p {
			panic(fmt.Sprintf("dom: ref %d is not a child of %d", r.id, p.id))
		}
		if r == c {
			return
		}
	}
	for a := p; a != nil; a = a.parent {
		if a == c {
			panic("dom: insert would create a cycle")
		}
	}

	if c.parent != nil {
		// The node stays connected, so it keeps its registration.
		d.counters.Moved++
		c.parent.unlink(c)
	} else {
		d.counters.Inserted++
		d.register(c)
	}
	p.link(c, r)
}

// RemoveChild implements Document.
func (d *MemoryDocument) RemoveChild(parent, child Node) {
	p := d.node(parent)
	c := d.node(child)
	if c.parent != p {
		panic(fmt.Sprintf("dom: %d is not a child of %d", c.id, p.id))
	}
	d.counters.Removed++
	p.unlink(c)
	d.unregister(c)
}

// ClearChildren implements ChildClearer.
func (d *MemoryDocument) ClearChildren(parent Node) {
	p := d.node(parent)
	d.counters.Clears++
	for c := p.first; c != nil; {
		next := c.next
		c.parent, c.prev, c.next = nil, nil, nil
		d.unregister(c)
		d.counters.Removed++
		c = next
	}
	p.first, p.last = nil, nil
	p.children = 0
}

func (d *MemoryDocument) newNode(kind NodeKind, tag, text string) *MemNode {
	d.nextID++
	n := &MemNode{
		doc:  d,
		id:   d.nextID,
		kind: kind,
		tag:  tag,
		text: text,
	}
	d.nodes[n.id] = n
	return n
}

// node converts a Node handle back to the concrete node.
func (d *MemoryDocument) node(n Node) *MemNode {
	m, ok := n.(*MemNode)
	if !ok || m == nil || m.doc != d {
		panic(fmt.Sprintf("dom: foreign node %v", n))
	}
	return m
}

// register makes a removed subtree addressable again.
func (d *MemoryDocument) register(n *MemNode) {
	n.walk(func(m *MemNode) {
		d.nodes[m.id] = m
	})
}

// unregister drops a detached subtree so it can be collected.
func (d *MemoryDocument) unregister(n *MemNode) {
	n.walk(func(m *MemNode) {
		delete(d.nodes, m.id)
	})
}

// link inserts c before r, or at the end when r is nil.
func (n *MemNode) link(c, r *MemNode) {
	c.parent = n
	if r == nil {
		c.prev = n.last
		c.next = nil
		if n.last != nil {
			n.last.next = c
		} else {
			n.first = c
		}
		n.last = c
	} else {
		c.prev = r.prev
		c.next = r
		if r.prev != nil {
			r.prev.next = c
		} else {
			n.first = c
		}
		r.prev = c
	}
	n.children++
}

func (n *MemNode) unlink(c *MemNode) {
	if c.prev != nil {
		c.prev.next = c.next
	} else {
		n.first = c.next
	}
	if c.next != nil {
		c.next.prev = c.prev
	} else {
		n.last = c.prev
	}
	c.parent, c.prev, c.next = nil, nil, nil
	n.children--
}
