package vdom

import (
	"github.com/vango-dev/reactor/pkg/dom"
)

// VKind is the node type discriminator.
type VKind uint8

const (
	KindElement  VKind = iota // <div>, <button>, etc.
	KindText                  // Static text
	KindDynText               // Text bound to a reactive function
	KindFragment              // Grouping without wrapper
	KindRegion                // Children managed by a RegionFunc
)

// String returns the string representation of the VKind.
func (k VKind) String() string {
	switch k {
	case KindElement:
		return "Element"
	case KindText:
		return "Text"
	case KindDynText:
		return "DynText"
	case KindFragment:
		return "Fragment"
	case KindRegion:
		return "Region"
	default:
		return "Unknown"
	}
}

// VNode is a tree description node.
type VNode struct {
	Kind     VKind
	Tag      string         // Element tag name
	Attrs    []Attr         // Static attributes, in order
	Dyn      []DynamicAttr  // Reactive attributes
	Toggles  []Toggle       // Reactive class toggles
	Events   []EventHandler // Event handlers
	Children []*VNode       // Child descriptions
	Text     string         // For KindText
	TextFn   func() string  // For KindDynText
	Region   RegionFunc     // For KindRegion
}

// Attr is a static attribute.
type Attr struct {
	Key   string
	Value string
}

// IsEmpty returns true if this is an empty attribute.
func (a Attr) IsEmpty() bool {
	return a.Key == ""
}

// DynamicAttr is an attribute whose value is recomputed by an effect.
type DynamicAttr struct {
	Key   string
	Value func() string
}

// Toggle adds Class to the element's class list while On returns true.
type Toggle struct {
	Class string
	On    func() bool
}

// EventHandler attaches Handler for events named Event.
type EventHandler struct {
	Event   string
	Handler dom.EventHandler
}

// Slot tells a region where its nodes go.
type Slot struct {
	// Parent is the element the region renders into.
	Parent dom.Node

	// Anchor is the node the region inserts before. Nil means the region
	// renders at the end of Parent.
	Anchor dom.Node

	// Exclusive is true when the region is Parent's only content, so it may
	// clear Parent wholesale.
	Exclusive bool
}

// RegionFunc renders and maintains a region's children.
type RegionFunc func(b *Builder, slot Slot)
