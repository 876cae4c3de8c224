package vdom

import (
	"fmt"
	"strings"

	"github.com/vango-dev/reactor/pkg/dom"
	"github.com/vango-dev/reactor/pkg/reactive"
)

// Builder lowers tree descriptions into tree-construction calls. Reactive
// bindings become effects owned by Scope.
type Builder struct {
	Doc   dom.Document
	Scope *reactive.Scope
}

// NewBuilder creates a builder writing to doc with bindings owned by s.
func NewBuilder(doc dom.Document, s *reactive.Scope) *Builder {
	return &Builder{Doc: doc, Scope: s}
}

// With returns a builder that shares the document but owns bindings in s.
func (b *Builder) With(s *reactive.Scope) *Builder {
	return &Builder{Doc: b.Doc, Scope: s}
}

// Build appends the nodes described by v to parent and returns the nodes
// that were appended directly to it. Regions at the top level are given a
// non-exclusive slot because parent may hold other content.
func (b *Builder) Build(v *VNode, parent dom.Node) []dom.Node {
	return b.children(parent, []*VNode{v}, false)
}

// Node lowers v, which must describe exactly one element or text node, and
// returns it detached.
func (b *Builder) Node(v *VNode) dom.Node {
	switch v.Kind {
	case KindElement:
		return b.element(v)
	case KindText:
		return b.Doc.CreateText(v.Text)
	case KindDynText:
		return b.dynText(v)
	case KindFragment:
		if flat := flatten(v.Children, nil); len(flat) == 1 {
			return b.Node(flat[0])
		}
	}
	panic(fmt.Sprintf("vdom: %s does not lower to a single node", v.Kind))
}

// children appends the lowered list to parent. exclusive reports whether
// parent holds nothing else.
func (b *Builder) children(parent dom.Node, list []*VNode, exclusive bool) []dom.Node {
	flat := flatten(list, nil)
	out := make([]dom.Node, 0, len(flat))
	for i, v := range flat {
		if v.Kind != KindRegion {
			n := b.Node(v)
			b.Doc.AppendChild(parent, n)
			out = append(out, n)
			continue
		}
		slot := Slot{Parent: parent}
		if i < len(flat)-1 {
			// Later siblings follow the anchor; region content goes before it.
			slot.Anchor = b.Doc.CreateText("")
			b.Doc.AppendChild(parent, slot.Anchor)
			out = append(out, slot.Anchor)
		} else {
			slot.Exclusive = exclusive && len(flat) == 1
		}
		v.Region(b, slot)
	}
	return out
}

func (b *Builder) element(v *VNode) dom.Node {
	el := b.Doc.CreateElement(v.Tag)

	static := ""
	for _, a := range v.Attrs {
		if a.Key == "class" && len(v.Toggles) > 0 {
			static = a.Value
			continue
		}
		b.Doc.SetAttribute(el, a.Key, a.Value)
	}
	for _, d := range v.Dyn {
		b.bindAttr(el, d)
	}
	if len(v.Toggles) > 0 {
		b.bindClass(el, static, v.Toggles)
	}
	for _, h := range v.Events {
		b.Doc.AddEventListener(el, h.Event, h.Handler)
	}

	b.children(el, v.Children, true)
	return el
}

// dynText creates its text node on the effect's first run so the node
// starts with the right content.
func (b *Builder) dynText(v *VNode) dom.Node {
	var node dom.Node
	var last string
	reactive.CreateEffect(b.Scope, func() reactive.Cleanup {
		text := v.TextFn()
		if node == nil {
			node = b.Doc.CreateText(text)
		} else if text != last {
			b.Doc.SetText(node, text)
		}
		last = text
		return nil
	})
	return node
}

func (b *Builder) bindAttr(el dom.Node, d DynamicAttr) {
	first := true
	var last string
	reactive.CreateEffect(b.Scope, func() reactive.Cleanup {
		value := d.Value()
		if first || value != last {
			b.Doc.SetAttribute(el, d.Key, value)
		}
		first = false
		last = value
		return nil
	})
}

// bindClass keeps the class attribute equal to static plus every active
// toggle, in declaration order. One effect serves all toggles of el.
func (b *Builder) bindClass(el dom.Node, static string, toggles []Toggle) {
	var last string
	reactive.CreateEffect(b.Scope, func() reactive.Cleanup {
		classes := make([]string, 0, len(toggles)+1)
		if static != "" {
			classes = append(classes, static)
		}
		for _, t := range toggles {
			if t.On() {
				classes = append(classes, t.Class)
			}
		}
		class := strings.Join(classes, " ")
		switch {
		case class == last:
		case class == "":
			b.Doc.RemoveAttribute(el, "class")
		default:
			b.Doc.SetAttribute(el, "class", class)
		}
		last = class
		return nil
	})
}

// flatten expands fragments in place and drops nils.
func flatten(list []*VNode, out []*VNode) []*VNode {
	for _, v := range list {
		switch {
		case v == nil:
		case v.Kind == KindFragment:
			out = flatten(v.Children, out)
		default:
			out = append(out, v)
		}
	}
	return out
}
