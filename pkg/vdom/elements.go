package vdom

import "fmt"

// voidElements are elements that cannot have children.
var voidElements = map[string]bool{
	"area":   true,
	"base":   true,
	"br":     true,
	"col":    true,
	"embed":  true,
	"hr":     true,
	"img":    true,
	"input":  true,
	"link":   true,
	"meta":   true,
	"source": true,
	"track":  true,
	"wbr":    true,
}

// IsVoidElement returns true if the tag is a void element.
func IsVoidElement(tag string) bool {
	return voidElements[tag]
}

// El creates an element. Arguments can be: nil, Attr, []Attr, DynamicAttr,
// Toggle, EventHandler, *VNode, []*VNode or string (static text).
func El(tag string, args ...any) *VNode {
	node := &VNode{
		Kind: KindElement,
		Tag:  tag,
	}
	for _, arg := range args {
		switch v := arg.(type) {
		case nil:
			continue
		case Attr:
			if !v.IsEmpty() {
				node.Attrs = append(node.Attrs, v)
			}
		case []Attr:
			for _, a := range v {
				if !a.IsEmpty() {
					node.Attrs = append(node.Attrs, a)
				}
			}
		case DynamicAttr:
			node.Dyn = append(node.Dyn, v)
		case Toggle:
			node.Toggles = append(node.Toggles, v)
		case EventHandler:
			node.Events = append(node.Events, v)
		case *VNode:
			if v != nil {
				node.Children = append(node.Children, v)
			}
		case []*VNode:
			for _, c := range v {
				if c != nil {
					node.Children = append(node.Children, c)
				}
			}
		case string:
			node.Children = append(node.Children, Text(v))
		default:
			panic(fmt.Sprintf("vdom: unsupported argument %T for <%s>", arg, tag))
		}
	}
	if len(node.Children) > 0 && IsVoidElement(tag) {
		panic("vdom: <" + tag + "> cannot have children")
	}
	return node
}

// Document structure

func Div(args ...any) *VNode    { return El("div", args...) }
func Span(args ...any) *VNode   { return El("span", args...) }
func P(args ...any) *VNode      { return El("p", args...) }
func H1(args ...any) *VNode     { return El("h1", args...) }
func H2(args ...any) *VNode     { return El("h2", args...) }
func A(args ...any) *VNode      { return El("a", args...) }
func Button(args ...any) *VNode { return El("button", args...) }
func Ul(args ...any) *VNode     { return El("ul", args...) }
func Li(args ...any) *VNode     { return El("li", args...) }
func Input(args ...any) *VNode  { return El("input", args...) }

// Tables

func Table(args ...any) *VNode { return El("table", args...) }
func Thead(args ...any) *VNode { return El("thead", args...) }
func Tbody(args ...any) *VNode { return El("tbody", args...) }
func Tr(args ...any) *VNode    { return El("tr", args...) }
func Td(args ...any) *VNode    { return El("td", args...) }
func Th(args ...any) *VNode    { return El("th", args...) }
