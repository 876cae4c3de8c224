package vdom

import "fmt"

// Text creates a static text node.
func Text(content string) *VNode {
	return &VNode{
		Kind: KindText,
		Text: content,
	}
}

// Textf creates a formatted static text node.
func Textf(format string, args ...any) *VNode {
	return Text(fmt.Sprintf(format, args...))
}

// DynText creates a text node whose content follows fn. fn is tracked: the
// text is rewritten whenever a signal it reads changes.
func DynText(fn func() string) *VNode {
	return &VNode{
		Kind:   KindDynText,
		TextFn: fn,
	}
}

// Fragment groups children without a wrapper element.
func Fragment(children ...*VNode) *VNode {
	node := &VNode{Kind: KindFragment}
	for _, c := range children {
		if c != nil {
			node.Children = append(node.Children, c)
		}
	}
	return node
}

// Region creates a node whose children are managed by fn.
func Region(fn RegionFunc) *VNode {
	return &VNode{
		Kind:   KindRegion,
		Region: fn,
	}
}

// If returns node when cond is true, nil otherwise.
func If(cond bool, node *VNode) *VNode {
	if cond {
		return node
	}
	return nil
}
