package vdom

import "strings"

// attr creates an Attr with the given key and value.
func attr(key, value string) Attr {
	return Attr{Key: key, Value: value}
}

// Attribute creates an arbitrary static attribute.
func Attribute(key, value string) Attr { return attr(key, value) }

// ID sets the id attribute.
func ID(id string) Attr { return attr("id", id) }

// Class sets the class attribute, joining multiple classes with spaces.
func Class(classes ...string) Attr { return attr("class", strings.Join(classes, " ")) }

// Type sets the type attribute.
func Type(t string) Attr { return attr("type", t) }

// Href sets the href attribute.
func Href(url string) Attr { return attr("href", url) }

// Role sets the role attribute.
func Role(role string) Attr { return attr("role", role) }

// Data creates a data-* attribute.
// Example: Data("id", "123") → data-id="123"
func Data(key, value string) Attr { return attr("data-"+key, value) }

// AriaHidden sets the aria-hidden attribute.
func AriaHidden(hidden bool) Attr {
	if hidden {
		return attr("aria-hidden", "true")
	}
	return attr("aria-hidden", "false")
}

// DynAttr binds attribute key to fn. The attribute is rewritten whenever
// fn's value changes.
func DynAttr(key string, fn func() string) DynamicAttr {
	return DynamicAttr{Key: key, Value: fn}
}

// ToggleClass adds class to the element while on returns true.
func ToggleClass(class string, on func() bool) Toggle {
	return Toggle{Class: class, On: on}
}
