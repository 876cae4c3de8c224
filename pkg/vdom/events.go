package vdom

import "github.com/vango-dev/reactor/pkg/dom"

// On attaches h for events named event.
func On(event string, h dom.EventHandler) EventHandler {
	return EventHandler{Event: event, Handler: h}
}

// OnClick handles click events.
func OnClick(h dom.EventHandler) EventHandler { return On("click", h) }

// OnDblClick handles double-click events.
func OnDblClick(h dom.EventHandler) EventHandler { return On("dblclick", h) }

// OnInput handles input events.
func OnInput(h dom.EventHandler) EventHandler { return On("input", h) }

// HandlerFunc adapts a plain function to dom.EventHandler.
func HandlerFunc(fn func()) dom.EventHandler {
	return dom.HandlerFunc(func(*dom.Event) { fn() })
}
