package dom

// Event is delivered to handlers by Document implementations that dispatch.
type Event struct {
	// Type is the event name, e.g. "click".
	Type string

	// Target is the node the event was dispatched to.
	Target Node

	// CurrentTarget is the node whose handler is running.
	CurrentTarget Node

	stopped bool
}

// StopPropagation prevents the event from reaching ancestors of
// CurrentTarget.
func (e *Event) StopPropagation() {
	e.stopped = true
}

// Stopped reports whether StopPropagation was called.
func (e *Event) Stopped() bool {
	return e.stopped
}

// EventHandler handles a dispatched event.
type EventHandler interface {
	HandleEvent(e *Event)
}

// HandlerFunc adapts a function to EventHandler.
type HandlerFunc func(e *Event)

// HandleEvent calls f(e).
func (f HandlerFunc) HandleEvent(e *Event) {
	f(e)
}
