package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"time"
)

// Dispatch kinds.
const (
	KindEvent  = "event"
	KindAction = "action"
)

// Dispatch describes one unit of work.
type Dispatch struct {
	Kind    string // KindEvent or KindAction
	Name    string // event type or action name
	Session string // live session id, if any
	Target  uint64 // event target node id, if any

	// Ops is set by the handler to the number of tree operations produced.
	Ops int
}

// Handler processes a Dispatch.
type Handler func(ctx context.Context, d *Dispatch) error

// Middleware decorates a Handler.
type Middleware func(next Handler) Handler

// Chain wraps h with mws. The first middleware is the outermost.
func Chain(h Handler, mws ...Middleware) Handler {
	for i := len(mws) - 1; i >= 0; i-- {
		if mws[i] != nil {
			h = mws[i](h)
		}
	}
	return h
}

// PanicError is returned by Recover when a handler panicked with a value
// that is not an error.
type PanicError struct {
	Value any
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.Value)
}

// Recover converts handler panics into errors and logs them. A panic with
// an error value is returned as that error so callers can match it with
// errors.Is.
func Recover(logger *slog.Logger) Middleware {
	if logger == nil {
		logger = slog.Default()
	}
	return func(next Handler) Handler {
		return func(ctx context.Context, d *Dispatch) (err error) {
			defer func() {
				r := recover()
				if r == nil {
					return
				}
				stack := debug.Stack()
				if e, ok := r.(error); ok {
					err = e
				} else {
					err = &PanicError{Value: r, Stack: stack}
				}
				logger.Error("dispatch panicked",
					"kind", d.Kind,
					"name", d.Name,
					"session", d.Session,
					"error", err,
					"stack", string(stack))
			}()
			return next(ctx, d)
		}
	}
}

// Logger logs every dispatch at debug level, and failures at warn level.
func Logger(logger *slog.Logger) Middleware {
	if logger == nil {
		logger = slog.Default()
	}
	return func(next Handler) Handler {
		return func(ctx context.Context, d *Dispatch) error {
			start := time.Now()
			err := next(ctx, d)
			attrs := []any{
				"kind", d.Kind,
				"name", d.Name,
				"ops", d.Ops,
				"duration", time.Since(start),
			}
			if d.Session != "" {
				attrs = append(attrs, "session", d.Session)
			}
			if err != nil {
				logger.Warn("dispatch failed", append(attrs, "error", err)...)
				return err
			}
			logger.Debug("dispatch", attrs...)
			return nil
		}
	}
}
