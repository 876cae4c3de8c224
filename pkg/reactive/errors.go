package reactive

import (
	"errors"
	"fmt"
)

// ErrDisposed reports use of a signal, computation or scope after its
// owning scope was disposed. It is a programmer error.
var ErrDisposed = errors.New("reactive: use after scope disposal")

// ErrCycle reports a reactive cycle: a computation whose re-run writes back
// into its own dependencies until the runtime's depth guard trips, or a memo
// that reads itself.
var ErrCycle = errors.New("reactive: cycle detected")

// ErrNilScope reports a primitive created without an owning scope.
var ErrNilScope = errors.New("reactive: nil scope")

// Error attributes a reactive failure to the operation and primitive that
// caused it. The runtime raises it with panic; callers that recover can use
// errors.Is against the sentinel errors.
type Error struct {
	// Op is the failing operation, e.g. "Signal.Get".
	Op string

	// ID is the id of the primitive involved.
	ID uint64

	// Err is the cause.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("%s (%s #%d)", e.Err, e.Op, e.ID)
}

// Unwrap returns the cause for errors.Is/As support.
func (e *Error) Unwrap() error {
	return e.Err
}

func fail(op string, id uint64, err error) {
	panic(&Error{Op: op, ID: id, Err: err})
}
