package reactive

import (
	"errors"
	"testing"
)

// expectPanic runs fn and fails the test unless it panics with an error
// matching target.
func expectPanic(t *testing.T, target error, fn func()) {
	t.Helper()
	defer func() {
		t.Helper()
		r := recover()
		if r == nil {
			t.Fatalf("expected panic with %v, got none", target)
		}
		err, ok := r.(error)
		if !ok {
			t.Fatalf("expected error panic, got %T: %v", r, r)
		}
		if !errors.Is(err, target) {
			t.Fatalf("expected %v, got %v", target, err)
		}
		var re *Error
		if !errors.As(err, &re) || re.Op == "" {
			t.Fatalf("expected attributed *Error, got %#v", err)
		}
	}()
	fn()
}

func newTestRoot(opts ...Option) (*Runtime, *Scope) {
	rt := NewRuntime(opts...)
	return rt, rt.NewRoot()
}
