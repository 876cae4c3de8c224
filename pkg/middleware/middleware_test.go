package middleware

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
}

func TestChain_Order(t *testing.T) {
	var order []string
	mark := func(name string) Middleware {
		return func(next Handler) Handler {
			return func(ctx context.Context, d *Dispatch) error {
				order = append(order, name+">")
				err := next(ctx, d)
				order = append(order, "<"+name)
				return err
			}
		}
	}

	h := Chain(func(ctx context.Context, d *Dispatch) error {
		order = append(order, "handler")
		return nil
	}, mark("a"), nil, mark("b"))

	if err := h(context.Background(), &Dispatch{Kind: KindAction, Name: "run"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := strings.Join(order, " ")
	if want := "a> b> handler <b <a"; got != want {
		t.Fatalf("order = %q, want %q", got, want)
	}
}

func TestRecover_ConvertsPanic(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	h := Chain(func(ctx context.Context, d *Dispatch) error {
		panic("boom")
	}, Recover(logger))

	err := h(context.Background(), &Dispatch{Kind: KindEvent, Name: "click"})
	var pe *PanicError
	if !errors.As(err, &pe) {
		t.Fatalf("expected *PanicError, got %T: %v", err, err)
	}
	if pe.Value != "boom" || len(pe.Stack) == 0 {
		t.Fatalf("unexpected panic error: %+v", pe)
	}
	if !strings.Contains(buf.String(), "dispatch panicked") {
		t.Fatalf("expected panic to be logged, got %q", buf.String())
	}
}

func TestRecover_KeepsErrorValue(t *testing.T) {
	sentinel := errors.New("sentinel")
	h := Chain(func(ctx context.Context, d *Dispatch) error {
		panic(sentinel)
	}, Recover(discardLogger()))

	if err := h(context.Background(), &Dispatch{}); !errors.Is(err, sentinel) {
		t.Fatalf("expected sentinel, got %v", err)
	}
}

func TestLogger_LevelsByOutcome(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	ok := Chain(func(ctx context.Context, d *Dispatch) error {
		d.Ops = 7
		return nil
	}, Logger(logger))
	if err := ok(context.Background(), &Dispatch{Kind: KindAction, Name: "add", Session: "s1"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"level=DEBUG", "name=add", "ops=7", "session=s1"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in %q", want, out)
		}
	}

	buf.Reset()
	fail := Chain(func(ctx context.Context, d *Dispatch) error {
		return errors.New("nope")
	}, Logger(logger))
	if err := fail(context.Background(), &Dispatch{Kind: KindAction, Name: "bad"}); err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(buf.String(), "level=WARN") {
		t.Fatalf("expected warn log, got %q", buf.String())
	}
}
