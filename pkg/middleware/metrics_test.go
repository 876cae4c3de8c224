package middleware

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"

	"github.com/vango-dev/reactor/pkg/dom"
	"github.com/vango-dev/reactor/pkg/keyed"
	"github.com/vango-dev/reactor/pkg/reactive"
)

func metricCounterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	var m dto.Metric
	if err := c.Write(&m); err != nil {
		t.Fatalf("counter Write() error: %v", err)
	}
	if m.Counter == nil {
		t.Fatal("expected counter metric to have Counter field")
	}
	return m.GetCounter().GetValue()
}

func metricGaugeValue(t *testing.T, g prometheus.Gauge) float64 {
	t.Helper()
	var m dto.Metric
	if err := g.Write(&m); err != nil {
		t.Fatalf("gauge Write() error: %v", err)
	}
	if m.Gauge == nil {
		t.Fatal("expected gauge metric to have Gauge field")
	}
	return m.GetGauge().GetValue()
}

func metricHistogramCount(t *testing.T, o prometheus.Observer) uint64 {
	t.Helper()
	metric, ok := o.(prometheus.Metric)
	if !ok {
		t.Fatalf("observer %T does not implement prometheus.Metric", o)
	}
	var m dto.Metric
	if err := metric.Write(&m); err != nil {
		t.Fatalf("histogram Write() error: %v", err)
	}
	if m.Histogram == nil {
		t.Fatal("expected histogram metric to have Histogram field")
	}
	return m.GetHistogram().GetSampleCount()
}

func newTestMetrics() *Metrics {
	return NewMetrics(WithRegistry(prometheus.NewRegistry()), WithSubsystem("test"))
}

func TestMetrics_Middleware(t *testing.T) {
	m := newTestMetrics()
	h := Chain(func(ctx context.Context, d *Dispatch) error {
		if d.Name == "bad" {
			return fmt.Errorf("apply: %w", reactive.ErrCycle)
		}
		return nil
	}, m.Middleware())

	for i := 0; i < 3; i++ {
		_ = h(context.Background(), &Dispatch{Kind: KindAction, Name: "run"})
	}
	if err := h(context.Background(), &Dispatch{Kind: KindAction, Name: "bad"}); err == nil {
		t.Fatal("expected error to propagate")
	}

	if got := metricCounterValue(t, m.dispatchTotal.WithLabelValues(KindAction, "run", "success")); got != 3 {
		t.Fatalf("run success = %v, want 3", got)
	}
	if got := metricCounterValue(t, m.dispatchTotal.WithLabelValues(KindAction, "bad", "error")); got != 1 {
		t.Fatalf("bad error = %v, want 1", got)
	}
	if got := metricCounterValue(t, m.dispatchErrors.WithLabelValues(KindAction, "cycle")); got != 1 {
		t.Fatalf("cycle errors = %v, want 1", got)
	}
	if got := metricHistogramCount(t, m.dispatchDuration.WithLabelValues(KindAction, "run")); got != 3 {
		t.Fatalf("duration samples = %d, want 3", got)
	}
}

func TestMetrics_Sessions(t *testing.T) {
	m := newTestMetrics()
	m.SessionOpened()
	m.SessionOpened()
	m.SessionClosed()
	if got := metricGaugeValue(t, m.activeSessions); got != 1 {
		t.Fatalf("active sessions = %v, want 1", got)
	}

	m.RecordOps(12)
	m.RecordOps(3)
	if got := metricCounterValue(t, m.opsSent); got != 15 {
		t.Fatalf("ops sent = %v, want 15", got)
	}

	m.RecordWebSocketError("read")
	if got := metricCounterValue(t, m.wsErrors.WithLabelValues("read")); got != 1 {
		t.Fatalf("ws errors = %v, want 1", got)
	}
}

func TestMetrics_ObserveList(t *testing.T) {
	m := newTestMetrics()
	m.ObserveList(keyed.Stats{Len: 10, Created: 10, Duration: time.Millisecond})
	m.ObserveList(keyed.Stats{Len: 10, Moved: 2, Duration: time.Millisecond})
	m.ObserveList(keyed.Stats{Len: 9, Removed: 1})

	if got := metricHistogramCount(t, m.listPass); got != 3 {
		t.Fatalf("list passes = %d, want 3", got)
	}
	for op, want := range map[string]float64{"created": 10, "moved": 2, "removed": 1} {
		if got := metricCounterValue(t, m.listRows.WithLabelValues(op)); got != want {
			t.Fatalf("%s rows = %v, want %v", op, got, want)
		}
	}
}

func TestMetrics_SeparateRegistries(t *testing.T) {
	// Registering twice against one registry panics; separate ones must not.
	_ = NewMetrics(WithRegistry(prometheus.NewRegistry()))
	_ = NewMetrics(WithRegistry(prometheus.NewRegistry()))
}

func TestCategorizeError(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{&reactive.Error{Op: "Effect.run", Err: reactive.ErrCycle}, "cycle"},
		{fmt.Errorf("x: %w", reactive.ErrDisposed), "disposed"},
		{fmt.Errorf("dispatch: %w", dom.ErrUnknownNode), "unknown_node"},
		{context.DeadlineExceeded, "timeout"},
		{context.Canceled, "timeout"},
		{&PanicError{Value: 1}, "panic"},
		{errors.New("bench: unknown action \"jump\""), "unknown_action"},
		{errors.New("websocket: close 1006"), "websocket"},
		{errors.New("other"), "internal"},
	}
	for _, tt := range tests {
		if got := categorizeError(tt.err); got != tt.want {
			t.Errorf("categorizeError(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}
