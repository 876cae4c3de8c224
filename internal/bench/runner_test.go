package bench

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/vango-dev/reactor/pkg/keyed"
	"github.com/vango-dev/reactor/pkg/middleware"
)

func runOne(t *testing.T, name string) Result {
	t.Helper()
	scenarios, err := Lookup(name)
	require.NoError(t, err)
	r := &Runner{Iterations: 1, Seed: 7}
	results, err := r.Run(context.Background(), scenarios)
	require.NoError(t, err)
	require.Len(t, results, 1)
	return results[0]
}

func TestRunner_ScenarioShapes(t *testing.T) {
	tests := []struct {
		name  string
		check func(t *testing.T, res Result)
	}{
		{"create", func(t *testing.T, res Result) {
			require.Equal(t, 1000, res.List.Len)
			require.Equal(t, 1000, res.List.Created)
		}},
		{"replace", func(t *testing.T, res Result) {
			require.Equal(t, 1000, res.List.Created)
			require.True(t, res.List.Cleared)
		}},
		{"update", func(t *testing.T, res Result) {
			require.Equal(t, 100, res.Counters.TextWrites)
			require.Zero(t, res.List.Moved)
		}},
		{"select", func(t *testing.T, res Result) {
			require.Equal(t, uint64(2), res.EffectRuns)
			require.Equal(t, 1, res.Counters.AttrWrites)
		}},
		{"swap", func(t *testing.T, res Result) {
			require.Equal(t, 2, res.List.Moved)
			require.Equal(t, 2, res.Counters.Moved)
		}},
		{"remove", func(t *testing.T, res Result) {
			require.Equal(t, 1, res.List.Removed)
			require.Equal(t, 999, res.List.Len)
			require.Zero(t, res.List.Moved)
		}},
		{"append", func(t *testing.T, res Result) {
			require.Equal(t, 1000, res.List.Created)
			require.Equal(t, 2000, res.List.Len)
		}},
		{"clear", func(t *testing.T, res Result) {
			require.True(t, res.List.Cleared)
			require.Equal(t, 1, res.Counters.Clears)
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, runOne(t, tt.name))
		})
	}
}

func TestRunner_Summary(t *testing.T) {
	scenarios, err := Lookup("select", "swap")
	require.NoError(t, err)

	var dispatched []string
	record := func(next middleware.Handler) middleware.Handler {
		return func(ctx context.Context, d *middleware.Dispatch) error {
			err := next(ctx, d)
			require.Equal(t, middleware.KindAction, d.Kind)
			require.Positive(t, d.Ops)
			dispatched = append(dispatched, d.Name)
			return err
		}
	}
	passes := 0
	r := &Runner{
		Iterations: 3,
		Warmup:     1,
		Middleware: []middleware.Middleware{record},
		Observer:   func(keyed.Stats) { passes++ },
	}
	results, err := r.Run(context.Background(), scenarios)
	require.NoError(t, err)
	require.Len(t, results, 2)
	require.Equal(t, []string{"select", "select", "select", "select", "swap", "swap", "swap", "swap"}, dispatched)
	require.Positive(t, passes)

	for _, res := range results {
		require.Equal(t, 3, res.Iterations)
		require.LessOrEqual(t, res.Min, res.Median)
		require.LessOrEqual(t, res.Median, res.Max)
		require.LessOrEqual(t, res.Min, res.Mean)
		require.LessOrEqual(t, res.Mean, res.Max)
	}
}

func TestRunner_StopsOnError(t *testing.T) {
	boom := errors.New("boom")
	r := &Runner{Iterations: 2}
	_, err := r.Run(context.Background(), []Scenario{{
		Name: "broken",
		Run:  func(*Store) error { return boom },
	}})
	require.ErrorIs(t, err, boom)
}

func TestRunner_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := (&Runner{}).Run(ctx, Scenarios[:1])
	require.ErrorIs(t, err, context.Canceled)
}

func TestLookup(t *testing.T) {
	all, err := Lookup()
	require.NoError(t, err)
	require.Len(t, all, len(Scenarios))

	got, err := Lookup("swap", "create")
	require.NoError(t, err)
	require.Equal(t, "swap", got[0].Name)
	require.Equal(t, "create", got[1].Name)

	_, err = Lookup("nope")
	require.ErrorContains(t, err, `unknown scenario "nope"`)
}

func TestSummarize(t *testing.T) {
	ms := time.Millisecond
	lo, hi, mean, median := summarize([]time.Duration{4 * ms, 1 * ms, 3 * ms, 2 * ms})
	require.Equal(t, 1*ms, lo)
	require.Equal(t, 4*ms, hi)
	require.Equal(t, 2500*time.Microsecond, mean)
	require.Equal(t, 2500*time.Microsecond, median)

	lo, hi, mean, median = summarize(nil)
	require.Zero(t, lo+hi+mean+median)
}
