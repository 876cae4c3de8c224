package bench

import (
	"context"
	"log/slog"
	"slices"
	"time"

	"github.com/vango-dev/reactor/pkg/dom"
	"github.com/vango-dev/reactor/pkg/keyed"
	"github.com/vango-dev/reactor/pkg/middleware"
)

// Runner times scenarios against fresh memory-document instances.
type Runner struct {
	// Iterations is the number of timed runs per scenario (default 10).
	Iterations int

	// Warmup is the number of untimed runs before the timed ones.
	Warmup int

	Seed     int64
	MaxDepth int
	Logger   *slog.Logger

	// Middleware wraps every timed run, outermost first.
	Middleware []middleware.Middleware

	// Observer receives the stats of every row-list pass, including setup.
	Observer func(keyed.Stats)
}

// Result summarises the timed runs of one scenario. Counters, List and
// EffectRuns describe the last timed run.
type Result struct {
	Name       string
	Iterations int

	Min, Max, Mean, Median time.Duration

	Counters   dom.Counters
	List       keyed.Stats
	EffectRuns uint64
}

// Ops returns the number of document operations of the last run.
func (r Result) Ops() int {
	return opCount(r.Counters)
}

func opCount(c dom.Counters) int {
	return c.Created + c.Inserted + c.Moved + c.Removed + c.Clears +
		c.AttrWrites + c.TextWrites + c.Listeners
}

// Run runs each scenario in order. It stops at the first failing run or
// when ctx is done.
func (r *Runner) Run(ctx context.Context, scenarios []Scenario) ([]Result, error) {
	results := make([]Result, 0, len(scenarios))
	for _, sc := range scenarios {
		res, err := r.runScenario(ctx, sc)
		if err != nil {
			return results, err
		}
		results = append(results, res)
	}
	return results, nil
}

func (r *Runner) runScenario(ctx context.Context, sc Scenario) (Result, error) {
	iterations := r.Iterations
	if iterations <= 0 {
		iterations = 10
	}
	logger := r.logger()

	res := Result{Name: sc.Name, Iterations: iterations}
	durations := make([]time.Duration, 0, iterations)

	for i := 0; i < r.Warmup+iterations; i++ {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		timed := i >= r.Warmup
		sample, err := r.once(ctx, sc)
		if err != nil {
			return res, err
		}
		if !timed {
			continue
		}
		durations = append(durations, sample.duration)
		res.Counters = sample.counters
		res.List = sample.list
		res.EffectRuns = sample.effectRuns
	}

	res.Min, res.Max, res.Mean, res.Median = summarize(durations)
	logger.Debug("scenario done",
		"scenario", sc.Name,
		"iterations", iterations,
		"median", res.Median,
		"ops", res.Ops())
	return res, nil
}

type sample struct {
	duration   time.Duration
	counters   dom.Counters
	list       keyed.Stats
	effectRuns uint64
}

func (r *Runner) once(ctx context.Context, sc Scenario) (sample, error) {
	var last keyed.Stats
	in, doc := NewMemoryInstance(Options{
		Seed:     r.Seed,
		MaxDepth: r.MaxDepth,
		Logger:   r.Logger,
		Observer: func(st keyed.Stats) {
			last = st
			if r.Observer != nil {
				r.Observer(st)
			}
		},
	})
	defer in.Close()

	if sc.Setup != nil {
		sc.Setup(in.Store)
	}
	doc.ResetCounters()
	last = keyed.Stats{}
	before := in.Runtime.Stats().EffectRuns

	var elapsed time.Duration
	h := middleware.Chain(func(ctx context.Context, d *middleware.Dispatch) error {
		start := time.Now()
		err := sc.Run(in.Store)
		elapsed = time.Since(start)
		d.Ops = opCount(doc.Counters())
		return err
	}, r.Middleware...)

	err := h(ctx, &middleware.Dispatch{Kind: middleware.KindAction, Name: sc.Name})
	if err != nil {
		return sample{}, err
	}
	return sample{
		duration:   elapsed,
		counters:   doc.Counters(),
		list:       last,
		effectRuns: in.Runtime.Stats().EffectRuns - before,
	}, nil
}

func (r *Runner) logger() *slog.Logger {
	if r.Logger != nil {
		return r.Logger
	}
	return slog.Default().With("component", "bench")
}

func summarize(ds []time.Duration) (lo, hi, mean, median time.Duration) {
	if len(ds) == 0 {
		return
	}
	sorted := slices.Clone(ds)
	slices.Sort(sorted)
	lo, hi = sorted[0], sorted[len(sorted)-1]

	var total time.Duration
	for _, d := range sorted {
		total += d
	}
	mean = total / time.Duration(len(sorted))

	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		median = (sorted[mid-1] + sorted[mid]) / 2
	} else {
		median = sorted[mid]
	}
	return
}
