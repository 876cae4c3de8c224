package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"text/tabwriter"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"

	"github.com/vango-dev/reactor/internal/bench"
	"github.com/vango-dev/reactor/internal/errors"
	"github.com/vango-dev/reactor/pkg/middleware"
)

type benchOptions struct {
	iterations int
	warmup     int
	seed       int64
	scenarios  []string
	jsonOut    bool
	metrics    bool
	list       bool
}

func benchCmd(configPath *string) *cobra.Command {
	var opts benchOptions

	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Run the keyed-list benchmark in memory",
		Long: `Run benchmark scenarios against an in-memory document.

Each iteration mounts a fresh app, prepares the scenario's starting state
and times one action. Document operation counts come from the last run.

Examples:
  reactor bench
  reactor bench --scenario create,swap --iterations 50
  reactor bench --json
  reactor bench --metrics`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.list {
				return listScenarios(cmd.OutOrStdout())
			}
			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			flags := cmd.Flags()
			if flags.Changed("iterations") {
				cfg.Bench.Iterations = opts.iterations
			}
			if flags.Changed("warmup") {
				cfg.Bench.Warmup = opts.warmup
			}
			if flags.Changed("seed") {
				cfg.Seed = opts.seed
			}
			if flags.Changed("scenario") {
				cfg.Bench.Scenarios = opts.scenarios
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			scenarios, err := bench.Lookup(cfg.Bench.Scenarios...)
			if err != nil {
				return errors.New("E201").Wrap(err).
					WithSuggestion("Run 'reactor bench --list' to see the scenarios")
			}

			logger := newLogger(cfg.Log, cmd.ErrOrStderr())
			registry := prometheus.NewRegistry()
			metrics := middleware.NewMetrics(middleware.WithRegistry(registry))

			runner := &bench.Runner{
				Iterations: cfg.Bench.Iterations,
				Warmup:     cfg.Bench.Warmup,
				Seed:       cfg.Seed,
				MaxDepth:   cfg.Reactive.MaxDepth,
				Logger:     logger,
				Middleware: []middleware.Middleware{
					middleware.Recover(logger),
					metrics.Middleware(),
					middleware.Logger(logger),
				},
				Observer: metrics.ObserveList,
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			results, err := runner.Run(ctx, scenarios)
			if err != nil {
				return errors.FromError(err, "E300")
			}

			out := cmd.OutOrStdout()
			switch {
			case opts.metrics:
				err = writeMetrics(out, registry)
			case opts.jsonOut:
				err = writeJSON(out, results)
			default:
				err = writeTable(out, results)
			}
			if err != nil {
				return errors.New("E204").Wrap(err)
			}
			return nil
		},
	}

	flags := cmd.Flags()
	flags.IntVarP(&opts.iterations, "iterations", "n", 10, "Timed runs per scenario")
	flags.IntVar(&opts.warmup, "warmup", 2, "Untimed runs per scenario")
	flags.Int64Var(&opts.seed, "seed", 1, "Label generator seed")
	flags.StringSliceVarP(&opts.scenarios, "scenario", "s", nil, "Scenarios to run (default all)")
	flags.BoolVar(&opts.jsonOut, "json", false, "Print results as JSON")
	flags.BoolVar(&opts.metrics, "metrics", false, "Print the collected Prometheus metrics instead of results")
	flags.BoolVarP(&opts.list, "list", "l", false, "List scenarios and exit")

	return cmd
}

func listScenarios(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, sc := range bench.Scenarios {
		fmt.Fprintf(tw, "%s\t%s\n", sc.Name, sc.Description)
	}
	return tw.Flush()
}

func writeTable(w io.Writer, results []bench.Result) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "scenario\tmin\tmedian\tmean\tmax\tops\tcreated\tmoved\tremoved\teffects\t")
	for _, r := range results {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%d\t%d\t%d\t%d\t%d\t\n",
			r.Name,
			round(r.Min), round(r.Median), round(r.Mean), round(r.Max),
			r.Ops(), r.Counters.Created, r.Counters.Moved, r.Counters.Removed,
			r.EffectRuns,
		)
	}
	return tw.Flush()
}

func round(d time.Duration) time.Duration {
	switch {
	case d >= time.Millisecond:
		return d.Round(10 * time.Microsecond)
	case d >= time.Microsecond:
		return d.Round(100 * time.Nanosecond)
	default:
		return d
	}
}

type jsonResult struct {
	Scenario   string `json:"scenario"`
	Iterations int    `json:"iterations"`
	MinNS      int64  `json:"min_ns"`
	MedianNS   int64  `json:"median_ns"`
	MeanNS     int64  `json:"mean_ns"`
	MaxNS      int64  `json:"max_ns"`
	Ops        int    `json:"ops"`
	Created    int    `json:"created"`
	Inserted   int    `json:"inserted"`
	Moved      int    `json:"moved"`
	Removed    int    `json:"removed"`
	Clears     int    `json:"clears"`
	AttrWrites int    `json:"attr_writes"`
	TextWrites int    `json:"text_writes"`
	Rows       int    `json:"rows"`
	EffectRuns uint64 `json:"effect_runs"`
}

func writeJSON(w io.Writer, results []bench.Result) error {
	out := make([]jsonResult, 0, len(results))
	for _, r := range results {
		out = append(out, jsonResult{
			Scenario:   r.Name,
			Iterations: r.Iterations,
			MinNS:      r.Min.Nanoseconds(),
			MedianNS:   r.Median.Nanoseconds(),
			MeanNS:     r.Mean.Nanoseconds(),
			MaxNS:      r.Max.Nanoseconds(),
			Ops:        r.Ops(),
			Created:    r.Counters.Created,
			Inserted:   r.Counters.Inserted,
			Moved:      r.Counters.Moved,
			Removed:    r.Counters.Removed,
			Clears:     r.Counters.Clears,
			AttrWrites: r.Counters.AttrWrites,
			TextWrites: r.Counters.TextWrites,
			Rows:       r.List.Len,
			EffectRuns: r.EffectRuns,
		})
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func writeMetrics(w io.Writer, g prometheus.Gatherer) error {
	families, err := g.Gather()
	if err != nil {
		return err
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}
	return nil
}

