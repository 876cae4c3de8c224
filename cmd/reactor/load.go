package main

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"github.com/spf13/cobra"

	"github.com/vango-dev/reactor/internal/bench"
	"github.com/vango-dev/reactor/internal/errors"
	"github.com/vango-dev/reactor/pkg/live"
	"github.com/vango-dev/reactor/pkg/protocol"
)

type loadOptions struct {
	url      string
	clients  int
	duration time.Duration
	rps      float64
	timeout  time.Duration
}

// loadActions are clicked in turn. Each one changes the document, so every
// event is answered by an ops frame.
var loadActions = []string{bench.ActionRun, bench.ActionUpdate, bench.ActionSwapRows}

func loadCmd(configPath *string) *cobra.Command {
	var opts loadOptions

	cmd := &cobra.Command{
		Use:   "load",
		Short: "Drive concurrent WebSocket sessions against a live app",
		Long: `Open many sessions, click run, update and swap in turn and measure the
time from sending an event to receiving its ops.

Without --url an in-process server on a loopback port is used.

Examples:
  reactor load --clients 50 --duration 10s
  reactor load --url ws://localhost:8080/ws --rps 5`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.clients < 1 || opts.duration <= 0 || opts.rps < 0 {
				return errors.New("E202").WithDetail("--clients and --duration must be positive, --rps not negative")
			}
			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}

			if opts.url == "" {
				lc := liveConfig(cfg, newLogger(cfg.Log, cmd.ErrOrStderr()))
				lc.MaxSessions = 0
				lc.CheckOrigin = func(*http.Request) bool { return true }
				url, shutdown, err := startLocal(lc)
				if err != nil {
					return errors.New("E203").Wrap(err)
				}
				defer shutdown()
				opts.url = url
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), opts.duration)
			defer cancel()

			report := runLoad(ctx, opts)
			return report.write(cmd.OutOrStdout())
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.url, "url", "", "WebSocket endpoint (default: in-process server)")
	flags.IntVar(&opts.clients, "clients", 20, "Concurrent sessions")
	flags.DurationVarP(&opts.duration, "duration", "d", 10*time.Second, "Run time")
	flags.Float64Var(&opts.rps, "rps", 0, "Events per second per session (0 for back-to-back)")
	flags.DurationVar(&opts.timeout, "timeout", 5*time.Second, "Time to wait for an event's ops")

	return cmd
}

func startLocal(config *live.Config) (string, func(), error) {
	ln, err := net.Listen("tcp4", "127.0.0.1:0")
	if err != nil {
		return "", nil, err
	}
	srv := live.New(config)
	httpServer := &http.Server{Handler: srv, ReadHeaderTimeout: 10 * time.Second}
	go func() {
		_ = httpServer.Serve(ln)
	}()
	shutdown := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = httpServer.Shutdown(ctx)
		srv.Close()
	}
	return "ws://" + ln.Addr().String() + "/ws", shutdown, nil
}

type loadStats struct {
	sessions   atomic.Uint64
	events     atomic.Uint64
	ops        atomic.Uint64
	bytes      atomic.Uint64
	errorCodes atomic.Uint64
	failures   atomic.Uint64

	mu        sync.Mutex
	latencies []time.Duration
}

func (s *loadStats) observe(d time.Duration) {
	s.mu.Lock()
	s.latencies = append(s.latencies, d)
	s.mu.Unlock()
}

func runLoad(ctx context.Context, opts loadOptions) *loadReport {
	var (
		stats loadStats
		wg    sync.WaitGroup
	)
	start := time.Now()
	wg.Add(opts.clients)
	for i := 0; i < opts.clients; i++ {
		go func() {
			defer wg.Done()
			if err := runClient(ctx, opts, &stats); err != nil {
				stats.failures.Add(1)
			}
		}()
	}
	wg.Wait()
	return newLoadReport(time.Since(start), &stats)
}

// runClient plays one session until ctx is done.
func runClient(ctx context.Context, opts loadOptions, stats *loadStats) error {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, opts.url, nil)
	if err != nil {
		return err
	}
	defer conn.Close()

	read := func() (*protocol.Frame, error) {
		conn.SetReadDeadline(time.Now().Add(opts.timeout))
		_, data, err := conn.ReadMessage()
		if err != nil {
			return nil, err
		}
		return protocol.DecodeFrame(data)
	}

	if f, err := read(); err != nil {
		return err
	} else if f.Type != protocol.FrameHello {
		return fmt.Errorf("expected hello, got %s", f.Type)
	}
	f, err := read()
	if err != nil {
		return err
	}
	ops, err := protocol.DecodeOps(f.Payload)
	if err != nil {
		return err
	}
	buttons := make(map[string]uint64)
	for _, op := range ops {
		if op.Kind == protocol.OpSetAttr && op.Name == "id" {
			buttons[op.Value] = op.ID
		}
	}
	for _, name := range loadActions {
		if buttons[name] == 0 {
			return fmt.Errorf("no %q button in initial ops", name)
		}
	}
	stats.sessions.Add(1)

	var tick <-chan time.Time
	if opts.rps > 0 {
		ticker := time.NewTicker(time.Duration(float64(time.Second) / opts.rps))
		defer ticker.Stop()
		tick = ticker.C
	}

	for i := 0; ; i++ {
		if tick != nil {
			select {
			case <-ctx.Done():
				return nil
			case <-tick:
			}
		} else if ctx.Err() != nil {
			return nil
		}

		ev := &protocol.Event{Target: buttons[loadActions[i%len(loadActions)]], Type: "click"}
		sent := time.Now()
		conn.SetWriteDeadline(sent.Add(opts.timeout))
		frame := protocol.NewFrame(protocol.FrameEvent, protocol.EncodeEvent(ev))
		if err := conn.WriteMessage(websocket.BinaryMessage, frame.Encode()); err != nil {
			return err
		}
		stats.events.Add(1)

		f, err := read()
		if err != nil {
			return err
		}
		switch f.Type {
		case protocol.FrameOps:
			stats.observe(time.Since(sent))
			stats.bytes.Add(uint64(len(f.Payload)))
			if n, err := protocol.NewDecoder(f.Payload).ReadCount(); err == nil {
				stats.ops.Add(uint64(n))
			}
		case protocol.FrameError:
			stats.errorCodes.Add(1)
			if em, err := protocol.DecodeErrorMessage(f.Payload); err == nil && em.Fatal {
				return em
			}
		}
	}
}

type loadReport struct {
	Elapsed   time.Duration
	Sessions  uint64
	Events    uint64
	Ops       uint64
	Bytes     uint64
	Errors    uint64
	Failures  uint64
	P50, P95  time.Duration
	P99, Max  time.Duration
	Completed int
}

func newLoadReport(elapsed time.Duration, s *loadStats) *loadReport {
	s.mu.Lock()
	lat := append([]time.Duration(nil), s.latencies...)
	s.mu.Unlock()
	sort.Slice(lat, func(i, j int) bool { return lat[i] < lat[j] })

	r := &loadReport{
		Elapsed:   elapsed,
		Sessions:  s.sessions.Load(),
		Events:    s.events.Load(),
		Ops:       s.ops.Load(),
		Bytes:     s.bytes.Load(),
		Errors:    s.errorCodes.Load(),
		Failures:  s.failures.Load(),
		P50:       percentile(lat, 0.50),
		P95:       percentile(lat, 0.95),
		P99:       percentile(lat, 0.99),
		Completed: len(lat),
	}
	if len(lat) > 0 {
		r.Max = lat[len(lat)-1]
	}
	return r
}

// percentile returns the nearest-rank percentile of sorted.
func percentile(sorted []time.Duration, p float64) time.Duration {
	if len(sorted) == 0 {
		return 0
	}
	i := int(float64(len(sorted))*p+0.5) - 1
	if i < 0 {
		i = 0
	}
	if i >= len(sorted) {
		i = len(sorted) - 1
	}
	return sorted[i]
}

func (r *loadReport) write(w io.Writer) error {
	rate := 0.0
	if r.Elapsed > 0 {
		rate = float64(r.Completed) / r.Elapsed.Seconds()
	}
	_, err := fmt.Fprintf(w, `sessions   %d (%d failed)
events     %d sent, %d answered, %.1f/s
ops        %d in %d bytes
errors     %d error frames
latency    p50 %s  p95 %s  p99 %s  max %s
`,
		r.Sessions, r.Failures,
		r.Events, r.Completed, rate,
		r.Ops, r.Bytes,
		r.Errors,
		round(r.P50), round(r.P95), round(r.P99), round(r.Max),
	)
	return err
}
