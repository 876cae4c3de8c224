package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vango-dev/reactor/internal/config"
	"github.com/vango-dev/reactor/internal/errors"
	"github.com/vango-dev/reactor/pkg/live"
)

func serveCmd(configPath *string) *cobra.Command {
	var (
		addr        string
		maxSessions int
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the benchmark app over WebSocket",
		Long: `Start the live host. Each browser tab gets its own session whose
document is mirrored into the page by a small client script.

Endpoints:
  /          page shell
  /ws        WebSocket sessions
  /healthz   health status
  /metrics   Prometheus metrics

Examples:
  reactor serve
  reactor serve --addr 127.0.0.1:9000`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("addr") {
				cfg.Serve.Addr = addr
			}
			if cmd.Flags().Changed("max-sessions") {
				cfg.Serve.MaxSessions = maxSessions
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			srv := live.New(liveConfig(cfg, newLogger(cfg.Log, cmd.ErrOrStderr())))
			success("Serving on http://%s", displayAddr(cfg.Serve.Addr))
			info("Press Ctrl+C to stop")
			if err := srv.ListenAndServe(ctx); err != nil {
				return errors.New("E203").Wrap(err)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", config.DefaultAddr, "Address to listen on")
	cmd.Flags().IntVar(&maxSessions, "max-sessions", 100, "Concurrent session limit (0 for unlimited)")

	return cmd
}

func liveConfig(cfg *config.Config, logger *slog.Logger) *live.Config {
	return &live.Config{
		Addr:           cfg.Serve.Addr,
		MaxSessions:    cfg.Serve.MaxSessions,
		ReadTimeout:    cfg.Serve.ReadTimeout,
		WriteTimeout:   cfg.Serve.WriteTimeout,
		MaxMessageSize: cfg.Serve.MaxMessageSize,
		Seed:           cfg.Seed,
		MaxDepth:       cfg.Reactive.MaxDepth,
		StyleSheets:    cfg.Serve.StyleSheets,
		Logger:         logger,
	}
}

func displayAddr(addr string) string {
	if len(addr) > 0 && addr[0] == ':' {
		return "localhost" + addr
	}
	return addr
}
