package live

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/trace"
)

// Config configures the live host.
type Config struct {
	// Addr is the listen address for ListenAndServe.
	// Default: ":8080"
	Addr string

	// MaxSessions limits concurrent sessions. 0 means unlimited.
	// Default: 100
	MaxSessions int

	// ReadTimeout is how long a session may stay silent before it is
	// closed.
	// Default: 5 minutes
	ReadTimeout time.Duration

	// WriteTimeout bounds each frame write.
	// Default: 10 seconds
	WriteTimeout time.Duration

	// MaxMessageSize is the largest client frame accepted.
	// Default: 64KB
	MaxMessageSize int64

	// Seed seeds every session's label generator.
	Seed int64

	// MaxDepth is each session runtime's re-entrant run limit. 0 keeps the
	// runtime default.
	MaxDepth int

	// StyleSheets are linked from the page shell.
	StyleSheets []string

	// CheckOrigin validates WebSocket upgrade origins. Nil accepts only
	// same-host requests.
	CheckOrigin func(r *http.Request) bool

	// Registry receives the host's metrics and backs /metrics.
	// Default: a new registry
	Registry *prometheus.Registry

	// TracerProvider traces event dispatch. Nil uses the global provider.
	TracerProvider trace.TracerProvider

	Logger *slog.Logger
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Addr:           ":8080",
		MaxSessions:    100,
		ReadTimeout:    5 * time.Minute,
		WriteTimeout:   10 * time.Second,
		MaxMessageSize: 64 * 1024,
	}
}

func (c *Config) withDefaults() *Config {
	out := *c
	def := DefaultConfig()
	if out.Addr == "" {
		out.Addr = def.Addr
	}
	if out.ReadTimeout <= 0 {
		out.ReadTimeout = def.ReadTimeout
	}
	if out.WriteTimeout <= 0 {
		out.WriteTimeout = def.WriteTimeout
	}
	if out.MaxMessageSize <= 0 {
		out.MaxMessageSize = def.MaxMessageSize
	}
	if out.Registry == nil {
		out.Registry = prometheus.NewRegistry()
	}
	if out.Logger == nil {
		out.Logger = slog.Default()
	}
	return &out
}
