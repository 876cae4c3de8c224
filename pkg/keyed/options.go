package keyed

import (
	"log/slog"
	"time"

	"github.com/vango-dev/reactor/pkg/dom"
)

// Stats describes one reconciliation.
type Stats struct {
	Len        int           // entries after the pass
	Created    int           // entries rendered
	Removed    int           // entries disposed
	Moved      int           // surviving nodes repositioned
	Duplicates int           // keys skipped because a later item had the same key
	Cleared    bool          // the clear-all fast path was taken
	Duration   time.Duration // wall time of the pass
}

// Option configures a List.
type Option func(*config)

type config struct {
	anchor    dom.Node
	exclusive bool
	observer  func(Stats)
	logger    *slog.Logger
}

// WithAnchor renders the list before anchor, which must be a child of the
// parent. Without an anchor the list owns the tail of the parent.
func WithAnchor(anchor dom.Node) Option {
	return func(c *config) {
		c.anchor = anchor
	}
}

// WithExclusive declares that the list is the only content of its parent,
// which lets it remove every row in one operation.
func WithExclusive(exclusive bool) Option {
	return func(c *config) {
		c.exclusive = exclusive
	}
}

// WithObserver registers fn to receive the stats of every pass.
func WithObserver(fn func(Stats)) Option {
	return func(c *config) {
		c.observer = fn
	}
}

// WithLogger sets the list's logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}
