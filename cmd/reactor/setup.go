package main

import (
	"io"
	"log/slog"
	"strings"

	"github.com/vango-dev/reactor/internal/config"
)

const configFileHint = config.ConfigFileName + " (default: ./" + config.ConfigFileName + " if present)"

// loadConfig reads path, or reactor.yaml in the working directory when it
// exists, or falls back to defaults.
func loadConfig(path string) (*config.Config, error) {
	switch {
	case path != "":
		return config.LoadFile(path)
	case config.Exists("."):
		return config.Load(".")
	default:
		return config.New(), nil
	}
}

func newLogger(cfg config.LogConfig, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(cfg.Level)}
	if strings.EqualFold(cfg.Format, "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func parseLevel(s string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo
	}
	return level
}
