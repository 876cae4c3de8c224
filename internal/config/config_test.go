package config

import (
	stderrors "errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/vango-dev/reactor/internal/errors"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(content), 0o644))
	return dir
}

func errorCode(t *testing.T, err error) string {
	t.Helper()
	var e *errors.Error
	require.True(t, stderrors.As(err, &e), "expected *errors.Error, got %T", err)
	return e.Code
}

func TestNew(t *testing.T) {
	cfg := New()
	require.Equal(t, int64(1), cfg.Seed)
	require.Equal(t, DefaultMaxDepth, cfg.Reactive.MaxDepth)
	require.Equal(t, 10, cfg.Bench.Iterations)
	require.Equal(t, DefaultAddr, cfg.Serve.Addr)
	require.Equal(t, 5*time.Minute, cfg.Serve.ReadTimeout)
	require.NoError(t, cfg.Validate())
}

func TestLoad(t *testing.T) {
	dir := writeConfig(t, `
seed: 42
log:
  level: debug
bench:
  iterations: 3
  scenarios: [create, swap]
serve:
  addr: ":9000"
  write_timeout: 2s
`)
	cfg, err := Load(dir)
	require.NoError(t, err)

	require.Equal(t, int64(42), cfg.Seed)
	require.Equal(t, "debug", cfg.Log.Level)
	require.Equal(t, "text", cfg.Log.Format)
	require.Equal(t, 3, cfg.Bench.Iterations)
	require.Equal(t, 2, cfg.Bench.Warmup)
	require.Equal(t, []string{"create", "swap"}, cfg.Bench.Scenarios)
	require.Equal(t, ":9000", cfg.Serve.Addr)
	require.Equal(t, 2*time.Second, cfg.Serve.WriteTimeout)
	require.Equal(t, 100, cfg.Serve.MaxSessions)
	require.Equal(t, filepath.Join(dir, ConfigFileName), cfg.Path())
}

func TestLoadEmptyFile(t *testing.T) {
	cfg, err := Load(writeConfig(t, ""))
	require.NoError(t, err)
	require.Equal(t, New().Bench, cfg.Bench)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		code    string
	}{
		{"syntax", "bench:\n  iterations: [\n", "E120"},
		{"unknown field", "colour: red\n", "E120"},
		{"wrong type", "bench:\n  iterations: many\n", "E120"},
		{"zero iterations", "bench:\n  iterations: 0\n", "E122"},
		{"negative depth", "reactive:\n  max_depth: -1\n", "E122"},
		{"bad level", "log:\n  level: loud\n", "E122"},
		{"bad format", "log:\n  format: xml\n", "E122"},
		{"empty addr", "serve:\n  addr: \"\"\n", "E122"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			require.Error(t, err)
			require.Equal(t, tt.code, errorCode(t, err))
		})
	}
}

func TestLoadYAMLErrorLocation(t *testing.T) {
	dir := writeConfig(t, "seed: 1\nbench:\n  iterations: many\n")
	_, err := Load(dir)

	var e *errors.Error
	require.True(t, stderrors.As(err, &e))
	require.NotNil(t, e.Location)
	require.Equal(t, 3, e.Location.Line)
}

func TestLoadMissing(t *testing.T) {
	dir := t.TempDir()
	require.False(t, Exists(dir))

	_, err := Load(dir)
	require.Equal(t, "E141", errorCode(t, err))
	require.True(t, stderrors.Is(err, os.ErrNotExist))
}
