package config

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/vango-dev/reactor/internal/errors"
)

const (
	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "reactor.yaml"

	// DefaultAddr is the default live host address.
	DefaultAddr = ":8080"

	// DefaultMaxDepth is the default re-entrant run limit.
	DefaultMaxDepth = 1000
)

// Config is the complete reactor.yaml configuration.
type Config struct {
	// Seed seeds the row label generator.
	Seed int64 `yaml:"seed"`

	Log      LogConfig      `yaml:"log"`
	Reactive ReactiveConfig `yaml:"reactive"`
	Bench    BenchConfig    `yaml:"bench"`
	Serve    ServeConfig    `yaml:"serve"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// LogConfig configures the slog handler.
type LogConfig struct {
	// Level is one of debug, info, warn and error.
	Level string `yaml:"level"`

	// Format is text or json.
	Format string `yaml:"format"`
}

// ReactiveConfig configures every reactive runtime.
type ReactiveConfig struct {
	// MaxDepth bounds nested computation runs. 0 disables the guard.
	MaxDepth int `yaml:"max_depth"`
}

// BenchConfig configures `reactor bench`.
type BenchConfig struct {
	Iterations int `yaml:"iterations"`
	Warmup     int `yaml:"warmup"`

	// Scenarios restricts the run to the named scenarios. Empty runs all.
	Scenarios []string `yaml:"scenarios"`
}

// ServeConfig configures `reactor serve`.
type ServeConfig struct {
	Addr           string        `yaml:"addr"`
	MaxSessions    int           `yaml:"max_sessions"`
	ReadTimeout    time.Duration `yaml:"read_timeout"`
	WriteTimeout   time.Duration `yaml:"write_timeout"`
	MaxMessageSize int64         `yaml:"max_message_size"`
	StyleSheets    []string      `yaml:"stylesheets"`
}

// New creates a Config with default values.
func New() *Config {
	return &Config{
		Seed: 1,
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Reactive: ReactiveConfig{
			MaxDepth: DefaultMaxDepth,
		},
		Bench: BenchConfig{
			Iterations: 10,
			Warmup:     2,
		},
		Serve: ServeConfig{
			Addr:           DefaultAddr,
			MaxSessions:    100,
			ReadTimeout:    5 * time.Minute,
			WriteTimeout:   10 * time.Second,
			MaxMessageSize: 64 * 1024,
		},
	}
}

// Load reads reactor.yaml from dir.
func Load(dir string) (*Config, error) {
	return LoadFile(filepath.Join(dir, ConfigFileName))
}

// LoadFile reads the configuration from path. Fields the file omits keep
// their defaults. Unknown fields are rejected.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("E141").
				WithDetail("No " + ConfigFileName + " found in " + filepath.Dir(path)).
				WithSuggestion("Create " + ConfigFileName + " or run without --config").
				Wrap(err)
		}
		return nil, errors.New("E121").Wrap(err)
	}

	cfg := New()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && err != io.EOF {
		return nil, errors.New("E120").
			WithYAMLError(path, err).
			WithSuggestion("Check " + ConfigFileName + " against the documented fields")
	}

	cfg.configPath = path
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Path returns the path where the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	switch {
	case c.Reactive.MaxDepth < 0:
		return invalid("reactive.max_depth must not be negative")
	case c.Bench.Iterations < 1:
		return invalid("bench.iterations must be at least 1")
	case c.Bench.Warmup < 0:
		return invalid("bench.warmup must not be negative")
	case c.Serve.Addr == "":
		return invalid("serve.addr must be set")
	case c.Serve.MaxSessions < 0:
		return invalid("serve.max_sessions must not be negative")
	case c.Serve.ReadTimeout < 0 || c.Serve.WriteTimeout < 0:
		return invalid("serve timeouts must not be negative")
	case c.Serve.MaxMessageSize < 0:
		return invalid("serve.max_message_size must not be negative")
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return invalid(fmt.Sprintf("log.level %q is not one of debug, info, warn, error", c.Log.Level))
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return invalid(fmt.Sprintf("log.format %q is not text or json", c.Log.Format))
	}
	return nil
}

func invalid(detail string) error {
	return errors.New("E122").WithDetail(detail)
}

// Exists reports whether dir contains a configuration file.
func Exists(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, ConfigFileName))
	return err == nil
}
