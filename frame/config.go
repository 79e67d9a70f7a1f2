package frame

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/AnatoleLucet/revue"
)

// Duration wraps time.Duration with TOML-friendly string parsing.
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	s := string(text)
	if s == "" {
		d.Duration = 0
		return nil
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	if parsed < 0 {
		return fmt.Errorf("negative duration %q not allowed", s)
	}
	d.Duration = parsed
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Config tunes a frame loop.
type Config struct {
	// MaxFlushIterations bounds the effect passes of one frame.
	MaxFlushIterations int `toml:"max_flush_iterations"`

	// TickInterval is the longest a running loop waits between frames.
	// Zero disables ticks.
	TickInterval Duration `toml:"tick_interval"`

	// InheritStyles restyles the descendants of a changed node whose kind
	// passes its style down.
	InheritStyles bool `toml:"inherit_styles"`

	// AmbiguousWide measures East Asian ambiguous characters as two columns.
	AmbiguousWide bool `toml:"ambiguous_wide"`

	LogLevel string `toml:"log_level"`
}

func DefaultConfig() *Config {
	return &Config{
		MaxFlushIterations: revue.DefaultMaxFlushIterations,
		TickInterval:       Duration{250 * time.Millisecond},
		InheritStyles:      true,
		LogLevel:           "info",
	}
}

// LoadFromFile reads the configuration at path. A missing file yields the
// defaults.
func LoadFromFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg := DefaultConfig()
			if err := applyEnvOverrides(cfg); err != nil {
				return nil, err
			}
			if err := cfg.Validate(); err != nil {
				return nil, err
			}
			return cfg, nil
		}
		return nil, err
	}
	defer f.Close()

	return LoadFromReader(f)
}

func LoadFromReader(r io.Reader) (*Config, error) {
	cfg := DefaultConfig()
	if _, err := toml.NewDecoder(r).Decode(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnvOverrides(cfg *Config) error {
	if v := os.Getenv("REVUE_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("REVUE_MAX_FLUSH_ITERATIONS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("REVUE_MAX_FLUSH_ITERATIONS: %w", err)
		}
		cfg.MaxFlushIterations = n
	}
	return nil
}

func (c *Config) Validate() error {
	if c.MaxFlushIterations <= 0 {
		return fmt.Errorf("max_flush_iterations must be positive, got %d", c.MaxFlushIterations)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Level parses LogLevel.
func (c *Config) Level() (slog.Level, error) {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("unknown log_level %q", c.LogLevel)
}
