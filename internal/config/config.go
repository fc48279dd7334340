// Package config loads subcut's YAML settings file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds defaults for command flags. Flags given on the command line
// always win.
type Config struct {
	Encoding string        `yaml:"encoding"`
	Strict   *bool         `yaml:"strict,omitempty"` // nil = true
	Dedupe   DedupeConfig  `yaml:"dedupe"`
	Mux      MuxConfig     `yaml:"mux"`
	Reflow   ReflowConfig  `yaml:"reflow"`
	Rewrite  RewriteConfig `yaml:"rewrite"`
}

type DedupeConfig struct {
	Tolerance time.Duration `yaml:"tolerance"`
}

type MuxConfig struct {
	Tolerance time.Duration `yaml:"tolerance"`
	Width     int           `yaml:"width"`
}

type ReflowConfig struct {
	MaxCharsPerLine int           `yaml:"max_chars_per_line"`
	MaxLines        int           `yaml:"max_lines"`
	MaxDuration     time.Duration `yaml:"max_duration"`
}

// RewriteConfig never carries API keys; those come from flags or the
// environment.
type RewriteConfig struct {
	Provider    string `yaml:"provider"`
	Model       string `yaml:"model"`
	Concurrency int    `yaml:"concurrency"`
	BatchSize   int    `yaml:"batch_size"`
}

func Default() Config {
	return Config{
		Strict: boolPtr(true),
		Dedupe: DedupeConfig{Tolerance: 5 * time.Second},
		Mux: MuxConfig{
			Tolerance: 600 * time.Millisecond,
			Width:     5,
		},
		Reflow: ReflowConfig{
			MaxCharsPerLine: 42,
			MaxLines:        2,
			MaxDuration:     7 * time.Second,
		},
		Rewrite: RewriteConfig{
			Provider:    "gemini",
			Concurrency: 3,
			BatchSize:   50,
		},
	}
}

// DefaultPath is $XDG_CONFIG_HOME/subcut/config.yaml, falling back to
// ~/.config/subcut/config.yaml.
func DefaultPath() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "subcut", "config.yaml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "subcut", "config.yaml")
}

// Load reads the YAML configuration from disk. A missing file yields the
// defaults unless mustExist is set.
func Load(path string, mustExist bool) (Config, error) {
	if path == "" {
		return Default(), nil
	}

	contents, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !mustExist {
			return Default(), nil
		}
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(contents, &cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config %s: %w", path, err)
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// ApplyDefaults fills fields the YAML left empty.
func (c *Config) ApplyDefaults() {
	defaults := Default()

	c.Encoding = strings.TrimSpace(c.Encoding)
	if c.Strict == nil {
		c.Strict = defaults.Strict
	}
	if c.Mux.Width == 0 {
		c.Mux.Width = defaults.Mux.Width
	}
	if c.Reflow.MaxCharsPerLine == 0 {
		c.Reflow.MaxCharsPerLine = defaults.Reflow.MaxCharsPerLine
	}
	if c.Reflow.MaxLines == 0 {
		c.Reflow.MaxLines = defaults.Reflow.MaxLines
	}

	c.Rewrite.Provider = strings.ToLower(strings.TrimSpace(c.Rewrite.Provider))
	if c.Rewrite.Provider == "" {
		c.Rewrite.Provider = defaults.Rewrite.Provider
	}
	if c.Rewrite.Concurrency == 0 {
		c.Rewrite.Concurrency = defaults.Rewrite.Concurrency
	}
	if c.Rewrite.BatchSize == 0 {
		c.Rewrite.BatchSize = defaults.Rewrite.BatchSize
	}
}

func (c Config) Validate() error {
	var errs []error

	if c.Dedupe.Tolerance < 0 {
		errs = append(errs, fmt.Errorf("dedupe.tolerance must not be negative"))
	}
	if c.Mux.Tolerance < 0 {
		errs = append(errs, fmt.Errorf("mux.tolerance must not be negative"))
	}
	if c.Mux.Width < 1 {
		errs = append(errs, fmt.Errorf("mux.width must be at least 1"))
	}
	if c.Reflow.MaxCharsPerLine < 1 || c.Reflow.MaxLines < 1 {
		errs = append(errs, fmt.Errorf("reflow limits must be at least 1"))
	}
	switch c.Rewrite.Provider {
	case "gemini", "openai", "anthropic":
	default:
		errs = append(errs, fmt.Errorf("unknown rewrite.provider %q", c.Rewrite.Provider))
	}
	if c.Rewrite.Concurrency < 1 || c.Rewrite.BatchSize < 1 {
		errs = append(errs, fmt.Errorf("rewrite.concurrency and rewrite.batch_size must be at least 1"))
	}

	return errors.Join(errs...)
}

// StrictValue returns the effective strict flag applying defaults.
func (c Config) StrictValue() bool {
	if c.Strict == nil {
		return true
	}
	return *c.Strict
}

// Marshal returns the YAML encoding of the configuration.
func (c Config) Marshal() ([]byte, error) {
	buf, err := yaml.Marshal(&c)
	if err != nil {
		return nil, fmt.Errorf("marshal config: %w", err)
	}
	return buf, nil
}

func boolPtr(v bool) *bool {
	return &v
}
