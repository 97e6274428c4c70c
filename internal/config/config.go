// Package config loads calculator settings from a YAML file.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// MaxDepthLimit is the largest accepted max_depth.
const MaxDepthLimit = 100000

// Branch evaluation modes.
const (
	BranchesEager = "eager"
	BranchesLazy  = "lazy"
)

// Lexing modes.
const (
	LexingStrict  = "strict"
	LexingLenient = "lenient"
)

// Config holds session and CLI settings.
type Config struct {
	Path       string `yaml:"-"`
	MaxDepth   int    `yaml:"max_depth"`
	Branches   string `yaml:"branches"`
	Lexing     string `yaml:"lexing"`
	LogLevel   string `yaml:"log_level"`
	Transcript string `yaml:"transcript"` // SQLite path; empty keeps the transcript in memory
	History    string `yaml:"history"`    // REPL history file
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		MaxDepth: 1000,
		Branches: BranchesEager,
		Lexing:   LexingStrict,
		LogLevel: "warn",
	}
}

// Load reads path over the defaults. Unknown keys are rejected.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config: empty path")
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("config: resolve %s: %w", path, err)
	}
	file, err := os.Open(abs)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	cfg := Default()
	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config: parse %s: %w", abs, err)
	}
	cfg.Path = abs
	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %s: %w", abs, err)
	}
	return cfg, nil
}

func (c *Config) normalize() {
	c.Branches = strings.ToLower(strings.TrimSpace(c.Branches))
	c.Lexing = strings.ToLower(strings.TrimSpace(c.Lexing))
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	c.Transcript = strings.TrimSpace(c.Transcript)
	c.History = strings.TrimSpace(c.History)
}

// Validate checks every field against its allowed values.
func (c *Config) Validate() error {
	if c.MaxDepth < 1 || c.MaxDepth > MaxDepthLimit {
		return fmt.Errorf("max_depth must be between 1 and %d, got %d", MaxDepthLimit, c.MaxDepth)
	}
	switch c.Branches {
	case BranchesEager, BranchesLazy:
	default:
		return fmt.Errorf("branches must be %q or %q, got %q", BranchesEager, BranchesLazy, c.Branches)
	}
	switch c.Lexing {
	case LexingStrict, LexingLenient:
	default:
		return fmt.Errorf("lexing must be %q or %q, got %q", LexingStrict, LexingLenient, c.Lexing)
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// LazyBranches reports whether IF should evaluate only the selected branch.
func (c *Config) LazyBranches() bool {
	return c.Branches == BranchesLazy
}

// LenientLexing reports whether unknown characters are skipped.
func (c *Config) LenientLexing() bool {
	return c.Lexing == LexingLenient
}

// Level returns the configured log level, or warn when it cannot be parsed.
func (c *Config) Level() slog.Level {
	level, err := ParseLevel(c.LogLevel)
	if err != nil {
		return slog.LevelWarn
	}
	return level
}

// ParseLevel maps debug, info, warn or error to a slog level.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return 0, fmt.Errorf("log_level must be debug, info, warn or error, got %q", s)
}
