// Package octcalc provides the public API for the octal calculator.
package octcalc

import (
	"log/slog"

	"nickandperla.net/octcalc/internal/config"
	"nickandperla.net/octcalc/internal/store"
)

// Option configures a Calculator.
type Option func(*Calculator)

// WithMaxDepth sets the maximum function call nesting.
func WithMaxDepth(n int) Option {
	return func(c *Calculator) {
		if n > 0 {
			c.maxDepth = n
		}
	}
}

// WithLazyBranches makes IF evaluate only the branch its condition selects.
func WithLazyBranches() Option {
	return func(c *Calculator) {
		c.lazy = true
	}
}

// WithLenientLexing skips characters that start no token instead of failing.
func WithLenientLexing() Option {
	return func(c *Calculator) {
		c.lenient = true
	}
}

// WithLogger sets the logger for evaluation tracing.
func WithLogger(l *slog.Logger) Option {
	return func(c *Calculator) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithConfig applies loaded settings. Options given after it override them.
// The configured log_level filters whatever logger the Calculator ends up
// with, including one set by a later WithLogger.
func WithConfig(cfg *Config) Option {
	return func(c *Calculator) {
		if cfg == nil {
			return
		}
		c.maxDepth = cfg.MaxDepth
		c.lazy = cfg.LazyBranches()
		c.lenient = cfg.LenientLexing()
		c.level = cfg.Level()
		if cfg.Transcript != "" {
			c.transcriptPath = cfg.Transcript
		}
	}
}

// WithSQLiteTranscript records every evaluation in a SQLite database.
func WithSQLiteTranscript(path string) Option {
	return func(c *Calculator) {
		c.transcriptPath = path
	}
}

// WithMemoryTranscript records every evaluation in memory.
func WithMemoryTranscript() Option {
	return func(c *Calculator) {
		c.transcript = store.NewMemory()
	}
}

// WithTranscript records every evaluation in t. The Calculator closes t.
func WithTranscript(t Transcript) Option {
	return func(c *Calculator) {
		c.transcript = t
	}
}

// Transcript is the interface for custom transcript stores.
type Transcript = store.Store

// Entry is one recorded evaluation.
type Entry = store.Entry

// Config holds settings loaded from a YAML file.
type Config = config.Config

// DefaultConfig returns the built-in settings.
func DefaultConfig() *Config {
	return config.Default()
}

// LoadConfig reads settings from a YAML file.
func LoadConfig(path string) (*Config, error) {
	return config.Load(path)
}
