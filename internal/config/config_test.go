package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "octcalc.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if cfg.MaxDepth != 1000 {
		t.Errorf("MaxDepth: got %d, want 1000", cfg.MaxDepth)
	}
	if cfg.LazyBranches() || cfg.LenientLexing() {
		t.Error("defaults should be eager and strict")
	}
	if cfg.Level() != slog.LevelWarn {
		t.Errorf("Level: got %v, want warn", cfg.Level())
	}
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
max_depth: 250
branches: Lazy
lexing: lenient
log_level: debug
transcript: /tmp/octcalc.db
history: " ~/.octcalc_history "
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.MaxDepth != 250 {
		t.Errorf("MaxDepth: got %d, want 250", cfg.MaxDepth)
	}
	if !cfg.LazyBranches() {
		t.Error("expected lazy branches")
	}
	if !cfg.LenientLexing() {
		t.Error("expected lenient lexing")
	}
	if cfg.Level() != slog.LevelDebug {
		t.Errorf("Level: got %v, want debug", cfg.Level())
	}
	if cfg.Transcript != "/tmp/octcalc.db" {
		t.Errorf("Transcript: got %q", cfg.Transcript)
	}
	if cfg.History != "~/.octcalc_history" {
		t.Errorf("History: got %q", cfg.History)
	}
	if !filepath.IsAbs(cfg.Path) {
		t.Errorf("Path should be absolute, got %q", cfg.Path)
	}
}

func TestLoadPartialKeepsDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "branches: lazy\n"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.MaxDepth != 1000 || cfg.Lexing != LexingStrict {
		t.Errorf("defaults not kept: %+v", cfg)
	}
}

func TestLoadEmptyFile(t *testing.T) {
	cfg, err := Load(writeConfig(t, "# nothing set\n"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.MaxDepth != 1000 {
		t.Errorf("MaxDepth: got %d, want 1000", cfg.MaxDepth)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"unknown key", "max_dept: 5\n", "field max_dept not found"},
		{"depth zero", "max_depth: 0\n", "max_depth"},
		{"depth too large", "max_depth: 100001\n", "max_depth"},
		{"bad branches", "branches: sometimes\n", "branches"},
		{"bad lexing", "lexing: loose\n", "lexing"},
		{"bad level", "log_level: loud\n", "log_level"},
		{"bad yaml", "max_depth: [\n", "parse"},
	}

	for _, tt := range tests {
		_, err := Load(writeConfig(t, tt.body))
		if err == nil {
			t.Errorf("%s: expected error", tt.name)
			continue
		}
		if !strings.Contains(err.Error(), tt.want) {
			t.Errorf("%s: error %q does not mention %q", tt.name, err, tt.want)
		}
	}

	if _, err := Load(""); err == nil {
		t.Error("empty path: expected error")
	}
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); !os.IsNotExist(err) {
		t.Errorf("missing file: got %v", err)
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{" error ", slog.LevelError},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.input)
		if err != nil || got != tt.expected {
			t.Errorf("ParseLevel(%q): got %v, %v, want %v", tt.input, got, err, tt.expected)
		}
	}
	if _, err := ParseLevel("trace"); err == nil {
		t.Error("ParseLevel(trace): expected error")
	}
}
