package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.cue")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestParseMinimalConfig(t *testing.T) {
	path := writeConfig(t, `configVersion: "1"`)
	cfg, err := Parse(path)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if !reflect.DeepEqual(cfg, Default()) {
		t.Fatalf("minimal config must equal defaults: %+v", cfg)
	}
}

func TestParseFullConfig(t *testing.T) {
	path := writeConfig(t, `
configVersion: "1"
workers: 4
errors: mode: "fail-fast"
ignore: ["bazel-out/volatile-status.txt", "**/*.d"]
lua: {
	filterInline:     "kind ~= \"env\""
	timeoutMs:        100
	instructionLimit: 10000
}
ui: {
	progress:           true
	progressIntervalMs: 250
	noColor:            true
}
`)
	cfg, err := Parse(path)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cfg.Workers != 4 {
		t.Fatalf("workers = %d", cfg.Workers)
	}
	if cfg.ErrorMode != "fail-fast" {
		t.Fatalf("errors.mode = %q", cfg.ErrorMode)
	}
	if !reflect.DeepEqual(cfg.IgnorePatterns, []string{"bazel-out/volatile-status.txt", "**/*.d"}) {
		t.Fatalf("ignore = %v", cfg.IgnorePatterns)
	}
	if cfg.LuaFilter != `kind ~= "env"` || cfg.LuaTimeoutMs != 100 || cfg.LuaInstructionLimit != 10000 {
		t.Fatalf("lua = %q timeout=%d limit=%d", cfg.LuaFilter, cfg.LuaTimeoutMs, cfg.LuaInstructionLimit)
	}
	if !cfg.Progress || cfg.ProgressIntervalMs != 250 || !cfg.NoColor {
		t.Fatalf("ui = %+v", cfg)
	}
}

func TestParseRejectsNonCueExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(`configVersion: "1"`), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := Parse(path); err == nil {
		t.Fatalf("expected error for non-cue extension")
	}
}

func TestParseRejectsMissingVersion(t *testing.T) {
	path := writeConfig(t, `workers: 2`)
	if _, err := Parse(path); err == nil {
		t.Fatalf("expected error for missing configVersion")
	}
}

func TestParseRejectsNonStringVersion(t *testing.T) {
	path := writeConfig(t, `configVersion: 1`)
	if _, err := Parse(path); err == nil {
		t.Fatalf("expected error for numeric configVersion")
	}
}

func TestParseRejectsBadErrorMode(t *testing.T) {
	path := writeConfig(t, `
configVersion: "1"
errors: mode: "sometimes"
`)
	if _, err := Parse(path); err == nil {
		t.Fatalf("expected error for unknown errors.mode")
	}
}

func TestParseRejectsNegativeWorkers(t *testing.T) {
	path := writeConfig(t, `
configVersion: "1"
workers: -1
`)
	if _, err := Parse(path); err == nil {
		t.Fatalf("expected error for negative workers")
	}
}

func TestParseMissingFile(t *testing.T) {
	if _, err := Parse(filepath.Join(t.TempDir(), "absent.cue")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
