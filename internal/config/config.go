// Package config parses the optional CUE tool configuration. A missing
// config means defaults; an invalid one is an error.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

// Config holds the tool settings an operator may pin in a .cue file.
type Config struct {
	ConfigVersion string

	// Workers bounds the parallel log loader; 0 means NumCPU.
	Workers int
	// ErrorMode is "fail-fast" or "keep-going".
	ErrorMode string

	// IgnorePatterns are gitignore-syntax lines muting mismatch paths.
	IgnorePatterns []string

	// LuaFilter is an inline per-mismatch predicate.
	LuaFilter           string
	LuaTimeoutMs        int
	LuaInstructionLimit int

	// UI settings.
	Progress           bool
	ProgressIntervalMs int
	NoColor            bool
}

// Default returns the settings used without a config file.
func Default() Config {
	return Config{
		ConfigVersion:      "1",
		ErrorMode:          "keep-going",
		ProgressIntervalMs: 500,
	}
}

// Parse loads and validates a CUE config file.
// Required fields:
//   - configVersion: string
func Parse(path string) (Config, error) {
	if filepath.Ext(path) != ".cue" {
		return Config{}, errors.New("unsupported config format: expected .cue")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	}

	ctx := cuecontext.New()
	v := ctx.CompileBytes(data)
	if err := v.Err(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %v", err)
	}
	if err := requireStringField(v, "configVersion"); err != nil {
		return Config{}, err
	}

	cfg := Default()
	if err := v.LookupPath(cue.ParsePath("configVersion")).Decode(&cfg.ConfigVersion); err != nil {
		return Config{}, fmt.Errorf("invalid value for configVersion: %v", err)
	}

	decodeInt(v, "workers", &cfg.Workers)
	if cfg.Workers < 0 {
		return Config{}, errors.New("invalid value for workers: must be >= 0")
	}

	ev := v.LookupPath(cue.ParsePath("errors"))
	if ev.Exists() {
		decodeString(ev, "mode", &cfg.ErrorMode)
		if cfg.ErrorMode != "fail-fast" && cfg.ErrorMode != "keep-going" {
			return Config{}, fmt.Errorf("invalid errors.mode: %s", cfg.ErrorMode)
		}
	}

	iv := v.LookupPath(cue.ParsePath("ignore"))
	if iv.Exists() {
		if err := iv.Decode(&cfg.IgnorePatterns); err != nil {
			return Config{}, fmt.Errorf("invalid value for ignore: %v", err)
		}
	}

	lv := v.LookupPath(cue.ParsePath("lua"))
	if lv.Exists() {
		decodeString(lv, "filterInline", &cfg.LuaFilter)
		decodeInt(lv, "timeoutMs", &cfg.LuaTimeoutMs)
		decodeInt(lv, "instructionLimit", &cfg.LuaInstructionLimit)
	}

	uv := v.LookupPath(cue.ParsePath("ui"))
	if uv.Exists() {
		decodeBool(uv, "progress", &cfg.Progress)
		decodeInt(uv, "progressIntervalMs", &cfg.ProgressIntervalMs)
		decodeBool(uv, "noColor", &cfg.NoColor)
	}

	return cfg, nil
}

func requireStringField(v cue.Value, name string) error {
	f := v.LookupPath(cue.ParsePath(name))
	if !f.Exists() {
		return fmt.Errorf("missing required field: %s", name)
	}
	if f.Kind() != cue.StringKind {
		return fmt.Errorf("invalid type for field: %s (expected string)", name)
	}
	return nil
}

func decodeString(v cue.Value, name string, dst *string) {
	f := v.LookupPath(cue.ParsePath(name))
	if f.Exists() && f.Kind() == cue.StringKind {
		_ = f.Decode(dst)
	}
}

func decodeInt(v cue.Value, name string, dst *int) {
	f := v.LookupPath(cue.ParsePath(name))
	if f.Exists() && f.Kind() == cue.IntKind {
		_ = f.Decode(dst)
	}
}

func decodeBool(v cue.Value, name string, dst *bool) {
	f := v.LookupPath(cue.ParsePath(name))
	if f.Exists() && f.Kind() == cue.BoolKind {
		_ = f.Decode(dst)
	}
}
