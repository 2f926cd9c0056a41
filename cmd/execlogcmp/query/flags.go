// Package query hosts the comparison commands (cmp, tcmp, edges) and
// the log-loading flags the other command families share.
package query

import (
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/execdiag/execlogcmp/internal/config"
	"github.com/execdiag/execlogcmp/internal/execlog"
	"github.com/execdiag/execlogcmp/internal/filter"
	"github.com/execdiag/execlogcmp/internal/render"
	"github.com/spf13/cobra"
)

// Flags carries the log-set selection every comparison command accepts.
type Flags struct {
	Session string
	Config  string
	NoColor bool
	Workers int
	Filter  string
}

// Register attaches the shared flags to cmd.
func Register(cmd *cobra.Command, f *Flags) {
	cmd.Flags().StringVarP(&f.Session, "session", "s", "", "YAML session file naming the logs to load")
	cmd.Flags().StringVarP(&f.Config, "config", "c", "", "Path to tool config file (.cue)")
	cmd.Flags().BoolVar(&f.NoColor, "no-color", false, "Disable styled output")
	cmd.Flags().IntVar(&f.Workers, "workers", 0, "Parallel log loader workers (0 = CPUs)")
	cmd.Flags().StringVar(&f.Filter, "filter", "", "Inline Lua predicate over mismatches (kind, key)")
}

// Env is the resolved query environment: the frozen log set plus the
// settings derived from flags and config.
type Env struct {
	Set      *execlog.LogSet
	Specs    []execlog.LogSpec
	Warnings []execlog.Warning
	Cfg      config.Config
	Rules    filter.Rules
	Styles   render.Styles
}

// Setup loads config, session, and the positional log files into a
// frozen Env. logArgs are file paths; the session file contributes its
// logs first, preserving its order.
func (f *Flags) Setup(logArgs []string) (*Env, error) {
	cfg := config.Default()
	if f.Config != "" {
		var err error
		cfg, err = config.Parse(f.Config)
		if err != nil {
			return nil, err
		}
	}
	if f.Workers > 0 {
		cfg.Workers = f.Workers
	}
	if f.NoColor {
		cfg.NoColor = true
	}
	if f.Filter != "" {
		cfg.LuaFilter = f.Filter
	}

	var specs []execlog.LogSpec
	if f.Session != "" {
		session, err := execlog.ReadSession(f.Session)
		if err != nil {
			return nil, err
		}
		specs = append(specs, session.Logs...)
	}
	specs = append(specs, nameSpecs(logArgs)...)
	if len(specs) == 0 {
		return nil, errors.New("specify 1 or more execution logs to compare (files or --session)")
	}

	var reporter *execlog.Reporter
	if cfg.Progress {
		reporter = execlog.NewReporter(os.Stderr, time.Duration(cfg.ProgressIntervalMs)*time.Millisecond)
		reporter.Start()
		defer reporter.Stop()
	}

	set, warnings, err := execlog.LoadAll(specs, execlog.LoadOptions{
		Workers:   cfg.Workers,
		KeepGoing: cfg.ErrorMode == "keep-going" && len(specs) > 1,
		Progress:  reporter,
	})
	if err != nil {
		return nil, err
	}
	if set.Len() == 0 {
		return nil, errors.New("no execution log loaded successfully")
	}

	rules := filter.Rules{
		IgnorePatterns: cfg.IgnorePatterns,
		LuaPredicate:   cfg.LuaFilter,
		Limits: filter.SandboxLimits{
			TimeoutMs:        cfg.LuaTimeoutMs,
			InstructionLimit: cfg.LuaInstructionLimit,
		},
		KeepGoing: cfg.ErrorMode == "keep-going",
	}
	return &Env{
		Set:      set,
		Specs:    specs,
		Warnings: warnings,
		Cfg:      cfg,
		Rules:    rules,
		Styles:   render.NewStyles(!cfg.NoColor),
	}, nil
}

// nameSpecs names positional log files: when paths are long and all
// base names are distinct, reports use the base names; otherwise the
// full paths.
func nameSpecs(paths []string) []execlog.LogSpec {
	long := false
	bases := map[string]struct{}{}
	for _, p := range paths {
		if len(p) > 20 {
			long = true
		}
		bases[filepath.Base(p)] = struct{}{}
	}
	truncate := long && len(bases) == len(paths)

	specs := make([]execlog.LogSpec, 0, len(paths))
	for _, p := range paths {
		name := p
		if truncate {
			name = filepath.Base(p)
		}
		specs = append(specs, execlog.LogSpec{Name: name, Path: p})
	}
	return specs
}
