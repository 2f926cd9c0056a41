package query

import (
	"fmt"
	"os"

	"github.com/execdiag/execlogcmp/internal/compare"
	"github.com/execdiag/execlogcmp/internal/filter"
	"github.com/execdiag/execlogcmp/internal/render"
	"github.com/spf13/cobra"
)

// NewCmpCmd compares the producing action of one output path across all
// loaded logs.
func NewCmpCmd() *cobra.Command {
	var flags Flags
	cmd := &cobra.Command{
		Use:           "cmp <output path> <log file>...",
		Short:         "Compare items of interest within the action for an output path",
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuery(&flags, args, func(env *Env, path string) error {
				res, err := compare.Compare(env.Set, path)
				if err != nil {
					return err
				}
				filtered, warnings, err := filter.Apply(res, env.Rules)
				if err != nil {
					return err
				}
				render.Warnings(os.Stderr, warnings, env.Styles)
				render.Report(os.Stdout, filtered, env.Set.Names(), env.Styles)
				return nil
			})
		},
	}
	Register(cmd, &flags)
	return cmd
}

// NewTcmpCmd compares all transitive dependencies of an output path.
func NewTcmpCmd() *cobra.Command {
	var flags Flags
	cmd := &cobra.Command{
		Use:           "tcmp <output path> <log file>...",
		Aliases:       []string{"transitive-cmp"},
		Short:         "Compare all transitive dependencies of an output path",
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuery(&flags, args, func(env *Env, path string) error {
				res, err := compare.Transitive(env.Set, path)
				if err != nil {
					return err
				}
				return reportTransitive(env, res)
			})
		},
	}
	Register(cmd, &flags)
	return cmd
}

// NewEdgesCmd narrows a transitive comparison to its likely root causes.
func NewEdgesCmd() *cobra.Command {
	var flags Flags
	cmd := &cobra.Command{
		Use:   "edges <output path> <log file>...",
		Short: "Attempt to find the inputs that caused executions of an output path to diverge",
		Long: "edges runs a transitive comparison and keeps only mismatches not already\n" +
			"explained by a mismatch further upstream. This is a best-effort heuristic\n" +
			"and may not be accurate.",
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuery(&flags, args, func(env *Env, path string) error {
				res, err := compare.Frontier(env.Set, path)
				if err != nil {
					return err
				}
				return reportTransitive(env, res)
			})
		},
	}
	Register(cmd, &flags)
	return cmd
}

// runQuery resolves flags and logs, then runs fn for the queried path.
func runQuery(flags *Flags, args []string, fn func(env *Env, path string) error) error {
	if len(args) < 1 {
		return fmt.Errorf("missing output path")
	}
	path := args[0]
	env, err := flags.Setup(args[1:])
	if err != nil {
		return err
	}
	render.Warnings(os.Stderr, env.Warnings, env.Styles)
	return fn(env, path)
}

func reportTransitive(env *Env, res *compare.TransitiveResult) error {
	filtered, warnings, err := filter.ApplyTransitive(res, env.Rules)
	if err != nil {
		return err
	}
	render.Warnings(os.Stderr, warnings, env.Styles)
	render.Report(os.Stdout, &filtered.ComparisonResult, env.Set.Names(), env.Styles)
	return nil
}
