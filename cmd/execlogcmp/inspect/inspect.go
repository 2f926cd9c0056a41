// Package inspect hosts the commands that render raw actions: view,
// json, and diff. They consume the log set only through Lookup.
package inspect

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/execdiag/execlogcmp/cmd/execlogcmp/query"
	"github.com/execdiag/execlogcmp/internal/execlog"
	"github.com/execdiag/execlogcmp/internal/render"
	"github.com/spf13/cobra"
)

// NewViewCmd prints selected fields of interest from the producing
// action of an output path, once per log.
func NewViewCmd() *cobra.Command {
	var flags query.Flags
	cmd := &cobra.Command{
		Use:           "view <output path> <log file>...",
		Short:         "Print selected fields of the action for an output path",
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(&flags, args, func(env *query.Env, lookups []execlog.ActionLookup) error {
				for _, l := range lookups {
					fmt.Fprintf(os.Stdout, "`%s`:\n", env.Styles.Good.Render(l.Log))
					if l.Record == nil {
						fmt.Fprintln(os.Stdout, env.Styles.Absent.Render("<not present>"))
						continue
					}
					render.View(os.Stdout, l.Record, env.Styles)
					fmt.Fprintln(os.Stdout)
				}
				return nil
			})
		},
	}
	query.Register(cmd, &flags)
	return cmd
}

// NewJSONCmd dumps the raw JSON blobs recorded for an output path.
func NewJSONCmd() *cobra.Command {
	var flags query.Flags
	cmd := &cobra.Command{
		Use:           "json <output path> <log file>...",
		Short:         "Print the raw JSON blobs for an output path",
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(&flags, args, func(env *query.Env, lookups []execlog.ActionLookup) error {
				for _, l := range lookups {
					fmt.Fprintf(os.Stdout, "`%s`:\n", env.Styles.Good.Render(l.Log))
					if l.Record == nil {
						fmt.Fprintln(os.Stdout, env.Styles.Absent.Render("<not present>"))
						continue
					}
					var buf json.RawMessage = l.Record.Raw
					pretty, err := json.MarshalIndent(buf, "", "  ")
					if err != nil {
						return err
					}
					fmt.Fprintf(os.Stdout, "%s\n\n", pretty)
				}
				return nil
			})
		},
	}
	query.Register(cmd, &flags)
	return cmd
}

// NewDiffCmd prints a textual diff of the rendered views of the
// producing actions in exactly two logs.
func NewDiffCmd() *cobra.Command {
	var flags query.Flags
	cmd := &cobra.Command{
		Use:           "diff <output path> <log file>...",
		Short:         "Print a textual diff of the action views for an output path",
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(&flags, args, func(env *query.Env, lookups []execlog.ActionLookup) error {
				return Diff(os.Stdout, args[0], lookups, env.Styles)
			})
		},
	}
	query.Register(cmd, &flags)
	return cmd
}

// Diff implements the diff command over resolved lookups so the shell
// can reuse it.
func Diff(w io.Writer, path string, lookups []execlog.ActionLookup, st render.Styles) error {
	equivalent := true
	for _, l := range lookups {
		if !render.Equivalent(l.Record, lookups[0].Record) {
			equivalent = false
			break
		}
	}
	if equivalent {
		fmt.Fprintf(w, "all executions of `%s` were equivalent\n", path)
		return nil
	}
	if len(lookups) != 2 {
		return fmt.Errorf("can't diff more than 2 things yet, sorry!")
	}
	render.DiffLines(w, viewOrEmpty(lookups[0].Record), viewOrEmpty(lookups[1].Record), st)
	return nil
}

func viewOrEmpty(rec *execlog.ActionRecord) string {
	if rec == nil {
		return ""
	}
	return render.ViewString(rec)
}

func runInspect(flags *query.Flags, args []string, fn func(env *query.Env, lookups []execlog.ActionLookup) error) error {
	path := args[0]
	env, err := flags.Setup(args[1:])
	if err != nil {
		return err
	}
	render.Warnings(os.Stderr, env.Warnings, env.Styles)
	lookups := env.Set.Lookup(path)
	resolved := false
	for _, l := range lookups {
		if l.Record != nil {
			resolved = true
			break
		}
	}
	if !resolved {
		return fmt.Errorf("`%s` not found in any execution log", path)
	}
	return fn(env, lookups)
}
