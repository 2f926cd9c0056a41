// Package shell implements the interactive mode: logs are loaded once,
// then commands are read one per line against the frozen set.
package shell

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/execdiag/execlogcmp/cmd/execlogcmp/inspect"
	"github.com/execdiag/execlogcmp/cmd/execlogcmp/query"
	"github.com/execdiag/execlogcmp/internal/compare"
	"github.com/execdiag/execlogcmp/internal/execlog"
	"github.com/execdiag/execlogcmp/internal/filter"
	"github.com/execdiag/execlogcmp/internal/render"
	"github.com/spf13/cobra"
)

const helpText = `usage:
  - ` + "`quit` or `q`" + ` to quit
  - ` + "`cmp <output path>`" + ` to compare items of interest within the action for an output path
  - ` + "`transitive-cmp <output path>` or `tcmp`" + ` to compare all transitive dependencies of an output path
  - ` + "`edges <output path>`" + ` *attempts* to determine the inputs that caused the executions of the output path to diverge; may not be accurate
  - ` + "`diff <output path>`" + ` to print a textual diff of the fields from ` + "`view <output path>`" + `
  - ` + "`view <output path>`" + ` to print selected fields of interest from the action for an output path
  - ` + "`json <output path>`" + ` to print the raw JSON blobs for an output path
  - ` + "`paths [prefix]`" + ` to list the output paths of the first log, optionally filtered by prefix
  - ` + "`save <file>`" + ` to write the loaded logs as a YAML session file, reloadable with --session
`

// NewShellCmd loads the given logs and starts the interactive loop.
func NewShellCmd() *cobra.Command {
	var flags query.Flags
	cmd := &cobra.Command{
		Use:           "shell <log file>...",
		Short:         "Interactively compare output paths across the loaded logs",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := flags.Setup(args)
			if err != nil {
				return err
			}
			render.Warnings(os.Stderr, env.Warnings, env.Styles)
			return runLoop(env, os.Stdin, os.Stdout)
		},
	}
	query.Register(cmd, &flags)
	return cmd
}

func runLoop(env *query.Env, in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)
	prompt := env.Styles.Key.Render("> ")
	for {
		fmt.Fprint(out, prompt)
		if !scanner.Scan() {
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		cmd, arg, _ := strings.Cut(line, " ")
		arg = strings.TrimSpace(arg)

		switch cmd {
		case "quit", "q":
			return nil
		case "", "help":
			fmt.Fprint(out, helpText)
		case "cmp", "tcmp", "transitive-cmp", "edges":
			if err := runCompare(env, out, cmd, arg); err != nil {
				fmt.Fprintln(out, env.Styles.Absent.Render(errLine(err)))
			}
		case "view", "json", "diff":
			if err := runInspect(env, out, cmd, arg); err != nil {
				fmt.Fprintln(out, env.Styles.Absent.Render(errLine(err)))
			}
		case "paths":
			listPaths(env, out, arg)
		case "save":
			if err := saveSession(env, arg); err != nil {
				fmt.Fprintln(out, env.Styles.Absent.Render(errLine(err)))
			} else {
				fmt.Fprintf(out, "session saved to `%s`\n", arg)
			}
		default:
			fmt.Fprintln(out, "unrecognized command!")
		}
	}
}

func runCompare(env *query.Env, out io.Writer, cmd, path string) error {
	if path == "" {
		return fmt.Errorf("missing output path")
	}
	var res *compare.ComparisonResult
	switch cmd {
	case "cmp":
		r, err := compare.Compare(env.Set, path)
		if err != nil {
			return err
		}
		filtered, warnings, err := filter.Apply(r, env.Rules)
		if err != nil {
			return err
		}
		render.Warnings(os.Stderr, warnings, env.Styles)
		res = filtered
	case "edges":
		r, err := compare.Frontier(env.Set, path)
		if err != nil {
			return err
		}
		filtered, warnings, err := filter.ApplyTransitive(r, env.Rules)
		if err != nil {
			return err
		}
		render.Warnings(os.Stderr, warnings, env.Styles)
		res = &filtered.ComparisonResult
	default: // tcmp, transitive-cmp
		r, err := compare.Transitive(env.Set, path)
		if err != nil {
			return err
		}
		filtered, warnings, err := filter.ApplyTransitive(r, env.Rules)
		if err != nil {
			return err
		}
		render.Warnings(os.Stderr, warnings, env.Styles)
		res = &filtered.ComparisonResult
	}
	render.Report(out, res, env.Set.Names(), env.Styles)
	return nil
}

func runInspect(env *query.Env, out io.Writer, cmd, path string) error {
	if path == "" {
		return fmt.Errorf("missing output path")
	}
	lookups := env.Set.Lookup(path)
	resolved := false
	for _, l := range lookups {
		if l.Record != nil {
			resolved = true
		}
	}
	if !resolved {
		return fmt.Errorf("`%s` not found in any execution log", path)
	}

	switch cmd {
	case "view":
		for _, l := range lookups {
			fmt.Fprintf(out, "`%s`:\n", env.Styles.Good.Render(l.Log))
			if l.Record == nil {
				fmt.Fprintln(out, env.Styles.Absent.Render("<not present>"))
				continue
			}
			render.View(out, l.Record, env.Styles)
			fmt.Fprintln(out)
		}
	case "json":
		for _, l := range lookups {
			fmt.Fprintf(out, "`%s`:\n", env.Styles.Good.Render(l.Log))
			if l.Record == nil {
				fmt.Fprintln(out, env.Styles.Absent.Render("<not present>"))
				continue
			}
			pretty, err := json.MarshalIndent(json.RawMessage(l.Record.Raw), "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "%s\n\n", pretty)
		}
	case "diff":
		return inspect.Diff(out, path, lookups, env.Styles)
	}
	return nil
}

// listPaths enumerates the first log's indexed output paths. A plain
// stdin loop has no tab completion, so this is how paths are discovered
// interactively.
func listPaths(env *query.Env, out io.Writer, prefix string) {
	stores := env.Set.Stores()
	if len(stores) == 0 {
		return
	}
	for _, p := range stores[0].OutputPaths() {
		if prefix != "" && !strings.HasPrefix(p, prefix) {
			continue
		}
		fmt.Fprintln(out, p)
	}
}

func saveSession(env *query.Env, path string) error {
	if path == "" {
		return fmt.Errorf("missing session file path")
	}
	return execlog.WriteSession(path, execlog.Session{Logs: env.Specs})
}

func errLine(err error) string {
	return strings.Join(strings.Fields(err.Error()), " ")
}
