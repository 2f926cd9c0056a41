package root

import (
	"github.com/execdiag/execlogcmp/cmd/execlogcmp/inspect"
	"github.com/execdiag/execlogcmp/cmd/execlogcmp/query"
	"github.com/execdiag/execlogcmp/cmd/execlogcmp/shell"
	"github.com/execdiag/execlogcmp/cmd/execlogcmp/version"
	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for execlogcmp.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "execlogcmp",
		Short: "CLI: Compare Bazel execution logs to find why cached outputs diverge across environments",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Show help when no subcommand is provided.
			return cmd.Help()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Subcommands
	cmd.AddCommand(version.VersionCmd)
	cmd.AddCommand(query.NewCmpCmd())
	cmd.AddCommand(query.NewTcmpCmd())
	cmd.AddCommand(query.NewEdgesCmd())
	cmd.AddCommand(inspect.NewViewCmd())
	cmd.AddCommand(inspect.NewJSONCmd())
	cmd.AddCommand(inspect.NewDiffCmd())
	cmd.AddCommand(shell.NewShellCmd())

	return cmd
}

// Execute runs the root command with provided args.
func Execute(args []string) error {
	cmd := NewRootCmd()
	cmd.SetArgs(args)
	return cmd.Execute()
}
