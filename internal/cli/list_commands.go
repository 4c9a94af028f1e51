// internal/cli/list_commands.go
package cli

import "github.com/spf13/cobra"

// newListCommandsCmd implements 'list commands', which prints the available
// commands and subcommands in a hierarchical, indented, two-column format.
func newListCommandsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "commands",
		Short: "List all commands and subcommands in two columns",
		Long:  `The 'commands' subcommand lists all commands and subcommands in a hierarchical, indented format, with the command path in the first column and its short description in the second column.`,
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			runListCommands(cmd.Root(), cmd.OutOrStdout())
		},
	}
}
