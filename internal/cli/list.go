// internal/cli/list.go
package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mwiater/suitebench/internal/groups"
)

// newListCmd implements 'list', which prints the available suite groups.
func newListCmd(st *cliState) *cobra.Command {
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List available benchmark suite groups",
		Long:  `The 'list' command prints every suite group accepted by 'run --suite', one per line, followed by a short description.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			runListGroups(cmd)
			return nil
		},
	}
	listCmd.AddCommand(newListCommandsCmd())
	return listCmd
}

func runListGroups(cmd *cobra.Command) {
	out := cmd.OutOrStdout()
	names := groups.Names()
	desc := groups.Describe()

	width := 0
	for _, name := range names {
		if len(name) > width {
			width = len(name)
		}
	}
	fmt.Fprintln(out, "Available suite groups:")
	for _, name := range names {
		fmt.Fprintf(out, "  %s%s%s\n", name, strings.Repeat(" ", width-len(name)+2), desc[name])
	}
}
