// internal/cli/show.go
package cli

import "github.com/spf13/cobra"

// newShowCmd represents the 'show' command group for displaying settings.
func newShowCmd(st *cliState) *cobra.Command {
	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Group commands for displaying settings",
		Long:  `The 'show' command groups subcommands that display information related to suitebench.`,
	}
	showCmd.AddCommand(newShowConfigCmd(st))
	return showCmd
}
