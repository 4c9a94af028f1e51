// internal/cli/show_config.go
package cli

import (
	"fmt"

	"github.com/k0kubun/pp"
	"github.com/spf13/cobra"

	"github.com/mwiater/suitebench/internal/appconfig"
)

// newShowConfigCmd implements 'show config', which prints the merged
// configuration so flag, env and file overrides can be checked.
func newShowConfigCmd(st *cliState) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Show config settings",
		Long:  `Show config settings ensuring that the config file is loaded properly and overridden by environment variables and flags accordingly.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			appconfig.ShowConfig(out, st.cfg.ConfigPath, st.cfg)
			if st.cfg.Debug {
				pp.ColoringEnabled = isTerminal(out)
				fmt.Fprintln(out)
				if _, err := pp.Fprintln(out, *st.cfg); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
