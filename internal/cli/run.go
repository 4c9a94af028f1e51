// internal/cli/run.go
package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/mwiater/suitebench/internal/appconfig"
	"github.com/mwiater/suitebench/internal/report"
)

// newRunCmd implements 'run', which benchmarks the selected suite groups and
// prints the report.
func newRunCmd(st *cliState) *cobra.Command {
	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Run benchmark suite groups and report the results",
		Long: `The 'run' command executes every operation of the selected suite groups
--iterations times and reports mean, min, max, standard deviation and
peak memory per operation. Without --suite every group runs.`,
		Example: `  suitebench run
  suitebench run --suite parsing --suite memory --iterations 5
  suitebench run --format json -o results.json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBenchmarks(cmd.Context(), st.cfg, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	flags := runCmd.Flags()
	flags.StringArray("suite", nil, "suite group to run, repeatable (default all; see 'list')")
	flags.Int("iterations", appconfig.DefaultIterations, "samples recorded per operation")
	flags.String("format", appconfig.DefaultFormat, "report format: "+strings.Join(report.Formats(), ", "))
	flags.String("suite-dir", "", "directory holding the suite fixtures (default: generated temp dir)")
	flags.StringP("output", "o", "", "write the report to this file instead of stdout")
	flags.Bool("track-memory", false, "force memory tracking on or off for every operation")
	flags.Bool("progress", false, "show a progress bar on stderr when it is a terminal")

	_ = st.v.BindPFlag("suites", flags.Lookup("suite"))
	_ = st.v.BindPFlag("iterations", flags.Lookup("iterations"))
	_ = st.v.BindPFlag("format", flags.Lookup("format"))
	_ = st.v.BindPFlag("suiteDir", flags.Lookup("suite-dir"))
	_ = st.v.BindPFlag("output", flags.Lookup("output"))
	_ = st.v.BindPFlag("trackMemory", flags.Lookup("track-memory"))
	_ = st.v.BindPFlag("progress", flags.Lookup("progress"))

	return runCmd
}
