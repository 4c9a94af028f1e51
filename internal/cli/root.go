// internal/cli/root.go
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mwiater/suitebench/internal/appconfig"
	"github.com/mwiater/suitebench/internal/logging"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// SetVersionInfo records build metadata shown by --version.
func SetVersionInfo(v, c, d string) {
	if v != "" {
		version = v
	}
	if c != "" {
		commit = c
	}
	if d != "" {
		date = d
	}
}

// cliState is shared by every command of one root: its viper instance and
// the configuration materialised before a subcommand runs.
type cliState struct {
	v       *viper.Viper
	cfgFile string
	cfg     *appconfig.Config
}

func newRootCmd() *cobra.Command {
	st := &cliState{v: viper.New()}

	rootCmd := &cobra.Command{
		Use:           "suitebench",
		Short:         "suitebench: micro-benchmarks for the scenario suite runtime",
		Version:       fmt.Sprintf("%s (commit %s, built %s)", version, commit, date),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprint(cmd.ErrOrStderr(), cmd.UsageString())
			return errors.New("no command given")
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := st.load(cmd); err != nil {
				return err
			}
			return logging.Init(st.cfg.LogFile, st.cfg.Debug)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&st.cfgFile, "config", "c", appconfig.DefaultConfigPath, "config file (JSON, YAML or TOML)")
	rootCmd.PersistentFlags().Bool("debug", false, "log benchmark events to stderr")
	rootCmd.PersistentFlags().String("logFile", "", "append benchmark events to this file")
	rootCmd.PersistentFlags().String("trace", appconfig.DefaultTrace, "trace exporter: none or stdout (spans go to stderr)")

	_ = st.v.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	_ = st.v.BindPFlag("logFile", rootCmd.PersistentFlags().Lookup("logFile"))
	_ = st.v.BindPFlag("trace", rootCmd.PersistentFlags().Lookup("trace"))

	rootCmd.AddCommand(newListCmd(st))
	rootCmd.AddCommand(newRunCmd(st))
	rootCmd.AddCommand(newShowCmd(st))
	return rootCmd
}

// load reads the config file and merges flags > env > file > defaults into
// st.cfg.
func (st *cliState) load(cmd *cobra.Command) error {
	v := st.v
	defaults := appconfig.Defaults()
	v.SetDefault("suites", []string{})
	v.SetDefault("iterations", defaults.Iterations)
	v.SetDefault("format", defaults.Format)
	v.SetDefault("trace", defaults.Trace)
	v.SetDefault("debug", false)
	v.SetDefault("progress", false)

	v.SetEnvPrefix(appconfig.EnvPrefix)
	v.AutomaticEnv()

	if err := st.readConfigFile(cmd); err != nil {
		return err
	}

	var cfg appconfig.Config
	if err := v.Unmarshal(&cfg); err != nil {
		return fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.Format = strings.ToLower(strings.TrimSpace(cfg.Format))
	cfg.ConfigPath = v.ConfigFileUsed()
	if v.IsSet("trackMemory") {
		track := v.GetBool("trackMemory")
		cfg.TrackMemory = &track
	}
	st.cfg = &cfg
	return nil
}

// readConfigFile ignores a missing default config file. A missing file
// passed explicitly with --config is an error.
func (st *cliState) readConfigFile(cmd *cobra.Command) error {
	if st.cfgFile == "" {
		return nil
	}
	explicit := false
	if f := cmd.Flag("config"); f != nil {
		explicit = f.Changed
	}
	if _, err := os.Stat(st.cfgFile); err != nil {
		if os.IsNotExist(err) && !explicit {
			return nil
		}
		return fmt.Errorf("failed to load config: %w", err)
	}
	st.v.SetConfigFile(st.cfgFile)
	if err := st.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) && !explicit {
			return nil
		}
		return fmt.Errorf("failed to load config: %w", err)
	}
	return nil
}

// Execute runs the command tree and exits non-zero on any error.
func Execute() {
	if err := execute(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		os.Exit(1)
	}
}

func execute(args []string, stdout, stderr io.Writer) error {
	defer func() { _ = logging.Close() }()

	rootCmd := newRootCmd()
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	err := rootCmd.Execute()
	if err != nil {
		color.New(color.FgRed).Fprintf(stderr, "Error: %v\n", err)
	}
	return err
}
