package appconfig

import (
	"fmt"
	"io"
	"strings"
)

// ShowConfig prints the current configuration summary.
func ShowConfig(out io.Writer, file string, cfg *Config) {
	if file == "" {
		fmt.Fprintln(out, "No config file loaded (using defaults).")
	} else {
		fmt.Fprintf(out, "Config file: %s\n\n", file)
	}

	if cfg == nil {
		d := Defaults()
		cfg = &d
	}

	suites := "all"
	if selected := cfg.SelectedSuites(); len(selected) > 0 {
		suites = strings.Join(selected, ", ")
	}
	suiteDir := cfg.SuiteDir
	if suiteDir == "" {
		suiteDir = "(built-in fixtures)"
	}
	output := cfg.Output
	if output == "" {
		output = "stdout"
	}
	trackMemory := "per operation"
	if cfg.TrackMemory != nil {
		trackMemory = fmt.Sprintf("%v (override)", *cfg.TrackMemory)
	}

	fmt.Fprintln(out, "Current configuration:")
	fmt.Fprintf(out, "  Suites:          %s\n", suites)
	fmt.Fprintf(out, "  Iterations:      %d\n", cfg.Iterations)
	fmt.Fprintf(out, "  Format:          %s\n", cfg.Format)
	fmt.Fprintf(out, "  Suite Dir:       %s\n", suiteDir)
	fmt.Fprintf(out, "  Output:          %s\n", output)
	fmt.Fprintf(out, "  Track Memory:    %s\n", trackMemory)
	fmt.Fprintf(out, "  Progress:        %v\n", cfg.Progress)
	fmt.Fprintf(out, "  Debug:           %v\n", cfg.Debug)
	fmt.Fprintf(out, "  Log File:        %s\n", cfg.LogFile)
	fmt.Fprintf(out, "  Trace:           %s\n", cfg.Trace)
}
