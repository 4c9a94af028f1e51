package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"

	"github.com/mwiater/suitebench/internal/appconfig"
	"github.com/mwiater/suitebench/internal/benchmark"
	"github.com/mwiater/suitebench/internal/groups"
	"github.com/mwiater/suitebench/internal/logging"
	"github.com/mwiater/suitebench/internal/report"
	"github.com/mwiater/suitebench/internal/scenario"
	"github.com/mwiater/suitebench/internal/telemetry"
	"github.com/mwiater/suitebench/internal/util"
)

// runBenchmarks validates cfg, runs the selected groups and writes the report
// to stdout or cfg.Output. Nothing is measured unless the whole configuration
// is valid.
func runBenchmarks(ctx context.Context, cfg *appconfig.Config, stdout, stderr io.Writer) error {
	if cfg == nil {
		d := appconfig.Defaults()
		cfg = &d
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	dest := stdout
	if cfg.Output != "" {
		// A report file is styled like any non-terminal writer.
		dest = io.Discard
	}
	reporter, err := report.NewFor(cfg.Format, dest)
	if err != nil {
		return err
	}

	dir, cleanup, err := fixtureDir(cfg.SuiteDir)
	if err != nil {
		return err
	}
	defer cleanup()

	selected, err := groups.Resolve(cfg.SelectedSuites(), dir, groups.WithVerboseStorage(cfg.Debug))
	if err != nil {
		return err
	}

	runID := uuid.NewString()
	shutdown, err := telemetry.Init(ctx, telemetry.Config{
		ServiceName:    "suitebench",
		ServiceVersion: version,
		RunID:          runID,
		Exporter:       cfg.Trace,
		Writer:         stderr,
	})
	if err != nil {
		return benchmark.Configf("%v", err)
	}
	defer func() { _ = shutdown(context.Background()) }()

	opts := []benchmark.Option{
		benchmark.WithIterations(cfg.Iterations),
		benchmark.WithRunID(runID),
		benchmark.WithObserver(benchmark.NewLogObserver()),
	}
	if cfg.TrackMemory != nil {
		opts = append(opts, benchmark.WithMemoryTracking(*cfg.TrackMemory))
	}
	if cfg.Progress && isTerminal(stderr) {
		opts = append(opts, benchmark.WithObserver(newProgressObserver(stderr)))
	}

	runner := benchmark.NewRunner(opts...)
	logging.LogEvent("Run %s: %d group(s), %d iteration(s), format %s", runID, len(selected), runner.Iterations(), cfg.Format)
	set, err := runner.Run(ctx, selected...)
	if err != nil {
		return err
	}

	out, err := reporter.Render(set)
	if err != nil {
		return err
	}
	if cfg.Output == "" {
		_, err = io.WriteString(stdout, out)
		return err
	}
	if err := util.WriteFile(cfg.Output, []byte(out)); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	fmt.Fprintf(stderr, "Report written to %s\n", cfg.Output)
	return nil
}

// fixtureDir returns the directory the groups read their suites from. Without
// an override the built-in fixtures are written to a temp dir that cleanup
// removes.
func fixtureDir(override string) (string, func(), error) {
	if override != "" {
		info, err := os.Stat(override)
		if err != nil {
			return "", nil, benchmark.Configf("suite dir: %v", err)
		}
		if !info.IsDir() {
			return "", nil, benchmark.Configf("suite dir %q is not a directory", override)
		}
		return override, func() {}, nil
	}

	dir, err := os.MkdirTemp("", "suitebench-fixtures-")
	if err != nil {
		return "", nil, fmt.Errorf("create fixture dir: %w", err)
	}
	cleanup := func() { _ = os.RemoveAll(dir) }
	if err := scenario.WriteFixtures(dir); err != nil {
		cleanup()
		return "", nil, fmt.Errorf("write fixtures: %w", err)
	}
	return dir, cleanup, nil
}
