package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

var (
	mu      sync.Mutex
	logFile *os.File
)

// Init routes the standard logger to logPath and, when verbose, to stderr.
// With neither, log output is discarded. Stdout is never used: it carries
// the benchmark report.
func Init(logPath string, verbose bool) error {
	mu.Lock()
	defer mu.Unlock()

	if logFile != nil {
		_ = logFile.Close()
		logFile = nil
	}

	var writers []io.Writer
	if verbose {
		writers = append(writers, os.Stderr)
	}

	if logPath != "" {
		if dir := filepath.Dir(logPath); dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return err
			}
		}
		file, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return err
		}
		logFile = file
		writers = append(writers, logFile)
	}

	if len(writers) == 0 {
		log.SetOutput(io.Discard)
		return nil
	}
	log.SetOutput(io.MultiWriter(writers...))
	return nil
}

func Close() error {
	mu.Lock()
	defer mu.Unlock()
	if logFile == nil {
		return nil
	}
	log.SetOutput(os.Stderr)
	err := logFile.Close()
	logFile = nil
	return err
}

func LogEvent(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	log.Println(msg)
}

// LogIteration records one finished benchmark iteration.
func LogIteration(group, operation string, iteration, total int, elapsed time.Duration, peakBytes uint64, tracked bool) {
	log.Println(buildIterationMessage(group, operation, iteration, total, elapsed, peakBytes, tracked))
}

func buildIterationMessage(group, operation string, iteration, total int, elapsed time.Duration, peakBytes uint64, tracked bool) string {
	groupValue := strings.TrimSpace(group)
	if groupValue == "" {
		groupValue = "unknown"
	}
	parts := []string{"[ITERATION]"}
	parts = append(parts, fmt.Sprintf("group=%s", groupValue))
	parts = append(parts, fmt.Sprintf("operation=%q", operation))
	if total > 0 {
		parts = append(parts, fmt.Sprintf("n=%d/%d", iteration, total))
	} else {
		parts = append(parts, fmt.Sprintf("n=%d", iteration))
	}
	parts = append(parts, fmt.Sprintf("elapsed=%.3fms", elapsed.Seconds()*1000))
	parts = append(parts, fmt.Sprintf("peak=%s", formatBytes(peakBytes, tracked)))
	return strings.Join(parts, " ")
}

func formatBytes(n uint64, tracked bool) string {
	switch {
	case !tracked:
		return "untracked"
	case n >= 1<<20:
		return fmt.Sprintf("%.1fMB", float64(n)/(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.1fKB", float64(n)/(1<<10))
	default:
		return fmt.Sprintf("%dB", n)
	}
}
