package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/vk/primbench/internal/ctxlog"
	"github.com/vk/primbench/internal/harness"
)

// ErrBenchmarksFailed is returned by Run when at least one benchmark in the
// batch failed. The summary has already been printed by then; the caller
// only needs to translate it into a nonzero exit status.
var ErrBenchmarksFailed = errors.New("one or more benchmarks failed")

// Run executes one full harness pass: create the timestamped log
// directory, print the invocation header, run the orchestrator, and print
// the summary.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run started.", "benchmarks", len(a.suite.Benchmarks))

	logDir := filepath.Join(a.suite.Root, a.suite.LogRoot, time.Now().Format("20060102_150405"))
	if err := os.MkdirAll(logDir, 0o755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}

	autoDownload := "yes"
	if !a.suite.AllowDownload {
		autoDownload = "no"
	}
	fmt.Fprintf(a.outW, "Root         : %s\n", a.suite.Root)
	fmt.Fprintf(a.outW, "Logs         : %s\n", logDir)
	fmt.Fprintf(a.outW, "Auto-download: %s\n\n", autoDownload)

	orch := harness.NewOrchestrator(a.suite, logDir, a.outW)
	report := orch.Run(ctx)
	report.WriteSummary(a.outW)

	a.logger.Debug("App.Run finished.",
		"passed", len(report.Passed()),
		"failed", len(report.Failed()),
	)
	if report.HasFailures() {
		return ErrBenchmarksFailed
	}
	return nil
}
