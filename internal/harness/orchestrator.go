package harness

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/vk/primbench/internal/config"
	"github.com/vk/primbench/internal/ctxlog"
	"github.com/vk/primbench/internal/dataset"
)

// Orchestrator processes the selected benchmarks sequentially: dataset
// acquisition when required, optional build, artifact location, run, and
// classification. One benchmark's failure never halts the batch.
type Orchestrator struct {
	Suite  *config.Suite
	LogDir string
	Out    io.Writer

	// Seams for tests; NewOrchestrator wires production implementations.
	ensureDataset func(ctx context.Context, benchDir string) (bool, string)
	builder       *Builder
}

// NewOrchestrator creates an Orchestrator writing logs under logDir.
func NewOrchestrator(suite *config.Suite, logDir string, out io.Writer) *Orchestrator {
	o := &Orchestrator{
		Suite:   suite,
		LogDir:  logDir,
		Out:     out,
		builder: NewBuilder(suite.Build),
	}
	o.ensureDataset = func(ctx context.Context, benchDir string) (bool, string) {
		p := dataset.New(benchDir, suite.Dataset, suite.AllowDownload, out)
		return p.EnsurePresent(ctx)
	}
	return o
}

// Run processes every benchmark in order and returns the accumulated
// report. Per-benchmark failures are converted to results here and never
// propagate further.
func (o *Orchestrator) Run(ctx context.Context) *Report {
	logger := ctxlog.FromContext(ctx)
	report := &Report{}

	for _, bench := range o.Suite.Benchmarks {
		benchDir := o.Suite.BenchDir(bench)

		info, err := os.Stat(benchDir)
		if err != nil || !info.IsDir() {
			o.fail(report, bench.Name, "missing directory", "")
			continue
		}

		if bench.RequiresDataset {
			ok, reason := o.ensureDataset(ctx, benchDir)
			if !ok {
				o.fail(report, bench.Name, reason, "")
				continue
			}
			fmt.Fprintf(o.Out, "[OK]   %s: %s\n\n", bench.Name, reason)
		}

		if o.Suite.Build.Enabled {
			makeLog := filepath.Join(o.LogDir, bench.Name+".make.log")
			if ok, reason := o.builder.Build(ctx, benchDir, makeLog); !ok {
				o.fail(report, bench.Name, reason, makeLog)
				continue
			}
		}

		artifact, ok := LocateArtifact(benchDir, bench.Name, o.Suite.ExcludeBinaries)
		if !ok {
			o.fail(report, bench.Name, "no host binary found", "")
			continue
		}

		rel, relErr := filepath.Rel(benchDir, artifact)
		if relErr != nil {
			rel = artifact
		}
		fmt.Fprintf(o.Out, "==> Running %s: (cwd=%s) ./%s\n", bench.Name, filepath.Base(benchDir), rel)

		output, rc, err := RunArtifact(ctx, artifact, benchDir)
		if err != nil {
			o.fail(report, bench.Name, fmt.Sprintf("exception: %v", err), "")
			continue
		}

		logPath := filepath.Join(o.LogDir, bench.Name+".log")
		if werr := os.WriteFile(logPath, []byte(output), 0o644); werr != nil {
			logger.Warn("Failed to write benchmark log.", "path", logPath, "error", werr)
		}

		passed, reason := Classify(output, rc)
		report.add(RunResult{Bench: bench.Name, Passed: passed, Reason: reason, LogPath: logPath})
		if passed {
			fmt.Fprintf(o.Out, "[PASS] %s: %s\n", bench.Name, reason)
		} else {
			fmt.Fprintf(o.Out, "[FAIL] %s: %s\n", bench.Name, reason)
		}
		fmt.Fprintf(o.Out, "      log: %s\n\n", logPath)
	}

	return report
}

// fail records a benchmark-level failure and prints it immediately.
func (o *Orchestrator) fail(report *Report, bench, reason, logPath string) {
	report.add(RunResult{Bench: bench, Passed: false, Reason: reason, LogPath: logPath})
	fmt.Fprintf(o.Out, "[FAIL] %s: %s\n\n", bench, reason)
}
