package harness

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/vk/primbench/internal/config"
	"github.com/vk/primbench/internal/ctxlog"
)

// Builder invokes the external build collaborator before a benchmark runs.
type Builder struct {
	Jobs    int
	Targets []string

	// tool is the build binary; tests substitute it.
	tool string
}

// NewBuilder creates a Builder from the suite's build configuration.
func NewBuilder(spec config.BuildSpec) *Builder {
	return &Builder{Jobs: spec.Jobs, Targets: spec.Targets, tool: "make"}
}

// Build runs make in benchDir, writing combined output to logPath when it
// is non-empty. On failure it returns a stable reason string; a missing
// build descriptor is reported separately from a failed build.
func (b *Builder) Build(ctx context.Context, benchDir, logPath string) (bool, string) {
	if _, err := os.Stat(filepath.Join(benchDir, "Makefile")); err != nil {
		return false, "missing Makefile"
	}

	var args []string
	if b.Jobs > 0 {
		args = append(args, fmt.Sprintf("-j%d", b.Jobs))
	}
	args = append(args, b.Targets...)

	cmd := exec.CommandContext(ctx, b.tool, args...)
	cmd.Dir = benchDir
	out, err := cmd.CombinedOutput()

	if logPath != "" {
		if werr := os.WriteFile(logPath, out, 0o644); werr != nil {
			ctxlog.FromContext(ctx).Warn("Failed to write build log.", "path", logPath, "error", werr)
		}
	}

	if err != nil {
		rc := -1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			rc = exitErr.ExitCode()
		}
		return false, fmt.Sprintf("make failed (rc=%d)", rc)
	}
	return true, ""
}
