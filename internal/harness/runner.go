package harness

import (
	"context"
	"errors"
	"os/exec"
)

// RunArtifact executes artifact with no arguments from dir, capturing
// merged stdout/stderr and the exit code. A non-nil error means the
// process could not be run at all (for example, permission denied), which
// is a distinct failure from a nonzero exit code.
func RunArtifact(ctx context.Context, artifact, dir string) (string, int, error) {
	cmd := exec.CommandContext(ctx, artifact)
	cmd.Dir = dir

	out, err := cmd.CombinedOutput()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return string(out), exitErr.ExitCode(), nil
		}
		return string(out), 0, err
	}
	return string(out), 0, nil
}
