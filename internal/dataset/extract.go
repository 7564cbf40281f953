package dataset

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
)

// Extract unpacks a .tar.zst archive into destDir, creating it if absent.
// It first tries tar's built-in zstd support; if tar is missing that
// feature or fails for any reason, it falls back to streaming an external
// zstd decompressor into tar. A failed extraction may leave partial output
// under destDir; callers must not trust destDir until Extract succeeds.
func Extract(ctx context.Context, archive, destDir string) error {
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return err
	}

	cmd := exec.CommandContext(ctx, "tar", "--zstd", "-xf", archive, "-C", destDir)
	if _, err := cmd.CombinedOutput(); err == nil {
		return nil
	}

	return extractPiped(ctx, archive, destDir)
}

// extractPiped runs `zstd -dc archive | tar -xf - -C destDir` as two
// processes joined by a pipe. The pipe preserves back-pressure: zstd blocks
// whenever tar is not consuming. Both exit codes are checked, and both
// tools' diagnostics are concatenated into the error when either fails.
func extractPiped(ctx context.Context, archive, destDir string) error {
	zstd := exec.CommandContext(ctx, "zstd", "-dc", archive)
	var zstdStderr bytes.Buffer
	zstd.Stderr = &zstdStderr

	pipe, err := zstd.StdoutPipe()
	if err != nil {
		return err
	}

	tar := exec.CommandContext(ctx, "tar", "-xf", "-", "-C", destDir)
	tar.Stdin = pipe
	var tarOut bytes.Buffer
	tar.Stdout = &tarOut
	tar.Stderr = &tarOut

	if err := zstd.Start(); err != nil {
		return fmt.Errorf("starting zstd: %w", err)
	}

	// The parent keeps its own read end of the pipe open, so tar exiting
	// (or never starting) is not enough to unblock a zstd stuck mid-write.
	// Close it before waiting or Wait can hang forever.
	tarErr := tar.Run()
	pipe.Close()
	zstdErr := zstd.Wait()

	if tarErr != nil || zstdErr != nil {
		msg := tarOut.String()
		if zstdStderr.Len() > 0 {
			msg += "\n[zstd stderr]\n" + zstdStderr.String()
		}
		return fmt.Errorf("extract failed (tar rc=%d, zstd rc=%d):\n%s",
			exitCode(tar), exitCode(zstd), msg)
	}
	return nil
}
