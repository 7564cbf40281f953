package harness

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/vk/primbench/internal/fsutil"
)

// LocateArtifact selects the host-side executable to run for a benchmark.
// It checks a short preferred-name list inside <benchDir>/bin, then falls
// back to enumerating executables in sorted order, skipping excluded names
// and device-side binaries ("dpu" without "host"). Among the survivors a
// name containing "host" wins; otherwise the first in sorted order.
//
// Returning false is a normal outcome, not an error: it means the
// benchmark has nothing runnable and is recorded as a failure upstream.
func LocateArtifact(benchDir, name string, exclude []string) (string, bool) {
	binDir := filepath.Join(benchDir, "bin")
	info, err := os.Stat(binDir)
	if err != nil || !info.IsDir() {
		return "", false
	}

	preferred := []string{"host_code", "host", strings.ToLower(name) + "_host"}
	for _, p := range preferred {
		full := filepath.Join(binDir, p)
		if fsutil.IsExecutable(full) {
			return full, true
		}
	}

	names, err := fsutil.ListExecutables(binDir)
	if err != nil {
		return "", false
	}

	excluded := make(map[string]bool, len(exclude))
	for _, e := range exclude {
		excluded[e] = true
	}

	var candidates []string
	for _, n := range names {
		low := strings.ToLower(n)
		if excluded[n] {
			continue
		}
		if strings.Contains(low, "dpu") && !strings.Contains(low, "host") {
			continue
		}
		candidates = append(candidates, n)
	}
	if len(candidates) == 0 {
		return "", false
	}

	for _, n := range candidates {
		if strings.Contains(strings.ToLower(n), "host") {
			return filepath.Join(binDir, n), true
		}
	}
	return filepath.Join(binDir, candidates[0]), true
}
