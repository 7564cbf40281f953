package config

import (
	"context"
	"path/filepath"
	"time"
)

// BenchmarkSpec identifies one runnable benchmark directory. Constructed at
// startup and read-only afterwards.
type BenchmarkSpec struct {
	// Name is the benchmark identifier as printed in results and summaries.
	Name string

	// Dir is the benchmark directory, absolute or relative to the suite root.
	Dir string

	// RequiresDataset marks benchmarks that cannot run until the external
	// dataset has been materialized under their data/ directory.
	RequiresDataset bool
}

// DatasetSpec describes how the external dataset is fetched and recognized.
type DatasetSpec struct {
	// URLs are candidate download sources, tried in order.
	URLs []string

	// SHA256 is the expected hex digest of the downloaded archive.
	SHA256 string

	// Archive is the cache file name under <benchDir>/data/.cache/.
	Archive string

	// Markers are paths relative to the benchmark directory whose joint
	// existence proves the dataset is already present.
	Markers []string

	// Timeout bounds a single download attempt, not the whole retry loop.
	Timeout time.Duration

	// Retries is the per-URL attempt budget for the HTTP mechanism.
	Retries int
}

// BuildSpec configures the optional pre-run make invocation.
type BuildSpec struct {
	Enabled bool
	Jobs    int
	Targets []string
}

// Suite is the complete configuration for one harness invocation.
type Suite struct {
	// Root is the directory containing the benchmark directories.
	Root string

	// LogRoot is the directory under which per-invocation log directories
	// are created.
	LogRoot string

	Benchmarks []BenchmarkSpec
	Dataset    DatasetSpec
	Build      BuildSpec

	// ExcludeBinaries are bin/ entry names never chosen as the run artifact.
	ExcludeBinaries []string

	// AllowDownload gates all network activity.
	AllowDownload bool
}

// Loader loads a format-specific suite file on top of a base suite.
type Loader interface {
	Load(ctx context.Context, path string, base *Suite) (*Suite, error)
}

// BenchDir resolves a benchmark's directory against the suite root.
func (s *Suite) BenchDir(b BenchmarkSpec) string {
	if filepath.IsAbs(b.Dir) {
		return b.Dir
	}
	return filepath.Join(s.Root, b.Dir)
}

// Select narrows the suite's benchmark list to the named subset, preserving
// the order of names. Unknown names become ad-hoc specs whose directory is
// the name itself, so a missing directory surfaces as a per-benchmark
// failure rather than a configuration error.
func (s *Suite) Select(names []string) {
	if len(names) == 0 {
		return
	}
	byName := make(map[string]BenchmarkSpec, len(s.Benchmarks))
	for _, b := range s.Benchmarks {
		byName[b.Name] = b
	}

	selected := make([]BenchmarkSpec, 0, len(names))
	for _, name := range names {
		if b, ok := byName[name]; ok {
			selected = append(selected, b)
			continue
		}
		selected = append(selected, BenchmarkSpec{Name: name, Dir: name})
	}
	s.Benchmarks = selected
}
