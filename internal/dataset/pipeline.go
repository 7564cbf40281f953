package dataset

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/vk/primbench/internal/config"
	"github.com/vk/primbench/internal/ctxlog"
)

// Pipeline is one benchmark's "ensure dataset present" operation. It holds
// no state between calls; re-running it against a materialized dataset does
// nothing but check markers.
type Pipeline struct {
	// BenchDir is the benchmark directory the dataset lives under.
	BenchDir string
	// Spec carries URLs, checksum, markers, and retry budget.
	Spec config.DatasetSpec
	// AllowDownload gates all network activity.
	AllowDownload bool
	// Out receives user-facing progress lines.
	Out io.Writer

	// Seams for tests; New wires the production implementations.
	fetch   func(ctx context.Context, urls []string, dest string) error
	extract func(ctx context.Context, archive, destDir string) error
	digest  func(path string) (string, error)
}

// New builds a production Pipeline for one benchmark directory.
func New(benchDir string, spec config.DatasetSpec, allowDownload bool, out io.Writer) *Pipeline {
	fetcher := NewFetcher(NewTransfer(spec.Timeout, out), spec.Retries, out)
	return &Pipeline{
		BenchDir:      benchDir,
		Spec:          spec,
		AllowDownload: allowDownload,
		Out:           out,
		fetch:         fetcher.Fetch,
		extract:       Extract,
		digest:        Digest,
	}
}

// EnsurePresent makes the dataset available under <BenchDir>/data, or
// explains why it could not. The bool is the outcome; the string is a
// stable human-readable reason either way.
func (p *Pipeline) EnsurePresent(ctx context.Context) (bool, string) {
	logger := ctxlog.FromContext(ctx)
	dataDir := filepath.Join(p.BenchDir, "data")

	if missing := p.missingMarkers(); len(missing) == 0 {
		return true, "datasets present"
	} else if !p.AllowDownload {
		return false, "datasets missing (offline): " + strings.Join(missing, ", ")
	}

	archive := filepath.Join(dataDir, ".cache", p.Spec.Archive)

	fmt.Fprintln(p.Out, "==> datasets missing, downloading archive...")
	if _, err := os.Stat(archive); err != nil {
		if err := p.fetch(ctx, p.Spec.URLs, archive); err != nil {
			return false, err.Error()
		}
	} else {
		fmt.Fprintf(p.Out, "      using cached archive: %s\n", archive)
	}

	fmt.Fprintln(p.Out, "      verifying sha256...")
	got, err := p.digest(archive)
	if err != nil {
		return false, fmt.Sprintf("checksum failed: %v", err)
	}
	if !strings.EqualFold(got, p.Spec.SHA256) {
		// Delete the corrupt archive so the next invocation re-downloads
		// instead of verifying the same bad bytes forever.
		if err := os.Remove(archive); err != nil {
			logger.Warn("Failed to remove corrupt archive.", "path", archive, "error", err)
		}
		return false, fmt.Sprintf("sha256 mismatch for %s (got %s, expected %s)",
			filepath.Base(archive), got, p.Spec.SHA256)
	}

	fmt.Fprintf(p.Out, "      extracting into: %s\n", dataDir)
	if err := p.extract(ctx, archive, dataDir); err != nil {
		return false, err.Error()
	}

	if missing := p.missingMarkers(); len(missing) > 0 {
		// The archive unpacked cleanly but does not contain what the
		// benchmark needs: a layout mismatch, not a network problem.
		return false, "extracted but markers still missing: " + strings.Join(missing, ", ")
	}
	return true, "downloaded + extracted"
}

// missingMarkers returns the absolute marker paths that do not exist yet.
func (p *Pipeline) missingMarkers() []string {
	var missing []string
	for _, m := range p.Spec.Markers {
		abs := filepath.Join(p.BenchDir, m)
		if _, err := os.Stat(abs); err != nil {
			missing = append(missing, abs)
		}
	}
	return missing
}
