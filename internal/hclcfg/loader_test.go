package hclcfg

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/vk/primbench/internal/config"
)

func writeSuiteFile(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "suite.hcl")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))
	return path
}

func TestLoad_OverridesBenchmarksAndDataset(t *testing.T) {
	t.Parallel()

	path := writeSuiteFile(t, `
log_root = "out/logs"

benchmark "VA" {}

benchmark "GRAPH" {
  dir              = "${root}/graphs/GRAPH"
  requires_dataset = true
}

dataset {
  urls            = ["https://example.com/data.tar.zst"]
  sha256          = "abc123"
  timeout_seconds = 5
  retries         = 2
}

build {
  jobs    = 8
  targets = ["all"]
}
`)

	base := config.Default("/suite/root")
	loaded, err := NewLoader().Load(context.Background(), path, base)
	require.NoError(t, err)

	require.Equal(t, "out/logs", loaded.LogRoot)
	require.Len(t, loaded.Benchmarks, 2)
	require.Equal(t, "VA", loaded.Benchmarks[0].Name)
	require.Equal(t, "VA", loaded.Benchmarks[0].Dir, "dir defaults to the block label")
	require.Equal(t, "/suite/root/graphs/GRAPH", loaded.Benchmarks[1].Dir, "root variable interpolates")
	require.True(t, loaded.Benchmarks[1].RequiresDataset)

	require.Equal(t, []string{"https://example.com/data.tar.zst"}, loaded.Dataset.URLs)
	require.Equal(t, "abc123", loaded.Dataset.SHA256)
	require.Equal(t, 5*time.Second, loaded.Dataset.Timeout)
	require.Equal(t, 2, loaded.Dataset.Retries)
	require.Equal(t, base.Dataset.Markers, loaded.Dataset.Markers, "unset fields keep their defaults")

	require.Equal(t, 8, loaded.Build.Jobs)
	require.Equal(t, []string{"all"}, loaded.Build.Targets)

	// The base must be untouched.
	require.Len(t, base.Benchmarks, len(config.DefaultBenchmarks))
}

func TestLoad_EmptyFileKeepsDefaults(t *testing.T) {
	t.Parallel()

	path := writeSuiteFile(t, "\n")
	base := config.Default("/r")

	loaded, err := NewLoader().Load(context.Background(), path, base)
	require.NoError(t, err)
	require.Equal(t, base.LogRoot, loaded.LogRoot)
	require.Len(t, loaded.Benchmarks, len(base.Benchmarks))
	require.Equal(t, base.Dataset, loaded.Dataset)
}

func TestLoad_EnvFunction(t *testing.T) {
	t.Setenv("PRIMBENCH_TEST_SHA", "fromenv")

	path := writeSuiteFile(t, `
dataset {
  sha256 = env("PRIMBENCH_TEST_SHA", "fallback")
  urls   = [env("PRIMBENCH_TEST_MISSING", "https://fallback.example.com/a.tar.zst")]
}
`)
	loaded, err := NewLoader().Load(context.Background(), path, config.Default("/r"))
	require.NoError(t, err)
	require.Equal(t, "fromenv", loaded.Dataset.SHA256)
	require.Equal(t, []string{"https://fallback.example.com/a.tar.zst"}, loaded.Dataset.URLs)
}

func TestLoad_SyntaxError(t *testing.T) {
	t.Parallel()

	path := writeSuiteFile(t, `benchmark "A" {`)
	_, err := NewLoader().Load(context.Background(), path, config.Default("/r"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to parse")
}

func TestLoad_MissingFile(t *testing.T) {
	t.Parallel()

	_, err := NewLoader().Load(context.Background(), filepath.Join(t.TempDir(), "nope.hcl"), config.Default("/r"))
	require.Error(t, err)
}
