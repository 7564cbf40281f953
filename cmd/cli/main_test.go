package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vk/primbench/internal/app"
)

func TestRun_Help(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}
	err := run(out, []string{"-h"})
	require.NoError(t, err, "help should exit cleanly")
	require.Contains(t, out.String(), "Usage:")
}

func TestRun_ParseError(t *testing.T) {
	t.Parallel()

	err := run(&bytes.Buffer{}, []string{"--this-is-not-a-valid-flag"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "flag provided but not defined")
}

func TestRun_List(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}
	err := run(out, []string{"--list"})
	require.NoError(t, err)
	require.Contains(t, out.String(), "Benchmarks:")
}

func TestRun_PassingSuite(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	binDir := filepath.Join(root, "VA", "bin")
	require.NoError(t, os.MkdirAll(binDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(binDir, "host_code"), []byte("#!/bin/sh\necho OK\n"), 0o755))

	out := &bytes.Buffer{}
	err := run(out, []string{"--root", root, "--no-download", "--log-level", "error", "VA"})
	require.NoError(t, err)
	require.Contains(t, out.String(), "[PASS] VA: found OK")
}

func TestRun_FailingSuite(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	out := &bytes.Buffer{}
	err := run(out, []string{"--root", root, "--no-download", "--log-level", "error", "MISSING"})
	require.ErrorIs(t, err, app.ErrBenchmarksFailed)
	require.Contains(t, out.String(), "[FAIL] MISSING: missing directory")
}

func TestRun_BrokenSuiteFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "suite.hcl")
	require.NoError(t, os.WriteFile(path, []byte(`benchmark "A" {`), 0o600))

	err := run(&bytes.Buffer{}, []string{"--suite", path})
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to load suite configuration")
}
