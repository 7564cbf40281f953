// Package dataset materializes a benchmark's external dataset: resilient
// multi-URL download with retry and curl fallback, sha256 verification,
// tar.zst extraction, and idempotent re-entry driven by marker files.
package dataset
