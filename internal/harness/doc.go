// Package harness executes the benchmark suite: it locates each
// benchmark's host-side artifact, optionally builds it, runs it, classifies
// the captured output, and accumulates a pass/fail report.
package harness
