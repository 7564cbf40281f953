// Package config defines the format-agnostic suite model: which benchmark
// directories to run, how the external dataset is acquired, and how builds
// are invoked. The compiled-in defaults mirror the upstream PrIM suite; an
// HCL suite file may override any part of them.
package config
