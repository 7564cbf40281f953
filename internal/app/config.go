package app

import "errors"

// Config holds everything an App instance needs, as resolved from the CLI.
type Config struct {
	// RootDir is the directory containing the benchmark directories.
	RootDir string

	// SuitePath optionally names an HCL suite file layered over defaults.
	SuitePath string

	// Selection narrows the run to the named benchmarks; empty runs all.
	Selection []string

	// AllowDownload gates all network activity for dataset acquisition.
	AllowDownload bool

	// Build runs make in each benchmark directory before running it.
	Build bool

	// Jobs overrides the make parallelism when positive.
	Jobs int

	LogFormat string
	LogLevel  string
}

// NewConfig validates a Config and returns it.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.RootDir == "" {
		return nil, errors.New("RootDir is a required configuration field and cannot be empty")
	}
	return &cfg, nil
}
