package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/vk/primbench/internal/app"
	"github.com/vk/primbench/internal/config"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Parse processes command-line arguments. It returns a populated
// app.Config, a boolean indicating if the program should exit cleanly, or
// an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("primbench", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
primbench - build, run, and classify the DPU benchmark suite.

Usage:
  primbench [options] [BENCHMARK ...]

Arguments:
  BENCHMARK
    Benchmark names to run. Runs the whole suite when omitted.

Options:
`)
		flagSet.PrintDefaults()
	}

	suiteFlag := flagSet.String("suite", "", "Path to an HCL suite file layered over the built-in defaults.")
	sFlag := flagSet.String("s", "", "Path to an HCL suite file (shorthand).")
	rootFlag := flagSet.String("root", "", "Benchmark root directory. Defaults to the current directory.")
	listFlag := flagSet.Bool("list", false, "Print the benchmark list and exit.")
	noDownloadFlag := flagSet.Bool("no-download", false, "Never touch the network; missing datasets fail their benchmark.")
	buildFlag := flagSet.Bool("build", false, "Run make in each benchmark directory before running it.")
	jobsFlag := flagSet.Int("j", 0, "Parallel jobs passed to make. 0 keeps the suite default.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	if *listFlag {
		fmt.Fprintln(output, "Benchmarks:")
		for _, name := range config.DefaultBenchmarks {
			fmt.Fprintf(output, "  %s\n", name)
		}
		return nil, true, nil
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}

	suitePath := *suiteFlag
	if suitePath == "" {
		suitePath = *sFlag
	}

	root := *rootFlag
	if root == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, false, &ExitError{Code: 2, Message: err.Error()}
		}
		root = cwd
	}

	appConfig, err := app.NewConfig(app.Config{
		RootDir:       root,
		SuitePath:     suitePath,
		Selection:     flagSet.Args(),
		AllowDownload: !*noDownloadFlag,
		Build:         *buildFlag,
		Jobs:          *jobsFlag,
		LogFormat:     logFormat,
		LogLevel:      logLevel,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.")
	return appConfig, false, nil
}
