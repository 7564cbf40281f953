package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/vk/primbench/internal/config"
	"github.com/vk/primbench/internal/ctxlog"
)

// App encapsulates the application's dependencies, configuration, and
// lifecycle.
type App struct {
	outW   io.Writer
	logger *slog.Logger
	suite  *config.Suite
}

// NewApp is the constructor for the main application. It builds an isolated
// logger, starts from the compiled-in suite defaults, layers the optional
// suite file on top, and finally applies the CLI's overrides.
func NewApp(outW io.Writer, appConfig *Config, loader config.Loader) (*App, error) {
	logger := newLogger(appConfig.LogLevel, appConfig.LogFormat, outW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	suite := config.Default(appConfig.RootDir)
	if appConfig.SuitePath != "" {
		loaded, err := loader.Load(ctx, appConfig.SuitePath, suite)
		if err != nil {
			return nil, fmt.Errorf("failed to load suite configuration: %w", err)
		}
		suite = loaded
		logger.Debug("Suite file applied.", "path", appConfig.SuitePath)
	}

	suite.AllowDownload = appConfig.AllowDownload
	suite.Build.Enabled = appConfig.Build
	if appConfig.Jobs > 0 {
		suite.Build.Jobs = appConfig.Jobs
	}
	suite.Select(appConfig.Selection)
	logger.Debug("Suite resolved.", "benchmarks", len(suite.Benchmarks))

	return &App{outW: outW, logger: logger, suite: suite}, nil
}

// Suite returns the resolved suite. This is primarily for testing.
func (a *App) Suite() *config.Suite {
	return a.suite
}
