// Package commands implements the loanlens subcommands.
package commands

import (
	"errors"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/loanlens/internal/cli/config"
	"github.com/leapstack-labs/loanlens/internal/engine"
)

// errNoConfig is returned when a command runs without the root command
// having loaded the configuration.
var errNoConfig = errors.New("configuration not loaded")

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg    *config.Config
	Logger *slog.Logger
	Engine *engine.Engine
}

// NewCommandContext creates a CommandContext with an engine.
// Returns the context and a cleanup function that must be called (typically via defer).
func NewCommandContext(cmd *cobra.Command) (*CommandContext, func(), error) {
	cfg := config.GetConfig(cmd.Context())
	if cfg == nil {
		return nil, nil, errNoConfig
	}
	logger := config.GetLogger(cmd.Context())

	eng, err := createEngine(cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	cleanup := func() {
		_ = eng.Close()
	}

	return &CommandContext{
		Cfg:    cfg,
		Logger: logger,
		Engine: eng,
	}, cleanup, nil
}

// createEngine creates an engine from the loaded configuration.
func createEngine(cfg *config.Config, logger *slog.Logger) (*engine.Engine, error) {
	engineCfg := engine.Config{
		Input:        cfg.Input,
		ReportPath:   cfg.ReportPath,
		ChartPath:    cfg.ChartPath,
		ChartDPI:     cfg.ChartDPI,
		WorkbookPath: cfg.WorkbookPath,
		SummaryPath:  cfg.SummaryPath,
		StatePath:    cfg.StatePath,
		Logger:       logger,
	}
	if cfg.Target != nil {
		engineCfg.Target = *cfg.Target
	}
	return engine.New(engineCfg)
}
