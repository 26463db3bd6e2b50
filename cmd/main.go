package main

import (
	"context"
	"errors"
	"os"

	"github.com/ledantec/dbscrub/internal/shared"
	"github.com/urfave/cli/v3"
)

func main() {
	logger := shared.NewLogger(nil)

	config := shared.DefaultConfig()
	if _, err := os.Stat("config.toml"); err == nil {
		if loadedConfig, err := shared.LoadConfig("config.toml"); err == nil {
			config = loadedConfig
		}
	}

	runner := NewRunner(RunnerOpts{
		Config: config,
		Logger: logger,
	})

	app := &cli.Command{
		Name:     "dbscrub",
		Usage:    "Anonymize a collaboration platform database",
		Version:  "0.1.0",
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		logger.Error("application error", "error", err)
		if errors.Is(err, shared.ErrMissingConfig) ||
			errors.Is(err, shared.ErrInvalidConfig) ||
			errors.Is(err, shared.ErrUnknownDriver) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}
