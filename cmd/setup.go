package main

import (
	"context"
	"fmt"

	"github.com/ledantec/dbscrub/internal/shared"
	"github.com/urfave/cli/v3"
)

func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Bootstrap configuration and schema",
		Commands: []*cli.Command{
			{
				Name:  "config",
				Usage: "Write the example configuration file",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "path",
						Aliases: []string{"p"},
						Usage:   "Destination of the configuration file",
						Value:   "config.toml",
					},
				},
				Action: r.SetupConfig,
			},
			{
				Name:  "schema",
				Usage: "Create the baseline platform tables on an empty database",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "Path to configuration file",
						Value:   "config.toml",
					},
				},
				Action: r.SetupSchema,
			},
		},
	}
}

// SetupConfig writes the embedded example configuration to disk.
func (r *Runner) SetupConfig(ctx context.Context, cmd *cli.Command) error {
	path := cmd.String("path")
	if err := shared.CreateConfigFile(path); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrInvalidConfig, err)
	}
	return r.writePlainln("Configuration written to %s", path)
}

// SetupSchema applies the embedded platform schema to the configured
// database. Meant for empty targets: demos and test fixtures.
func (r *Runner) SetupSchema(ctx context.Context, cmd *cli.Command) error {
	config, err := r.loadConfig(cmd.String("config"))
	if err != nil {
		return err
	}

	db, err := shared.NewDatabase(config.Database.Driver, config.Database.DSN)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()
	shared.ConfigureDatabase(db, config.Database.MaxOpenConns, config.Database.MaxIdleConns)

	r.logger.Info("applying platform schema", "driver", config.Database.Driver)
	if err := shared.ApplySchema(db); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return r.writePlainln("Platform schema applied")
}
