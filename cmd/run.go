package main

import (
	"context"
	"fmt"

	"github.com/ledantec/dbscrub/internal/scrub"
	"github.com/ledantec/dbscrub/internal/shared"
	"github.com/ledantec/dbscrub/internal/store"
	"github.com/urfave/cli/v3"
)

func runCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "run",
		Usage: "Anonymize the configured database in a single transaction",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
				Value:   "config.toml",
			},
		},
		Action: r.Run,
	}
}

// Run executes a full anonymization run against the configured database.
func (r *Runner) Run(ctx context.Context, cmd *cli.Command) error {
	config, err := r.loadConfig(cmd.String("config"))
	if err != nil {
		return err
	}

	logger := shared.WithLogger(r.logger, "run", shared.GenerateRunID())
	logger.Info("opening target database", "driver", config.Database.Driver)

	db, err := shared.NewDatabase(config.Database.Driver, config.Database.DSN)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()
	shared.ConfigureDatabase(db, config.Database.MaxOpenConns, config.Database.MaxIdleConns)

	engine := scrub.NewEngine(db, store.Dialect(config.Database.Driver), config, logger, &progressReporter{r: r})
	if err := engine.Run(ctx); err != nil {
		return err
	}

	return r.writePlainln("Anonymization complete. Audit files written to %s", config.Audit.Dir)
}
