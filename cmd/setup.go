package main

import (
	"context"
	"fmt"
	"os"

	"github.com/desertthunder/dance-party/internal/formatter"
	"github.com/desertthunder/dance-party/internal/shared"
	"github.com/urfave/cli/v3"
)

// Setup creates config.toml from the embedded template when missing, then initializes the database
// and runs migrations.
func (r *Runner) Setup(ctx context.Context, cmd *cli.Command) error {
	configPath := cmd.String("config")

	if _, err := os.Stat(configPath); err == nil {
		r.logger.Info("config file found", "path", configPath)
	} else {
		r.logger.Info("config file not found, creating from template", "path", configPath)
		if err := shared.CreateConfigFile(configPath); err != nil {
			return err
		}
		formatter.Success(r.output, "Created %s", configPath)

		config, err := shared.ResolveConfig(configPath)
		if err != nil {
			return err
		}
		r.config = config
	}

	if cmd.Bool("ephemeral") {
		r.logger.Warn("--ephemeral set, skipping database setup")
		return nil
	}

	r.logger.Info("initializing database", "path", r.config.Database.Path)
	db, err := shared.OpenDatabase(r.config.Database)
	if err != nil {
		return fmt.Errorf("failed to set up database: %w", err)
	}
	defer db.Close()

	if cmd.Bool("reset") {
		r.logger.Warn("resetting database", "path", r.config.Database.Path)
		if err := shared.ResetMigrations(db); err != nil {
			return fmt.Errorf("failed to reset database: %w", err)
		}
		formatter.Success(r.output, "Database reset")
	}

	formatter.Success(r.output, "Database ready at %s", r.config.Database.Path)
	return nil
}
