// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"codeberg.org/oliverandrich/music-catalog/internal/config"
	"codeberg.org/oliverandrich/music-catalog/internal/database"
	"codeberg.org/oliverandrich/music-catalog/internal/server"
	"github.com/urfave/cli/v3"
	"github.com/vinovest/sqlx"
)

// Version information (set via ldflags during build)
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	cmd := &cli.Command{
		Name:    "catalog",
		Usage:   "Music catalog REST API",
		Version: fmt.Sprintf("%s (built %s)", Version, BuildTime),
		Flags:   config.Flags(),
		Action:  server.Run,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Start the API server",
				Action: server.Run,
			},
			{
				Name:  "migrate",
				Usage: "Manage the database schema",
				Commands: []*cli.Command{
					migrateCommand("up", "Apply all pending migrations", database.RunMigrations),
					migrateCommand("down", "Roll back the last migration", database.MigrateDown),
					migrateCommand("status", "Show the state of every migration", database.MigrationStatus),
					migrateCommand("reset", "Roll back all migrations", database.MigrateReset),
				},
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// migrateCommand runs fn against a connection that skips automatic migrations.
func migrateCommand(name, usage string, fn func(*sqlx.DB) error) *cli.Command {
	return &cli.Command{
		Name:  name,
		Usage: usage,
		Action: func(_ context.Context, cmd *cli.Command) error {
			cfg := config.NewFromCLI(cmd)

			db, err := database.Connect(cfg.Database.DSN)
			if err != nil {
				return fmt.Errorf("failed to connect to database: %w", err)
			}
			defer func() {
				_ = db.Close()
			}()

			if err := fn(db); err != nil {
				return fmt.Errorf("migrate %s: %w", name, err)
			}

			slog.Info("migrate finished", "command", name, "dialect", database.DialectOf(db))
			return nil
		},
	}
}
