// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package database

import (
	"embed"

	"github.com/pressly/goose/v3"
	"github.com/vinovest/sqlx"
)

//go:embed migrations/sqlite/*.sql migrations/postgres/*.sql
var embedMigrations embed.FS

// prepareGoose points goose at the migration set matching the connection.
func prepareGoose(db *sqlx.DB) (string, error) {
	goose.SetBaseFS(embedMigrations)

	dialect := DialectOf(db)
	gooseDialect := "sqlite3"
	if dialect == DialectPostgres {
		gooseDialect = "postgres"
	}
	if err := goose.SetDialect(gooseDialect); err != nil {
		return "", err
	}

	return "migrations/" + string(dialect), nil
}

// RunMigrations runs all pending goose migrations.
func RunMigrations(db *sqlx.DB) error {
	dir, err := prepareGoose(db)
	if err != nil {
		return err
	}
	return goose.Up(db.DB, dir)
}

// MigrateDown rolls back the last migration.
func MigrateDown(db *sqlx.DB) error {
	dir, err := prepareGoose(db)
	if err != nil {
		return err
	}
	return goose.Down(db.DB, dir)
}

// MigrateReset rolls back all migrations.
func MigrateReset(db *sqlx.DB) error {
	dir, err := prepareGoose(db)
	if err != nil {
		return err
	}
	return goose.Reset(db.DB, dir)
}

// MigrationStatus prints the applied state of every migration.
func MigrationStatus(db *sqlx.DB) error {
	dir, err := prepareGoose(db)
	if err != nil {
		return err
	}
	return goose.Status(db.DB, dir)
}

// SchemaVersion returns the version of the newest applied migration.
func SchemaVersion(db *sqlx.DB) (int64, error) {
	if _, err := prepareGoose(db); err != nil {
		return 0, err
	}
	return goose.GetDBVersion(db.DB)
}
