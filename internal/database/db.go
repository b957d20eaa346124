// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package database

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // Postgres driver registered as "pgx"
	"github.com/vinovest/sqlx"
	_ "modernc.org/sqlite" // Pure-Go SQLite driver
)

// Dialect identifies the SQL backend behind a DSN.
type Dialect string

const (
	DialectSQLite   Dialect = "sqlite"
	DialectPostgres Dialect = "postgres"
)

// DefaultDSN is used when no DSN is configured.
const DefaultDSN = "./data/catalog.db"

// DialectFromDSN picks Postgres for postgres URLs and SQLite for everything else.
func DialectFromDSN(dsn string) Dialect {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		return DialectPostgres
	}
	return DialectSQLite
}

// driverName maps a dialect to the registered database/sql driver.
func (d Dialect) driverName() string {
	if d == DialectPostgres {
		return "pgx"
	}
	return "sqlite"
}

// Open connects to the database and applies all pending migrations.
func Open(dsn string) (*sqlx.DB, error) {
	conn, err := Connect(dsn)
	if err != nil {
		return nil, err
	}

	if err := RunMigrations(conn); err != nil {
		_ = conn.Close()
		return nil, err
	}

	return conn, nil
}

// Connect opens a connection pool without touching the schema.
func Connect(dsn string) (*sqlx.DB, error) {
	if dsn == "" {
		dsn = DefaultDSN
	}

	dialect := DialectFromDSN(dsn)
	if dialect == DialectSQLite {
		if err := ensureDir(dsn); err != nil {
			return nil, err
		}
		dsn = addDefaultParams(dsn)
	}

	conn, err := sqlx.Open(dialect.driverName(), dsn)
	if err != nil {
		return nil, err
	}

	// Configure connection pool
	if isMemoryDSN(dsn) {
		// Every connection to :memory: is a separate database.
		conn.SetMaxOpenConns(1)
		conn.SetConnMaxLifetime(0)
	} else {
		conn.SetMaxOpenConns(10)
		conn.SetMaxIdleConns(5)
		conn.SetConnMaxLifetime(time.Hour)
	}

	ctx := context.Background()
	if err := conn.PingContext(ctx); err != nil {
		_ = conn.Close()
		return nil, err
	}

	if dialect == DialectSQLite {
		if err := configureSQLite(ctx, conn); err != nil {
			_ = conn.Close()
			return nil, err
		}
	}

	return conn, nil
}

// DialectOf reports the dialect of an open connection.
func DialectOf(db *sqlx.DB) Dialect {
	if db.DriverName() == "pgx" || db.DriverName() == "postgres" {
		return DialectPostgres
	}
	return DialectSQLite
}

func isMemoryDSN(dsn string) bool {
	return strings.HasPrefix(dsn, ":memory:") || strings.Contains(dsn, "mode=memory")
}

// ensureDir creates the parent directory for file-based databases.
func ensureDir(dsn string) error {
	if isMemoryDSN(dsn) {
		return nil
	}
	path := strings.TrimPrefix(dsn, "file:")
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path = path[:i]
	}
	return os.MkdirAll(filepath.Dir(path), 0o750)
}

// addDefaultParams adds recommended SQLite pragmas if not already present.
func addDefaultParams(dsn string) string {
	defaults := []struct{ name, param string }{
		{"_txlock", "_txlock=immediate"},
		{"busy_timeout", "_pragma=busy_timeout(5000)"},
		{"foreign_keys", "_pragma=foreign_keys(1)"},
	}

	for _, d := range defaults {
		if strings.Contains(dsn, d.name) {
			continue
		}
		separator := "?"
		if strings.Contains(dsn, "?") {
			separator = "&"
		}
		dsn += separator + d.param
	}

	return dsn
}

// configureSQLite sets PRAGMAs for optimal performance.
func configureSQLite(ctx context.Context, db *sqlx.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA temp_store = MEMORY",
		"PRAGMA foreign_keys = ON",
		"PRAGMA cache_size = 2000",
	}

	for _, pragma := range pragmas {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			return err
		}
	}

	return nil
}
