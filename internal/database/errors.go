// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package database

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// Postgres SQLSTATE codes for integrity violations.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// IsUniqueViolation reports whether err was raised by a unique or primary key constraint.
func IsUniqueViolation(err error) bool {
	if pgErr, ok := asPgError(err); ok {
		return pgErr.Code == pgUniqueViolation
	}
	if code, ok := sqliteCode(err); ok {
		return code == sqlite3.SQLITE_CONSTRAINT_UNIQUE || code == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY
	}
	return false
}

// IsForeignKeyViolation reports whether err was raised by a foreign key constraint.
func IsForeignKeyViolation(err error) bool {
	if pgErr, ok := asPgError(err); ok {
		return pgErr.Code == pgForeignKeyViolation
	}
	if code, ok := sqliteCode(err); ok {
		return code == sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY
	}
	return false
}

// ViolationMentions reports whether a constraint error names the given column.
// Postgres exposes the constraint name and detail, SQLite only the message
// ("UNIQUE constraint failed: users.email").
func ViolationMentions(err error, column string) bool {
	if pgErr, ok := asPgError(err); ok {
		return strings.Contains(pgErr.ConstraintName, column) || strings.Contains(pgErr.Detail, "("+column+")")
	}
	var sqliteErr *sqlite.Error
	if errors.As(err, &sqliteErr) {
		return strings.Contains(sqliteErr.Error(), "."+column)
	}
	return false
}

func asPgError(err error) (*pgconn.PgError, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr, true
	}
	return nil, false
}

func sqliteCode(err error) (int, bool) {
	var sqliteErr *sqlite.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.Code(), true
	}
	return 0, false
}
