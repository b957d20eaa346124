// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

// Package repository provides data access over sqlx for users and the catalog.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/vinovest/sqlx"

	"codeberg.org/oliverandrich/music-catalog/internal/database"
)

var (
	// ErrNotFound is returned when a record is not found.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when a unique constraint rejects a write.
	ErrDuplicate = errors.New("duplicate record")
	// ErrReference is returned when a referenced parent record does not exist.
	ErrReference = errors.New("referenced record not found")
	// ErrInUse is returned when a record cannot be deleted while others reference it.
	ErrInUse = errors.New("record is still referenced")

	// ErrDuplicateUsername is returned when the username is already registered.
	ErrDuplicateUsername = fmt.Errorf("username: %w", ErrDuplicate)
	// ErrDuplicateEmail is returned when the email is already registered.
	ErrDuplicateEmail = fmt.Errorf("email: %w", ErrDuplicate)
)

// Repository wraps sqlx for database operations.
type Repository struct {
	db *sqlx.DB
}

// New creates a new Repository instance.
func New(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

// DB returns the underlying connection pool.
func (r *Repository) DB() *sqlx.DB {
	return r.db
}

// Ping checks that the database is reachable.
func (r *Repository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// wrapError converts driver errors to repository errors.
func wrapError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, sql.ErrNoRows):
		return ErrNotFound
	case database.IsUniqueViolation(err):
		return fmt.Errorf("%w: %w", ErrDuplicate, err)
	case database.IsForeignKeyViolation(err):
		return fmt.Errorf("%w: %w", ErrReference, err)
	}
	return err
}

// wrapDeleteError maps a foreign key violation on delete to ErrInUse.
func wrapDeleteError(err error) error {
	if database.IsForeignKeyViolation(err) {
		return fmt.Errorf("%w: %w", ErrInUse, err)
	}
	return err
}

// insert runs an INSERT ... RETURNING id statement.
func (r *Repository) insert(ctx context.Context, query string, args ...any) (int64, error) {
	var id int64
	if err := r.db.QueryRowxContext(ctx, r.db.Rebind(query+" RETURNING id"), args...).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

// exists reports whether a row with the given id exists in table.
func (r *Repository) exists(ctx context.Context, table string, id int64) (bool, error) {
	var count int64
	query := r.db.Rebind("SELECT COUNT(*) FROM " + table + " WHERE id = ?")
	if err := r.db.GetContext(ctx, &count, query, id); err != nil {
		return false, err
	}
	return count > 0, nil
}

// execAffected runs a statement and reports whether it touched any row.
func (r *Repository) execAffected(ctx context.Context, query string, args ...any) (bool, error) {
	result, err := r.db.ExecContext(ctx, r.db.Rebind(query), args...)
	if err != nil {
		return false, err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// nullable unwraps an optional field into a driver value.
func nullable[T any](p *T) any {
	if p == nil {
		return nil
	}
	return *p
}
