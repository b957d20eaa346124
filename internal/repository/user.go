// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package repository

import (
	"context"
	"errors"

	"codeberg.org/oliverandrich/music-catalog/internal/database"
	"codeberg.org/oliverandrich/music-catalog/internal/models"
)

const userColumns = "id, username, email, password_hash, created_at, updated_at"

// CreateUser stores a new account. Duplicate usernames and emails are
// reported as ErrDuplicateUsername and ErrDuplicateEmail.
func (r *Repository) CreateUser(ctx context.Context, username, email, passwordHash string) (*models.User, error) {
	id, err := r.insert(ctx,
		"INSERT INTO users (username, email, password_hash) VALUES (?, ?, ?)",
		username, email, passwordHash)
	if err != nil {
		return nil, wrapUserError(err)
	}
	return r.GetUserByID(ctx, id)
}

func wrapUserError(err error) error {
	if !database.IsUniqueViolation(err) {
		return wrapError(err)
	}
	switch {
	case database.ViolationMentions(err, "email"):
		return errors.Join(ErrDuplicateEmail, err)
	case database.ViolationMentions(err, "username"):
		return errors.Join(ErrDuplicateUsername, err)
	}
	return wrapError(err)
}

// GetUserByID retrieves a user by ID.
func (r *Repository) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	return r.getUser(ctx, "id", id)
}

// GetUserByEmail retrieves a user by email address.
func (r *Repository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.getUser(ctx, "email", email)
}

// GetUserByUsername retrieves a user by username.
func (r *Repository) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.getUser(ctx, "username", username)
}

func (r *Repository) getUser(ctx context.Context, column string, value any) (*models.User, error) {
	var user models.User
	query := r.db.Rebind("SELECT " + userColumns + " FROM users WHERE " + column + " = ?")
	if err := r.db.GetContext(ctx, &user, query, value); err != nil {
		return nil, wrapError(err)
	}
	return &user, nil
}
