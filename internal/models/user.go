// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package models

import (
	"time"
)

// User is a registered account. The password hash never leaves the server.
type User struct {
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
	Username     string    `db:"username" json:"username"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	ID           int64     `db:"id" json:"id"`
}

// Identity returns the token identity of the user.
func (u *User) Identity() Identity {
	return Identity{ID: u.ID, Email: u.Email}
}

// Identity is the user reference carried inside an auth token.
type Identity struct {
	Email string `json:"email"`
	ID    int64  `json:"id"`
}
