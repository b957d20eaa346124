// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package auth

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// MinPasswordLength is the shortest password accepted at registration.
const MinPasswordLength = 6

// maxPasswordBytes is the bcrypt input limit.
const maxPasswordBytes = 72

var (
	ErrHashing         = errors.New("failed to hash password")
	ErrWeakPassword    = errors.New("password is too short")
	ErrPasswordTooLong = errors.New("password is too long")
)

// Hasher hashes and verifies passwords with bcrypt.
type Hasher struct {
	dummyHash []byte
	cost      int
}

// NewHasher returns a Hasher using cost, clamped to the range bcrypt accepts.
func NewHasher(cost int) *Hasher {
	cost = min(max(cost, bcrypt.MinCost), bcrypt.MaxCost)

	// dummyHash keeps logins for unknown accounts as slow as real ones
	dummy, err := bcrypt.GenerateFromPassword([]byte("dummy-password-for-timing"), cost)
	if err != nil {
		panic(fmt.Sprintf("auth: generate dummy hash: %v", err))
	}

	return &Hasher{cost: cost, dummyHash: dummy}
}

// Cost returns the bcrypt work factor.
func (h *Hasher) Cost() int {
	return h.cost
}

// Hash returns the bcrypt hash of password.
func (h *Hasher) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrHashing, err)
	}
	return string(hash), nil
}

// Verify reports whether password matches hash.
func (h *Hasher) Verify(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// burn performs one comparison against the dummy hash.
func (h *Hasher) burn(password string) {
	_ = bcrypt.CompareHashAndPassword(h.dummyHash, []byte(password))
}

// ValidatePassword checks the registration rules for a password.
func ValidatePassword(password string) error {
	if len(password) < MinPasswordLength {
		return ErrWeakPassword
	}
	if len(password) > maxPasswordBytes {
		return ErrPasswordTooLong
	}
	return nil
}
