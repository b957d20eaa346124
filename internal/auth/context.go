// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

// Package auth provides authentication context helpers.
package auth

import (
	"context"

	"codeberg.org/oliverandrich/music-catalog/internal/ctxkeys"
	"codeberg.org/oliverandrich/music-catalog/internal/models"
)

// WithIdentity returns a copy of ctx carrying the authenticated identity.
func WithIdentity(ctx context.Context, identity models.Identity) context.Context {
	return context.WithValue(ctx, ctxkeys.Identity{}, identity)
}

// GetIdentity returns the authenticated identity from the context.
func GetIdentity(ctx context.Context) (models.Identity, bool) {
	identity, ok := ctx.Value(ctxkeys.Identity{}).(models.Identity)
	return identity, ok
}

// IsAuthenticated returns true if the context has an authenticated identity.
func IsAuthenticated(ctx context.Context) bool {
	_, ok := GetIdentity(ctx)
	return ok
}
