// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package repository_test

import (
	"context"
	"testing"

	"codeberg.org/oliverandrich/music-catalog/internal/repository"
	"codeberg.org/oliverandrich/music-catalog/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateUser(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	ctx := context.Background()

	user, err := repo.CreateUser(ctx, "alice", "alice@example.com", "hash")

	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, "alice@example.com", user.Email)
	assert.Equal(t, "hash", user.PasswordHash)
	assert.NotZero(t, user.CreatedAt)
}

func TestCreateUser_DuplicateUsername(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	ctx := context.Background()

	_, err := repo.CreateUser(ctx, "alice", "alice@example.com", "hash")
	require.NoError(t, err)

	_, err = repo.CreateUser(ctx, "alice", "other@example.com", "hash")

	assert.ErrorIs(t, err, repository.ErrDuplicateUsername)
	assert.ErrorIs(t, err, repository.ErrDuplicate)
}

func TestCreateUser_DuplicateEmail(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	ctx := context.Background()

	_, err := repo.CreateUser(ctx, "alice", "alice@example.com", "hash")
	require.NoError(t, err)

	_, err = repo.CreateUser(ctx, "bob", "alice@example.com", "hash")

	assert.ErrorIs(t, err, repository.ErrDuplicateEmail)
	assert.NotErrorIs(t, err, repository.ErrDuplicateUsername)
}

func TestGetUserByID(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	ctx := context.Background()

	created := testutil.NewTestUser(t, repo, "alice")

	retrieved, err := repo.GetUserByID(ctx, created.ID)

	require.NoError(t, err)
	assert.Equal(t, created.ID, retrieved.ID)
	assert.Equal(t, created.Username, retrieved.Username)
}

func TestGetUserByID_NotFound(t *testing.T) {
	_, repo := testutil.NewTestDB(t)

	_, err := repo.GetUserByID(context.Background(), 999)

	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestGetUserByEmail(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	ctx := context.Background()

	created := testutil.NewTestUser(t, repo, "alice")

	retrieved, err := repo.GetUserByEmail(ctx, "alice@example.com")

	require.NoError(t, err)
	assert.Equal(t, created.ID, retrieved.ID)
}

func TestGetUserByEmail_NotFound(t *testing.T) {
	_, repo := testutil.NewTestDB(t)

	_, err := repo.GetUserByEmail(context.Background(), "nobody@example.com")

	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestGetUserByUsername(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	ctx := context.Background()

	created := testutil.NewTestUser(t, repo, "alice")

	retrieved, err := repo.GetUserByUsername(ctx, "alice")

	require.NoError(t, err)
	assert.Equal(t, created.ID, retrieved.ID)
}

func TestGetUserByUsername_NotFound(t *testing.T) {
	_, repo := testutil.NewTestDB(t)

	_, err := repo.GetUserByUsername(context.Background(), "nonexistent")

	assert.ErrorIs(t, err, repository.ErrNotFound)
}
