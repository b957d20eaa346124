// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package repository_test

import (
	"context"
	"testing"

	"codeberg.org/oliverandrich/music-catalog/internal/repository"
	"codeberg.org/oliverandrich/music-catalog/internal/testutil"
	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	db, repo := testutil.NewTestDB(t)

	assert.NotNil(t, repo)
	assert.Same(t, db, repo.DB())
}

func TestPing(t *testing.T) {
	_, repo := testutil.NewTestDB(t)

	assert.NoError(t, repo.Ping(context.Background()))
}

func TestDuplicateErrors(t *testing.T) {
	assert.ErrorIs(t, repository.ErrDuplicateEmail, repository.ErrDuplicate)
	assert.ErrorIs(t, repository.ErrDuplicateUsername, repository.ErrDuplicate)
	assert.NotErrorIs(t, repository.ErrDuplicateEmail, repository.ErrDuplicateUsername)
}
