// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package repository_test

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vinovest/sqlx"

	"codeberg.org/oliverandrich/music-catalog/internal/models"
	"codeberg.org/oliverandrich/music-catalog/internal/repository"
)

// newPostgresMock returns a repository whose statements are rebound for Postgres.
func newPostgresMock(t *testing.T) (*repository.Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = db.Close()
	})
	return repository.New(sqlx.NewDb(db, "pgx")), mock
}

func TestPostgres_CreateUser_DuplicateEmail(t *testing.T) {
	repo, mock := newPostgresMock(t)

	mock.ExpectQuery(`INSERT INTO users \(username, email, password_hash\) VALUES \(\$1, \$2, \$3\) RETURNING id`).
		WithArgs("alice", "alice@example.com", "hash").
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"})

	_, err := repo.CreateUser(context.Background(), "alice", "alice@example.com", "hash")

	assert.ErrorIs(t, err, repository.ErrDuplicateEmail)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_CreateUser_DuplicateUsername(t *testing.T) {
	repo, mock := newPostgresMock(t)

	mock.ExpectQuery(`INSERT INTO users`).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_username_key"})

	_, err := repo.CreateUser(context.Background(), "alice", "alice@example.com", "hash")

	assert.ErrorIs(t, err, repository.ErrDuplicateUsername)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_CreateArtist_Duplicate(t *testing.T) {
	repo, mock := newPostgresMock(t)

	mock.ExpectQuery(`INSERT INTO artists`).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "artists_name_key"})

	_, err := repo.CreateArtist(context.Background(), models.ArtistParams{Name: "Pink Floyd"})

	assert.ErrorIs(t, err, repository.ErrDuplicate)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_CreateAlbum_ForeignKeyBackstop(t *testing.T) {
	repo, mock := newPostgresMock(t)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM artists WHERE id = \$1`).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(`INSERT INTO albums`).
		WillReturnError(&pgconn.PgError{Code: "23503", ConstraintName: "albums_artist_id_fkey"})

	_, err := repo.CreateAlbum(context.Background(), models.AlbumParams{Title: "The Wall", ArtistID: 1})

	assert.ErrorIs(t, err, repository.ErrReference)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_CreateAlbum_MissingArtist(t *testing.T) {
	repo, mock := newPostgresMock(t)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM artists WHERE id = \$1`).
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	_, err := repo.CreateAlbum(context.Background(), models.AlbumParams{Title: "The Wall", ArtistID: 5})

	assert.ErrorIs(t, err, repository.ErrReference)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_DeleteArtist_InUse(t *testing.T) {
	repo, mock := newPostgresMock(t)

	mock.ExpectExec(`DELETE FROM artists WHERE id = \$1`).
		WithArgs(int64(1)).
		WillReturnError(&pgconn.PgError{Code: "23503", ConstraintName: "albums_artist_id_fkey"})

	deleted, err := repo.DeleteArtist(context.Background(), 1)

	assert.ErrorIs(t, err, repository.ErrInUse)
	assert.False(t, deleted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_DeleteSong_NoRows(t *testing.T) {
	repo, mock := newPostgresMock(t)

	mock.ExpectExec(`DELETE FROM songs WHERE id = \$1`).
		WithArgs(int64(9)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	deleted, err := repo.DeleteSong(context.Background(), 9)

	require.NoError(t, err)
	assert.False(t, deleted)
	assert.NoError(t, mock.ExpectationsWereMet())
}
