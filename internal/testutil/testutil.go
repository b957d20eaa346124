// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

// Package testutil provides test helpers and fixtures.
package testutil

import (
	"context"
	"io"
	"net/http/httptest"
	"testing"

	"codeberg.org/oliverandrich/music-catalog/internal/database"
	"codeberg.org/oliverandrich/music-catalog/internal/models"
	"codeberg.org/oliverandrich/music-catalog/internal/repository"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"github.com/vinovest/sqlx"
)

// NewTestDB creates an in-memory SQLite database for tests.
// Returns both the database connection and the repository for convenience.
func NewTestDB(t *testing.T) (*sqlx.DB, *repository.Repository) {
	t.Helper()
	db, err := database.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = db.Close()
	})
	repo := repository.New(db)
	return db, repo
}

// NewTestUser creates a test user in the database.
func NewTestUser(t *testing.T, repo *repository.Repository, username string) *models.User {
	t.Helper()
	user, err := repo.CreateUser(context.Background(), username, username+"@example.com", "not-a-real-hash")
	require.NoError(t, err)
	return user
}

// NewTestArtist creates a test artist in the database.
func NewTestArtist(t *testing.T, repo *repository.Repository, name string) *models.Artist {
	t.Helper()
	artist, err := repo.CreateArtist(context.Background(), models.ArtistParams{Name: name})
	require.NoError(t, err)
	return artist
}

// NewTestAlbum creates a test album for an artist.
func NewTestAlbum(t *testing.T, repo *repository.Repository, artistID int64, title string) *models.Album {
	t.Helper()
	album, err := repo.CreateAlbum(context.Background(), models.AlbumParams{Title: title, ArtistID: artistID})
	require.NoError(t, err)
	return album
}

// NewTestSong creates a test song for an album.
func NewTestSong(t *testing.T, repo *repository.Repository, albumID int64, title string, track *int) *models.Song {
	t.Helper()
	song, err := repo.CreateSong(context.Background(), models.SongParams{Title: title, AlbumID: albumID, TrackNumber: track})
	require.NoError(t, err)
	return song
}

// NewEchoContext creates an Echo context for handler tests.
func NewEchoContext(e *echo.Echo, method, path string, body io.Reader) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, path, body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	return c, rec
}

// NewEchoContextWithHeaders creates an Echo context with custom headers.
func NewEchoContextWithHeaders(e *echo.Echo, method, path string, body io.Reader, headers map[string]string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, path, body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	return c, rec
}

// IntPtr returns a pointer to v.
func IntPtr(v int) *int {
	return &v
}

// StringPtr returns a pointer to v.
func StringPtr(v string) *string {
	return &v
}
