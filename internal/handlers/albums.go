// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package handlers

import (
	"net/http"
	"strings"
	"time"

	"codeberg.org/oliverandrich/music-catalog/internal/models"
	"codeberg.org/oliverandrich/music-catalog/internal/sse"
	"github.com/labstack/echo/v4"
)

// AlbumRequest is the request body for creating or updating an album.
type AlbumRequest struct {
	ReleaseDate   *string      `json:"release_date"`
	CoverImageURL *string      `json:"cover_image_url"`
	Title         string       `json:"title"`
	ArtistID      models.RefID `json:"artist_id"`
}

func (req AlbumRequest) params() (models.AlbumParams, string) {
	title := strings.TrimSpace(req.Title)
	if title == "" || req.ArtistID <= 0 {
		return models.AlbumParams{}, "album_required"
	}

	releaseDate, ok := normalizeReleaseDate(optional(req.ReleaseDate))
	if !ok {
		return models.AlbumParams{}, "album_invalid_release_date"
	}

	return models.AlbumParams{
		Title:         title,
		ArtistID:      req.ArtistID.Int64(),
		ReleaseDate:   releaseDate,
		CoverImageURL: optional(req.CoverImageURL),
	}, ""
}

// normalizeReleaseDate accepts YYYY-MM-DD or an RFC 3339 timestamp and returns YYYY-MM-DD.
func normalizeReleaseDate(s *string) (*string, bool) {
	if s == nil {
		return nil, true
	}
	if _, err := time.Parse(models.ReleaseDateLayout, *s); err == nil {
		return s, true
	}
	if t, err := time.Parse(time.RFC3339, *s); err == nil {
		date := t.Format(models.ReleaseDateLayout)
		return &date, true
	}
	return nil, false
}

// CreateAlbum adds an album to an existing artist.
func (h *Handlers) CreateAlbum(c echo.Context) error {
	var req AlbumRequest
	if err := c.Bind(&req); err != nil {
		return message(c, http.StatusBadRequest, "request_invalid_body")
	}
	p, invalid := req.params()
	if invalid != "" {
		return message(c, http.StatusBadRequest, invalid)
	}

	album, err := h.repo.CreateAlbum(c.Request().Context(), p)
	if err != nil {
		return repositoryError(c, "create_album_failed", err, albumMessages)
	}

	h.publish(sse.EntityAlbum, sse.ActionCreated, album.ID)
	return c.JSON(http.StatusCreated, album)
}

// ListAlbums returns all albums, or those of ?artist_id.
func (h *Handlers) ListAlbums(c echo.Context) error {
	artistID, err := queryID(c, "artist_id")
	if err != nil {
		return message(c, http.StatusBadRequest, "request_invalid_id")
	}

	albums, err := h.repo.ListAlbums(c.Request().Context(), artistID)
	if err != nil {
		return serverError(c, "list_albums_failed", err)
	}
	return c.JSON(http.StatusOK, albums)
}

// GetAlbum returns one album.
func (h *Handlers) GetAlbum(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return message(c, http.StatusBadRequest, "request_invalid_id")
	}

	album, err := h.repo.GetAlbumByID(c.Request().Context(), id)
	if err != nil {
		return repositoryError(c, "get_album_failed", err, albumMessages)
	}
	return c.JSON(http.StatusOK, album)
}

// UpdateAlbum replaces an album's fields.
func (h *Handlers) UpdateAlbum(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return message(c, http.StatusBadRequest, "request_invalid_id")
	}

	var req AlbumRequest
	if err := c.Bind(&req); err != nil {
		return message(c, http.StatusBadRequest, "request_invalid_body")
	}
	p, invalid := req.params()
	if invalid != "" {
		return message(c, http.StatusBadRequest, invalid)
	}

	album, err := h.repo.UpdateAlbum(c.Request().Context(), id, p)
	if err != nil {
		return repositoryError(c, "update_album_failed", err, albumMessages)
	}

	h.publish(sse.EntityAlbum, sse.ActionUpdated, album.ID)
	return c.JSON(http.StatusOK, album)
}

// DeleteAlbum removes an album without songs.
func (h *Handlers) DeleteAlbum(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return message(c, http.StatusBadRequest, "request_invalid_id")
	}

	deleted, err := h.repo.DeleteAlbum(c.Request().Context(), id)
	if err != nil {
		return repositoryError(c, "delete_album_failed", err, albumMessages)
	}
	if !deleted {
		return message(c, http.StatusNotFound, "album_not_found")
	}

	h.publish(sse.EntityAlbum, sse.ActionDeleted, id)
	return message(c, http.StatusOK, "album_deleted")
}
