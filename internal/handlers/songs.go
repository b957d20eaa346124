// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package handlers

import (
	"net/http"
	"strings"

	"codeberg.org/oliverandrich/music-catalog/internal/models"
	"codeberg.org/oliverandrich/music-catalog/internal/sse"
	"github.com/labstack/echo/v4"
)

// SongRequest is the request body for creating or updating a song.
type SongRequest struct {
	DurationSeconds *int         `json:"duration_seconds"`
	TrackNumber     *int         `json:"track_number"`
	Title           string       `json:"title"`
	AlbumID         models.RefID `json:"album_id"`
}

func (req SongRequest) params() (models.SongParams, string) {
	title := strings.TrimSpace(req.Title)
	if title == "" || req.AlbumID <= 0 {
		return models.SongParams{}, "song_required"
	}
	if (req.DurationSeconds != nil && *req.DurationSeconds <= 0) || (req.TrackNumber != nil && *req.TrackNumber <= 0) {
		return models.SongParams{}, "song_invalid_numbers"
	}

	return models.SongParams{
		Title:           title,
		AlbumID:         req.AlbumID.Int64(),
		DurationSeconds: req.DurationSeconds,
		TrackNumber:     req.TrackNumber,
	}, ""
}

// CreateSong adds a song to an existing album.
func (h *Handlers) CreateSong(c echo.Context) error {
	var req SongRequest
	if err := c.Bind(&req); err != nil {
		return message(c, http.StatusBadRequest, "request_invalid_body")
	}
	p, invalid := req.params()
	if invalid != "" {
		return message(c, http.StatusBadRequest, invalid)
	}

	song, err := h.repo.CreateSong(c.Request().Context(), p)
	if err != nil {
		return repositoryError(c, "create_song_failed", err, songMessages)
	}

	h.publish(sse.EntitySong, sse.ActionCreated, song.ID)
	return c.JSON(http.StatusCreated, song)
}

// ListSongs returns all songs, or those of ?album_id.
func (h *Handlers) ListSongs(c echo.Context) error {
	albumID, err := queryID(c, "album_id")
	if err != nil {
		return message(c, http.StatusBadRequest, "request_invalid_id")
	}

	songs, err := h.repo.ListSongs(c.Request().Context(), albumID)
	if err != nil {
		return serverError(c, "list_songs_failed", err)
	}
	return c.JSON(http.StatusOK, songs)
}

// GetSong returns one song.
func (h *Handlers) GetSong(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return message(c, http.StatusBadRequest, "request_invalid_id")
	}

	song, err := h.repo.GetSongByID(c.Request().Context(), id)
	if err != nil {
		return repositoryError(c, "get_song_failed", err, songMessages)
	}
	return c.JSON(http.StatusOK, song)
}

// UpdateSong replaces a song's fields.
func (h *Handlers) UpdateSong(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return message(c, http.StatusBadRequest, "request_invalid_id")
	}

	var req SongRequest
	if err := c.Bind(&req); err != nil {
		return message(c, http.StatusBadRequest, "request_invalid_body")
	}
	p, invalid := req.params()
	if invalid != "" {
		return message(c, http.StatusBadRequest, invalid)
	}

	song, err := h.repo.UpdateSong(c.Request().Context(), id, p)
	if err != nil {
		return repositoryError(c, "update_song_failed", err, songMessages)
	}

	h.publish(sse.EntitySong, sse.ActionUpdated, song.ID)
	return c.JSON(http.StatusOK, song)
}

// DeleteSong removes a song.
func (h *Handlers) DeleteSong(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return message(c, http.StatusBadRequest, "request_invalid_id")
	}

	deleted, err := h.repo.DeleteSong(c.Request().Context(), id)
	if err != nil {
		return repositoryError(c, "delete_song_failed", err, songMessages)
	}
	if !deleted {
		return message(c, http.StatusNotFound, "song_not_found")
	}

	h.publish(sse.EntitySong, sse.ActionDeleted, id)
	return message(c, http.StatusOK, "song_deleted")
}
