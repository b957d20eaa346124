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

// ArtistRequest is the request body for creating or updating an artist.
type ArtistRequest struct {
	Bio      *string `json:"bio"`
	ImageURL *string `json:"image_url"`
	Name     string  `json:"name"`
}

func (req ArtistRequest) params() (models.ArtistParams, string) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return models.ArtistParams{}, "artist_name_required"
	}
	return models.ArtistParams{
		Name:     name,
		Bio:      optional(req.Bio),
		ImageURL: optional(req.ImageURL),
	}, ""
}

// CreateArtist adds an artist.
func (h *Handlers) CreateArtist(c echo.Context) error {
	var req ArtistRequest
	if err := c.Bind(&req); err != nil {
		return message(c, http.StatusBadRequest, "request_invalid_body")
	}
	p, invalid := req.params()
	if invalid != "" {
		return message(c, http.StatusBadRequest, invalid)
	}

	artist, err := h.repo.CreateArtist(c.Request().Context(), p)
	if err != nil {
		return repositoryError(c, "create_artist_failed", err, artistMessages)
	}

	h.publish(sse.EntityArtist, sse.ActionCreated, artist.ID)
	return c.JSON(http.StatusCreated, artist)
}

// ListArtists returns all artists.
func (h *Handlers) ListArtists(c echo.Context) error {
	artists, err := h.repo.ListArtists(c.Request().Context())
	if err != nil {
		return serverError(c, "list_artists_failed", err)
	}
	return c.JSON(http.StatusOK, artists)
}

// GetArtist returns one artist.
func (h *Handlers) GetArtist(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return message(c, http.StatusBadRequest, "request_invalid_id")
	}

	artist, err := h.repo.GetArtistByID(c.Request().Context(), id)
	if err != nil {
		return repositoryError(c, "get_artist_failed", err, artistMessages)
	}
	return c.JSON(http.StatusOK, artist)
}

// UpdateArtist replaces an artist's fields.
func (h *Handlers) UpdateArtist(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return message(c, http.StatusBadRequest, "request_invalid_id")
	}

	var req ArtistRequest
	if err := c.Bind(&req); err != nil {
		return message(c, http.StatusBadRequest, "request_invalid_body")
	}
	p, invalid := req.params()
	if invalid != "" {
		return message(c, http.StatusBadRequest, invalid)
	}

	artist, err := h.repo.UpdateArtist(c.Request().Context(), id, p)
	if err != nil {
		return repositoryError(c, "update_artist_failed", err, artistMessages)
	}

	h.publish(sse.EntityArtist, sse.ActionUpdated, artist.ID)
	return c.JSON(http.StatusOK, artist)
}

// DeleteArtist removes an artist without albums.
func (h *Handlers) DeleteArtist(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return message(c, http.StatusBadRequest, "request_invalid_id")
	}

	deleted, err := h.repo.DeleteArtist(c.Request().Context(), id)
	if err != nil {
		return repositoryError(c, "delete_artist_failed", err, artistMessages)
	}
	if !deleted {
		return message(c, http.StatusNotFound, "artist_not_found")
	}

	h.publish(sse.EntityArtist, sse.ActionDeleted, id)
	return message(c, http.StatusOK, "artist_deleted")
}
