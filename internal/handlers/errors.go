// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"codeberg.org/oliverandrich/music-catalog/internal/i18n"
	"codeberg.org/oliverandrich/music-catalog/internal/repository"
	"github.com/labstack/echo/v4"
)

var (
	// errInvalidID is returned for path or query ids that are not positive integers.
	errInvalidID = errors.New("invalid id")
	errNoHub     = errors.New("event hub not configured")
)

// entityMessages names the translation keys used when a repository call fails.
type entityMessages struct {
	notFound       string
	duplicate      string
	inUse          string
	parentNotFound string
}

var (
	artistMessages = entityMessages{
		notFound:  "artist_not_found",
		duplicate: "artist_duplicate",
		inUse:     "artist_in_use",
	}
	albumMessages = entityMessages{
		notFound:       "album_not_found",
		duplicate:      "album_duplicate",
		inUse:          "album_in_use",
		parentNotFound: "artist_not_found",
	}
	songMessages = entityMessages{
		notFound:       "song_not_found",
		duplicate:      "song_duplicate",
		parentNotFound: "album_not_found",
	}
)

// message writes a localized {"message": ...} body.
func message(c echo.Context, status int, key string) error {
	return c.JSON(status, map[string]string{
		"message": i18n.T(c.Request().Context(), key),
	})
}

// serverError logs err and answers with a generic 500.
func serverError(c echo.Context, event string, err error) error {
	slog.Error(event, "error", err, "path", c.Request().URL.Path)
	return message(c, http.StatusInternalServerError, "server_error")
}

// repositoryError maps repository errors to status codes and messages.
func repositoryError(c echo.Context, event string, err error, msgs entityMessages) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return message(c, http.StatusNotFound, msgs.notFound)
	case errors.Is(err, repository.ErrReference) && msgs.parentNotFound != "":
		return message(c, http.StatusNotFound, msgs.parentNotFound)
	case errors.Is(err, repository.ErrDuplicate):
		return message(c, http.StatusConflict, msgs.duplicate)
	case errors.Is(err, repository.ErrInUse) && msgs.inUse != "":
		return message(c, http.StatusConflict, msgs.inUse)
	}
	return serverError(c, event, err)
}

// pathID parses the :id route parameter.
func pathID(c echo.Context) (int64, error) {
	return parseID(c.Param("id"))
}

// queryID parses an optional numeric query parameter.
func queryID(c echo.Context, name string) (*int64, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil, nil
	}
	id, err := parseID(raw)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, errInvalidID
	}
	return id, nil
}

// optional turns blank strings into nil.
func optional(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
