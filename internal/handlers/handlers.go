// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

// Package handlers implements the JSON API.
package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"codeberg.org/oliverandrich/music-catalog/internal/repository"
	authsvc "codeberg.org/oliverandrich/music-catalog/internal/services/auth"
	"codeberg.org/oliverandrich/music-catalog/internal/sse"
	"github.com/labstack/echo/v4"
)

// healthTimeout bounds the database ping of the health check.
const healthTimeout = 2 * time.Second

// Handlers contains all HTTP handlers.
type Handlers struct {
	repo *repository.Repository
	auth *authsvc.Service
	hub  *sse.Hub
}

// New creates a new Handlers instance. hub may be nil, which disables catalog events.
func New(repo *repository.Repository, auth *authsvc.Service, hub *sse.Hub) *Handlers {
	return &Handlers{repo: repo, auth: auth, hub: hub}
}

// Health reports whether the service and its database are reachable.
func (h *Handlers) Health(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), healthTimeout)
	defer cancel()

	if err := h.repo.Ping(ctx); err != nil {
		slog.Error("health_check_failed", "error", err)
		return c.JSON(http.StatusServiceUnavailable, map[string]string{
			"status":   "unavailable",
			"database": "error",
		})
	}

	return c.JSON(http.StatusOK, map[string]string{
		"status":   "ok",
		"database": "ok",
	})
}

// publish announces a catalog change to open event streams.
func (h *Handlers) publish(entity, action string, id int64) {
	if h.hub == nil {
		return
	}
	h.hub.Publish(entity, action, id)
}
