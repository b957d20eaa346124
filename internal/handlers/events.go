// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package handlers

import (
	"net/http"
	"time"

	"codeberg.org/oliverandrich/music-catalog/internal/auth"
	"codeberg.org/oliverandrich/music-catalog/internal/sse"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// heartbeatInterval keeps idle streams open through proxies.
const heartbeatInterval = 30 * time.Second

// Events streams catalog changes as Server-Sent Events.
func (h *Handlers) Events(c echo.Context) error {
	ctx := c.Request().Context()

	identity, ok := auth.GetIdentity(ctx)
	if !ok {
		return message(c, http.StatusUnauthorized, "auth_missing_token")
	}
	if h.hub == nil {
		return serverError(c, "events_unavailable", errNoHub)
	}

	w := c.Response()
	w.Header().Set(echo.HeaderContentType, "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no") // Disable nginx buffering
	w.WriteHeader(http.StatusOK)

	connID := w.Header().Get(echo.HeaderXRequestID)
	if connID == "" {
		connID = uuid.NewString()
	}

	ch := h.hub.Register(connID, identity.ID)
	defer h.hub.Unregister(identity.ID, ch)

	if _, err := w.Write([]byte(sse.FormatEvent("connected", "ok"))); err != nil {
		return nil
	}
	w.Flush()

	ticker := time.NewTicker(heartbeatInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-h.hub.Done():
			return nil
		case <-ticker.C:
			if _, err := w.Write([]byte(sse.Heartbeat)); err != nil {
				return nil // Client disconnected
			}
			w.Flush()
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			if _, err := w.Write([]byte(msg)); err != nil {
				return nil
			}
			w.Flush()
		}
	}
}
