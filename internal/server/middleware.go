// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package server

import (
	"fmt"
	"net/http"

	"codeberg.org/oliverandrich/music-catalog/internal/config"
	"codeberg.org/oliverandrich/music-catalog/internal/middleware"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

// eventsPath is excluded from compression so events reach clients unbuffered.
const eventsPath = "/api/events"

func setupMiddleware(e *echo.Echo, cfg *config.Config) {
	e.Pre(echomw.RemoveTrailingSlash())

	e.Use(echomw.Recover())
	e.Use(echomw.RequestIDWithConfig(echomw.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(middleware.RequestLogger())
	e.Use(echomw.Secure())
	e.Use(echomw.GzipWithConfig(echomw.GzipConfig{
		Skipper: func(c echo.Context) bool {
			return c.Request().URL.Path == eventsPath
		},
	}))
	e.Use(echomw.BodyLimit(bodyLimit(cfg.Server.MaxBodySize)))
	e.Use(corsMiddleware(cfg))
	e.Use(middleware.Locale())
}

// corsMiddleware lets the configured browser origins call the API.
func corsMiddleware(cfg *config.Config) echo.MiddlewareFunc {
	return echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.Server.CORSOrigins,
		AllowMethods: []string{
			http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions,
		},
		AllowHeaders: []string{
			echo.HeaderContentType,
			echo.HeaderAuthorization,
			"Accept-Language",
			cfg.Auth.TokenHeader,
		},
		ExposeHeaders: []string{echo.HeaderXRequestID},
	})
}

func bodyLimit(mb int) string {
	if mb <= 0 {
		mb = 1
	}
	return fmt.Sprintf("%dM", mb)
}
