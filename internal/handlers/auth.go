// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package handlers

import (
	"errors"
	"net/http"

	"codeberg.org/oliverandrich/music-catalog/internal/auth"
	"codeberg.org/oliverandrich/music-catalog/internal/i18n"
	authsvc "codeberg.org/oliverandrich/music-catalog/internal/services/auth"
	"github.com/labstack/echo/v4"
)

// RegisterRequest is the request body for registration.
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register creates a new account.
func (h *Handlers) Register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return message(c, http.StatusBadRequest, "request_invalid_body")
	}

	ctx := c.Request().Context()
	user, err := h.auth.Register(ctx, authsvc.RegisterParams{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		Lang:     i18n.GetLocale(ctx),
	})
	if err != nil {
		return authError(c, "register_error", err)
	}

	return c.JSON(http.StatusCreated, map[string]any{
		"message": i18n.T(ctx, "auth_registered"),
		"user":    user,
	})
}

// LoginRequest is the request body for login. Either email or username identifies the account.
type LoginRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login authenticates a user and returns a token.
func (h *Handlers) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return message(c, http.StatusBadRequest, "request_invalid_body")
	}

	result, err := h.auth.Login(c.Request().Context(), authsvc.LoginParams{
		Email:    req.Email,
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		return authError(c, "login_error", err)
	}

	return c.JSON(http.StatusOK, map[string]any{
		"token": result.Token,
		"user":  result.User,
	})
}

// Me returns the identity of the authenticated caller.
func (h *Handlers) Me(c echo.Context) error {
	identity, ok := auth.GetIdentity(c.Request().Context())
	if !ok {
		return message(c, http.StatusUnauthorized, "auth_missing_token")
	}
	return c.JSON(http.StatusOK, identity)
}

func authError(c echo.Context, event string, err error) error {
	switch {
	case errors.Is(err, authsvc.ErrMissingFields):
		return message(c, http.StatusBadRequest, "auth_fields_required")
	case errors.Is(err, authsvc.ErrInvalidEmail):
		return message(c, http.StatusBadRequest, "auth_invalid_email")
	case errors.Is(err, authsvc.ErrWeakPassword):
		return message(c, http.StatusBadRequest, "auth_weak_password")
	case errors.Is(err, authsvc.ErrPasswordTooLong):
		return message(c, http.StatusBadRequest, "auth_password_too_long")
	case errors.Is(err, authsvc.ErrUsernameTaken):
		return message(c, http.StatusConflict, "auth_username_taken")
	case errors.Is(err, authsvc.ErrEmailTaken):
		return message(c, http.StatusConflict, "auth_email_taken")
	case errors.Is(err, authsvc.ErrInvalidCredentials):
		return message(c, http.StatusBadRequest, "auth_invalid_credentials")
	}
	return serverError(c, event, err)
}
