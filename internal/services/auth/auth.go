// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"
	"sync"
	"time"

	"codeberg.org/oliverandrich/music-catalog/internal/models"
	"codeberg.org/oliverandrich/music-catalog/internal/repository"
)

var (
	ErrMissingFields      = errors.New("missing required fields")
	ErrInvalidEmail       = errors.New("invalid email format")
	ErrUsernameTaken      = errors.New("username already exists")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// welcomeMailTimeout bounds the background welcome mail delivery.
const welcomeMailTimeout = 30 * time.Second

// WelcomeSender delivers the welcome message after registration.
type WelcomeSender interface {
	SendWelcome(ctx context.Context, user *models.User, lang string) error
}

type Service struct {
	repo   *repository.Repository
	hasher *Hasher
	tokens *TokenIssuer
	mailer WelcomeSender
	wg     sync.WaitGroup
}

func NewService(repo *repository.Repository, hasher *Hasher, tokens *TokenIssuer) *Service {
	return &Service{
		repo:   repo,
		hasher: hasher,
		tokens: tokens,
	}
}

// SetMailer enables welcome mails. A nil sender disables them.
func (s *Service) SetMailer(m WelcomeSender) {
	s.mailer = m
}

// Tokens returns the token issuer used for logins.
func (s *Service) Tokens() *TokenIssuer {
	return s.tokens
}

// Wait blocks until background mail deliveries have finished.
func (s *Service) Wait() {
	s.wg.Wait()
}

// RegisterParams holds the parameters for user registration
type RegisterParams struct {
	Username string
	Email    string
	Password string
	Lang     string
}

// Register creates a new user account
func (s *Service) Register(ctx context.Context, params RegisterParams) (*models.User, error) {
	username := strings.TrimSpace(params.Username)
	email := strings.TrimSpace(params.Email)

	if username == "" || email == "" || params.Password == "" {
		return nil, ErrMissingFields
	}
	if !ValidEmail(email) {
		return nil, ErrInvalidEmail
	}
	if err := ValidatePassword(params.Password); err != nil {
		return nil, err
	}

	passwordHash, err := s.hasher.Hash(params.Password)
	if err != nil {
		return nil, err
	}

	user, err := s.repo.CreateUser(ctx, username, email, passwordHash)
	switch {
	case errors.Is(err, repository.ErrDuplicateUsername):
		slog.Info("register_failed", "username", username, "reason", "username_taken")
		return nil, ErrUsernameTaken
	case errors.Is(err, repository.ErrDuplicateEmail):
		slog.Info("register_failed", "email", email, "reason", "email_taken")
		return nil, ErrEmailTaken
	case err != nil:
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	slog.Info("register_success", "user_id", user.ID, "username", user.Username)

	s.sendWelcome(ctx, user, params.Lang)

	return user, nil
}

// sendWelcome delivers the welcome mail in the background. Failures are only logged.
func (s *Service) sendWelcome(ctx context.Context, user *models.User, lang string) {
	if s.mailer == nil {
		return
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		mailCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), welcomeMailTimeout)
		defer cancel()

		if err := s.mailer.SendWelcome(mailCtx, user, lang); err != nil {
			slog.Error("welcome_mail_failed", "user_id", user.ID, "error", err)
			return
		}
		slog.Info("welcome_mail_sent", "user_id", user.ID)
	}()
}

// LoginParams identifies the account by email, or by username when email is empty.
type LoginParams struct {
	Email    string
	Username string
	Password string
}

// LoginResult is returned on successful authentication.
type LoginResult struct {
	User  *models.User
	Token string
}

// Login authenticates a user and issues a token
func (s *Service) Login(ctx context.Context, params LoginParams) (*LoginResult, error) {
	email := strings.TrimSpace(params.Email)
	username := strings.TrimSpace(params.Username)

	if (email == "" && username == "") || params.Password == "" {
		return nil, ErrMissingFields
	}

	var (
		user *models.User
		err  error
	)
	if email != "" {
		user, err = s.repo.GetUserByEmail(ctx, email)
	} else {
		user, err = s.repo.GetUserByUsername(ctx, username)
	}
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.hasher.burn(params.Password)
			slog.Warn("login_failed", "email", email, "username", username, "reason", "user_not_found")
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if !s.hasher.Verify(params.Password, user.PasswordHash) {
		slog.Warn("login_failed", "user_id", user.ID, "reason", "invalid_password")
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.Identity())
	if err != nil {
		return nil, err
	}

	slog.Info("login_success", "user_id", user.ID)
	return &LoginResult{Token: token, User: user}, nil
}

// ValidEmail reports whether s is a bare address of the form local@domain.tld.
func ValidEmail(s string) bool {
	addr, err := mail.ParseAddress(s)
	if err != nil || addr.Address != s {
		return false
	}
	at := strings.LastIndexByte(s, '@')
	domain := s[at+1:]
	dot := strings.LastIndexByte(domain, '.')
	return dot > 0 && dot < len(domain)-1
}
