// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package auth_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"codeberg.org/oliverandrich/music-catalog/internal/models"
	"codeberg.org/oliverandrich/music-catalog/internal/services/auth"
	"codeberg.org/oliverandrich/music-catalog/internal/testutil"
)

func newTestService(t *testing.T) *auth.Service {
	t.Helper()
	_, repo := testutil.NewTestDB(t)
	tokens, err := auth.NewTokenIssuer("test-secret", time.Hour)
	require.NoError(t, err)
	return auth.NewService(repo, auth.NewHasher(bcrypt.MinCost), tokens)
}

type recordingMailer struct {
	err   error
	users []*models.User
	langs []string
	mu    sync.Mutex
}

func (m *recordingMailer) SendWelcome(_ context.Context, user *models.User, lang string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users = append(m.users, user)
	m.langs = append(m.langs, lang)
	return m.err
}

func TestRegister(t *testing.T) {
	svc := newTestService(t)

	user, err := svc.Register(context.Background(), auth.RegisterParams{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "secret1",
	})

	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.Equal(t, "alice", user.Username)
	assert.NotEqual(t, "secret1", user.PasswordHash)
}

func TestRegister_Validation(t *testing.T) {
	tests := []struct {
		name     string
		params   auth.RegisterParams
		expected error
	}{
		{"missing username", auth.RegisterParams{Email: "a@x.com", Password: "secret1"}, auth.ErrMissingFields},
		{"missing email", auth.RegisterParams{Username: "a", Password: "secret1"}, auth.ErrMissingFields},
		{"missing password", auth.RegisterParams{Username: "a", Email: "a@x.com"}, auth.ErrMissingFields},
		{"blank username", auth.RegisterParams{Username: "  ", Email: "a@x.com", Password: "secret1"}, auth.ErrMissingFields},
		{"invalid email", auth.RegisterParams{Username: "a", Email: "not-an-email", Password: "secret1"}, auth.ErrInvalidEmail},
		{"short password", auth.RegisterParams{Username: "a", Email: "a@x.com", Password: "12345"}, auth.ErrWeakPassword},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestService(t)
			_, err := svc.Register(context.Background(), tt.params)
			assert.ErrorIs(t, err, tt.expected)
		})
	}
}

func TestRegister_Duplicates(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, auth.RegisterParams{Username: "alice", Email: "alice@example.com", Password: "secret1"})
	require.NoError(t, err)

	_, err = svc.Register(ctx, auth.RegisterParams{Username: "alice", Email: "other@example.com", Password: "secret1"})
	assert.ErrorIs(t, err, auth.ErrUsernameTaken)

	_, err = svc.Register(ctx, auth.RegisterParams{Username: "bob", Email: "alice@example.com", Password: "secret1"})
	assert.ErrorIs(t, err, auth.ErrEmailTaken)
}

func TestRegister_SendsWelcomeMail(t *testing.T) {
	svc := newTestService(t)
	mailer := &recordingMailer{}
	svc.SetMailer(mailer)

	user, err := svc.Register(context.Background(), auth.RegisterParams{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "secret1",
		Lang:     "en",
	})
	require.NoError(t, err)

	svc.Wait()

	mailer.mu.Lock()
	defer mailer.mu.Unlock()
	require.Len(t, mailer.users, 1)
	assert.Equal(t, user.ID, mailer.users[0].ID)
	assert.Equal(t, "en", mailer.langs[0])
}

func TestRegister_MailFailureDoesNotFailRegistration(t *testing.T) {
	svc := newTestService(t)
	svc.SetMailer(&recordingMailer{err: errors.New("smtp down")})

	_, err := svc.Register(context.Background(), auth.RegisterParams{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "secret1",
	})
	svc.Wait()

	assert.NoError(t, err)
}

func TestLogin_ByEmail(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	registered, err := svc.Register(ctx, auth.RegisterParams{Username: "alice", Email: "alice@example.com", Password: "secret1"})
	require.NoError(t, err)

	result, err := svc.Login(ctx, auth.LoginParams{Email: "alice@example.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, registered.ID, result.User.ID)
	assert.NotEmpty(t, result.Token)

	identity, err := svc.Tokens().Verify(result.Token)
	require.NoError(t, err)
	assert.Equal(t, models.Identity{ID: registered.ID, Email: "alice@example.com"}, identity)
}

func TestLogin_ByUsername(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, auth.RegisterParams{Username: "alice", Email: "alice@example.com", Password: "secret1"})
	require.NoError(t, err)

	result, err := svc.Login(ctx, auth.LoginParams{Username: "alice", Password: "secret1"})

	require.NoError(t, err)
	assert.Equal(t, "alice", result.User.Username)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, auth.RegisterParams{Username: "alice", Email: "alice@example.com", Password: "secret1"})
	require.NoError(t, err)

	_, err = svc.Login(ctx, auth.LoginParams{Email: "alice@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)

	_, err = svc.Login(ctx, auth.LoginParams{Email: "nobody@example.com", Password: "secret1"})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestLogin_MissingFields(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Login(context.Background(), auth.LoginParams{Password: "secret1"})
	assert.ErrorIs(t, err, auth.ErrMissingFields)

	_, err = svc.Login(context.Background(), auth.LoginParams{Email: "alice@example.com"})
	assert.ErrorIs(t, err, auth.ErrMissingFields)
}
