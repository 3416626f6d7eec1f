package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errs "github.com/julienbrg/game-of-go/internal/errors"
	repo "github.com/julienbrg/game-of-go/internal/repository"
)

func newTestHandler() *AuthUsecaseHandler {
	return NewUserUsecaseHandler(repo.NewMapUserStorage(), repo.NewSessionMapStorage())
}

func TestRegisterAndLogin(t *testing.T) {
	h := newTestHandler()

	sessionID, err := h.RegisterUser("alice", "alice@example.com", "pass123")
	require.NoError(t, err)
	require.NotEmpty(t, sessionID)

	ok, usr := h.CheckAuthorized(sessionID)
	require.True(t, ok)
	assert.Equal(t, "alice", usr.Username)

	_, err = h.RegisterUser("alice", "other@example.com", "whatever")
	assert.ErrorIs(t, err, errs.ErrUserExists)

	loginSession, err := h.LoginUser("alice", "pass123")
	require.NoError(t, err)
	assert.NotEmpty(t, loginSession)
}

func TestLoginFailures(t *testing.T) {
	h := newTestHandler()
	_, err := h.RegisterUser("alice", "alice@example.com", "pass123")
	require.NoError(t, err)

	_, err = h.LoginUser("nobody", "pass123")
	assert.ErrorIs(t, err, errs.ErrUserNotFound)

	_, err = h.LoginUser("alice", "wrong")
	assert.ErrorIs(t, err, errs.ErrWrongPassword)
}

func TestLogout(t *testing.T) {
	h := newTestHandler()
	sessionID, err := h.RegisterUser("alice", "alice@example.com", "pass123")
	require.NoError(t, err)

	require.NoError(t, h.LogoutUser(sessionID))

	ok, _ := h.CheckAuthorized(sessionID)
	assert.False(t, ok)

	assert.ErrorIs(t, h.LogoutUser(sessionID), errs.ErrSessionNotFound)
}
