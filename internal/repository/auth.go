package repo

import (
	"time"

	"github.com/julienbrg/game-of-go/internal/domain/user"
	errs "github.com/julienbrg/game-of-go/internal/errors"
	"github.com/julienbrg/game-of-go/internal/random"
)

// In-memory storages used by tests and local runs without the databases.

type UserMapStorage struct {
	users map[string]user.User
}

func NewMapUserStorage() *UserMapStorage {
	return &UserMapStorage{users: make(map[string]user.User)}
}

func (u *UserMapStorage) CheckExists(username string) bool {
	_, ok := u.GetUser(username)
	return ok
}

func (u *UserMapStorage) GetUser(username string) (user.User, bool) {
	for _, v := range u.users {
		if v.Username == username {
			return v, true
		}
	}
	return user.User{}, false
}

func (u *UserMapStorage) GetUserByID(id string) (user.User, bool) {
	v, ok := u.users[id]
	return v, ok
}

func (u *UserMapStorage) CreateUser(username, email, password string) (user.User, error) {
	if u.CheckExists(username) {
		return user.User{}, errs.ErrUserExists
	}
	salt := random.RandString(16)
	newUser := user.User{
		ID:           random.RandString(24),
		Username:     username,
		Email:        email,
		CreatedAt:    time.Now(),
		PasswordHash: user.HashPassword(password, salt),
		PasswordSalt: salt,
	}
	u.users[newUser.ID] = newUser
	return newUser, nil
}

type SessionMapStorage struct {
	sessions map[string]string
}

func NewSessionMapStorage() *SessionMapStorage {
	return &SessionMapStorage{
		sessions: make(map[string]string),
	}
}

func (u *SessionMapStorage) GetUserIdBySession(sessionID string) (string, bool) {
	v, ok := u.sessions[sessionID]
	return v, ok
}

func (u *SessionMapStorage) StoreSession(sessionID string, userID string) {
	u.sessions[sessionID] = userID
}

func (u *SessionMapStorage) DeleteSession(sessionID string) (ok bool) {
	_, found := u.sessions[sessionID]
	if !found {
		return false
	}
	delete(u.sessions, sessionID)
	return true
}
