package repository

import (
	"context"
	"errors"

	"todolist-service/internal/entity"
)

// ErrUserNotFound is returned by a UserStore for unknown usernames.
var ErrUserNotFound = errors.New("user not found")

// UserStore looks up credentials by username. The auth service depends on this
// interface so the static map below can later be swapped for a real user table
// without touching callers.
type UserStore interface {
	GetUserByUsername(ctx context.Context, username string) (*entity.UserCredential, error)
}

// StaticUserStore holds a fixed set of users, populated once at construction
// and read-only afterwards. There is no registration flow.
type StaticUserStore struct {
	users map[string]entity.UserCredential
}

func NewStaticUserStore(users ...entity.UserCredential) *StaticUserStore {
	m := make(map[string]entity.UserCredential, len(users))
	for _, u := range users {
		m[u.Username] = u
	}
	return &StaticUserStore{users: m}
}

func (s *StaticUserStore) GetUserByUsername(ctx context.Context, username string) (*entity.UserCredential, error) {
	user, ok := s.users[username]
	if !ok {
		return nil, ErrUserNotFound
	}
	return &user, nil
}
