package storage

import (
	"context"
	"sync"

	"github.com/aliskhannn/dark-horizons-bot/internal/domain/entities"
)

// UserStorage keeps known users in memory. It is used when no database is configured.
type UserStorage struct {
	mu    sync.RWMutex
	users map[int64]entities.User
}

// NewUserStorage creates a new UserStorage.
func NewUserStorage() *UserStorage {
	return &UserStorage{
		users: make(map[int64]entities.User),
	}
}

// Save inserts a new user or updates the chat of an existing one.
func (s *UserStorage) Save(_ context.Context, user *entities.User) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.users[user.ID]
	if ok {
		existing.ChatID = user.ChatID
		s.users[user.ID] = existing
		return false, nil
	}

	s.users[user.ID] = *user
	return true, nil
}

// Exists checks if a user with the given ID is known.
func (s *UserStorage) Exists(_ context.Context, userID int64) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.users[userID]
	return ok, nil
}
