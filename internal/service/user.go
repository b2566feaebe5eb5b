package service

import (
	"context"

	"github.com/aliskhannn/dark-horizons-bot/internal/domain/entities"
)

type UserService struct {
	repository UserRepository
}

func NewUserService(repository UserRepository) *UserService {
	return &UserService{repository: repository}
}

// EnsureUser records the user on first contact.
func (s *UserService) EnsureUser(ctx context.Context, userID, chatID int64) (bool, error) {
	exists, err := s.repository.Exists(ctx, userID)
	if err != nil {
		return false, err
	}
	if exists {
		return false, nil
	}

	return s.repository.Save(ctx, entities.NewUser(userID, chatID))
}
