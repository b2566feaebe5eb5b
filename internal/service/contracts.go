package service

import (
	"context"

	"github.com/aliskhannn/dark-horizons-bot/internal/domain/entities"
)

type CatalogRepository interface {
	Topics() []string
	Questions(topic string) ([]entities.Question, error)
}

// SessionStore owns quiz sessions. Operations on the same key are serialized;
// Update writes back the mutated session and deletes it when fn reports done.
type SessionStore interface {
	Get(key entities.SessionKey) (entities.QuizSession, error)
	Create(key entities.SessionKey) (entities.QuizSession, error)
	Update(key entities.SessionKey, fn func(session *entities.QuizSession) (done bool, err error)) error
	Remove(key entities.SessionKey)
}

type UserRepository interface {
	Save(ctx context.Context, user *entities.User) (bool, error)
	Exists(ctx context.Context, userID int64) (bool, error)
}

type ResultRepository interface {
	Save(ctx context.Context, result *entities.QuizResult) error
	BestByTopic(ctx context.Context, userID int64) ([]*entities.QuizResult, error)
}
