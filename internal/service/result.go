package service

import (
	"context"
	"fmt"

	"github.com/aliskhannn/dark-horizons-bot/internal/domain/entities"
)

// ResultService keeps the history of completed quizzes.
type ResultService struct {
	repository ResultRepository
}

func NewResultService(repository ResultRepository) *ResultService {
	return &ResultService{repository: repository}
}

// Record stores a completed quiz of the user.
func (s *ResultService) Record(ctx context.Context, userID int64, summary *entities.CompletionSummary) error {
	if summary == nil {
		return fmt.Errorf("%w: nil summary", ErrInvalidInput)
	}

	if err := s.repository.Save(ctx, entities.NewQuizResult(userID, summary)); err != nil {
		return fmt.Errorf("save result: %w", err)
	}
	return nil
}

// Best returns the best result of the user for each topic they have finished.
func (s *ResultService) Best(ctx context.Context, userID int64) ([]*entities.QuizResult, error) {
	results, err := s.repository.BestByTopic(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get best results: %w", err)
	}
	return results, nil
}
