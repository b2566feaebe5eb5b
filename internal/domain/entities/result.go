package entities

import (
	"time"

	"github.com/google/uuid"
)

// QuizResult is a completed quiz attempt kept in the result history.
type QuizResult struct {
	ID          uuid.UUID
	UserID      int64
	Topic       string
	Score       int
	Total       int
	CompletedAt time.Time
}

// NewQuizResult builds a history record from a completion summary.
func NewQuizResult(userID int64, summary *CompletionSummary) *QuizResult {
	return &QuizResult{
		ID:          summary.SessionID,
		UserID:      userID,
		Topic:       summary.Topic,
		Score:       summary.Score,
		Total:       summary.Total,
		CompletedAt: summary.CompletedAt,
	}
}

// Better reports whether r beats other by share of correct answers.
func (r *QuizResult) Better(other *QuizResult) bool {
	if other == nil {
		return true
	}
	// r.Score/r.Total > other.Score/other.Total without floats.
	return r.Score*other.Total > other.Score*r.Total
}
