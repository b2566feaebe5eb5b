package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/aliskhannn/dark-horizons-bot/internal/domain/entities"
	"github.com/aliskhannn/dark-horizons-bot/internal/infra/postgres"
)

// ResultRepository provides access to completed quiz results in the database.
type ResultRepository struct {
	db postgres.DBTX
}

// NewResultRepository creates a new ResultRepository with the provided database pool.
func NewResultRepository(db postgres.DBTX) *ResultRepository {
	return &ResultRepository{db: db}
}

// Save inserts a completed quiz result. Saving the same result twice is a no-op.
func (r *ResultRepository) Save(ctx context.Context, result *entities.QuizResult) error {
	query := `
		INSERT INTO quiz_results (id, user_id, topic, score, total, completed_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO NOTHING
	`

	_, err := r.db.Exec(ctx, query,
		result.ID,
		result.UserID,
		result.Topic,
		result.Score,
		result.Total,
		result.CompletedAt,
	)
	if err != nil {
		return fmt.Errorf("save quiz result: %w", err)
	}

	return nil
}

// BestByTopic returns the best result of the user for every topic, ordered by topic.
// Ties go to the earliest attempt.
func (r *ResultRepository) BestByTopic(ctx context.Context, userID int64) ([]*entities.QuizResult, error) {
	query := `
		SELECT DISTINCT ON (topic) id, user_id, topic, score, total, completed_at
		FROM quiz_results
		WHERE user_id = $1
		ORDER BY topic, score::float8 / total DESC, completed_at ASC
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("query best results: %w", err)
	}

	results, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*entities.QuizResult, error) {
		var res entities.QuizResult
		err := row.Scan(
			&res.ID,
			&res.UserID,
			&res.Topic,
			&res.Score,
			&res.Total,
			&res.CompletedAt,
		)
		return &res, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan best results: %w", err)
	}

	return results, nil
}
