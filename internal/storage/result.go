package storage

import (
	"context"
	"sort"
	"sync"

	"github.com/aliskhannn/dark-horizons-bot/internal/domain/entities"
)

// ResultStorage keeps completed quiz results in memory. It is used when no
// database is configured.
type ResultStorage struct {
	mu      sync.RWMutex
	results map[int64][]entities.QuizResult
}

// NewResultStorage creates a new ResultStorage.
func NewResultStorage() *ResultStorage {
	return &ResultStorage{
		results: make(map[int64][]entities.QuizResult),
	}
}

// Save appends a result to the user's history.
func (s *ResultStorage) Save(_ context.Context, result *entities.QuizResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.results[result.UserID] = append(s.results[result.UserID], *result)
	return nil
}

// BestByTopic returns the best result of the user for every topic they finished,
// ordered by topic name.
func (s *ResultStorage) BestByTopic(_ context.Context, userID int64) ([]*entities.QuizResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	best := make(map[string]*entities.QuizResult)
	for i := range s.results[userID] {
		r := &s.results[userID][i]
		if cur, ok := best[r.Topic]; !ok || r.Better(cur) {
			c := *r
			best[r.Topic] = &c
		}
	}

	out := make([]*entities.QuizResult, 0, len(best))
	for _, r := range best {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Topic < out[j].Topic })

	return out, nil
}
