package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aliskhannn/dark-horizons-bot/internal/domain/entities"
	"github.com/aliskhannn/dark-horizons-bot/internal/storage"
)

func TestResultService(t *testing.T) {
	ctx := context.Background()
	s := NewResultService(storage.NewResultStorage())

	record := func(topic string, score, total int) {
		t.Helper()
		require.NoError(t, s.Record(ctx, testUserID, &entities.CompletionSummary{
			SessionID:   uuid.New(),
			Topic:       topic,
			Score:       score,
			Total:       total,
			CompletedAt: time.Now(),
		}))
	}

	record("B", 1, 3)
	record("A", 2, 2)
	record("B", 2, 3)
	record("B", 1, 3)

	best, err := s.Best(ctx, testUserID)
	require.NoError(t, err)
	require.Len(t, best, 2)
	assert.Equal(t, "A", best[0].Topic)
	assert.Equal(t, 2, best[0].Score)
	assert.Equal(t, "B", best[1].Topic)
	assert.Equal(t, 2, best[1].Score)

	best, err = s.Best(ctx, testUserID+1)
	require.NoError(t, err)
	assert.Empty(t, best)

	require.ErrorIs(t, s.Record(ctx, testUserID, nil), ErrInvalidInput)
}

func TestUserService_EnsureUser(t *testing.T) {
	ctx := context.Background()
	s := NewUserService(storage.NewUserStorage())

	created, err := s.EnsureUser(ctx, testUserID, 100)
	require.NoError(t, err)
	assert.True(t, created)

	created, err = s.EnsureUser(ctx, testUserID, 100)
	require.NoError(t, err)
	assert.False(t, created)
}
