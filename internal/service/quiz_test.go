package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"golang.org/x/sync/errgroup"

	"github.com/aliskhannn/dark-horizons-bot/internal/domain/entities"
	"github.com/aliskhannn/dark-horizons-bot/internal/repository"
	"github.com/aliskhannn/dark-horizons-bot/internal/storage"
)

const testUserID int64 = 42

func helperTopics() []entities.Topic {
	return []entities.Topic{
		{
			Name: "General",
			Questions: []entities.Question{
				{Text: "Q1", Options: []string{"a", "b"}, CorrectIndex: 0},
				{Text: "Q2", Options: []string{"c", "d", "e"}, CorrectIndex: 1},
			},
		},
		{
			Name: "Three",
			Questions: []entities.Question{
				{Text: "T1", Options: []string{"x", "y"}, CorrectIndex: 0},
				{Text: "T2", Options: []string{"x", "y"}, CorrectIndex: 0},
				{Text: "T3", Options: []string{"x", "y"}, CorrectIndex: 0},
			},
		},
	}
}

func helperQuizService(t *testing.T, topics ...entities.Topic) *QuizService {
	t.Helper()

	if len(topics) == 0 {
		topics = helperTopics()
	}
	catalog, err := repository.NewCatalogFromTopics(topics)
	require.NoError(t, err)

	return NewQuizService(catalog, storage.NewSessionStore(), zaptest.NewLogger(t))
}

func TestQuizService_ListTopics(t *testing.T) {
	s := helperQuizService(t)
	assert.Equal(t, []string{"General", "Three"}, s.ListTopics(context.Background()))
}

func TestQuizService_Scenario(t *testing.T) {
	ctx := context.Background()
	s := helperQuizService(t)

	q, err := s.StartTopic(ctx, testUserID, "General")
	require.NoError(t, err)
	assert.Equal(t, 0, q.Number)
	assert.Equal(t, 2, q.Total)
	assert.Equal(t, "Q1", q.Text)
	assert.Equal(t, []entities.AnswerOption{{Index: 0, Text: "a"}, {Index: 1, Text: "b"}}, q.Options)

	outcome, err := s.SubmitAnswer(ctx, testUserID, "General", 0)
	require.NoError(t, err)
	assert.Equal(t, entities.AnswerOutcome{Correct: true}, outcome)

	session, err := s.Session(ctx, testUserID, "General")
	require.NoError(t, err)
	assert.Equal(t, 1, session.Score)
	assert.Equal(t, 1, session.CurrentQuestion)

	step, err := s.RenderCurrent(ctx, testUserID, "General")
	require.NoError(t, err)
	require.False(t, step.Completed())
	assert.Equal(t, "Q2", step.Question.Text)
	assert.Equal(t, 1, step.Question.Number)

	outcome, err = s.SubmitAnswer(ctx, testUserID, "General", 0)
	require.NoError(t, err)
	assert.Equal(t, entities.AnswerOutcome{Correct: false, CorrectAnswer: "d"}, outcome)

	session, err = s.Session(ctx, testUserID, "General")
	require.NoError(t, err)
	assert.Equal(t, 1, session.Score)
	assert.Equal(t, 2, session.CurrentQuestion)

	step, err = s.RenderCurrent(ctx, testUserID, "General")
	require.NoError(t, err)
	require.True(t, step.Completed())
	assert.Equal(t, session.ID, step.Summary.SessionID)
	assert.Equal(t, 1, step.Summary.Score)
	assert.Equal(t, 2, step.Summary.Total)
	assert.Equal(t, scoreCategories[4], step.Summary.Category)

	_, err = s.RenderCurrent(ctx, testUserID, "General")
	require.ErrorIs(t, err, ErrSessionNotFound)

	_, err = s.SubmitAnswer(ctx, testUserID, "General", 0)
	require.ErrorIs(t, err, ErrSessionNotFound)

	// A finished topic can be taken again right away.
	q, err = s.StartTopic(ctx, testUserID, "General")
	require.NoError(t, err)
	assert.Equal(t, 0, q.Number)
}

func TestQuizService_StartTopic(t *testing.T) {
	ctx := context.Background()
	s := helperQuizService(t)

	_, err := s.StartTopic(ctx, testUserID, "Missing")
	require.ErrorIs(t, err, ErrUnknownTopic)

	_, err = s.StartTopic(ctx, testUserID, "General")
	require.NoError(t, err)

	_, err = s.SubmitAnswer(ctx, testUserID, "General", 1)
	require.NoError(t, err)

	_, err = s.StartTopic(ctx, testUserID, "General")
	require.ErrorIs(t, err, ErrAlreadyInProgress)

	// The rejected start must not reset progress.
	session, err := s.Session(ctx, testUserID, "General")
	require.NoError(t, err)
	assert.Equal(t, 1, session.CurrentQuestion)

	// Other topics and other users are independent.
	_, err = s.StartTopic(ctx, testUserID, "Three")
	require.NoError(t, err)
	_, err = s.StartTopic(ctx, testUserID+1, "General")
	require.NoError(t, err)
}

func TestQuizService_SubmitAnswer_InvalidIndex(t *testing.T) {
	ctx := context.Background()
	s := helperQuizService(t)

	_, err := s.StartTopic(ctx, testUserID, "General")
	require.NoError(t, err)

	for _, idx := range []int{-1, 2, 100} {
		_, err = s.SubmitAnswer(ctx, testUserID, "General", idx)
		require.ErrorIs(t, err, ErrInvalidAnswerIndex, "index %d", idx)
	}

	for _, raw := range []string{"", "abc", "1.5", "0x1"} {
		_, err = s.SubmitRawAnswer(ctx, testUserID, "General", raw)
		require.ErrorIs(t, err, ErrInvalidAnswerIndex, "raw %q", raw)
	}

	session, err := s.Session(ctx, testUserID, "General")
	require.NoError(t, err)
	assert.Equal(t, 0, session.CurrentQuestion)
	assert.Equal(t, 0, session.Score)

	outcome, err := s.SubmitRawAnswer(ctx, testUserID, "General", " 0 ")
	require.NoError(t, err)
	assert.True(t, outcome.Correct)
}

func TestQuizService_SubmitAnswer_AfterLastQuestion(t *testing.T) {
	ctx := context.Background()
	s := helperQuizService(t)

	_, err := s.StartTopic(ctx, testUserID, "General")
	require.NoError(t, err)
	for i := 0; i < 2; i++ {
		_, err = s.SubmitAnswer(ctx, testUserID, "General", 0)
		require.NoError(t, err)
	}

	_, err = s.SubmitAnswer(ctx, testUserID, "General", 0)
	require.ErrorIs(t, err, ErrInvalidAnswerIndex)

	session, err := s.Session(ctx, testUserID, "General")
	require.NoError(t, err)
	assert.Equal(t, 2, session.CurrentQuestion)
}

func TestQuizService_MissingSession(t *testing.T) {
	ctx := context.Background()
	s := helperQuizService(t)

	_, err := s.RenderCurrent(ctx, testUserID, "General")
	require.ErrorIs(t, err, ErrSessionNotFound)

	_, err = s.SubmitAnswer(ctx, testUserID, "General", 0)
	require.ErrorIs(t, err, ErrSessionNotFound)

	_, err = s.SubmitRawAnswer(ctx, testUserID, "General", "nope")
	require.ErrorIs(t, err, ErrSessionNotFound)

	_, err = s.RenderCurrent(ctx, testUserID, "Missing")
	require.ErrorIs(t, err, ErrUnknownTopic)
}

func TestQuizService_Abandon(t *testing.T) {
	ctx := context.Background()
	s := helperQuizService(t)

	_, err := s.StartTopic(ctx, testUserID, "General")
	require.NoError(t, err)

	require.NoError(t, s.Abandon(ctx, testUserID, "General"))
	require.NoError(t, s.Abandon(ctx, testUserID, "General"))

	_, err = s.RenderCurrent(ctx, testUserID, "General")
	require.ErrorIs(t, err, ErrSessionNotFound)

	require.ErrorIs(t, s.Abandon(ctx, testUserID, "Missing"), ErrUnknownTopic)
}

func TestQuizService_ConcurrentSubmissions(t *testing.T) {
	ctx := context.Background()
	s := helperQuizService(t)

	_, err := s.StartTopic(ctx, testUserID, "Three")
	require.NoError(t, err)

	var g errgroup.Group
	for i := 0; i < 2; i++ {
		g.Go(func() error {
			_, err := s.SubmitAnswer(ctx, testUserID, "Three", 0)
			return err
		})
	}
	require.NoError(t, g.Wait())

	session, err := s.Session(ctx, testUserID, "Three")
	require.NoError(t, err)
	assert.Equal(t, 2, session.CurrentQuestion)
	assert.Equal(t, 2, session.Score)
}

func TestQuizService_ConcurrentUsersAndTopics(t *testing.T) {
	ctx := context.Background()

	const n = 50
	questions := make([]entities.Question, n)
	for i := range questions {
		questions[i] = entities.Question{Text: fmt.Sprintf("Q%d", i), Options: []string{"right", "wrong"}, CorrectIndex: 0}
	}
	s := helperQuizService(t,
		entities.Topic{Name: "A", Questions: questions},
		entities.Topic{Name: "B", Questions: questions},
	)

	users := []int64{1, 2, 3, 4}
	for _, u := range users {
		for _, topic := range []string{"A", "B"} {
			_, err := s.StartTopic(ctx, u, topic)
			require.NoError(t, err)
		}
	}

	// Every user answers every question of both topics at once; odd answers are wrong.
	var g errgroup.Group
	for _, u := range users {
		for _, topic := range []string{"A", "B"} {
			for i := 0; i < n; i++ {
				u, topic, i := u, topic, i
				g.Go(func() error {
					_, err := s.SubmitAnswer(ctx, u, topic, i%2)
					return err
				})
			}
		}
	}
	require.NoError(t, g.Wait())

	for _, u := range users {
		for _, topic := range []string{"A", "B"} {
			step, err := s.RenderCurrent(ctx, u, topic)
			require.NoError(t, err)
			require.True(t, step.Completed())
			assert.Equal(t, n/2, step.Summary.Score)
			assert.Equal(t, n, step.Summary.Total)
		}
	}
}
