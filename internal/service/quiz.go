package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/aliskhannn/dark-horizons-bot/internal/domain/entities"
	"github.com/aliskhannn/dark-horizons-bot/internal/repository"
	"github.com/aliskhannn/dark-horizons-bot/internal/storage"
)

var (
	ErrUnknownTopic       = errors.New("unknown topic")
	ErrAlreadyInProgress  = errors.New("quiz already in progress")
	ErrSessionNotFound    = errors.New("quiz session not found")
	ErrInvalidAnswerIndex = errors.New("invalid answer index")
	ErrInvalidInput       = errors.New("invalid input")
)

type QuizService struct {
	catalog  CatalogRepository
	sessions SessionStore
	logger   *zap.Logger
}

func NewQuizService(catalog CatalogRepository, sessions SessionStore, logger *zap.Logger) *QuizService {
	return &QuizService{
		catalog:  catalog,
		sessions: sessions,
		logger:   logger,
	}
}

// ListTopics returns the topics a user can choose from, in catalog order.
func (s *QuizService) ListTopics(_ context.Context) []string {
	return s.catalog.Topics()
}

// StartTopic opens a new session for the user on topic and returns its first question.
func (s *QuizService) StartTopic(ctx context.Context, userID int64, topic string) (*entities.QuestionView, error) {
	questions, err := s.questions(topic)
	if err != nil {
		return nil, err
	}
	if len(questions) == 0 {
		return nil, fmt.Errorf("%w: topic %q has no questions", ErrInvalidInput, topic)
	}

	session, err := s.sessions.Create(entities.SessionKey{UserID: userID, Topic: topic})
	if err != nil {
		if errors.Is(err, storage.ErrSessionExists) {
			return nil, ErrAlreadyInProgress
		}
		return nil, fmt.Errorf("create session: %w", err)
	}

	s.logger.Info("quiz started",
		zap.Int64("user_id", userID),
		zap.String("topic", topic),
		zap.String("session_id", session.ID.String()),
		zap.Int("questions", len(questions)),
	)

	return newQuestionView(topic, questions, 0), nil
}

// RenderCurrent returns the question the user has to answer next. Once every
// question is answered it returns the completion summary instead and removes
// the session, so the topic can be taken again.
func (s *QuizService) RenderCurrent(ctx context.Context, userID int64, topic string) (entities.QuizStep, error) {
	questions, err := s.questions(topic)
	if err != nil {
		return entities.QuizStep{}, err
	}

	var step entities.QuizStep
	err = s.sessions.Update(entities.SessionKey{UserID: userID, Topic: topic}, func(session *entities.QuizSession) (bool, error) {
		if !session.Finished(len(questions)) {
			step.Question = newQuestionView(topic, questions, session.CurrentQuestion)
			return false, nil
		}

		category, err := EvaluateScore(session.Score, len(questions))
		if err != nil {
			return false, err
		}

		step.Summary = &entities.CompletionSummary{
			SessionID:   session.ID,
			Topic:       topic,
			Score:       session.Score,
			Total:       len(questions),
			Category:    category,
			CompletedAt: time.Now(),
		}
		return true, nil
	})
	if err != nil {
		return entities.QuizStep{}, s.sessionError(err)
	}

	if step.Completed() {
		s.logger.Info("quiz completed",
			zap.Int64("user_id", userID),
			zap.String("topic", topic),
			zap.String("session_id", step.Summary.SessionID.String()),
			zap.Int("score", step.Summary.Score),
			zap.Int("total", step.Summary.Total),
		)
	}

	return step, nil
}

// SubmitAnswer checks the selected option against the current question and
// advances the session by one question whether or not the answer is correct.
// An invalid index leaves the session untouched.
func (s *QuizService) SubmitAnswer(ctx context.Context, userID int64, topic string, selected int) (entities.AnswerOutcome, error) {
	questions, err := s.questions(topic)
	if err != nil {
		return entities.AnswerOutcome{}, err
	}

	var outcome entities.AnswerOutcome
	err = s.sessions.Update(entities.SessionKey{UserID: userID, Topic: topic}, func(session *entities.QuizSession) (bool, error) {
		if session.Finished(len(questions)) {
			return false, fmt.Errorf("%w: all %d questions already answered", ErrInvalidAnswerIndex, len(questions))
		}

		q := questions[session.CurrentQuestion]
		if !q.ValidOption(selected) {
			return false, fmt.Errorf("%w: %d not in [0, %d)", ErrInvalidAnswerIndex, selected, len(q.Options))
		}

		outcome.Correct = selected == q.CorrectIndex
		if !outcome.Correct {
			outcome.CorrectAnswer = q.CorrectAnswer()
		}
		session.RecordAnswer(outcome.Correct)

		return false, nil
	})
	if err != nil {
		s.logger.Debug("answer rejected",
			zap.Int64("user_id", userID),
			zap.String("topic", topic),
			zap.Int("selected", selected),
			zap.Error(err),
		)
		return entities.AnswerOutcome{}, s.sessionError(err)
	}

	return outcome, nil
}

// SubmitRawAnswer parses the answer index as received from the chat and submits it.
func (s *QuizService) SubmitRawAnswer(ctx context.Context, userID int64, topic, raw string) (entities.AnswerOutcome, error) {
	selected, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		if _, err := s.Session(ctx, userID, topic); err != nil {
			return entities.AnswerOutcome{}, err
		}
		return entities.AnswerOutcome{}, fmt.Errorf("%w: %q is not a number", ErrInvalidAnswerIndex, raw)
	}

	return s.SubmitAnswer(ctx, userID, topic, selected)
}

// Session returns a snapshot of the user's session on topic.
func (s *QuizService) Session(_ context.Context, userID int64, topic string) (entities.QuizSession, error) {
	if _, err := s.questions(topic); err != nil {
		return entities.QuizSession{}, err
	}

	session, err := s.sessions.Get(entities.SessionKey{UserID: userID, Topic: topic})
	if err != nil {
		return entities.QuizSession{}, s.sessionError(err)
	}
	return session, nil
}

// Abandon drops the user's session on topic. Abandoning a quiz that is not
// running is not an error.
func (s *QuizService) Abandon(_ context.Context, userID int64, topic string) error {
	if _, err := s.questions(topic); err != nil {
		return err
	}

	s.sessions.Remove(entities.SessionKey{UserID: userID, Topic: topic})
	s.logger.Info("quiz abandoned",
		zap.Int64("user_id", userID),
		zap.String("topic", topic),
	)

	return nil
}

func (s *QuizService) questions(topic string) ([]entities.Question, error) {
	questions, err := s.catalog.Questions(topic)
	if err != nil {
		if errors.Is(err, repository.ErrTopicNotFound) {
			return nil, fmt.Errorf("%w: %q", ErrUnknownTopic, topic)
		}
		return nil, fmt.Errorf("get questions: %w", err)
	}
	return questions, nil
}

func (s *QuizService) sessionError(err error) error {
	if errors.Is(err, storage.ErrSessionNotFound) {
		return ErrSessionNotFound
	}
	return err
}

func newQuestionView(topic string, questions []entities.Question, idx int) *entities.QuestionView {
	q := questions[idx]

	options := make([]entities.AnswerOption, 0, len(q.Options))
	for i, opt := range q.Options {
		options = append(options, entities.AnswerOption{Index: i, Text: opt})
	}

	return &entities.QuestionView{
		Topic:   topic,
		Number:  idx,
		Total:   len(questions),
		Text:    q.Text,
		Options: options,
	}
}
