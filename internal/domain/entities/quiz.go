package entities

import (
	"time"

	"github.com/google/uuid"
)

// SessionKey identifies a quiz session: one user taking one topic.
type SessionKey struct {
	UserID int64
	Topic  string
}

// QuizSession represents an in-progress quiz of a user on a topic.
type QuizSession struct {
	ID              uuid.UUID // used for log correlation and result records
	UserID          int64     // Telegram user ID
	Topic           string    // catalog topic name
	CurrentQuestion int       // zero-based index of the next question to answer
	Score           int       // number of correct answers so far
	StartedAt       time.Time
}

// NewQuizSession creates a session positioned at the first question.
func NewQuizSession(userID int64, topic string) *QuizSession {
	return &QuizSession{
		ID:        uuid.New(),
		UserID:    userID,
		Topic:     topic,
		StartedAt: time.Now(),
	}
}

// RecordAnswer advances the session by one question and counts a correct answer.
func (s *QuizSession) RecordAnswer(isCorrect bool) {
	if isCorrect {
		s.Score++
	}
	s.CurrentQuestion++
}

// Finished reports whether all total questions have been answered.
func (s *QuizSession) Finished(total int) bool {
	return s.CurrentQuestion >= total
}

// AnswerOption is a selectable option of a rendered question.
type AnswerOption struct {
	Index int
	Text  string
}

// QuestionView is the question a user has to answer next.
type QuestionView struct {
	Topic   string
	Number  int // zero-based question index
	Total   int
	Text    string
	Options []AnswerOption
}

// CompletionSummary is the final result of a finished quiz.
type CompletionSummary struct {
	SessionID   uuid.UUID
	Topic       string
	Score       int
	Total       int
	Category    string
	CompletedAt time.Time
}

// QuizStep is what a user sees next: either a question or the final summary.
type QuizStep struct {
	Question *QuestionView
	Summary  *CompletionSummary
}

// Completed reports whether the step is the end of the quiz.
func (s QuizStep) Completed() bool {
	return s.Summary != nil
}

// AnswerOutcome is the result of checking a submitted answer.
type AnswerOutcome struct {
	Correct       bool
	CorrectAnswer string // set only for incorrect answers
}
