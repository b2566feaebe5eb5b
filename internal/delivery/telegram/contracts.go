package telegram

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/dark-horizons-bot/internal/domain/entities"
)

// BotAPI is the part of *tgbotapi.BotAPI the handler uses.
type BotAPI interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
}

type QuizService interface {
	ListTopics(ctx context.Context) []string
	StartTopic(ctx context.Context, userID int64, topic string) (*entities.QuestionView, error)
	SubmitRawAnswer(ctx context.Context, userID int64, topic, raw string) (entities.AnswerOutcome, error)
	RenderCurrent(ctx context.Context, userID int64, topic string) (entities.QuizStep, error)
	Abandon(ctx context.Context, userID int64, topic string) error
}

type UserService interface {
	EnsureUser(ctx context.Context, userID, chatID int64) (bool, error)
}

type ResultService interface {
	Record(ctx context.Context, userID int64, summary *entities.CompletionSummary) error
	Best(ctx context.Context, userID int64) ([]*entities.QuizResult, error)
}
