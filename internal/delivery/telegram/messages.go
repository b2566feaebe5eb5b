// messages.go contains message templates and formatting functions for Telegram.

package telegram

import (
	"errors"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/dark-horizons-bot/internal/domain/entities"
	"github.com/aliskhannn/dark-horizons-bot/internal/service"
)

const (
	msgWelcome        = "Привет! Проверьте, насколько хорошо вы знаете мир книги.\n\nВыберите тему викторины:"
	msgChooseTopic    = "Выберите тему викторины:"
	msgUseStart       = "Чтобы начать викторину, отправьте /start."
	msgHelp           = "Доступные команды:\n\n/start — выбрать тему викторины\n/results — лучшие результаты\n/help — помощь"
	msgUnknownCommand = "Неизвестная команда.\n\n" + msgHelp
	msgQuizAbandoned  = "Викторина прервана.\n\n" + msgChooseTopic
	msgNoResults      = "Вы ещё не завершили ни одной викторины. Начните с /start."
	msgCorrect        = "Правильно! 🎉"
)

// Error messages.
const (
	msgUnknownTopic       = "Тема не найдена. Выберите тему из списка: /start"
	msgAlreadyInProgress  = "Вы уже проходите эту викторину. Ответьте на текущий вопрос."
	msgSessionNotFound    = "Викторина не найдена. Начните заново: /start"
	msgInvalidAnswerIndex = "Некорректный ответ. Выберите один из вариантов."
	msgInternalError      = "Что‑то пошло не так. Попробуйте позже."
)

// esc escapes plain text for HTML parse mode.
func esc(s string) string {
	return tgbotapi.EscapeText(tgbotapi.ModeHTML, s)
}

func newHTMLMessage(chatID int64, text string) tgbotapi.MessageConfig {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	return msg
}

func newHTMLEdit(chatID int64, msgID int, text string) tgbotapi.EditMessageTextConfig {
	edit := tgbotapi.NewEditMessageText(chatID, msgID, text)
	edit.ParseMode = tgbotapi.ModeHTML
	return edit
}

// errorMessage translates an engine error into the text shown to the user.
func errorMessage(err error) string {
	switch {
	case errors.Is(err, service.ErrUnknownTopic):
		return msgUnknownTopic
	case errors.Is(err, service.ErrAlreadyInProgress):
		return msgAlreadyInProgress
	case errors.Is(err, service.ErrSessionNotFound):
		return msgSessionNotFound
	case errors.Is(err, service.ErrInvalidAnswerIndex):
		return msgInvalidAnswerIndex
	default:
		return msgInternalError
	}
}

func formatQuestion(q *entities.QuestionView) string {
	return fmt.Sprintf("<b>%s</b>\nВопрос %d из %d\n\n%s",
		esc(q.Topic), q.Number+1, q.Total, esc(q.Text))
}

func formatOutcome(o entities.AnswerOutcome) string {
	if o.Correct {
		return msgCorrect
	}
	return fmt.Sprintf("Неправильно. Правильный ответ: %s. ❌", esc(o.CorrectAnswer))
}

func formatSummary(s *entities.CompletionSummary) string {
	return fmt.Sprintf("Викторина завершена! Ваш результат: %d из %d\n%s",
		s.Score, s.Total, esc(s.Category))
}

func formatResults(results []*entities.QuizResult) string {
	if len(results) == 0 {
		return msgNoResults
	}

	var sb strings.Builder
	sb.WriteString("<b>Ваши лучшие результаты</b>\n")
	for _, r := range results {
		sb.WriteString(fmt.Sprintf("\n• %s: %d из %d", esc(r.Topic), r.Score, r.Total))
	}
	return sb.String()
}
