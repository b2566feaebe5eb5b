package telegram

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/dark-horizons-bot/internal/domain/entities"
)

// buildTopicsKeyboard builds one button per topic, in catalog order.
func buildTopicsKeyboard(topics []string) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(topics))
	for i, topic := range topics {
		button := tgbotapi.NewInlineKeyboardButtonData(topic, buildTopicCallback(i))
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(button))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// buildQuestionKeyboard builds keyboard for quiz question.
func buildQuestionKeyboard(q *entities.QuestionView, topicIdx int) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(q.Options)+1)
	for _, opt := range q.Options {
		button := tgbotapi.NewInlineKeyboardButtonData(opt.Text, buildAnswerCallback(topicIdx, opt.Index))
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(button))
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("🚪 Выйти из викторины", buildExitCallback(topicIdx)),
	))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// buildQuizResultKeyboard builds keyboard for quiz results screen.
func buildQuizResultKeyboard(topicIdx int) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔄 Пройти ещё раз", buildTopicCallback(topicIdx)),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📋 Другие темы", buildMenuCallback()),
		),
	)
}
