package telegram

import (
	"context"
	"fmt"
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/dark-horizons-bot/internal/domain/entities"
	"github.com/aliskhannn/dark-horizons-bot/internal/service"
)

func (h *Handler) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	// Remove the user's "clock".
	defer h.request(tgbotapi.NewCallback(cb.ID, ""))

	if cb.Message == nil {
		return
	}

	data := decodeCallback(cb.Data)

	var fn HandlerFunc
	switch data.Action {
	case actionTopic:
		fn = h.handleTopicCallback(cb, data)
	case actionAnswer:
		fn = h.handleAnswerCallback(cb, data)
	case actionExit:
		fn = h.handleExitCallback(cb, data)
	case actionMenu:
		fn = h.handleMenuCallback(cb)
	default:
		h.logger.Debug("unknown callback", zap.String("data", cb.Data))
		return
	}

	_ = h.withErrorHandling(fn)(ctx, cb.Message.Chat.ID)
}

// handleTopicCallback starts the chosen topic and sends its first question.
func (h *Handler) handleTopicCallback(cb *tgbotapi.CallbackQuery, data callbackData) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		topicIdx, topic, err := h.resolveTopic(ctx, data.param(0))
		if err != nil {
			return err
		}

		q, err := h.quizService.StartTopic(ctx, cb.From.ID, topic)
		if err != nil {
			return err
		}

		h.clearKeyboard(cb)
		h.sendQuestion(chatID, q, topicIdx)
		return nil
	}
}

// handleAnswerCallback records the answer, shows feedback in place of the
// question and sends what comes next.
func (h *Handler) handleAnswerCallback(cb *tgbotapi.CallbackQuery, data callbackData) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		topicIdx, topic, err := h.resolveTopic(ctx, data.param(0))
		if err != nil {
			return err
		}

		outcome, err := h.quizService.SubmitRawAnswer(ctx, cb.From.ID, topic, data.param(1))
		if err != nil {
			return err
		}

		text := formatOutcome(outcome)
		if cb.Message.Text != "" {
			text = esc(cb.Message.Text) + "\n\n" + text
		}
		h.send(newHTMLEdit(chatID, cb.Message.MessageID, text))

		step, err := h.quizService.RenderCurrent(ctx, cb.From.ID, topic)
		if err != nil {
			return err
		}

		if !step.Completed() {
			h.sendQuestion(chatID, step.Question, topicIdx)
			return nil
		}

		msg := newHTMLMessage(chatID, formatSummary(step.Summary))
		msg.ReplyMarkup = buildQuizResultKeyboard(topicIdx)
		h.send(msg)

		h.recordResult(ctx, cb.From.ID, step.Summary)
		return nil
	}
}

// handleExitCallback abandons the quiz and offers the topics again.
func (h *Handler) handleExitCallback(cb *tgbotapi.CallbackQuery, data callbackData) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		_, topic, err := h.resolveTopic(ctx, data.param(0))
		if err != nil {
			return err
		}

		if err = h.quizService.Abandon(ctx, cb.From.ID, topic); err != nil {
			return err
		}

		edit := newHTMLEdit(chatID, cb.Message.MessageID, msgQuizAbandoned)
		kb := buildTopicsKeyboard(h.quizService.ListTopics(ctx))
		edit.ReplyMarkup = &kb
		h.send(edit)
		return nil
	}
}

func (h *Handler) handleMenuCallback(cb *tgbotapi.CallbackQuery) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		h.clearKeyboard(cb)

		msg := newHTMLMessage(chatID, msgChooseTopic)
		msg.ReplyMarkup = buildTopicsKeyboard(h.quizService.ListTopics(ctx))
		h.send(msg)
		return nil
	}
}

// resolveTopic maps the topic index from callback data back to its name.
func (h *Handler) resolveTopic(ctx context.Context, raw string) (int, string, error) {
	topics := h.quizService.ListTopics(ctx)

	idx, err := strconv.Atoi(raw)
	if err != nil || idx < 0 || idx >= len(topics) {
		return 0, "", fmt.Errorf("%w: callback topic %q", service.ErrUnknownTopic, raw)
	}

	return idx, topics[idx], nil
}

func (h *Handler) sendQuestion(chatID int64, q *entities.QuestionView, topicIdx int) {
	msg := newHTMLMessage(chatID, formatQuestion(q))
	msg.ReplyMarkup = buildQuestionKeyboard(q, topicIdx)
	h.send(msg)
}

// clearKeyboard removes the buttons of the message a callback came from, so
// stale buttons cannot be pressed again.
func (h *Handler) clearKeyboard(cb *tgbotapi.CallbackQuery) {
	empty := tgbotapi.NewInlineKeyboardMarkup()
	empty.InlineKeyboard = [][]tgbotapi.InlineKeyboardButton{}
	h.request(tgbotapi.NewEditMessageReplyMarkup(cb.Message.Chat.ID, cb.Message.MessageID, empty))
}

// recordResult stores the finished quiz. Failures only cost the history entry.
func (h *Handler) recordResult(ctx context.Context, userID int64, summary *entities.CompletionSummary) {
	if err := h.resultService.Record(ctx, userID, summary); err != nil {
		h.logger.Error("failed to record quiz result",
			zap.Int64("user_id", userID),
			zap.String("topic", summary.Topic),
			zap.Error(err),
		)
	}
}
