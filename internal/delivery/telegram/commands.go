package telegram

import (
	"context"
)

// handleStart greets the user and offers the topics.
func (h *Handler) handleStart() HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		msg := newHTMLMessage(chatID, msgWelcome)
		msg.ReplyMarkup = buildTopicsKeyboard(h.quizService.ListTopics(ctx))
		h.send(msg)
		return nil
	}
}

// handleResults shows the best result of the user per topic.
func (h *Handler) handleResults(userID int64) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		results, err := h.resultService.Best(ctx, userID)
		if err != nil {
			return err
		}

		h.send(newHTMLMessage(chatID, formatResults(results)))
		return nil
	}
}
