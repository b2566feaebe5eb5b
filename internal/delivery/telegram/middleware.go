package telegram

import (
	"context"

	"go.uber.org/zap"
)

type HandlerFunc func(ctx context.Context, chatID int64) error

// withErrorHandling logs the error and tells the user what went wrong.
// Expected quiz errors are logged at debug level only.
func (h *Handler) withErrorHandling(fn HandlerFunc) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		err := fn(ctx, chatID)
		if err == nil {
			return nil
		}

		text := errorMessage(err)
		if text == msgInternalError {
			h.logger.Error("handle error",
				zap.Int64("chat_id", chatID),
				zap.Error(err),
			)
		} else {
			h.logger.Debug("request rejected",
				zap.Int64("chat_id", chatID),
				zap.Error(err),
			)
		}

		h.send(newHTMLMessage(chatID, text))
		return nil
	}
}
