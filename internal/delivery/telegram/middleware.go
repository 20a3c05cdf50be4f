package telegram

import (
	"context"

	"go.uber.org/zap"
)

type HandlerFunc func(ctx context.Context, chatID int64) error

// withErrorHandling logs a failed handler and tells the user something went wrong.
func (h *Handler) withErrorHandling(fn HandlerFunc) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		if err := fn(ctx, chatID); err != nil {
			h.logger.Error("handle error",
				zap.Int64("chat_id", chatID),
				zap.Error(err),
			)
			_ = h.send(newPlainMessage(chatID, msgInternalError))
		}
		return nil
	}
}
