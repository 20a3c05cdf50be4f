package telegram

import (
	"context"
	"errors"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Goretzky/GuessTheFlag/internal/domain/entities"
	"github.com/Goretzky/GuessTheFlag/internal/service"
)

func (h *Handler) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	if cb.Message == nil {
		h.answerCallback(cb.ID, "")
		return
	}

	data := decodeCallback(cb.Data)

	var (
		toast string
		err   error
	)

	switch data.Action {
	case actionFlag:
		toast, err = h.handleFlagCallback(ctx, cb, data)
	case actionGame:
		switch data.param(0) {
		case gameContinue:
			toast, err = h.handleContinueCallback(ctx, cb, data)
		case gameRestart:
			toast, err = h.handleRestartCallback(ctx, cb)
		default:
			h.logger.Warn("invalid game callback", zap.String("data", cb.Data))
		}
	default:
		h.logger.Warn("unknown callback", zap.String("data", cb.Data))
	}

	if err != nil {
		h.logger.Error("callback error",
			zap.Int64("chat_id", cb.Message.Chat.ID),
			zap.String("data", cb.Data),
			zap.Error(err),
		)
		toast = msgInternalError
	}

	h.answerCallback(cb.ID, toast)
}

// handleFlagCallback applies a tap, disables the buttons and schedules the reveal.
func (h *Handler) handleFlagCallback(ctx context.Context, cb *tgbotapi.CallbackQuery, data callbackData) (string, error) {
	chatID := cb.Message.Chat.ID

	gameID, roundID, index, ok := parseFlagCallback(data)
	if !ok {
		h.logger.Warn("invalid flag callback", zap.String("data", cb.Data))
		return "", nil
	}

	session, res, err := h.games.Answer(ctx, chatID, gameID, roundID, index)
	switch {
	case errors.Is(err, service.ErrGameNotFound):
		return toastNoGame, nil
	case errors.Is(err, service.ErrStaleRound):
		return toastStaleRound, nil
	case errors.Is(err, entities.ErrAlreadyAnswered):
		return toastAlreadyAnswered, nil
	case errors.Is(err, entities.ErrSelectionOutOfRange):
		h.logger.Warn("flag index out of range", zap.String("data", cb.Data))
		return "", nil
	case err != nil:
		return "", err
	}

	// Editing without a reply markup drops the flag buttons.
	edit := newEdit(chatID, cb.Message.MessageID, formatAnsweredQuestion(h.catalog, session.State, res))
	_ = h.send(edit)

	h.reveals.schedule(chatID, func() {
		h.sendReveal(chatID, gameID, res)
	})

	return "", nil
}

// sendReveal shows the result of a round with the button for the next step.
func (h *Handler) sendReveal(chatID int64, gameID uuid.UUID, res *entities.AnswerResult) {
	msg := newMessage(chatID, formatReveal(res))
	if res.GameOver {
		msg.ReplyMarkup = buildRestartKeyboard()
	} else {
		msg.ReplyMarkup = buildContinueKeyboard(gameID, res.RoundID)
	}
	_ = h.send(msg)
}

// handleContinueCallback starts the round after the one the button was shown for.
func (h *Handler) handleContinueCallback(ctx context.Context, cb *tgbotapi.CallbackQuery, data callbackData) (string, error) {
	chatID := cb.Message.Chat.ID

	gameID, roundID, ok := parseContinueCallback(data)
	if !ok {
		h.logger.Warn("invalid continue callback", zap.String("data", cb.Data))
		return "", nil
	}

	session, err := h.games.Continue(ctx, chatID, gameID, roundID)
	switch {
	case errors.Is(err, service.ErrGameNotFound):
		return toastNoGame, nil
	case errors.Is(err, service.ErrStaleRound):
		return toastStaleRound, nil
	case errors.Is(err, entities.ErrGameOver):
		return toastGameOver, nil
	case errors.Is(err, entities.ErrRoundNotAnswered):
		return toastAlreadyNext, nil
	case err != nil:
		return "", err
	}

	// The result of the finished round must not arrive after the next question.
	if h.reveals.cancel(chatID) {
		h.logger.Debug("pending reveal discarded", zap.Int64("chat_id", chatID))
	}

	h.clearKeyboard(chatID, cb.Message.MessageID)
	return "", h.sendQuestion(chatID, session)
}

func (h *Handler) handleRestartCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) (string, error) {
	chatID := cb.Message.Chat.ID

	h.clearKeyboard(chatID, cb.Message.MessageID)
	return "", h.handleNewGame(playerFromUser(cb.From))(ctx, chatID)
}

func (h *Handler) clearKeyboard(chatID int64, messageID int) {
	_ = h.send(tgbotapi.NewEditMessageReplyMarkup(chatID, messageID, emptyKeyboard()))
}
