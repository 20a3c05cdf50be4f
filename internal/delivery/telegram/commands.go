package telegram

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/Goretzky/GuessTheFlag/internal/domain/entities"
	"github.com/Goretzky/GuessTheFlag/internal/service"
)

// handleStart greets the player and starts the first game.
func (h *Handler) handleStart(player entities.Player) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		if err := h.send(newMessage(chatID, welcomeMessage())); err != nil {
			return err
		}
		return h.handleNewGame(player)(ctx, chatID)
	}
}

// handleNewGame starts a game or resets the running one.
func (h *Handler) handleNewGame(player entities.Player) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		if h.reveals.cancel(chatID) {
			h.logger.Debug("pending reveal discarded", zap.Int64("chat_id", chatID))
		}

		session, err := h.games.NewGame(ctx, chatID, player)
		if err != nil {
			return err
		}

		return h.sendQuestion(chatID, session)
	}
}

func (h *Handler) handleScore() HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		session, err := h.games.Current(chatID)
		if errors.Is(err, service.ErrGameNotFound) {
			return h.send(newPlainMessage(chatID, msgNoGame))
		}
		if err != nil {
			return err
		}

		return h.send(newMessage(chatID, formatCurrentScore(session.State)))
	}
}

func (h *Handler) handleStats(userID int64) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		stats, err := h.games.PlayerStats(ctx, userID)
		if err != nil {
			return err
		}

		if stats.GamesPlayed == 0 {
			return h.send(newPlainMessage(chatID, msgNoResults))
		}

		return h.send(newMessage(chatID, formatStats(stats)))
	}
}

func (h *Handler) handleTop() HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		entries, err := h.games.Leaderboard(ctx, h.opts.LeaderboardSize)
		if err != nil {
			return err
		}

		if len(entries) == 0 {
			return h.send(newPlainMessage(chatID, msgNoResults))
		}

		return h.send(newMessage(chatID, formatLeaderboard(entries)))
	}
}

// sendQuestion sends the current round with one button per flag.
func (h *Handler) sendQuestion(chatID int64, session *entities.GameSession) error {
	msg := newMessage(chatID, formatQuestion(session.State))
	msg.ReplyMarkup = buildFlagKeyboard(h.catalog, session)
	return h.send(msg)
}
