package telegram

import (
	"context"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/Goretzky/GuessTheFlag/internal/domain/entities"
)

// Options tunes the presentation of a game.
type Options struct {
	RevealDelay     time.Duration // pause between a tap and the result message
	TotalRounds     int           // shown in /help
	LeaderboardSize int           // rows shown by /top
}

type Handler struct {
	bot     Bot
	logger  *zap.Logger
	games   GameService
	catalog *entities.Catalog
	reveals *revealScheduler
	opts    Options
}

func NewHandler(
	bot Bot,
	logger *zap.Logger,
	games GameService,
	catalog *entities.Catalog,
	opts Options,
) *Handler {
	return &Handler{
		bot:     bot,
		logger:  logger,
		games:   games,
		catalog: catalog,
		reveals: newRevealScheduler(opts.RevealDelay),
		opts:    opts,
	}
}

// Run consumes updates until ctx is done or the updates channel is closed.
func (h *Handler) Run(ctx context.Context) error {
	h.logger.Info("telegram handler started")
	defer h.logger.Info("telegram handler stopped")
	defer h.reveals.stop()

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := h.bot.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			h.handleUpdate(ctx, update)
		}
	}
}

func (h *Handler) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	if update.CallbackQuery != nil {
		h.logger.Debug("callback received",
			zap.Int64("user_id", update.CallbackQuery.From.ID),
			zap.String("data", update.CallbackQuery.Data),
		)
		h.handleCallback(ctx, update.CallbackQuery)
		return
	}

	if update.Message == nil {
		h.logger.Debug("update without message and callback")
		return
	}

	h.logger.Debug("update received",
		zap.Int64("chat_id", update.Message.Chat.ID),
		zap.String("text", update.Message.Text),
	)

	chatID := update.Message.Chat.ID
	player := playerFromUser(update.Message.From)

	if !update.Message.IsCommand() {
		_ = h.send(newPlainMessage(chatID, msgUnknownCommand))
		return
	}

	switch update.Message.Command() {
	case "start":
		_ = h.withErrorHandling(h.handleStart(player))(ctx, chatID)
	case "play", "restart":
		_ = h.withErrorHandling(h.handleNewGame(player))(ctx, chatID)
	case "score":
		_ = h.withErrorHandling(h.handleScore())(ctx, chatID)
	case "stats":
		_ = h.withErrorHandling(h.handleStats(player.ID))(ctx, chatID)
	case "top":
		_ = h.withErrorHandling(h.handleTop())(ctx, chatID)
	case "help":
		_ = h.send(newMessage(chatID, helpMessage(h.opts.TotalRounds)))
	default:
		_ = h.send(newPlainMessage(chatID, msgUnknownCommand))
	}
}

func playerFromUser(u *tgbotapi.User) entities.Player {
	if u == nil {
		return entities.Player{}
	}
	return *entities.NewPlayer(u.ID, u.UserName, u.FirstName)
}

func (h *Handler) send(c tgbotapi.Chattable) error {
	if _, err := h.bot.Send(c); err != nil {
		h.logger.Error("failed to send telegram message",
			zap.Error(err),
		)
		return err
	}
	return nil
}

// answerCallback removes the loading state of a button, optionally with a toast.
func (h *Handler) answerCallback(id, text string) {
	if _, err := h.bot.Request(tgbotapi.NewCallback(id, text)); err != nil {
		h.logger.Error("callback answer error",
			zap.String("callback_id", id),
			zap.Error(err),
		)
	}
}
