package telegram

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"

	"github.com/Goretzky/GuessTheFlag/internal/domain/entities"
)

// Bot is the part of *tgbotapi.BotAPI used by the handler.
type Bot interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
}

type GameService interface {
	NewGame(ctx context.Context, chatID int64, player entities.Player) (*entities.GameSession, error)
	Current(chatID int64) (*entities.GameSession, error)
	Answer(ctx context.Context, chatID int64, gameID uuid.UUID, roundID int, selection int) (*entities.GameSession, *entities.AnswerResult, error)
	Continue(ctx context.Context, chatID int64, gameID uuid.UUID, roundID int) (*entities.GameSession, error)
	PlayerStats(ctx context.Context, userID int64) (*entities.PlayerStats, error)
	Leaderboard(ctx context.Context, limit int) ([]*entities.LeaderboardEntry, error)
}
