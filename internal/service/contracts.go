package service

import (
	"context"
	"time"

	"github.com/Goretzky/GuessTheFlag/internal/domain/entities"
)

// GameStorage keeps the running game of every chat.
type GameStorage interface {
	Get(chatID int64) (*entities.GameSession, bool)
	Put(chatID int64, session *entities.GameSession)
	Delete(chatID int64)
	SweepIdle(before time.Time) int
}

// ResultStore persists completed games.
type ResultStore interface {
	Save(ctx context.Context, res *entities.GameResult) error
	GetPlayerStats(ctx context.Context, userID int64) (*entities.PlayerStats, error)
	GetTop(ctx context.Context, limit int) ([]*entities.LeaderboardEntry, error)
}
