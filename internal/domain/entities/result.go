package entities

import (
	"time"

	"github.com/google/uuid"
)

// GameResult is the persisted outcome of a completed game.
type GameResult struct {
	ID             uuid.UUID
	UserID         int64
	ChatID         int64
	Username       string
	FirstName      string
	Score          int
	CorrectAnswers int
	TotalRounds    int
	StartedAt      time.Time
	FinishedAt     time.Time
}

// PlayerStats aggregates all completed games of a player.
type PlayerStats struct {
	UserID         int64
	GamesPlayed    int
	BestScore      int
	LastScore      int
	CorrectAnswers int
	TotalRounds    int
}

// Accuracy returns the share of correct answers in percent.
func (ps *PlayerStats) Accuracy() float64 {
	if ps.TotalRounds == 0 {
		return 0
	}
	return float64(ps.CorrectAnswers) / float64(ps.TotalRounds) * 100
}

// LeaderboardEntry is one row of the best-score leaderboard.
type LeaderboardEntry struct {
	UserID      int64
	Username    string
	FirstName   string
	BestScore   int
	GamesPlayed int
}

func (e *LeaderboardEntry) DisplayName() string {
	p := Player{Username: e.Username, FirstName: e.FirstName}
	return p.DisplayName()
}
