package entities

import (
	"time"

	"github.com/google/uuid"
)

// GameSession binds a QuizState to the chat it is played in.
type GameSession struct {
	ID        uuid.UUID // changes on every new game
	ChatID    int64
	Player    Player
	State     *QuizState
	StartedAt time.Time
}

// NewGameSession creates a session for a freshly started game.
func NewGameSession(chatID int64, player Player, state *QuizState) *GameSession {
	return &GameSession{
		ID:        uuid.New(),
		ChatID:    chatID,
		Player:    player,
		State:     state,
		StartedAt: time.Now(),
	}
}

// Restart resets the state and assigns a new game ID.
func (gs *GameSession) Restart(player Player) {
	gs.ID = uuid.New()
	gs.Player = player
	gs.StartedAt = time.Now()
	gs.State.Reset()
}

// IsCurrentRound reports whether a tap made for gameID and roundID still targets this game.
func (gs *GameSession) IsCurrentRound(gameID uuid.UUID, roundID int) bool {
	return gs.ID == gameID && gs.State.RoundID() == roundID
}

// Result builds the record of a finished game.
func (gs *GameSession) Result(finishedAt time.Time) *GameResult {
	return &GameResult{
		ID:             gs.ID,
		UserID:         gs.Player.ID,
		ChatID:         gs.ChatID,
		Username:       gs.Player.Username,
		FirstName:      gs.Player.FirstName,
		Score:          gs.State.Score(),
		CorrectAnswers: gs.State.CorrectAnswers(),
		TotalRounds:    gs.State.TotalRounds(),
		StartedAt:      gs.StartedAt,
		FinishedAt:     finishedAt,
	}
}
