package entities

import "time"

// Player represents the Telegram user behind a game.
type Player struct {
	ID        int64 // Telegram user ID
	Username  string
	FirstName string
	UpdatedAt time.Time
}

func NewPlayer(id int64, username, firstName string) *Player {
	return &Player{
		ID:        id,
		Username:  username,
		FirstName: firstName,
		UpdatedAt: time.Now(),
	}
}

// DisplayName returns the best available name for leaderboards.
func (p *Player) DisplayName() string {
	switch {
	case p.Username != "":
		return "@" + p.Username
	case p.FirstName != "":
		return p.FirstName
	default:
		return "player"
	}
}
