package storage

import (
	"context"
	"sort"
	"sync"

	"github.com/Goretzky/GuessTheFlag/internal/domain/entities"
)

// ResultStorage keeps completed game results in memory.
// Used when no database is configured; data is lost on restart.
type ResultStorage struct {
	mu      sync.RWMutex
	results []entities.GameResult
}

// NewResultStorage creates an empty ResultStorage.
func NewResultStorage() *ResultStorage {
	return &ResultStorage{}
}

// Save appends a result.
func (s *ResultStorage) Save(_ context.Context, r *entities.GameResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.results = append(s.results, *r)
	return nil
}

// GetPlayerStats aggregates the results of one player.
func (s *ResultStorage) GetPlayerStats(_ context.Context, userID int64) (*entities.PlayerStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := &entities.PlayerStats{UserID: userID}
	var last *entities.GameResult
	for i := range s.results {
		r := &s.results[i]
		if r.UserID != userID {
			continue
		}

		if stats.GamesPlayed == 0 || r.Score > stats.BestScore {
			stats.BestScore = r.Score
		}
		stats.GamesPlayed++
		stats.CorrectAnswers += r.CorrectAnswers
		stats.TotalRounds += r.TotalRounds

		if last == nil || !r.FinishedAt.Before(last.FinishedAt) {
			last = r
		}
	}
	if last != nil {
		stats.LastScore = last.Score
	}

	return stats, nil
}

// GetTop returns players ordered by best score.
func (s *ResultStorage) GetTop(_ context.Context, limit int) ([]*entities.LeaderboardEntry, error) {
	s.mu.RLock()
	byUser := make(map[int64]*entities.LeaderboardEntry)
	for _, r := range s.results {
		e, ok := byUser[r.UserID]
		if !ok {
			e = &entities.LeaderboardEntry{UserID: r.UserID, BestScore: r.Score}
			byUser[r.UserID] = e
		}
		// Latest known names win.
		e.Username = r.Username
		e.FirstName = r.FirstName
		e.GamesPlayed++
		if r.Score > e.BestScore {
			e.BestScore = r.Score
		}
	}
	s.mu.RUnlock()

	entries := make([]*entities.LeaderboardEntry, 0, len(byUser))
	for _, e := range byUser {
		entries = append(entries, e)
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].BestScore != entries[j].BestScore {
			return entries[i].BestScore > entries[j].BestScore
		}
		if entries[i].GamesPlayed != entries[j].GamesPlayed {
			return entries[i].GamesPlayed < entries[j].GamesPlayed
		}
		return entries[i].UserID < entries[j].UserID
	})

	if limit > 0 && limit < len(entries) {
		entries = entries[:limit]
	}

	return entries, nil
}
