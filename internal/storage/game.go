package storage

import (
	"sync"
	"time"

	"github.com/Goretzky/GuessTheFlag/internal/domain/entities"
)

type gameEntry struct {
	session  *entities.GameSession
	lastSeen time.Time
}

// GameStorage provides in-memory storage for game sessions by chat ID.
type GameStorage struct {
	mu    sync.RWMutex
	games map[int64]gameEntry
	now   func() time.Time
}

// NewGameStorage creates a new GameStorage.
func NewGameStorage() *GameStorage {
	return &GameStorage{
		games: make(map[int64]gameEntry),
		now:   time.Now,
	}
}

// Put saves the session of a chat and marks it as active now.
func (s *GameStorage) Put(chatID int64, session *entities.GameSession) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.games[chatID] = gameEntry{session: session, lastSeen: s.now()}
}

// Get retrieves the session of a chat and refreshes its activity time.
func (s *GameStorage) Get(chatID int64) (*entities.GameSession, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.games[chatID]
	if !ok {
		return nil, false
	}
	e.lastSeen = s.now()
	s.games[chatID] = e

	return e.session, true
}

// Delete removes the session of a chat.
func (s *GameStorage) Delete(chatID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.games, chatID)
}

// SweepIdle removes sessions not touched since before and returns how many were dropped.
func (s *GameStorage) SweepIdle(before time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for chatID, e := range s.games {
		if e.lastSeen.Before(before) {
			delete(s.games, chatID)
			removed++
		}
	}
	return removed
}

// Len returns the number of stored sessions.
func (s *GameStorage) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.games)
}
