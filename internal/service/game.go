package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Goretzky/GuessTheFlag/internal/domain/entities"
)

var (
	ErrGameNotFound = errors.New("game not found")
	ErrStaleRound   = errors.New("tap belongs to a previous round or game")
)

// GameConfig holds the rules applied to every new game.
type GameConfig struct {
	TotalRounds int
	IdleTTL     time.Duration
}

// GameService runs one quiz game per chat.
type GameService struct {
	catalog *entities.Catalog
	storage GameStorage
	results ResultStore
	cfg     GameConfig
	logger  *zap.Logger

	newRand func() entities.Rand
	now     func() time.Time
}

func NewGameService(
	catalog *entities.Catalog,
	storage GameStorage,
	results ResultStore,
	cfg GameConfig,
	logger *zap.Logger,
) *GameService {
	return &GameService{
		catalog: catalog,
		storage: storage,
		results: results,
		cfg:     cfg,
		logger:  logger,
		newRand: func() entities.Rand {
			return rand.New(rand.NewSource(time.Now().UnixNano()))
		},
		now: time.Now,
	}
}

// NewGame starts a game in the chat, resetting the one already running there.
func (s *GameService) NewGame(_ context.Context, chatID int64, player entities.Player) (*entities.GameSession, error) {
	if session, ok := s.storage.Get(chatID); ok {
		session.Restart(player)
		s.storage.Put(chatID, session)

		s.logger.Debug("game restarted",
			zap.Int64("chat_id", chatID),
			zap.String("game_id", session.ID.String()),
		)
		return session, nil
	}

	state, err := entities.NewQuizState(s.catalog.Names(), s.cfg.TotalRounds, s.newRand())
	if err != nil {
		return nil, fmt.Errorf("new quiz state: %w", err)
	}

	session := entities.NewGameSession(chatID, player, state)
	s.storage.Put(chatID, session)

	s.logger.Debug("game started",
		zap.Int64("chat_id", chatID),
		zap.String("game_id", session.ID.String()),
		zap.Int("total_rounds", s.cfg.TotalRounds),
	)

	return session, nil
}

// Current returns the game running in the chat.
func (s *GameService) Current(chatID int64) (*entities.GameSession, error) {
	session, ok := s.storage.Get(chatID)
	if !ok {
		return nil, ErrGameNotFound
	}
	return session, nil
}

// Answer applies a tap to the current round. Taps made for another game or round
// are rejected with ErrStaleRound. A finished game is saved to the result store;
// a failed save is logged and does not hide the answer.
func (s *GameService) Answer(
	ctx context.Context,
	chatID int64,
	gameID uuid.UUID,
	roundID int,
	selection int,
) (*entities.GameSession, *entities.AnswerResult, error) {
	session, err := s.Current(chatID)
	if err != nil {
		return nil, nil, err
	}

	if !session.IsCurrentRound(gameID, roundID) {
		return session, nil, ErrStaleRound
	}

	res, err := session.State.Answer(selection)
	if err != nil {
		return session, nil, err
	}

	s.logger.Debug("answer accepted",
		zap.Int64("chat_id", chatID),
		zap.Int("round_id", roundID),
		zap.Bool("correct", res.Correct),
		zap.Int("score", res.Score),
	)

	if res.GameOver {
		result := session.Result(s.now())
		if err := s.results.Save(ctx, result); err != nil {
			s.logger.Error("failed to save game result",
				zap.Int64("chat_id", chatID),
				zap.String("game_id", session.ID.String()),
				zap.Error(err),
			)
		} else {
			s.logger.Info("game finished",
				zap.Int64("chat_id", chatID),
				zap.Int64("user_id", result.UserID),
				zap.Int("score", result.Score),
			)
		}
	}

	return session, res, nil
}

// Continue acknowledges the revealed answer of the given round and starts the next one.
func (s *GameService) Continue(_ context.Context, chatID int64, gameID uuid.UUID, roundID int) (*entities.GameSession, error) {
	session, err := s.Current(chatID)
	if err != nil {
		return nil, err
	}

	if !session.IsCurrentRound(gameID, roundID) {
		return session, ErrStaleRound
	}

	if err := session.State.NextRound(); err != nil {
		return session, err
	}

	return session, nil
}

// PlayerStats returns totals over the player's completed games.
func (s *GameService) PlayerStats(ctx context.Context, userID int64) (*entities.PlayerStats, error) {
	stats, err := s.results.GetPlayerStats(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get player stats: %w", err)
	}
	return stats, nil
}

// Leaderboard returns the best players.
func (s *GameService) Leaderboard(ctx context.Context, limit int) ([]*entities.LeaderboardEntry, error) {
	entries, err := s.results.GetTop(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("get leaderboard: %w", err)
	}
	return entries, nil
}

// SweepIdle drops games nobody has touched for longer than the idle TTL.
func (s *GameService) SweepIdle() int {
	removed := s.storage.SweepIdle(s.now().Add(-s.cfg.IdleTTL))
	if removed > 0 {
		s.logger.Info("idle games removed", zap.Int("count", removed))
	}
	return removed
}
