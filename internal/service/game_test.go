package service

import (
	"context"
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Goretzky/GuessTheFlag/internal/domain/entities"
	"github.com/Goretzky/GuessTheFlag/internal/storage"
)

type failingResults struct {
	saves int
}

func (f *failingResults) Save(context.Context, *entities.GameResult) error {
	f.saves++
	return errors.New("db down")
}

func (f *failingResults) GetPlayerStats(context.Context, int64) (*entities.PlayerStats, error) {
	return nil, errors.New("db down")
}

func (f *failingResults) GetTop(context.Context, int) ([]*entities.LeaderboardEntry, error) {
	return nil, errors.New("db down")
}

func newTestService(results ResultStore, rounds int) *GameService {
	s := NewGameService(
		entities.DefaultCatalog(),
		storage.NewGameStorage(),
		results,
		GameConfig{TotalRounds: rounds, IdleTTL: time.Hour},
		zap.NewNop(),
	)
	s.newRand = func() entities.Rand { return rand.New(rand.NewSource(99)) }
	return s
}

var anna = entities.Player{ID: 1, Username: "anna", FirstName: "Anna"}

// playRound answers the current round of chatID and acknowledges it unless the game ended.
func playRound(t *testing.T, s *GameService, chatID int64, correct bool) *entities.AnswerResult {
	t.Helper()

	session, err := s.Current(chatID)
	require.NoError(t, err)

	sel := session.State.CorrectIndex()
	if !correct {
		sel = (sel + 1) % entities.ChoicesPerRound
	}

	_, res, err := s.Answer(context.Background(), chatID, session.ID, session.State.RoundID(), sel)
	require.NoError(t, err)

	if !res.GameOver {
		_, err = s.Continue(context.Background(), chatID, session.ID, res.RoundID)
		require.NoError(t, err)
	}
	return res
}

func TestGameService_NewGameAndCurrent(t *testing.T) {
	s := newTestService(storage.NewResultStorage(), 8)

	_, err := s.Current(10)
	assert.ErrorIs(t, err, ErrGameNotFound)

	session, err := s.NewGame(context.Background(), 10, anna)
	require.NoError(t, err)
	assert.Equal(t, int64(10), session.ChatID)
	assert.Equal(t, anna, session.Player)
	assert.Equal(t, entities.PhaseAwaitingInput, session.State.Phase())

	got, err := s.Current(10)
	require.NoError(t, err)
	assert.Same(t, session, got)
}

func TestGameService_NewGameResetsRunningGame(t *testing.T) {
	s := newTestService(storage.NewResultStorage(), 8)
	ctx := context.Background()

	first, err := s.NewGame(ctx, 10, anna)
	require.NoError(t, err)
	firstID := first.ID

	playRound(t, s, 10, true)
	playRound(t, s, 10, true)
	require.Equal(t, 2, first.State.Score())

	second, err := s.NewGame(ctx, 10, anna)
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.NotEqual(t, firstID, second.ID)
	assert.Equal(t, 0, second.State.Score())
	assert.Equal(t, 0, second.State.RoundsPlayed())
}

func TestGameService_AnswerStaleRound(t *testing.T) {
	s := newTestService(storage.NewResultStorage(), 8)
	ctx := context.Background()

	session, err := s.NewGame(ctx, 10, anna)
	require.NoError(t, err)
	oldRound := session.State.RoundID()

	playRound(t, s, 10, true)

	_, _, err = s.Answer(ctx, 10, session.ID, oldRound, 0)
	assert.ErrorIs(t, err, ErrStaleRound)
	assert.Equal(t, 1, session.State.Score())

	_, err = s.Continue(ctx, 10, session.ID, oldRound)
	assert.ErrorIs(t, err, ErrStaleRound)
	assert.Equal(t, oldRound+1, session.State.RoundID())
}

func TestGameService_TapFromDroppedGameRejected(t *testing.T) {
	s := newTestService(storage.NewResultStorage(), 8)
	ctx := context.Background()

	old, err := s.NewGame(ctx, 10, anna)
	require.NoError(t, err)
	oldID, oldRound := old.ID, old.State.RoundID()

	s.storage.Delete(10)

	fresh, err := s.NewGame(ctx, 10, anna)
	require.NoError(t, err)
	require.Equal(t, oldRound, fresh.State.RoundID())

	_, _, err = s.Answer(ctx, 10, oldID, oldRound, 0)
	assert.ErrorIs(t, err, ErrStaleRound)
	assert.Equal(t, entities.PhaseAwaitingInput, fresh.State.Phase())
	assert.Equal(t, 0, fresh.State.RoundsPlayed())
}

func TestGameService_TapFromRestartedGameRejected(t *testing.T) {
	s := newTestService(storage.NewResultStorage(), 8)
	ctx := context.Background()

	session, err := s.NewGame(ctx, 10, anna)
	require.NoError(t, err)
	oldID := session.ID
	playRound(t, s, 10, true)

	_, err = s.NewGame(ctx, 10, anna)
	require.NoError(t, err)

	_, _, err = s.Answer(ctx, 10, oldID, session.State.RoundID(), 0)
	assert.ErrorIs(t, err, ErrStaleRound)
	assert.Equal(t, 0, session.State.RoundsPlayed())
}

func TestGameService_AnswerTwiceRejected(t *testing.T) {
	s := newTestService(storage.NewResultStorage(), 8)
	ctx := context.Background()

	session, err := s.NewGame(ctx, 10, anna)
	require.NoError(t, err)
	round := session.State.RoundID()

	_, _, err = s.Answer(ctx, 10, session.ID, round, 0)
	require.NoError(t, err)

	_, _, err = s.Answer(ctx, 10, session.ID, round, 1)
	var selErr *entities.InvalidSelectionError
	assert.ErrorAs(t, err, &selErr)
	assert.Equal(t, 1, session.State.RoundsPlayed())
}

func TestGameService_AnswerWithoutGame(t *testing.T) {
	s := newTestService(storage.NewResultStorage(), 8)

	_, _, err := s.Answer(context.Background(), 10, uuid.New(), 1, 0)
	assert.ErrorIs(t, err, ErrGameNotFound)

	_, err = s.Continue(context.Background(), 10, uuid.New(), 1)
	assert.ErrorIs(t, err, ErrGameNotFound)
}

func TestGameService_ContinueBeforeAnswer(t *testing.T) {
	s := newTestService(storage.NewResultStorage(), 8)

	session, err := s.NewGame(context.Background(), 10, anna)
	require.NoError(t, err)

	_, err = s.Continue(context.Background(), 10, session.ID, session.State.RoundID())
	assert.ErrorIs(t, err, entities.ErrRoundNotAnswered)
}

func TestGameService_FullGameSavesResult(t *testing.T) {
	results := storage.NewResultStorage()
	s := newTestService(results, 8)
	ctx := context.Background()

	session, err := s.NewGame(ctx, 10, anna)
	require.NoError(t, err)

	pattern := []bool{true, true, false, true, false, true, true, false}
	var last *entities.AnswerResult
	for _, ok := range pattern {
		last = playRound(t, s, 10, ok)
	}

	require.True(t, last.GameOver)
	assert.Equal(t, 2, last.Score)

	_, err = s.Continue(ctx, 10, session.ID, last.RoundID)
	assert.ErrorIs(t, err, entities.ErrGameOver)

	stats, err := s.PlayerStats(ctx, anna.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.GamesPlayed)
	assert.Equal(t, 2, stats.BestScore)
	assert.Equal(t, 5, stats.CorrectAnswers)
	assert.Equal(t, 8, stats.TotalRounds)

	top, err := s.Leaderboard(ctx, 10)
	require.NoError(t, err)
	require.Len(t, top, 1)
	assert.Equal(t, "@anna", top[0].DisplayName())
}

func TestGameService_SaveFailureDoesNotHideAnswer(t *testing.T) {
	results := &failingResults{}
	s := newTestService(results, 1)

	_, err := s.NewGame(context.Background(), 10, anna)
	require.NoError(t, err)

	res := playRound(t, s, 10, true)
	assert.True(t, res.GameOver)
	assert.Equal(t, 1, results.saves)

	_, err = s.PlayerStats(context.Background(), anna.ID)
	assert.Error(t, err)
}

func TestGameService_SweepIdle(t *testing.T) {
	s := newTestService(storage.NewResultStorage(), 8)

	_, err := s.NewGame(context.Background(), 10, anna)
	require.NoError(t, err)

	assert.Equal(t, 0, s.SweepIdle())

	s.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	assert.Equal(t, 1, s.SweepIdle())

	_, err = s.Current(10)
	assert.ErrorIs(t, err, ErrGameNotFound)
}

func TestGameService_StartSweeperInvalidSchedule(t *testing.T) {
	s := newTestService(storage.NewResultStorage(), 8)

	err := s.StartSweeper(context.Background(), "not a schedule")
	assert.Error(t, err)
}

func TestGameService_StartSweeperStopsWithContext(t *testing.T) {
	s := newTestService(storage.NewResultStorage(), 8)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- s.StartSweeper(ctx, "@every 1h") }()

	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("sweeper did not stop")
	}
}
