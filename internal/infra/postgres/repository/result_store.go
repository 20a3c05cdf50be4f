package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Goretzky/GuessTheFlag/internal/domain/entities"
	"github.com/Goretzky/GuessTheFlag/internal/infra/postgres"
)

// ResultStore persists completed games in PostgreSQL.
type ResultStore struct {
	tr   *postgres.Transactor
	repo *ResultRepository
}

func NewResultStore(pool *pgxpool.Pool) *ResultStore {
	return &ResultStore{
		tr:   postgres.NewTransactor(pool),
		repo: NewResultRepository(pool),
	}
}

// Save writes the player and the result atomically.
func (s *ResultStore) Save(ctx context.Context, res *entities.GameResult) error {
	return s.tr.WithinTx(ctx, func(ctx context.Context, tx pgx.Tx) error {
		repo := NewResultRepository(tx)

		player := &entities.Player{
			ID:        res.UserID,
			Username:  res.Username,
			FirstName: res.FirstName,
			UpdatedAt: time.Now(),
		}
		if err := repo.UpsertPlayer(ctx, player); err != nil {
			return err
		}

		return repo.InsertResult(ctx, res)
	})
}

func (s *ResultStore) GetPlayerStats(ctx context.Context, userID int64) (*entities.PlayerStats, error) {
	return s.repo.GetPlayerStats(ctx, userID)
}

func (s *ResultStore) GetTop(ctx context.Context, limit int) ([]*entities.LeaderboardEntry, error) {
	return s.repo.GetTop(ctx, limit)
}
