package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/Goretzky/GuessTheFlag/internal/domain/entities"
	"github.com/Goretzky/GuessTheFlag/internal/infra/postgres"
)

// ResultRepository provides access to players and completed games in the database.
type ResultRepository struct {
	db postgres.DBTX
}

// NewResultRepository creates a new ResultRepository on top of a pool or a transaction.
func NewResultRepository(db postgres.DBTX) *ResultRepository {
	return &ResultRepository{db: db}
}

// UpsertPlayer inserts a player or refreshes the stored names.
func (r *ResultRepository) UpsertPlayer(ctx context.Context, p *entities.Player) error {
	query := `
		INSERT INTO players (user_id, username, first_name, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id) DO UPDATE SET
			username = EXCLUDED.username,
			first_name = EXCLUDED.first_name,
			updated_at = EXCLUDED.updated_at
	`

	if _, err := r.db.Exec(ctx, query, p.ID, p.Username, p.FirstName, p.UpdatedAt); err != nil {
		return fmt.Errorf("upsert player: %w", err)
	}
	return nil
}

// InsertResult stores a completed game.
func (r *ResultRepository) InsertResult(ctx context.Context, res *entities.GameResult) error {
	query := `
		INSERT INTO game_results (
			id, user_id, chat_id, score, correct_answers,
			total_rounds, started_at, finished_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.Exec(
		ctx,
		query,
		res.ID,
		res.UserID,
		res.ChatID,
		res.Score,
		res.CorrectAnswers,
		res.TotalRounds,
		res.StartedAt,
		res.FinishedAt,
	)
	if err != nil {
		return fmt.Errorf("insert game result: %w", err)
	}

	return nil
}

// GetPlayerStats aggregates all completed games of a player.
func (r *ResultRepository) GetPlayerStats(ctx context.Context, userID int64) (*entities.PlayerStats, error) {
	query := `
		SELECT
			COUNT(*),
			COALESCE(MAX(score), 0),
			COALESCE(SUM(correct_answers), 0),
			COALESCE(SUM(total_rounds), 0),
			COALESCE((
				SELECT score FROM game_results
				WHERE user_id = $1
				ORDER BY finished_at DESC
				LIMIT 1
			), 0)
		FROM game_results
		WHERE user_id = $1
	`

	stats := entities.PlayerStats{UserID: userID}
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&stats.GamesPlayed,
		&stats.BestScore,
		&stats.CorrectAnswers,
		&stats.TotalRounds,
		&stats.LastScore,
	)
	if err != nil {
		return nil, fmt.Errorf("get player stats: %w", err)
	}

	return &stats, nil
}

// GetTop returns players ordered by their best score.
func (r *ResultRepository) GetTop(ctx context.Context, limit int) ([]*entities.LeaderboardEntry, error) {
	query := `
		SELECT p.user_id, p.username, p.first_name, MAX(g.score) AS best_score, COUNT(*) AS games_played
		FROM game_results g
		JOIN players p ON p.user_id = g.user_id
		GROUP BY p.user_id, p.username, p.first_name
		ORDER BY best_score DESC, games_played ASC, p.user_id ASC
		LIMIT $1
	`

	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("get leaderboard: %w", err)
	}

	entries, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*entities.LeaderboardEntry, error) {
		var e entities.LeaderboardEntry
		err := row.Scan(&e.UserID, &e.Username, &e.FirstName, &e.BestScore, &e.GamesPlayed)
		return &e, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan leaderboard: %w", err)
	}

	return entries, nil
}
