package postgres

import (
	"context"
	"fmt"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS players (
		user_id    BIGINT PRIMARY KEY,
		username   TEXT NOT NULL DEFAULT '',
		first_name TEXT NOT NULL DEFAULT '',
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS game_results (
		id              UUID PRIMARY KEY,
		user_id         BIGINT NOT NULL REFERENCES players (user_id) ON DELETE CASCADE,
		chat_id         BIGINT NOT NULL,
		score           INT NOT NULL,
		correct_answers INT NOT NULL,
		total_rounds    INT NOT NULL,
		started_at      TIMESTAMPTZ NOT NULL,
		finished_at     TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS game_results_user_id_idx ON game_results (user_id, finished_at DESC)`,
}

// EnsureSchema creates the tables used by the bot if they do not exist yet.
func EnsureSchema(ctx context.Context, db DBTX) error {
	for _, stmt := range schema {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}
