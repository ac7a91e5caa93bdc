package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// RunMigrations ensures required tables exist. This keeps the service
// self-contained without an external migration step.
func RunMigrations(ctx context.Context, pool *pgxpool.Pool) error {
	statements := []string{
		`
CREATE TABLE IF NOT EXISTS bot_configs
(
	bot_id      TEXT PRIMARY KEY,
	name        TEXT NOT NULL,
	token       TEXT NOT NULL UNIQUE,
	description TEXT,
	created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
	is_active   BOOLEAN NOT NULL DEFAULT TRUE
)`,
		`
CREATE TABLE IF NOT EXISTS user_interactions
(
	id               BIGSERIAL PRIMARY KEY,
	bot_id           TEXT NOT NULL REFERENCES bot_configs (bot_id) ON DELETE CASCADE,
	user_id          BIGINT NOT NULL,
	username         TEXT,
	first_name       TEXT,
	last_name        TEXT,
	language_code    TEXT,
	interaction_type TEXT NOT NULL,
	timestamp        TIMESTAMPTZ NOT NULL DEFAULT now(),
	message_text     TEXT
)`,
		`CREATE INDEX IF NOT EXISTS idx_interaction_bot_timestamp ON user_interactions (bot_id, timestamp)`,
		`CREATE INDEX IF NOT EXISTS idx_interaction_user_bot ON user_interactions (user_id, bot_id)`,
		`CREATE INDEX IF NOT EXISTS idx_interaction_timestamp ON user_interactions (timestamp)`,
	}

	for _, stmt := range statements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("apply migrations: %w", err)
		}
	}
	return nil
}
