package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"

	"bot-analytics-service/internal/model"
)

// BotRepository defines database operations for bot configurations.
type BotRepository interface {
	// Create inserts a new configuration. Fails with ErrDuplicate when
	// bot_id or token is already taken.
	Create(ctx context.Context, cfg model.BotConfig) (model.BotConfig, error)

	// GetByID returns the configuration or (nil, nil) when absent.
	GetByID(ctx context.Context, botID string) (*model.BotConfig, error)

	// GetByToken returns the configuration or (nil, nil) when absent.
	GetByToken(ctx context.Context, token string) (*model.BotConfig, error)

	// GetAll returns every configuration, newest first.
	GetAll(ctx context.Context) ([]model.BotConfig, error)

	// Update applies name, description and is_active and returns the
	// post-update record, or (nil, nil) when the bot is unknown.
	Update(ctx context.Context, cfg model.BotConfig) (*model.BotConfig, error)

	// Delete removes the bot and its interactions atomically. Reports
	// whether a bot record was actually removed.
	Delete(ctx context.Context, botID string) (bool, error)
}

type botRepository struct {
	db  DB
	log zerolog.Logger
}

// NewBotRepository creates a BotRepository backed by PostgreSQL.
func NewBotRepository(db DB, log zerolog.Logger) BotRepository {
	return &botRepository{db: db, log: log.With().Str("component", "bot_repository").Logger()}
}

const (
	insertBotQuery = `
	INSERT INTO bot_configs (bot_id, name, token, description, created_at, is_active)
	VALUES ($1, $2, $3, $4, $5, $6)
`
	getBotByIDQuery    = `SELECT bot_id, name, token, description, created_at, is_active FROM bot_configs WHERE bot_id = $1`
	getBotByTokenQuery = `SELECT bot_id, name, token, description, created_at, is_active FROM bot_configs WHERE token = $1`
	listBotsQuery      = `SELECT bot_id, name, token, description, created_at, is_active FROM bot_configs ORDER BY created_at DESC`

	// bot_id, token and created_at are immutable after creation.
	updateBotQuery = `
	UPDATE bot_configs SET name = $2, description = $3, is_active = $4
	WHERE bot_id = $1
	RETURNING bot_id, name, token, description, created_at, is_active
`
	deleteInteractionsQuery = `DELETE FROM user_interactions WHERE bot_id = $1`
	deleteBotQuery          = `DELETE FROM bot_configs WHERE bot_id = $1`
)

func (r *botRepository) Create(ctx context.Context, cfg model.BotConfig) (model.BotConfig, error) {
	if cfg.CreatedAt.IsZero() {
		cfg.CreatedAt = time.Now()
	}

	_, err := r.db.Exec(ctx, insertBotQuery,
		cfg.BotID,
		cfg.Name,
		cfg.Token,
		cfg.Description,
		cfg.CreatedAt,
		cfg.IsActive,
	)
	if err != nil {
		if constraint, ok := uniqueViolation(err); ok {
			field := "token"
			if constraint == "bot_configs_pkey" {
				field = "bot_id"
			}
			return model.BotConfig{}, fmt.Errorf("%w: %s already exists", ErrDuplicate, field)
		}
		r.log.Error().Err(err).Str("bot_id", cfg.BotID).Msg("create bot failed")
		return model.BotConfig{}, fmt.Errorf("create bot: %w", err)
	}

	return cfg, nil
}

func (r *botRepository) GetByID(ctx context.Context, botID string) (*model.BotConfig, error) {
	return r.getOne(ctx, "get bot by id", getBotByIDQuery, botID)
}

func (r *botRepository) GetByToken(ctx context.Context, token string) (*model.BotConfig, error) {
	return r.getOne(ctx, "get bot by token", getBotByTokenQuery, token)
}

func (r *botRepository) getOne(ctx context.Context, op, query string, arg any) (*model.BotConfig, error) {
	var cfg model.BotConfig
	err := r.db.QueryRow(ctx, query, arg).Scan(
		&cfg.BotID, &cfg.Name, &cfg.Token, &cfg.Description, &cfg.CreatedAt, &cfg.IsActive,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error().Err(err).Msg(op + " failed")
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &cfg, nil
}

func (r *botRepository) GetAll(ctx context.Context) ([]model.BotConfig, error) {
	rows, err := r.db.Query(ctx, listBotsQuery)
	if err != nil {
		r.log.Error().Err(err).Msg("list bots failed")
		return nil, fmt.Errorf("list bots: %w", err)
	}
	defer rows.Close()

	var configs []model.BotConfig
	for rows.Next() {
		var cfg model.BotConfig
		if err := rows.Scan(&cfg.BotID, &cfg.Name, &cfg.Token, &cfg.Description, &cfg.CreatedAt, &cfg.IsActive); err != nil {
			return nil, fmt.Errorf("scan bot: %w", err)
		}
		configs = append(configs, cfg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list bots: %w", err)
	}
	return configs, nil
}

func (r *botRepository) Update(ctx context.Context, cfg model.BotConfig) (*model.BotConfig, error) {
	var updated model.BotConfig
	err := r.db.QueryRow(ctx, updateBotQuery,
		cfg.BotID, cfg.Name, cfg.Description, cfg.IsActive,
	).Scan(&updated.BotID, &updated.Name, &updated.Token, &updated.Description, &updated.CreatedAt, &updated.IsActive)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error().Err(err).Str("bot_id", cfg.BotID).Msg("update bot failed")
		return nil, fmt.Errorf("update bot: %w", err)
	}
	return &updated, nil
}

func (r *botRepository) Delete(ctx context.Context, botID string) (bool, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return false, fmt.Errorf("delete bot: %w", err)
	}
	defer tx.Rollback(ctx)

	// The FK cascade would clean interactions up on its own; deleting them
	// explicitly inside the same transaction keeps the schema assumption
	// out of the contract.
	if _, err := tx.Exec(ctx, deleteInteractionsQuery, botID); err != nil {
		r.log.Error().Err(err).Str("bot_id", botID).Msg("delete interactions failed")
		return false, fmt.Errorf("delete interactions: %w", err)
	}

	tag, err := tx.Exec(ctx, deleteBotQuery, botID)
	if err != nil {
		r.log.Error().Err(err).Str("bot_id", botID).Msg("delete bot failed")
		return false, fmt.Errorf("delete bot: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return false, fmt.Errorf("delete bot: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}
