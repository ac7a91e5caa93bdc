package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"bot-analytics-service/internal/config"
)

// NewPool creates a PostgreSQL connection pool configured with sane defaults.
func NewPool(ctx context.Context, cfg *config.Config) (*pgxpool.Pool, error) {
	pgxCfg, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse db config: %w", err)
	}

	pgxCfg.MinConns = cfg.DBMinConns
	pgxCfg.MaxConns = cfg.DBMaxConns
	pgxCfg.MaxConnLifetime = cfg.DBMaxConnLifetime
	pgxCfg.MaxConnIdleTime = cfg.DBMaxConnIdleTime
	pgxCfg.HealthCheckPeriod = 30 * time.Second

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}

	return pool, nil
}
