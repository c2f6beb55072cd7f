package db

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"charm-money/internal/config"
)

// NewPool construye y devuelve un pool de conexiones configurado.
func NewPool(ctx context.Context, cfg *config.Config) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}

	poolCfg.MaxConns = 10
	poolCfg.MinConns = 1
	poolCfg.MaxConnLifetime = 30 * time.Minute
	poolCfg.MaxConnIdleTime = 5 * time.Minute
	poolCfg.HealthCheckPeriod = 30 * time.Second
	poolCfg.ConnConfig.ConnectTimeout = 5 * time.Second

	return pgxpool.NewWithConfig(ctx, poolCfg)
}

// Ping verifica conectividad con la base de datos.
func Ping(ctx context.Context, pool *pgxpool.Pool) error {
	return pool.Ping(ctx)
}

const schema = `
CREATE TABLE IF NOT EXISTS cmi_results (
	code         TEXT PRIMARY KEY,
	email        TEXT NOT NULL,
	subscribe    BOOLEAN NOT NULL DEFAULT FALSE,
	locale       TEXT NOT NULL DEFAULT 'en',
	answers      JSONB NOT NULL,
	trait_scores JSONB NOT NULL,
	result       JSONB NOT NULL,
	created_at   TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS cmi_results_email_idx ON cmi_results (email);
`

// EnsureSchema crea la tabla de resultados si no existe.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, schema)
	return err
}
