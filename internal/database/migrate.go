package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS financial_records (
		id          BIGSERIAL PRIMARY KEY,
		run_id      UUID NOT NULL,
		row_index   INT NOT NULL,
		record_date TEXT NOT NULL,
		revenue     NUMERIC,
		costs       NUMERIC,
		profit      NUMERIC,
		loaded_at   TIMESTAMPTZ NOT NULL DEFAULT now(),
		UNIQUE (run_id, row_index)
	)`,
	`CREATE TABLE IF NOT EXISTS strategy_logs (
		id          BIGSERIAL PRIMARY KEY,
		strategy_id UUID NOT NULL,
		action      TEXT NOT NULL,
		details     JSONB NOT NULL,
		logged_at   TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_strategy_logs_logged_at ON strategy_logs (logged_at DESC)`,
}

// Migrate creates the tables used by the pipeline loader and the strategy log store
func (db *DB) Migrate(ctx context.Context) error {
	return db.WithTransaction(ctx, func(tx pgx.Tx) error {
		for _, stmt := range schema {
			if _, err := tx.Exec(ctx, stmt); err != nil {
				return fmt.Errorf("failed to apply migration: %w", err)
			}
		}
		return nil
	})
}
