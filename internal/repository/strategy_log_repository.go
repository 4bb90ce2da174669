package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/thom899g/ai-driven-revenue-innovation-engine/internal/database"
	"github.com/thom899g/ai-driven-revenue-innovation-engine/internal/models"
)

// PostgresStrategyLogRepository implements StrategyLogRepository for PostgreSQL
type PostgresStrategyLogRepository struct {
	db *database.DB
}

// NewPostgresStrategyLogRepository creates a new strategy log repository
func NewPostgresStrategyLogRepository(db *database.DB) StrategyLogRepository {
	return &PostgresStrategyLogRepository{db: db}
}

// Append inserts a log entry
func (r *PostgresStrategyLogRepository) Append(ctx context.Context, entry models.StrategyLogEntry) error {
	query := `
		INSERT INTO strategy_logs (strategy_id, action, details, logged_at)
		VALUES ($1, $2, $3, $4)
	`

	details, err := json.Marshal(entry.Details)
	if err != nil {
		return fmt.Errorf("failed to encode strategy details: %w", err)
	}

	if _, err := r.db.GetPool().Exec(ctx, query, entry.Details.ID, entry.Action, details, entry.Timestamp); err != nil {
		return fmt.Errorf("failed to append strategy log: %w", err)
	}

	return nil
}

// GetRecent retrieves the newest entries, newest first
func (r *PostgresStrategyLogRepository) GetRecent(ctx context.Context, limit int) ([]models.StrategyLogEntry, error) {
	query := `
		SELECT action, details, logged_at
		FROM strategy_logs
		ORDER BY logged_at DESC, id DESC
		LIMIT $1
	`

	rows, err := r.db.GetPool().Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query strategy logs: %w", err)
	}
	defer rows.Close()

	var entries []models.StrategyLogEntry
	for rows.Next() {
		var (
			entry   models.StrategyLogEntry
			details []byte
		)
		if err := rows.Scan(&entry.Action, &details, &entry.Timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan strategy log: %w", err)
		}
		if err := json.Unmarshal(details, &entry.Details); err != nil {
			return nil, fmt.Errorf("failed to decode strategy details: %w", err)
		}
		entries = append(entries, entry)
	}

	return entries, rows.Err()
}
