package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/thom899g/ai-driven-revenue-innovation-engine/internal/database"
	"github.com/thom899g/ai-driven-revenue-innovation-engine/internal/models"
)

// PostgresFinancialRecordRepository implements FinancialRecordRepository for PostgreSQL
type PostgresFinancialRecordRepository struct {
	db *database.DB
}

// NewPostgresFinancialRecordRepository creates a new financial record repository
func NewPostgresFinancialRecordRepository(db *database.DB) FinancialRecordRepository {
	return &PostgresFinancialRecordRepository{db: db}
}

// InsertBatch stores every row of a run in one transaction, keeping row order
func (r *PostgresFinancialRecordRepository) InsertBatch(ctx context.Context, runID uuid.UUID, records models.RecordSet) error {
	query := `
		INSERT INTO financial_records (run_id, row_index, record_date, revenue, costs, profit)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	return r.db.WithTransaction(ctx, func(tx pgx.Tx) error {
		batch := &pgx.Batch{}
		for i, rec := range records {
			batch.Queue(query, runID, i, rec.Timestamp, rec.Revenue, rec.Costs, rec.Profit)
		}

		results := tx.SendBatch(ctx, batch)
		for i := range records {
			if _, err := results.Exec(); err != nil {
				results.Close()
				return fmt.Errorf("failed to insert financial record %d: %w", i, err)
			}
		}
		return results.Close()
	})
}

// GetByRunID retrieves the rows loaded by a run, in their original order
func (r *PostgresFinancialRecordRepository) GetByRunID(ctx context.Context, runID uuid.UUID) (models.RecordSet, error) {
	query := `
		SELECT record_date, revenue, costs, profit
		FROM financial_records
		WHERE run_id = $1
		ORDER BY row_index ASC
	`

	rows, err := r.db.GetPool().Query(ctx, query, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query financial records: %w", err)
	}
	defer rows.Close()

	var records models.RecordSet
	for rows.Next() {
		var rec models.FinancialRecord
		if err := rows.Scan(&rec.Timestamp, &rec.Revenue, &rec.Costs, &rec.Profit); err != nil {
			return nil, fmt.Errorf("failed to scan financial record: %w", err)
		}
		records = append(records, rec)
	}

	return records, rows.Err()
}
