package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/thom899g/ai-driven-revenue-innovation-engine/internal/models"
)

// FinancialRecordRepository defines the interface for loaded pipeline rows
type FinancialRecordRepository interface {
	InsertBatch(ctx context.Context, runID uuid.UUID, records models.RecordSet) error
	GetByRunID(ctx context.Context, runID uuid.UUID) (models.RecordSet, error)
}

// StrategyLogRepository defines the interface for persisted strategy log entries
type StrategyLogRepository interface {
	Append(ctx context.Context, entry models.StrategyLogEntry) error
	GetRecent(ctx context.Context, limit int) ([]models.StrategyLogEntry, error)
}
