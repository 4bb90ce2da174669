package pipeline

import (
	"context"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/thom899g/ai-driven-revenue-innovation-engine/internal/models"
	"github.com/thom899g/ai-driven-revenue-innovation-engine/internal/repository"
)

// Loader is the target storage of a pipeline run
type Loader interface {
	Name() string
	Load(ctx context.Context, runID uuid.UUID, records models.RecordSet) error
}

// LogLoader persists nothing; it only reports what would have been loaded.
type LogLoader struct {
	logger *logrus.Entry
}

// NewLogLoader creates a loader that only logs
func NewLogLoader(logger *logrus.Logger) *LogLoader {
	return &LogLoader{logger: logger.WithField("loader", "log")}
}

// Name returns the loader name
func (l *LogLoader) Name() string {
	return "log"
}

// Load logs the batch and always succeeds
func (l *LogLoader) Load(ctx context.Context, runID uuid.UUID, records models.RecordSet) error {
	l.logger.WithFields(logrus.Fields{
		"run_id": runID,
		"rows":   len(records),
	}).Debug("Records accepted by log loader")
	return nil
}

// RepositoryLoader writes records to PostgreSQL
type RepositoryLoader struct {
	repo repository.FinancialRecordRepository
}

// NewRepositoryLoader creates a loader backed by a financial record repository
func NewRepositoryLoader(repo repository.FinancialRecordRepository) *RepositoryLoader {
	return &RepositoryLoader{repo: repo}
}

// Name returns the loader name
func (l *RepositoryLoader) Name() string {
	return "postgres"
}

// Load inserts the batch
func (l *RepositoryLoader) Load(ctx context.Context, runID uuid.UUID, records models.RecordSet) error {
	return l.repo.InsertBatch(ctx, runID, records)
}
