package repository

import (
	"fmt"

	"github.com/thom899g/ai-driven-revenue-innovation-engine/internal/database"
)

// Repositories holds all repository implementations
type Repositories struct {
	FinancialRecord FinancialRecordRepository
	StrategyLog     StrategyLogRepository
}

// NewRepositories creates and returns all repository implementations
func NewRepositories(db *database.DB) (*Repositories, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is required")
	}

	return &Repositories{
		FinancialRecord: NewPostgresFinancialRecordRepository(db),
		StrategyLog:     NewPostgresStrategyLogRepository(db),
	}, nil
}
