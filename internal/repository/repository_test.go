package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thom899g/ai-driven-revenue-innovation-engine/internal/database"
	"github.com/thom899g/ai-driven-revenue-innovation-engine/internal/models"
)

func TestNewRepositoriesRequiresDB(t *testing.T) {
	_, err := NewRepositories(nil)
	assert.Error(t, err)
}

// TestFinancialRecordRepositoryRoundTrip requires TEST_DATABASE_URL
func TestFinancialRecordRepositoryRoundTrip(t *testing.T) {
	db := database.SetupTestDB(t)
	repos, err := NewRepositories(db)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	rec := models.NewFinancialRecord("2023-10-01", decimal.NewFromInt(1000), decimal.NewFromInt(500))
	require.NoError(t, rec.ComputeProfit())
	partial := models.FinancialRecord{Timestamp: "2023-10-02", Revenue: decimal.NewNullDecimal(decimal.NewFromInt(10))}

	runID := uuid.New()
	require.NoError(t, repos.FinancialRecord.InsertBatch(ctx, runID, models.RecordSet{rec, partial}))

	loaded, err := repos.FinancialRecord.GetByRunID(ctx, runID)
	require.NoError(t, err)
	require.Len(t, loaded, 2)
	assert.True(t, loaded[0].Profit.Decimal.Equal(decimal.NewFromInt(500)))
	assert.False(t, loaded[1].Costs.Valid)
}

// TestStrategyLogRepositoryRecent requires TEST_DATABASE_URL
func TestStrategyLogRepositoryRecent(t *testing.T) {
	db := database.SetupTestDB(t)
	repos, err := NewRepositories(db)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	base := time.Now().UTC().Truncate(time.Millisecond)
	for i := 0; i < 3; i++ {
		s, err := models.NewStrategy("Tiered pricing", 0.9, "Low risk", []string{"market_trends"})
		require.NoError(t, err)
		require.NoError(t, repos.StrategyLog.Append(ctx, models.StrategyLogEntry{
			Timestamp: base.Add(time.Duration(i) * time.Second),
			Action:    "execute",
			Details:   *s,
		}))
	}

	recent, err := repos.StrategyLog.GetRecent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.True(t, recent[0].Timestamp.After(recent[1].Timestamp))
	assert.Equal(t, "Tiered pricing", recent[0].Details.Recommendation)
}
