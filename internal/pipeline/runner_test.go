package pipeline

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thom899g/ai-driven-revenue-innovation-engine/internal/config"
	"github.com/thom899g/ai-driven-revenue-innovation-engine/internal/datasource"
	"github.com/thom899g/ai-driven-revenue-innovation-engine/internal/logger"
	"github.com/thom899g/ai-driven-revenue-innovation-engine/internal/models"
)

type stubSource struct {
	records models.RecordSet
	err     error
}

func (s stubSource) Name() string { return "stub" }

func (s stubSource) Fetch(ctx context.Context) (models.RecordSet, error) {
	return s.records, s.err
}

type recordingLoader struct {
	runIDs  []uuid.UUID
	batches []models.RecordSet
	err     error
}

func (l *recordingLoader) Name() string { return "recording" }

func (l *recordingLoader) Load(ctx context.Context, runID uuid.UUID, records models.RecordSet) error {
	if l.err != nil {
		return l.err
	}
	l.runIDs = append(l.runIDs, runID)
	l.batches = append(l.batches, records)
	return nil
}

func newTestRunner(source datasource.Source, loader Loader) *Runner {
	return NewRunner(config.PipelineConfig{Loader: "log"}, source, loader, logger.Discard())
}

func TestTransformOfSampleComputesProfit(t *testing.T) {
	runner := newTestRunner(datasource.NewSampleSource(), NewLogLoader(logger.Discard()))
	ctx := context.Background()

	extracted, err := runner.Extract(ctx)
	require.NoError(t, err)

	transformed, err := runner.Transform(ctx, extracted)
	require.NoError(t, err)
	require.Len(t, transformed, 2)

	expected := []int64{500, 800}
	for i, rec := range transformed {
		require.True(t, rec.Profit.Valid)
		assert.True(t, rec.Profit.Decimal.Equal(decimal.NewFromInt(expected[i])), "row %d profit %s", i, rec.Profit.Decimal)
		assert.True(t, rec.Profit.Decimal.Equal(rec.Revenue.Decimal.Sub(rec.Costs.Decimal)))
	}

	assert.False(t, extracted[0].Profit.Valid, "transform must not mutate its input")
}

func TestTransformMissingField(t *testing.T) {
	tests := []struct {
		name   string
		record models.FinancialRecord
		field  string
	}{
		{
			name:   "missing revenue",
			record: models.FinancialRecord{Timestamp: "2023-10-01", Costs: decimal.NewNullDecimal(decimal.NewFromInt(1))},
			field:  "revenue",
		},
		{
			name:   "missing costs",
			record: models.FinancialRecord{Timestamp: "2023-10-01", Revenue: decimal.NewNullDecimal(decimal.NewFromInt(1))},
			field:  "costs",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner := newTestRunner(datasource.NewSampleSource(), NewLogLoader(logger.Discard()))

			_, err := runner.Transform(context.Background(), models.RecordSet{tt.record})
			require.Error(t, err)
			assert.ErrorIs(t, err, models.ErrTransformation)
			assert.ErrorIs(t, err, models.ErrMissingField)
			assert.Contains(t, err.Error(), tt.field)
		})
	}
}

func TestExtractFailureWrapsCause(t *testing.T) {
	cause := errors.New("connection refused")
	runner := newTestRunner(stubSource{err: cause}, &recordingLoader{})

	_, err := runner.Extract(context.Background())
	assert.ErrorIs(t, err, models.ErrExtraction)
	assert.ErrorIs(t, err, cause)
}

func TestRunReportsMetrics(t *testing.T) {
	loader := &recordingLoader{}
	runner := newTestRunner(datasource.NewSampleSource(), loader)

	result, err := runner.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, result.RowsProcessed)
	assert.GreaterOrEqual(t, result.DurationSeconds, 0.0)
	assert.False(t, result.FinishedAt.Before(result.StartedAt))

	require.Len(t, loader.batches, 1)
	assert.Equal(t, result.RunID, loader.runIDs[0])
	assert.True(t, loader.batches[0][1].Profit.Decimal.Equal(decimal.NewFromInt(800)))
}

func TestRunPropagatesStageErrors(t *testing.T) {
	loadErr := errors.New("disk full")

	tests := []struct {
		name   string
		source datasource.Source
		loader *recordingLoader
		stage  error
	}{
		{
			name:   "extraction",
			source: stubSource{err: errors.New("timeout")},
			loader: &recordingLoader{},
			stage:  models.ErrExtraction,
		},
		{
			name:   "transformation",
			source: stubSource{records: models.RecordSet{{Timestamp: "2023-10-01"}}},
			loader: &recordingLoader{},
			stage:  models.ErrTransformation,
		},
		{
			name:   "loading",
			source: datasource.NewSampleSource(),
			loader: &recordingLoader{err: loadErr},
			stage:  models.ErrLoad,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner := newTestRunner(tt.source, tt.loader)

			result, err := runner.Run(context.Background())
			require.Error(t, err)
			assert.Nil(t, result)
			assert.ErrorIs(t, err, tt.stage)
			assert.Empty(t, tt.loader.batches)
		})
	}
}

func TestLoadUsesFreshRunID(t *testing.T) {
	loader := &recordingLoader{}
	runner := newTestRunner(datasource.NewSampleSource(), loader)

	require.NoError(t, runner.Load(context.Background(), models.RecordSet{}))
	require.NoError(t, runner.Load(context.Background(), models.RecordSet{}))

	require.Len(t, loader.runIDs, 2)
	assert.NotEqual(t, loader.runIDs[0], loader.runIDs[1])
}

func TestNewFromConfig(t *testing.T) {
	runner, err := NewFromConfig(config.PipelineConfig{
		Source: config.SourceConfig{Type: "sample"},
		Loader: "log",
	}, nil, logger.Discard())
	require.NoError(t, err)
	assert.Equal(t, "log", runner.Config().Loader)

	_, err = NewFromConfig(config.PipelineConfig{
		Source: config.SourceConfig{Type: "sample"},
		Loader: "postgres",
	}, nil, logger.Discard())
	assert.Error(t, err)
}
