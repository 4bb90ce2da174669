package datasource

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/thom899g/ai-driven-revenue-innovation-engine/internal/models"
)

// SampleSourceName identifies the built-in sample source
const SampleSourceName = "sample"

// SampleSource returns a fixed two-row revenue table and ignores configuration.
type SampleSource struct{}

// NewSampleSource creates the sample source
func NewSampleSource() *SampleSource {
	return &SampleSource{}
}

// Name returns the name of the data source
func (s *SampleSource) Name() string {
	return SampleSourceName
}

// Fetch returns a fresh copy of the sample rows
func (s *SampleSource) Fetch(ctx context.Context) (models.RecordSet, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return models.RecordSet{
		models.NewFinancialRecord("2023-10-01", decimal.NewFromInt(1000), decimal.NewFromInt(500)),
		models.NewFinancialRecord("2023-10-02", decimal.NewFromInt(1500), decimal.NewFromInt(700)),
	}, nil
}
