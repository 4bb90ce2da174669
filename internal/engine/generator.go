package engine

import (
	"context"

	"github.com/thom899g/ai-driven-revenue-innovation-engine/internal/models"
)

// Generator produces a revenue strategy
type Generator interface {
	Generate(ctx context.Context) (*models.Strategy, error)
}

// Recommendation produced by the fixed generator
const (
	FixedRecommendation = "Implement subscription-based pricing with tiered features."
	FixedConfidence     = 0.85
	FixedRisk           = "Low risk"
)

// FixedDatasets are the datasets the fixed recommendation claims as its source
var FixedDatasets = []string{"customer_behavior", "market_trends"}

// FixedGenerator stands in for a model: every call returns the same
// recommendation with a fresh id and timestamp.
type FixedGenerator struct{}

// Generate returns the fixed recommendation
func (FixedGenerator) Generate(ctx context.Context) (*models.Strategy, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return models.NewStrategy(FixedRecommendation, FixedConfidence, FixedRisk, FixedDatasets)
}
