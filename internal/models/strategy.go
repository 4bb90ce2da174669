package models

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
)

// SourceData names the datasets a strategy was derived from.
type SourceData struct {
	Datasets []string `json:"datasets"`
}

// Strategy is a revenue recommendation with a confidence score and risk label.
// ConfidenceScore is a pointer so a decoded strategy can tell an absent score
// from a zero score.
type Strategy struct {
	ID              uuid.UUID  `json:"id"`
	Timestamp       time.Time  `json:"timestamp"`
	Recommendation  string     `json:"recommendation" validate:"required"`
	ConfidenceScore *float64   `json:"confidence_score" validate:"required,gte=0,lte=1"`
	RiskAssessment  string     `json:"risk_assessment"`
	SourceData      SourceData `json:"source_data"`
}

// NewStrategy creates a strategy, enforcing the confidence range and a
// non-empty recommendation.
func NewStrategy(recommendation string, confidence float64, risk string, datasets []string) (*Strategy, error) {
	if recommendation == "" {
		return nil, ErrRecommendationMissing
	}
	if math.IsNaN(confidence) || confidence < 0 || confidence > 1 {
		return nil, fmt.Errorf("%w: %v", ErrConfidenceOutOfRange, confidence)
	}

	return &Strategy{
		ID:              uuid.New(),
		Timestamp:       time.Now().UTC(),
		Recommendation:  recommendation,
		ConfidenceScore: &confidence,
		RiskAssessment:  risk,
		SourceData:      SourceData{Datasets: append([]string(nil), datasets...)},
	}, nil
}

// Confidence returns the confidence score and whether it is present.
func (s *Strategy) Confidence() (float64, bool) {
	if s == nil || s.ConfidenceScore == nil {
		return 0, false
	}
	return *s.ConfidenceScore, true
}

// StrategyLogEntry records one action taken on a strategy.
type StrategyLogEntry struct {
	Timestamp time.Time `db:"logged_at" json:"timestamp"`
	Action    string    `db:"action" json:"action"`
	Details   Strategy  `db:"details" json:"details"`
}

// MonitoringMetrics is the execution report for a strategy.
type MonitoringMetrics struct {
	StrategyID    string  `json:"strategy_id"`
	ExecutionTime int     `json:"execution_time"`
	SuccessRate   float64 `json:"success_rate"`
	ROIPercentage float64 `json:"roi_percentage"`
}

// RunMetrics summarises one pipeline run.
type RunMetrics struct {
	RunID           uuid.UUID `json:"run_id"`
	RowsProcessed   int       `json:"rows_processed"`
	DurationSeconds float64   `json:"duration_seconds"`
	StartedAt       time.Time `json:"started_at"`
	FinishedAt      time.Time `json:"finished_at"`
}
