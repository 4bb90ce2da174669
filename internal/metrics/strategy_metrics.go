// Package metrics defines strategy-specific metrics.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Strategy-specific counters
var (
	StrategiesGeneratedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "strategies_generated_total",
		Help:      "Total number of generated strategies by outcome",
	}, []string{"outcome"})

	StrategyValidationsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "strategy_validations_total",
		Help:      "Total number of strategy validations by result",
	}, []string{"result"})

	StrategyExecutionsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "strategy_executions_total",
		Help:      "Total number of execution decisions by outcome",
	}, []string{"outcome"})

	NotificationsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "collaborator_notifications_total",
		Help:      "Total number of collaborator notifications by collaborator and outcome",
	}, []string{"collaborator", "outcome"})
)

// Strategy-specific histograms
var (
	StrategyConfidenceScore = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "strategy_confidence_score",
		Help:      "Confidence scores of generated strategies",
		Buckets:   []float64{0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8, 0.9, 1.0},
	})
)

// Strategy-specific gauges
var (
	StrategyLogSize = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "strategy_log_entries",
		Help:      "Number of entries held in the in-memory strategy log",
	})

	KnowledgeBaseEntries = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "knowledge_base_entries",
		Help:      "Number of strategies held by the knowledge base",
	})

	DashboardSubscribers = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "dashboard_subscribers",
		Help:      "Number of connected dashboard stream clients",
	})
)

// RecordStrategyGenerated records a generation attempt.
func RecordStrategyGenerated(outcome string, confidence float64) {
	StrategiesGeneratedTotal.WithLabelValues(outcome).Inc()
	if outcome == "success" {
		StrategyConfidenceScore.Observe(confidence)
	}
}

// RecordValidation records a validation result.
func RecordValidation(valid bool) {
	result := "invalid"
	if valid {
		result = "valid"
	}
	StrategyValidationsTotal.WithLabelValues(result).Inc()
}

// RecordExecution records an execution decision: executed, skipped or failed.
func RecordExecution(outcome string) {
	StrategyExecutionsTotal.WithLabelValues(outcome).Inc()
}

// RecordNotification records a collaborator notification outcome.
func RecordNotification(collaborator string, delivered bool) {
	outcome := "failed"
	if delivered {
		outcome = "delivered"
	}
	NotificationsTotal.WithLabelValues(collaborator, outcome).Inc()
}

// UpdateStrategyLogSize updates the strategy log gauge.
func UpdateStrategyLogSize(size int) {
	StrategyLogSize.Set(float64(size))
}
