// Package metrics provides centralized Prometheus metrics registry for the revenue engine.
package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "revenue_engine"

// Global registry instance
var (
	registry *prometheus.Registry
	once     sync.Once
)

// Pipeline metrics
var (
	PipelineRunsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "pipeline_runs_total",
		Help:      "Total number of pipeline runs by outcome",
	}, []string{"status"})
	PipelineStageFailuresTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "pipeline_stage_failures_total",
		Help:      "Total number of failed pipeline stages",
	}, []string{"stage"})
	PipelineRowsProcessedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "pipeline_rows_processed_total",
		Help:      "Total number of rows that went through a full pipeline run",
	})
	PipelineRunDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "pipeline_run_duration_seconds",
		Help:      "Duration of pipeline runs in seconds",
		Buckets:   prometheus.DefBuckets,
	})
	HTTPClientCircuitBreakerTripsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_client_circuit_breaker_trips_total",
		Help:      "Total number of outbound HTTP client circuit breaker trips",
	})
)

// InitRegistry initializes the global Prometheus registry.
func InitRegistry() *prometheus.Registry {
	once.Do(func() {
		registry = prometheus.NewRegistry()

		registry.MustRegister(PipelineRunsTotal)
		registry.MustRegister(PipelineStageFailuresTotal)
		registry.MustRegister(PipelineRowsProcessedTotal)
		registry.MustRegister(PipelineRunDuration)
		registry.MustRegister(HTTPClientCircuitBreakerTripsTotal)

		registry.MustRegister(StrategiesGeneratedTotal)
		registry.MustRegister(StrategyValidationsTotal)
		registry.MustRegister(StrategyExecutionsTotal)
		registry.MustRegister(StrategyConfidenceScore)
		registry.MustRegister(NotificationsTotal)
		registry.MustRegister(StrategyLogSize)
		registry.MustRegister(KnowledgeBaseEntries)
		registry.MustRegister(DashboardSubscribers)
	})
	return registry
}

// GetRegistry returns the global Prometheus registry.
func GetRegistry() *prometheus.Registry {
	return InitRegistry()
}

// Handler returns the Prometheus HTTP handler.
func Handler() http.Handler {
	return promhttp.HandlerFor(GetRegistry(), promhttp.HandlerOpts{})
}

// RecordPipelineRun records the outcome of a pipeline run.
func RecordPipelineRun(status string, rows int, durationSeconds float64) {
	PipelineRunsTotal.WithLabelValues(status).Inc()
	PipelineRunDuration.Observe(durationSeconds)
	if status == "success" {
		PipelineRowsProcessedTotal.Add(float64(rows))
	}
}

// RecordStageFailure records a failed pipeline stage.
func RecordStageFailure(stage string) {
	PipelineStageFailuresTotal.WithLabelValues(stage).Inc()
}

// RecordCircuitBreakerTrip records an outbound HTTP client circuit breaker trip.
func RecordCircuitBreakerTrip() {
	HTTPClientCircuitBreakerTripsTotal.Inc()
}
