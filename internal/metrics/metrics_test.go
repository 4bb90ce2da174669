package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsRegistry(t *testing.T) {
	registry := GetRegistry()

	assert.NotNil(t, registry)
	assert.IsType(t, &prometheus.Registry{}, registry)
	assert.Same(t, registry, InitRegistry())
}

func TestRecordPipelineRun(t *testing.T) {
	InitRegistry()
	before := testutil.ToFloat64(PipelineRunsTotal.WithLabelValues("success"))
	rowsBefore := testutil.ToFloat64(PipelineRowsProcessedTotal)

	RecordPipelineRun("success", 2, 0.01)
	RecordPipelineRun("failed", 5, 0.01)

	assert.Equal(t, before+1, testutil.ToFloat64(PipelineRunsTotal.WithLabelValues("success")))
	assert.Equal(t, rowsBefore+2, testutil.ToFloat64(PipelineRowsProcessedTotal))
}

func TestRecordNotification(t *testing.T) {
	InitRegistry()
	before := testutil.ToFloat64(NotificationsTotal.WithLabelValues("revenue_dashboard", "failed"))

	RecordNotification("revenue_dashboard", false)

	assert.Equal(t, before+1, testutil.ToFloat64(NotificationsTotal.WithLabelValues("revenue_dashboard", "failed")))
}

func TestRecordValidation(t *testing.T) {
	InitRegistry()
	before := testutil.ToFloat64(StrategyValidationsTotal.WithLabelValues("valid"))

	RecordValidation(true)

	assert.Equal(t, before+1, testutil.ToFloat64(StrategyValidationsTotal.WithLabelValues("valid")))
}

func TestRecordCircuitBreakerTrip(t *testing.T) {
	InitRegistry()
	before := testutil.ToFloat64(HTTPClientCircuitBreakerTripsTotal)

	RecordCircuitBreakerTrip()

	assert.Equal(t, before+1, testutil.ToFloat64(HTTPClientCircuitBreakerTripsTotal))

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Contains(t, rec.Body.String(), "revenue_engine_http_client_circuit_breaker_trips_total")
}

func TestHandlerServesMetrics(t *testing.T) {
	RecordExecution("executed")
	UpdateStrategyLogSize(3)

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "revenue_engine_strategy_executions_total")
	assert.Contains(t, rec.Body.String(), "revenue_engine_strategy_log_entries 3")
}
