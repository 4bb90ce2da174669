package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thom899g/ai-driven-revenue-innovation-engine/internal/logger"
)

type fakePinger struct {
	err error
}

func (f fakePinger) Ping(ctx context.Context) error {
	return f.err
}

func get(t *testing.T, s *Server, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestHealthAndLive(t *testing.T) {
	s := NewServer(Config{ServiceName: "revenue-engine", Version: "test", Logger: logger.Discard()})

	for _, path := range []string{"/health", "/live"} {
		rec := get(t, s, path)
		require.Equal(t, http.StatusOK, rec.Code, path)

		var resp HealthResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "ok", resp.Status)
		assert.Equal(t, "revenue-engine", resp.Service)
	}
}

func TestReadyReflectsState(t *testing.T) {
	s := NewServer(Config{ServiceName: "revenue-engine", Logger: logger.Discard()})

	rec := get(t, s, "/ready")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	s.SetReady(true)
	rec = get(t, s, "/ready")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestReadyRunsChecks(t *testing.T) {
	s := NewServer(Config{
		ServiceName: "revenue-engine",
		Logger:      logger.Discard(),
		DB:          fakePinger{},
	})
	s.SetReady(true)
	s.AddCheck("data_source", func(ctx context.Context) error {
		return errors.New("circuit breaker open")
	})

	rec := get(t, s, "/ready")
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var resp ReadyResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "not_ready", resp.Status)
	assert.Equal(t, "ok", resp.Checks["database"])
	assert.Equal(t, "error: circuit breaker open", resp.Checks["data_source"])
}

func TestHandleMountsExtraRoutes(t *testing.T) {
	s := NewServer(Config{ServiceName: "revenue-engine", Logger: logger.Discard()})
	s.Handle("/metrics", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	assert.Equal(t, http.StatusTeapot, get(t, s, "/metrics").Code)
}
