package datasource

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thom899g/ai-driven-revenue-innovation-engine/internal/config"
	"github.com/thom899g/ai-driven-revenue-innovation-engine/internal/logger"
)

func testClientConfig() HTTPClientConfig {
	return HTTPClientConfig{
		Timeout:           2 * time.Second,
		MaxRetries:        1,
		RetryWaitMin:      time.Millisecond,
		RetryWaitMax:      2 * time.Millisecond,
		RateLimit:         1000,
		CircuitBreakerMax: 2,
		CircuitCooldown:   50 * time.Millisecond,
	}
}

func TestSampleSourceFetch(t *testing.T) {
	records, err := NewSampleSource().Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "2023-10-01", records[0].Timestamp)
	assert.True(t, records[0].Revenue.Decimal.Equal(decimal.NewFromInt(1000)))
	assert.True(t, records[1].Costs.Decimal.Equal(decimal.NewFromInt(700)))
	assert.False(t, records[0].Profit.Valid)
}

func TestSampleSourceCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewSampleSource().Fetch(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestHTTPSourceFetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer key-123", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"timestamp":"2024-01-01","revenue":"250.50","costs":100},{"timestamp":"2024-01-02","revenue":300}]`))
	}))
	defer server.Close()

	client := NewRateLimitedHTTPClient(testClientConfig(), logger.Discard())
	records, err := NewHTTPSource(client, server.URL, "key-123", logger.Discard()).Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.True(t, records[0].Revenue.Decimal.Equal(decimal.RequireFromString("250.50")))
	assert.True(t, records[0].Costs.Valid)
	assert.False(t, records[1].Costs.Valid, "absent costs must stay invalid")
}

func TestHTTPSourceErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		code   string
	}{
		{"unauthorized", http.StatusUnauthorized, "", ErrCodeAuthenticationFailed},
		{"rate limited", http.StatusTooManyRequests, "", ErrCodeRateLimitExceeded},
		{"unavailable", http.StatusServiceUnavailable, "down", ErrCodeServerError},
		{"bad request", http.StatusBadRequest, "nope", ErrCodeServerError},
		{"malformed json", http.StatusOK, "{", ErrCodeInvalidData},
		{"missing timestamp", http.StatusOK, `[{"revenue":1,"costs":1}]`, ErrCodeInvalidData},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			client := NewRateLimitedHTTPClient(testClientConfig(), logger.Discard())
			_, err := NewHTTPSource(client, server.URL, "", logger.Discard()).Fetch(context.Background())
			require.Error(t, err)

			var dsErr DataSourceError
			require.True(t, errors.As(err, &dsErr))
			assert.Equal(t, tt.code, dsErr.Code)
		})
	}
}

func TestRateLimitedHTTPClientRetries(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewRateLimitedHTTPClient(testClientConfig(), logger.Discard())
	resp, err := client.Get(context.Background(), server.URL, nil)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestRateLimitedHTTPClientCircuitBreaker(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	cfg := testClientConfig()
	cfg.CircuitCooldown = time.Hour
	client := NewRateLimitedHTTPClient(cfg, logger.Discard())
	for i := 0; i < 2; i++ {
		resp, err := client.Get(context.Background(), server.URL, nil)
		require.NoError(t, err)
		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		resp.Body.Close()
	}
	assert.True(t, client.IsOpen())

	_, err := client.Get(context.Background(), server.URL, nil)
	assert.ErrorIs(t, err, ErrCircuitOpen)

	client.Reset()
	assert.False(t, client.IsOpen())
}

func TestRateLimitedHTTPClientCircuitBreakerRecovers(t *testing.T) {
	var healthy atomic.Bool
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !healthy.Load() {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	cfg := testClientConfig()
	cfg.MaxRetries = 0
	client := NewRateLimitedHTTPClient(cfg, logger.Discard())

	for i := 0; i < 2; i++ {
		resp, err := client.Get(context.Background(), server.URL, nil)
		require.NoError(t, err)
		resp.Body.Close()
	}
	require.True(t, client.IsOpen())

	healthy.Store(true)
	assert.False(t, client.Available())
	_, err := client.Get(context.Background(), server.URL, nil)
	assert.ErrorIs(t, err, ErrCircuitOpen, "requests fail fast during the cooldown")

	time.Sleep(cfg.CircuitCooldown + 20*time.Millisecond)
	assert.True(t, client.Available())
	for i := 0; i < 3; i++ {
		resp, err := client.Get(context.Background(), server.URL, nil)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		resp.Body.Close()
	}
	assert.False(t, client.IsOpen())
}

func TestRateLimitedHTTPClientFailedTrialReopens(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	cfg := testClientConfig()
	cfg.MaxRetries = 0
	client := NewRateLimitedHTTPClient(cfg, logger.Discard())

	for i := 0; i < 2; i++ {
		resp, err := client.Get(context.Background(), server.URL, nil)
		require.NoError(t, err)
		resp.Body.Close()
	}
	require.True(t, client.IsOpen())

	time.Sleep(cfg.CircuitCooldown + 20*time.Millisecond)
	resp, err := client.Get(context.Background(), server.URL, nil)
	require.NoError(t, err)
	resp.Body.Close()

	assert.True(t, client.IsOpen())
	_, err = client.Get(context.Background(), server.URL, nil)
	assert.ErrorIs(t, err, ErrCircuitOpen)
}

func TestNewSource(t *testing.T) {
	src, err := NewSource(config.SourceConfig{Type: "sample"}, logger.Discard())
	require.NoError(t, err)
	assert.Equal(t, SampleSourceName, src.Name())

	src, err = NewSource(config.SourceConfig{Type: "http", URL: "http://localhost:1", TimeoutSeconds: 1, RateLimit: 1}, logger.Discard())
	require.NoError(t, err)
	assert.Equal(t, HTTPSourceName, src.Name())

	_, err = NewSource(config.SourceConfig{Type: "http"}, logger.Discard())
	assert.Error(t, err)

	_, err = NewSource(config.SourceConfig{Type: "ftp"}, logger.Discard())
	assert.Error(t, err)
}
