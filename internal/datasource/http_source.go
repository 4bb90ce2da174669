package datasource

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/thom899g/ai-driven-revenue-innovation-engine/internal/models"
)

// HTTPSourceName identifies the HTTP JSON source
const HTTPSourceName = "http"

// HTTPSource fetches a JSON array of financial records from a remote endpoint
type HTTPSource struct {
	client *RateLimitedHTTPClient
	url    string
	apiKey string
	logger *logrus.Entry
}

// NewHTTPSource creates a new HTTP source
func NewHTTPSource(client *RateLimitedHTTPClient, url, apiKey string, logger *logrus.Logger) *HTTPSource {
	return &HTTPSource{
		client: client,
		url:    url,
		apiKey: apiKey,
		logger: logger.WithField("source", HTTPSourceName),
	}
}

// Name returns the name of the data source
func (s *HTTPSource) Name() string {
	return HTTPSourceName
}

// Fetch retrieves and decodes the record set
func (s *HTTPSource) Fetch(ctx context.Context) (models.RecordSet, error) {
	headers := map[string]string{"Accept": "application/json"}
	if s.apiKey != "" {
		headers["Authorization"] = "Bearer " + s.apiKey
	}

	resp, err := s.client.Get(ctx, s.url, headers)
	if err != nil {
		return nil, NewDataSourceError(HTTPSourceName, ErrCodeNetworkError, "request failed", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, NewDataSourceError(HTTPSourceName, ErrCodeAuthenticationFailed, resp.Status, nil)
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, NewDataSourceError(HTTPSourceName, ErrCodeRateLimitExceeded, resp.Status, nil)
	case resp.StatusCode >= 400:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, NewDataSourceError(HTTPSourceName, ErrCodeServerError, fmt.Sprintf("%s: %s", resp.Status, body), nil)
	}

	var records models.RecordSet
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		return nil, NewDataSourceError(HTTPSourceName, ErrCodeInvalidData, "failed to decode records", fmt.Errorf("%w: %v", ErrInvalidData, err))
	}

	for i, r := range records {
		if r.Timestamp == "" {
			return nil, NewDataSourceError(HTTPSourceName, ErrCodeInvalidData, fmt.Sprintf("row %d has no timestamp", i), ErrInvalidData)
		}
	}

	s.logger.WithField("rows", len(records)).Debug("Fetched records")
	return records, nil
}
