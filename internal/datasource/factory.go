package datasource

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/thom899g/ai-driven-revenue-innovation-engine/internal/config"
)

// NewSource creates the extraction source named by configuration
func NewSource(cfg config.SourceConfig, logger *logrus.Logger) (Source, error) {
	switch cfg.Type {
	case SampleSourceName, "":
		return NewSampleSource(), nil

	case HTTPSourceName:
		if cfg.URL == "" {
			return nil, fmt.Errorf("http source requires a url")
		}
		clientCfg := DefaultHTTPClientConfig()
		if cfg.TimeoutSeconds > 0 {
			clientCfg.Timeout = cfg.Timeout()
		}
		clientCfg.MaxRetries = cfg.MaxRetries
		if cfg.RateLimit > 0 {
			clientCfg.RateLimit = cfg.RateLimit
		}
		return NewHTTPSource(NewRateLimitedHTTPClient(clientCfg, logger), cfg.URL, cfg.APIKey, logger), nil

	default:
		return nil, fmt.Errorf("unknown data source type: %s", cfg.Type)
	}
}
