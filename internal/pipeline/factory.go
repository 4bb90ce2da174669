package pipeline

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/thom899g/ai-driven-revenue-innovation-engine/internal/config"
	"github.com/thom899g/ai-driven-revenue-innovation-engine/internal/datasource"
	"github.com/thom899g/ai-driven-revenue-innovation-engine/internal/repository"
)

// NewFromConfig wires a runner from configuration. repos may be nil unless the
// postgres loader is selected.
func NewFromConfig(cfg config.PipelineConfig, repos *repository.Repositories, log *logrus.Logger) (*Runner, error) {
	source, err := datasource.NewSource(cfg.Source, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create source: %w", err)
	}

	var loader Loader
	switch cfg.Loader {
	case "log", "":
		loader = NewLogLoader(log)
	case "postgres":
		if repos == nil {
			return nil, fmt.Errorf("postgres loader requires a database connection")
		}
		loader = NewRepositoryLoader(repos.FinancialRecord)
	default:
		return nil, fmt.Errorf("unknown loader: %s", cfg.Loader)
	}

	return NewRunner(cfg, source, loader, log), nil
}
