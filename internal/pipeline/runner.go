// Package pipeline runs the extract, transform and load stages over the revenue table.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/thom899g/ai-driven-revenue-innovation-engine/internal/config"
	"github.com/thom899g/ai-driven-revenue-innovation-engine/internal/datasource"
	"github.com/thom899g/ai-driven-revenue-innovation-engine/internal/logger"
	"github.com/thom899g/ai-driven-revenue-innovation-engine/internal/metrics"
	"github.com/thom899g/ai-driven-revenue-innovation-engine/internal/models"
)

// Stage names, used in logs and metrics
const (
	StageExtraction     = "extraction"
	StageTransformation = "transformation"
	StageLoading        = "loading"
)

// Runner executes the pipeline. It holds no state between runs.
type Runner struct {
	cfg    config.PipelineConfig
	source datasource.Source
	loader Loader
	log    *logger.PipelineLogger
}

// NewRunner creates a new pipeline runner
func NewRunner(cfg config.PipelineConfig, source datasource.Source, loader Loader, log *logrus.Logger) *Runner {
	return &Runner{
		cfg:    cfg,
		source: source,
		loader: loader,
		log:    logger.NewPipelineLogger(log),
	}
}

// Config returns the configuration the runner was built with
func (r *Runner) Config() config.PipelineConfig {
	return r.cfg
}

// Extract fetches the raw record set from the source
func (r *Runner) Extract(ctx context.Context) (models.RecordSet, error) {
	start := time.Now()

	records, err := r.source.Fetch(ctx)
	if err != nil {
		err = fmt.Errorf("%w: %s: %w", models.ErrExtraction, r.source.Name(), err)
		r.fail(StageExtraction, err)
		return nil, err
	}

	r.log.LogStageCompleted(StageExtraction, records.Len(), time.Since(start))
	return records, nil
}

// Transform derives the profit column. Every row must carry revenue and costs.
// The input is left untouched.
func (r *Runner) Transform(ctx context.Context, records models.RecordSet) (models.RecordSet, error) {
	start := time.Now()

	if err := ctx.Err(); err != nil {
		err = fmt.Errorf("%w: %w", models.ErrTransformation, err)
		r.fail(StageTransformation, err)
		return nil, err
	}

	out := records.Clone()
	for i := range out {
		if err := out[i].ComputeProfit(); err != nil {
			err = fmt.Errorf("%w: row %d: %w", models.ErrTransformation, i, err)
			r.fail(StageTransformation, err)
			return nil, err
		}
	}

	r.log.LogStageCompleted(StageTransformation, out.Len(), time.Since(start))
	return out, nil
}

// Load hands the record set to the configured loader under a new run id
func (r *Runner) Load(ctx context.Context, records models.RecordSet) error {
	return r.load(ctx, uuid.New(), records)
}

func (r *Runner) load(ctx context.Context, runID uuid.UUID, records models.RecordSet) error {
	start := time.Now()

	if err := r.loader.Load(ctx, runID, records); err != nil {
		err = fmt.Errorf("%w: %s: %w", models.ErrLoad, r.loader.Name(), err)
		r.fail(StageLoading, err)
		return err
	}

	r.log.LogStageCompleted(StageLoading, records.Len(), time.Since(start))
	return nil
}

// Run executes extract, transform and load in order and reports how many rows
// went through and how long it took. A stage error is returned as is.
func (r *Runner) Run(ctx context.Context) (*models.RunMetrics, error) {
	runID := uuid.New()
	startedAt := time.Now()

	rows, err := r.run(ctx, runID)
	finishedAt := time.Now()
	duration := finishedAt.Sub(startedAt).Seconds()

	if err != nil {
		metrics.RecordPipelineRun("failed", 0, duration)
		return nil, err
	}

	metrics.RecordPipelineRun("success", rows, duration)
	r.log.LogRunCompleted(r.source.Name(), rows, duration)

	return &models.RunMetrics{
		RunID:           runID,
		RowsProcessed:   rows,
		DurationSeconds: duration,
		StartedAt:       startedAt,
		FinishedAt:      finishedAt,
	}, nil
}

func (r *Runner) run(ctx context.Context, runID uuid.UUID) (int, error) {
	extracted, err := r.Extract(ctx)
	if err != nil {
		return 0, err
	}

	transformed, err := r.Transform(ctx, extracted)
	if err != nil {
		return 0, err
	}

	if err := r.load(ctx, runID, transformed); err != nil {
		return 0, err
	}

	return transformed.Len(), nil
}

func (r *Runner) fail(stage string, err error) {
	metrics.RecordStageFailure(stage)
	r.log.LogStageFailed(stage, err)
}
