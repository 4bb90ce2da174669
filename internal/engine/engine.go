// Package engine generates, validates, executes and monitors revenue strategies.
package engine

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"github.com/thom899g/ai-driven-revenue-innovation-engine/internal/config"
	"github.com/thom899g/ai-driven-revenue-innovation-engine/internal/logger"
	"github.com/thom899g/ai-driven-revenue-innovation-engine/internal/metrics"
	"github.com/thom899g/ai-driven-revenue-innovation-engine/internal/models"
	"github.com/thom899g/ai-driven-revenue-innovation-engine/internal/notify"
)

// ActionExecute is the action recorded by LogStrategyExecution
const ActionExecute = "execute"

// Defaults for a zero EngineConfig
const (
	DefaultExecutionThreshold = 0.8
	DefaultMaxLogEntries      = 1000
)

// Fixed monitoring report. Monitoring is not yet strategy specific.
const (
	monitorExecutionTime = 120
	monitorSuccessRate   = 0.95
	monitorROIPercentage = 15.0
)

// StrategyLogStore mirrors strategy log entries outside the process
type StrategyLogStore interface {
	Append(ctx context.Context, entry models.StrategyLogEntry) error
}

// Engine drives the strategy lifecycle. Lifecycle order is not enforced:
// callers carry the strategy between calls.
type Engine struct {
	dataPipeline string
	modelPath    string
	threshold    float64
	maxEntries   int

	generator Generator
	fanout    *notify.BestEffort
	store     StrategyLogStore
	validate  *validator.Validate
	log       *logger.StrategyLogger
	audit     *logger.AuditLogger
	now       func() time.Time

	mu      sync.Mutex
	entries []models.StrategyLogEntry
}

// New creates a strategy engine. Executed strategies are sent to notifiers in
// order. A nil generator falls back to FixedGenerator and a nil store keeps the
// log in memory only. A non-positive threshold or log size takes the default.
func New(cfg config.EngineConfig, generator Generator, notifiers []notify.Notifier, store StrategyLogStore, log *logrus.Logger) *Engine {
	if generator == nil {
		generator = FixedGenerator{}
	}
	threshold := cfg.ExecutionThreshold
	if threshold <= 0 {
		threshold = DefaultExecutionThreshold
	}
	maxEntries := cfg.MaxLogEntries
	if maxEntries <= 0 {
		maxEntries = DefaultMaxLogEntries
	}

	return &Engine{
		dataPipeline: cfg.DataPipeline,
		modelPath:    cfg.ModelPath,
		threshold:    threshold,
		maxEntries:   maxEntries,
		generator:    generator,
		fanout:       notify.NewBestEffort(log, notifiers...),
		store:        store,
		validate:     validator.New(),
		log:          logger.NewStrategyLogger(log),
		audit:        logger.NewAuditLogger(log),
		now:          time.Now,
	}
}

// DataPipeline returns the configured pipeline reference
func (e *Engine) DataPipeline() string {
	return e.dataPipeline
}

// ModelPath returns the configured model reference
func (e *Engine) ModelPath() string {
	return e.modelPath
}

// GenerateRevenueStrategy asks the generator for a new strategy
func (e *Engine) GenerateRevenueStrategy(ctx context.Context) (*models.Strategy, error) {
	strategy, err := e.generator.Generate(ctx)
	if err == nil && strategy == nil {
		err = errors.New("generator returned no strategy")
	}
	if err != nil {
		metrics.RecordStrategyGenerated("failed", 0)
		e.log.WithError(err).Error("Error generating strategy")
		return nil, fmt.Errorf("%w: %w", models.ErrGeneration, err)
	}

	confidence, _ := strategy.Confidence()
	metrics.RecordStrategyGenerated("success", confidence)
	e.log.LogStrategyGenerated(strategy.ID.String(), strategy.Recommendation, confidence, strategy.RiskAssessment)
	return strategy, nil
}

// ValidateStrategy reports whether the recommendation and confidence score are
// present and the score lies in [0, 1]. It never fails; problems are logged.
func (e *Engine) ValidateStrategy(strategy *models.Strategy) bool {
	if strategy == nil {
		e.log.LogValidationFailure("", "Strategy", "required")
		metrics.RecordValidation(false)
		return false
	}

	err := e.validate.Struct(strategy)
	if err == nil {
		metrics.RecordValidation(true)
		return true
	}

	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		for _, fieldError := range validationErrors {
			e.log.LogValidationFailure(strategy.ID.String(), fieldError.Field(), fieldError.Tag())
		}
	} else {
		e.log.WithError(err).Error("Strategy validation error")
	}

	metrics.RecordValidation(false)
	return false
}

// ExecuteStrategy forwards the strategy to the collaborators when its
// confidence reaches the execution threshold. It reports whether the strategy
// was executed. Validation is not re-checked here.
func (e *Engine) ExecuteStrategy(ctx context.Context, strategy *models.Strategy) (bool, error) {
	confidence, ok := strategy.Confidence()
	if !ok {
		err := fmt.Errorf("%w: %w: confidence_score", models.ErrExecution, models.ErrMissingField)
		metrics.RecordExecution("failed")
		e.log.WithError(err).Error("Execution failed")
		return false, err
	}
	if err := ctx.Err(); err != nil {
		metrics.RecordExecution("failed")
		return false, fmt.Errorf("%w: %w", models.ErrExecution, err)
	}

	strategyID := strategy.ID.String()
	if confidence < e.threshold {
		metrics.RecordExecution("skipped")
		e.log.LogExecutionDecision(strategyID, confidence, e.threshold, false)
		return false, nil
	}

	e.log.LogExecutionDecision(strategyID, confidence, e.threshold, true)
	e.fanout.Dispatch(ctx, strategy)
	metrics.RecordExecution("executed")
	return true, nil
}

// MonitorStrategy returns the execution report for strategyID. The report is
// currently the same for every strategy.
func (e *Engine) MonitorStrategy(ctx context.Context, strategyID string) (*models.MonitoringMetrics, error) {
	if strategyID == "" {
		err := fmt.Errorf("%w: %w: strategy_id", models.ErrMonitoring, models.ErrMissingField)
		e.log.WithError(err).Error("Monitoring failed")
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", models.ErrMonitoring, err)
	}

	report := &models.MonitoringMetrics{
		StrategyID:    strategyID,
		ExecutionTime: monitorExecutionTime,
		SuccessRate:   monitorSuccessRate,
		ROIPercentage: monitorROIPercentage,
	}
	e.log.LogMonitoring(strategyID, report.ExecutionTime, report.SuccessRate, report.ROIPercentage)
	return report, nil
}

// LogStrategyExecution appends an execute entry to the strategy log. The log
// keeps the newest maxEntries entries in call order. Store failures are logged
// and do not affect the in-memory log.
func (e *Engine) LogStrategyExecution(ctx context.Context, strategy *models.Strategy) {
	entry := models.StrategyLogEntry{
		Timestamp: e.now().UTC(),
		Action:    ActionExecute,
	}
	if strategy != nil {
		entry.Details = *strategy
	}

	e.mu.Lock()
	evicted := 0
	if len(e.entries) >= e.maxEntries {
		evicted = len(e.entries) - e.maxEntries + 1
		e.entries = append(e.entries[:0], e.entries[evicted:]...)
	}
	e.entries = append(e.entries, entry)
	size := len(e.entries)
	e.mu.Unlock()

	metrics.UpdateStrategyLogSize(size)
	e.log.LogExecutionRecorded(entry.Details.ID.String(), entry.Action, size, evicted)

	if e.store != nil {
		if err := e.store.Append(ctx, entry); err != nil {
			e.audit.LogStoreFailure(entry.Details.ID.String(), err)
		}
	}
}

// StrategyLogs returns a snapshot of the strategy log, oldest first
func (e *Engine) StrategyLogs() []models.StrategyLogEntry {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]models.StrategyLogEntry(nil), e.entries...)
}

// CycleResult is the outcome of one generate, validate, execute, log cycle
type CycleResult struct {
	Strategy *models.Strategy `json:"strategy"`
	Valid    bool             `json:"valid"`
	Executed bool             `json:"executed"`
}

// RunCycle generates a strategy and, if it validates, executes it and records
// the execution. Invalid or low-confidence strategies stop early without error.
func (e *Engine) RunCycle(ctx context.Context) (*CycleResult, error) {
	strategy, err := e.GenerateRevenueStrategy(ctx)
	if err != nil {
		return nil, err
	}

	result := &CycleResult{Strategy: strategy}
	if result.Valid = e.ValidateStrategy(strategy); !result.Valid {
		return result, nil
	}

	if result.Executed, err = e.ExecuteStrategy(ctx, strategy); err != nil {
		return result, err
	}
	if result.Executed {
		e.LogStrategyExecution(ctx, strategy)
	}

	return result, nil
}
