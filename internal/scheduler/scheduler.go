// Package scheduler runs the pipeline and the strategy cycle on cron schedules.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/thom899g/ai-driven-revenue-innovation-engine/internal/engine"
	"github.com/thom899g/ai-driven-revenue-innovation-engine/internal/models"
)

// PipelineRunner runs one extract, transform, load pass
type PipelineRunner interface {
	Run(ctx context.Context) (*models.RunMetrics, error)
}

// StrategyCycler runs one generate, validate, execute, log cycle
type StrategyCycler interface {
	RunCycle(ctx context.Context) (*engine.CycleResult, error)
}

// Scheduler manages scheduled pipeline runs and strategy cycles
type Scheduler struct {
	cron            *cron.Cron
	logger          *logrus.Entry
	mu              sync.RWMutex
	isRunning       bool
	jobIDs          []cron.EntryID
	jobTimeout      time.Duration
	gracefulTimeout time.Duration

	// jobs derive their context from ctx; Stop cancels it
	ctxMu  sync.Mutex
	ctx    context.Context
	cancel context.CancelFunc
}

// NewScheduler creates a new scheduler. A job still running when its next
// slot comes up is skipped.
func NewScheduler(logger *logrus.Logger) *Scheduler {
	entry := logger.WithField("component", "scheduler")
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		cron: cron.New(
			cron.WithLocation(time.UTC),
			cron.WithChain(cron.SkipIfStillRunning(cron.PrintfLogger(entry))),
		),
		logger:          entry,
		jobIDs:          make([]cron.EntryID, 0),
		jobTimeout:      30 * time.Minute,
		gracefulTimeout: 30 * time.Second,
		ctx:             ctx,
		cancel:          cancel,
	}
}

// SchedulePipeline schedules pipeline runs
func (s *Scheduler) SchedulePipeline(cronExpression string, runner PipelineRunner) error {
	return s.schedule(cronExpression, "pipeline", func() { s.runPipeline(runner) })
}

// ScheduleStrategyCycle schedules strategy cycles
func (s *Scheduler) ScheduleStrategyCycle(cronExpression string, cycler StrategyCycler) error {
	return s.schedule(cronExpression, "strategy_cycle", func() { s.runStrategyCycle(cycler) })
}

func (s *Scheduler) schedule(cronExpression, job string, fn func()) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return fmt.Errorf("cannot schedule job while scheduler is running")
	}

	entryID, err := s.cron.AddFunc(cronExpression, fn)
	if err != nil {
		return fmt.Errorf("failed to add %s job: %w", job, err)
	}

	s.jobIDs = append(s.jobIDs, entryID)
	s.logger.WithFields(logrus.Fields{
		"job":  job,
		"cron": cronExpression,
	}).Info("Scheduled job")

	return nil
}

// jobContext returns a context bounded by the job timeout and cancelled by Stop
func (s *Scheduler) jobContext() (context.Context, context.CancelFunc) {
	s.ctxMu.Lock()
	parent := s.ctx
	s.ctxMu.Unlock()
	return context.WithTimeout(parent, s.jobTimeout)
}

func (s *Scheduler) runPipeline(runner PipelineRunner) {
	ctx, cancel := s.jobContext()
	defer cancel()

	runMetrics, err := runner.Run(ctx)
	if err != nil {
		s.logger.WithError(err).Error("Scheduled pipeline run failed")
		return
	}

	s.logger.WithFields(logrus.Fields{
		"run_id":           runMetrics.RunID,
		"rows_processed":   runMetrics.RowsProcessed,
		"duration_seconds": runMetrics.DurationSeconds,
	}).Info("Scheduled pipeline run completed")
}

func (s *Scheduler) runStrategyCycle(cycler StrategyCycler) {
	ctx, cancel := s.jobContext()
	defer cancel()

	result, err := cycler.RunCycle(ctx)
	if err != nil {
		s.logger.WithError(err).Error("Scheduled strategy cycle failed")
		return
	}

	s.logger.WithFields(logrus.Fields{
		"strategy_id": result.Strategy.ID,
		"valid":       result.Valid,
		"executed":    result.Executed,
	}).Info("Scheduled strategy cycle completed")
}

// Start starts the scheduler
func (s *Scheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return fmt.Errorf("scheduler is already running")
	}

	if len(s.jobIDs) == 0 {
		return fmt.Errorf("no jobs scheduled")
	}

	s.ctxMu.Lock()
	if s.ctx.Err() != nil {
		s.ctx, s.cancel = context.WithCancel(context.Background())
	}
	s.ctxMu.Unlock()

	s.cron.Start()
	s.isRunning = true
	s.logger.WithField("jobs", len(s.jobIDs)).Info("Scheduler started")

	return nil
}

// Stop stops the scheduler and cancels running jobs, waiting for them up to
// the graceful timeout
func (s *Scheduler) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return nil
	}

	s.ctxMu.Lock()
	s.cancel()
	s.ctxMu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), s.gracefulTimeout)
	defer cancel()

	s.isRunning = false
	select {
	case <-s.cron.Stop().Done():
		s.logger.Info("Scheduler stopped")
		return nil
	case <-ctx.Done():
		return fmt.Errorf("scheduler stop timed out after %s", s.gracefulTimeout)
	}
}

// IsRunning returns whether the scheduler is currently running
func (s *Scheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// GetNextRun returns the time of the next scheduled job run
func (s *Scheduler) GetNextRun() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.isRunning {
		return time.Time{}
	}

	nextRun := time.Time{}
	for _, entry := range s.entries() {
		if nextRun.IsZero() || entry.Next.Before(nextRun) {
			nextRun = entry.Next
		}
	}

	return nextRun
}

// Entries returns information about scheduled entries
func (s *Scheduler) Entries() []cron.Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.entries()
}

func (s *Scheduler) entries() []cron.Entry {
	entries := make([]cron.Entry, 0, len(s.jobIDs))
	for _, jobID := range s.jobIDs {
		entry := s.cron.Entry(jobID)
		if entry.Valid() {
			entries = append(entries, entry)
		}
	}
	return entries
}
