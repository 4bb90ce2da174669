// Package logger provides pipeline-specific logging.
package logger

import (
	"time"

	"github.com/sirupsen/logrus"
)

// PipelineLogger provides dedicated logging for extract/transform/load stages.
type PipelineLogger struct {
	*logrus.Entry
}

// NewPipelineLogger creates a new pipeline logger.
func NewPipelineLogger(baseLogger *logrus.Logger) *PipelineLogger {
	return &PipelineLogger{
		Entry: baseLogger.WithField("component", "pipeline"),
	}
}

// LogStageCompleted logs a successful stage.
func (pl *PipelineLogger) LogStageCompleted(stage string, rows int, duration time.Duration) {
	pl.WithFields(logrus.Fields{
		"stage":       stage,
		"rows":        rows,
		"duration_ms": float64(duration.Microseconds()) / 1000,
	}).Infof("Data %s successfully", stagePastTense(stage))
}

// LogStageFailed logs a failed stage.
func (pl *PipelineLogger) LogStageFailed(stage string, err error) {
	pl.WithFields(logrus.Fields{
		"stage": stage,
	}).WithError(err).Errorf("Data %s failed", stage)
}

// LogRunCompleted logs the outcome of a full run.
func (pl *PipelineLogger) LogRunCompleted(source string, rows int, durationSeconds float64) {
	pl.WithFields(logrus.Fields{
		"source":           source,
		"rows_processed":   rows,
		"duration_seconds": durationSeconds,
	}).Info("Pipeline run completed")
}

func stagePastTense(stage string) string {
	switch stage {
	case "extraction":
		return "extracted"
	case "transformation":
		return "transformed"
	case "loading":
		return "loaded"
	default:
		return stage
	}
}
