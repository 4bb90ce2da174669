// Package logger provides strategy-specific logging.
package logger

import (
	"github.com/sirupsen/logrus"
)

// StrategyLogger provides dedicated logging for strategy operations.
type StrategyLogger struct {
	*logrus.Entry
}

// NewStrategyLogger creates a new strategy logger.
func NewStrategyLogger(baseLogger *logrus.Logger) *StrategyLogger {
	return &StrategyLogger{
		Entry: baseLogger.WithField("component", "strategy"),
	}
}

// LogStrategyGenerated logs a freshly generated strategy.
func (sl *StrategyLogger) LogStrategyGenerated(strategyID, recommendation string, confidence float64, risk string) {
	sl.WithFields(logrus.Fields{
		"strategy_id":     strategyID,
		"recommendation":  recommendation,
		"confidence":      confidence,
		"risk_assessment": risk,
	}).Info("Generated strategy")
}

// LogValidationFailure logs why a strategy failed validation.
// Missing fields are warnings; out-of-range scores are errors.
func (sl *StrategyLogger) LogValidationFailure(strategyID, field, rule string) {
	entry := sl.WithFields(logrus.Fields{
		"strategy_id": strategyID,
		"field":       field,
		"rule":        rule,
	})
	if rule == "required" {
		entry.Warn("Missing required fields in strategy validation")
		return
	}
	entry.Error("Confidence score out of bounds")
}

// LogExecutionDecision logs whether a strategy cleared the execution threshold.
func (sl *StrategyLogger) LogExecutionDecision(strategyID string, confidence, threshold float64, executed bool) {
	entry := sl.WithFields(logrus.Fields{
		"strategy_id": strategyID,
		"confidence":  confidence,
		"threshold":   threshold,
		"executed":    executed,
	})
	if executed {
		entry.Info("Executing strategy")
		return
	}
	entry.Warn("Strategy not executed due to low confidence")
}

// LogMonitoring logs a monitoring report.
func (sl *StrategyLogger) LogMonitoring(strategyID string, executionTime int, successRate, roi float64) {
	sl.WithFields(logrus.Fields{
		"strategy_id":    strategyID,
		"execution_time": executionTime,
		"success_rate":   successRate,
		"roi_percentage": roi,
	}).Info("Monitoring strategy")
}

// LogExecutionRecorded logs an entry appended to the strategy log.
func (sl *StrategyLogger) LogExecutionRecorded(strategyID, action string, logSize, evicted int) {
	sl.WithFields(logrus.Fields{
		"strategy_id": strategyID,
		"action":      action,
		"log_size":    logSize,
		"evicted":     evicted,
	}).Info("Logged strategy execution")
}
