// Package logger provides audit logging.
package logger

import (
	"github.com/sirupsen/logrus"
)

// AuditLogger provides dedicated audit trail logging for collaborator updates.
type AuditLogger struct {
	*logrus.Entry
}

// NewAuditLogger creates a new audit logger.
func NewAuditLogger(baseLogger *logrus.Logger) *AuditLogger {
	return &AuditLogger{
		Entry: baseLogger.WithField("component", "audit"),
	}
}

// LogNotificationDelivered logs a collaborator accepting a strategy.
func (al *AuditLogger) LogNotificationDelivered(collaborator, strategyID string) {
	al.WithFields(logrus.Fields{
		"collaborator": collaborator,
		"strategy_id":  strategyID,
		"delivered":    true,
	}).Infof("Updated %s with new revenue strategy", collaborator)
}

// LogNotificationFailed logs a collaborator update that was dropped under the
// best-effort notification policy.
func (al *AuditLogger) LogNotificationFailed(collaborator, strategyID string, err error) {
	al.WithFields(logrus.Fields{
		"collaborator": collaborator,
		"strategy_id":  strategyID,
		"delivered":    false,
	}).WithError(err).Errorf("%s update failed", collaborator)
}

// LogStoreFailure logs a strategy log entry that could not be persisted.
func (al *AuditLogger) LogStoreFailure(strategyID string, err error) {
	al.WithFields(logrus.Fields{
		"strategy_id": strategyID,
	}).WithError(err).Error("Failed to persist strategy log entry")
}
