// Package notify forwards executed strategies to downstream collaborators.
package notify

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/thom899g/ai-driven-revenue-innovation-engine/internal/logger"
	"github.com/thom899g/ai-driven-revenue-innovation-engine/internal/metrics"
	"github.com/thom899g/ai-driven-revenue-innovation-engine/internal/models"
)

// ErrNilStrategy is returned when a collaborator is handed nothing to store
var ErrNilStrategy = errors.New("nil strategy")

// Notifier is a downstream collaborator that wants executed strategies
type Notifier interface {
	Name() string
	Notify(ctx context.Context, strategy *models.Strategy) error
}

// Result is the outcome of one collaborator update
type Result struct {
	Collaborator string
	Err          error
}

// Delivered reports whether the collaborator accepted the update
func (r Result) Delivered() bool {
	return r.Err == nil
}

// BestEffort calls every notifier in order. A failing collaborator is logged
// and counted but never stops the others and never fails the caller.
type BestEffort struct {
	notifiers []Notifier
	audit     *logger.AuditLogger
}

// NewBestEffort creates a best-effort fan-out over notifiers
func NewBestEffort(log *logrus.Logger, notifiers ...Notifier) *BestEffort {
	return &BestEffort{
		notifiers: notifiers,
		audit:     logger.NewAuditLogger(log),
	}
}

// Dispatch forwards the strategy to every collaborator
func (b *BestEffort) Dispatch(ctx context.Context, strategy *models.Strategy) []Result {
	results := make([]Result, 0, len(b.notifiers))
	strategyID := ""
	if strategy != nil {
		strategyID = strategy.ID.String()
	}

	for _, n := range b.notifiers {
		err := n.Notify(ctx, strategy)
		metrics.RecordNotification(n.Name(), err == nil)
		if err != nil {
			b.audit.LogNotificationFailed(n.Name(), strategyID, err)
		} else {
			b.audit.LogNotificationDelivered(n.Name(), strategyID)
		}
		results = append(results, Result{Collaborator: n.Name(), Err: err})
	}

	return results
}

// Notifiers returns the collaborators in dispatch order
func (b *BestEffort) Notifiers() []Notifier {
	return append([]Notifier(nil), b.notifiers...)
}
