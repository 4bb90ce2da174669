package notify

import (
	"context"
	"time"

	cache "github.com/patrickmn/go-cache"

	"github.com/thom899g/ai-driven-revenue-innovation-engine/internal/metrics"
	"github.com/thom899g/ai-driven-revenue-innovation-engine/internal/models"
)

// KnowledgeBase keeps executed strategies for a limited time, keyed by strategy id
type KnowledgeBase struct {
	name  string
	cache *cache.Cache
	ttl   time.Duration
}

// NewKnowledgeBase creates an in-memory knowledge base
func NewKnowledgeBase(name string, ttl time.Duration) *KnowledgeBase {
	return &KnowledgeBase{
		name:  name,
		cache: cache.New(ttl, ttl*2),
		ttl:   ttl,
	}
}

// Name returns the collaborator name
func (kb *KnowledgeBase) Name() string {
	return kb.name
}

// Notify stores a copy of the strategy
func (kb *KnowledgeBase) Notify(ctx context.Context, strategy *models.Strategy) error {
	if strategy == nil {
		return ErrNilStrategy
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	stored := *strategy
	kb.cache.Set(strategy.ID.String(), stored, kb.ttl)
	metrics.KnowledgeBaseEntries.Set(float64(kb.cache.ItemCount()))
	return nil
}

// Lookup returns a stored strategy
func (kb *KnowledgeBase) Lookup(strategyID string) (*models.Strategy, bool) {
	item, found := kb.cache.Get(strategyID)
	if !found {
		return nil, false
	}
	strategy, ok := item.(models.Strategy)
	if !ok {
		return nil, false
	}
	return &strategy, true
}

// Count returns the number of unexpired entries
func (kb *KnowledgeBase) Count() int {
	kb.cache.DeleteExpired()
	return kb.cache.ItemCount()
}
