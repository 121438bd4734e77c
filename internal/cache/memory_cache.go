package cache

import (
	"context"
	"fmt"
	"sync"

	"mindpath/internal/model"
)

// MemoryInsightCache is an in-process InsightCache for tests and single-node
// deployments without Redis. Safe for concurrent use.
type MemoryInsightCache struct {
	mu      sync.RWMutex
	entries map[string]map[string]*model.InsightResult
}

// NewMemoryInsightCache creates an empty in-memory cache
func NewMemoryInsightCache() *MemoryInsightCache {
	return &MemoryInsightCache{
		entries: make(map[string]map[string]*model.InsightResult),
	}
}

func memKey(toolID, studentID string) string {
	return fmt.Sprintf("%s|%s", toolID, studentID)
}

func (c *MemoryInsightCache) Put(ctx context.Context, toolID, studentID, itemKey string, result *model.InsightResult) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	key := memKey(toolID, studentID)
	if c.entries[key] == nil {
		c.entries[key] = make(map[string]*model.InsightResult)
	}
	c.entries[key][itemKey] = result
	return nil
}

func (c *MemoryInsightCache) Get(ctx context.Context, toolID, studentID, itemKey string) (*model.InsightResult, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	items := c.entries[memKey(toolID, studentID)]
	if items == nil {
		return nil, nil
	}
	return items[itemKey], nil
}

func (c *MemoryInsightCache) GetAll(ctx context.Context, toolID, studentID string) (map[string]*model.InsightResult, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	items := c.entries[memKey(toolID, studentID)]
	out := make(map[string]*model.InsightResult, len(items))
	for k, v := range items {
		out[k] = v
	}
	return out, nil
}

func (c *MemoryInsightCache) Clear(ctx context.Context, toolID, studentID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, memKey(toolID, studentID))
	return nil
}
