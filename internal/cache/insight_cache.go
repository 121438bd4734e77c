package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"mindpath/internal/model"
)

// InsightCache stores leaf insights generated in the background while a
// student works through an assessment, so submission-time synthesis can read
// them without re-invoking the LLM. Latest write wins per key; Clear is the
// explicit restart operation.
type InsightCache interface {
	Put(ctx context.Context, toolID, studentID, itemKey string, result *model.InsightResult) error
	Get(ctx context.Context, toolID, studentID, itemKey string) (*model.InsightResult, error)
	GetAll(ctx context.Context, toolID, studentID string) (map[string]*model.InsightResult, error)
	Clear(ctx context.Context, toolID, studentID string) error
}

type insightCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewInsightCache creates a Redis-backed insight cache. Entries live for the
// span of one assessment attempt; the TTL is a safety net, not a contract.
func NewInsightCache(client *redis.Client) InsightCache {
	return &insightCache{
		client: client,
		ttl:    24 * time.Hour,
	}
}

func (c *insightCache) key(toolID, studentID string) string {
	return fmt.Sprintf("tool:%s:student:%s:insights", toolID, studentID)
}

func (c *insightCache) Put(ctx context.Context, toolID, studentID, itemKey string, result *model.InsightResult) error {
	data, err := json.Marshal(result)
	if err != nil {
		return err
	}
	key := c.key(toolID, studentID)
	if err := c.client.HSet(ctx, key, itemKey, data).Err(); err != nil {
		return err
	}
	return c.client.Expire(ctx, key, c.ttl).Err()
}

func (c *insightCache) Get(ctx context.Context, toolID, studentID, itemKey string) (*model.InsightResult, error) {
	data, err := c.client.HGet(ctx, c.key(toolID, studentID), itemKey).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var result model.InsightResult
	if err := json.Unmarshal([]byte(data), &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *insightCache) GetAll(ctx context.Context, toolID, studentID string) (map[string]*model.InsightResult, error) {
	data, err := c.client.HGetAll(ctx, c.key(toolID, studentID)).Result()
	if err != nil {
		return nil, err
	}
	results := make(map[string]*model.InsightResult, len(data))
	for itemKey, jsonStr := range data {
		var r model.InsightResult
		if err := json.Unmarshal([]byte(jsonStr), &r); err != nil {
			continue
		}
		results[itemKey] = &r
	}
	return results, nil
}

func (c *insightCache) Clear(ctx context.Context, toolID, studentID string) error {
	return c.client.Del(ctx, c.key(toolID, studentID)).Err()
}
