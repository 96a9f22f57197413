package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/annihlj/AutomationFit/internal/scoring"
)

// GraphCache caches the question-graph snapshot of a questionnaire version.
// Master data is read-only at evaluation time, so a generous TTL is safe;
// seeding invalidates explicitly.
type GraphCache interface {
	Set(ctx context.Context, versionID string, data *scoring.GraphData) error
	Get(ctx context.Context, versionID string) (*scoring.GraphData, error)
	Delete(ctx context.Context, versionID string) error
}

type graphCache struct {
	client *redis.Client
}

// NewGraphCache creates a new graph cache.
func NewGraphCache(client *redis.Client) GraphCache {
	return &graphCache{client: client}
}

func (c *graphCache) Set(ctx context.Context, versionID string, data *scoring.GraphData) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, "graph:"+versionID, raw, time.Hour).Err()
}

func (c *graphCache) Get(ctx context.Context, versionID string) (*scoring.GraphData, error) {
	raw, err := c.client.Get(ctx, "graph:"+versionID).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var data scoring.GraphData
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		return nil, err
	}
	return &data, nil
}

func (c *graphCache) Delete(ctx context.Context, versionID string) error {
	return c.client.Del(ctx, "graph:"+versionID).Err()
}
