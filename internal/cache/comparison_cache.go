package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

// ComparisonEntry is one row of the cross-assessment comparison listing.
type ComparisonEntry struct {
	AssessmentID   string    `json:"assessmentId"`
	ProcessName    string    `json:"processName"`
	Industry       string    `json:"industry,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
	TotalRPA       *float64  `json:"totalRpa,omitempty"`
	TotalIPA       *float64  `json:"totalIpa,omitempty"`
	RPAExcluded    bool      `json:"rpaExcluded"`
	IPAExcluded    bool      `json:"ipaExcluded"`
	Recommendation string    `json:"recommendation"`
	CombinedScore  float64   `json:"combinedScore"`
}

// ComparisonCache caches the ranked comparison listing. Invalidated on every
// assessment recompute.
type ComparisonCache interface {
	Set(ctx context.Context, entries []ComparisonEntry) error
	Get(ctx context.Context) ([]ComparisonEntry, error)
	Invalidate(ctx context.Context) error
}

type comparisonCache struct {
	client *redis.Client
}

// NewComparisonCache creates a new comparison cache.
func NewComparisonCache(client *redis.Client) ComparisonCache {
	return &comparisonCache{client: client}
}

const comparisonKey = "comparison:all"

func (c *comparisonCache) Set(ctx context.Context, entries []ComparisonEntry) error {
	raw, err := json.Marshal(entries)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, comparisonKey, raw, 5*time.Minute).Err()
}

func (c *comparisonCache) Get(ctx context.Context) ([]ComparisonEntry, error) {
	raw, err := c.client.Get(ctx, comparisonKey).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var entries []ComparisonEntry
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (c *comparisonCache) Invalidate(ctx context.Context) error {
	return c.client.Del(ctx, comparisonKey).Err()
}
