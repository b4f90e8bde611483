package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"feedbackpro/internal/model"
)

// SummaryCache holds computed analytics summaries in Redis. A summary is a
// pure derivation of the underlying rows, so entries carry a short TTL and
// are invalidated outright when a new response arrives.
type SummaryCache interface {
	Get(ctx context.Context, accountID, windowKey string) (*model.AnalyticsSummary, error)
	Set(ctx context.Context, accountID, windowKey string, summary *model.AnalyticsSummary) error
	Invalidate(ctx context.Context, accountID string) error
}

type summaryCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSummaryCache creates a new summary cache
func NewSummaryCache(client *redis.Client) SummaryCache {
	return &summaryCache{
		client: client,
		ttl:    5 * time.Minute,
	}
}

func (c *summaryCache) key(accountID, windowKey string) string {
	return fmt.Sprintf("account:%s:summary:%s", accountID, windowKey)
}

func (c *summaryCache) Get(ctx context.Context, accountID, windowKey string) (*model.AnalyticsSummary, error) {
	data, err := c.client.Get(ctx, c.key(accountID, windowKey)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var summary model.AnalyticsSummary
	if err := json.Unmarshal([]byte(data), &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}

func (c *summaryCache) Set(ctx context.Context, accountID, windowKey string, summary *model.AnalyticsSummary) error {
	data, err := json.Marshal(summary)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.key(accountID, windowKey), data, c.ttl).Err()
}

func (c *summaryCache) Invalidate(ctx context.Context, accountID string) error {
	iter := c.client.Scan(ctx, 0, fmt.Sprintf("account:%s:summary:*", accountID), 100).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}
