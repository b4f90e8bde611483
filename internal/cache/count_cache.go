package cache

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// ResponseCountCache keeps per-account response counters in a Redis ZSET so
// the dashboard can show live per-survey counts without rescanning Mongo.
// The analytics aggregator remains the source of truth for the ranked
// top-surveys list; this is a fast path only.
type ResponseCountCache interface {
	Increment(ctx context.Context, accountID, surveyID string) error
	GetTop(ctx context.Context, accountID string, limit int) ([]SurveyCount, error)
	GetCount(ctx context.Context, accountID, surveyID string) (int64, error)
}

// SurveyCount is a single counter entry
type SurveyCount struct {
	SurveyID string `json:"surveyId"`
	Count    int64  `json:"count"`
}

type responseCountCache struct {
	client *redis.Client
}

// NewResponseCountCache creates a new response count cache
func NewResponseCountCache(client *redis.Client) ResponseCountCache {
	return &responseCountCache{
		client: client,
	}
}

func (c *responseCountCache) key(accountID string) string {
	return fmt.Sprintf("account:%s:responsecounts", accountID)
}

func (c *responseCountCache) Increment(ctx context.Context, accountID, surveyID string) error {
	return c.client.ZIncrBy(ctx, c.key(accountID), 1, surveyID).Err()
}

func (c *responseCountCache) GetTop(ctx context.Context, accountID string, limit int) ([]SurveyCount, error) {
	results, err := c.client.ZRevRangeWithScores(ctx, c.key(accountID), 0, int64(limit-1)).Result()
	if err != nil {
		return nil, err
	}

	counts := make([]SurveyCount, len(results))
	for i, z := range results {
		counts[i] = SurveyCount{
			SurveyID: z.Member.(string),
			Count:    int64(z.Score),
		}
	}
	return counts, nil
}

func (c *responseCountCache) GetCount(ctx context.Context, accountID, surveyID string) (int64, error) {
	score, err := c.client.ZScore(ctx, c.key(accountID), surveyID).Result()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return int64(score), nil
}
