package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"feedbackpro/internal/model"
)

// ShareCache stores public share-link tokens in Redis. A zero TTL stores
// the link without expiry.
type ShareCache interface {
	Set(ctx context.Context, link *model.ShareLink, ttl time.Duration) error
	Get(ctx context.Context, token string) (*model.ShareLink, error)
	Delete(ctx context.Context, token string) error
}

type shareCache struct {
	client *redis.Client
}

// NewShareCache creates a new share-link cache
func NewShareCache(client *redis.Client) ShareCache {
	return &shareCache{
		client: client,
	}
}

func (c *shareCache) Set(ctx context.Context, link *model.ShareLink, ttl time.Duration) error {
	data, err := json.Marshal(link)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, "share:"+link.Token, data, ttl).Err()
}

func (c *shareCache) Get(ctx context.Context, token string) (*model.ShareLink, error) {
	data, err := c.client.Get(ctx, "share:"+token).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var link model.ShareLink
	if err := json.Unmarshal([]byte(data), &link); err != nil {
		return nil, err
	}
	return &link, nil
}

func (c *shareCache) Delete(ctx context.Context, token string) error {
	return c.client.Del(ctx, "share:"+token).Err()
}
