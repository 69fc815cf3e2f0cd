package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	redislib "github.com/redis/go-redis/v9"

	"github.com/budgez/backend/repository"
)

type summaryCache struct {
	client *redislib.Client
	prefix string
	ttl    time.Duration
}

// NewSummaryCache creates a Redis-backed SummaryCache. Entries expire on
// their own after the TTL; saves invalidate them eagerly.
func NewSummaryCache(client *redislib.Client, ttl time.Duration) repository.SummaryCache {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &summaryCache{
		client: client,
		prefix: "budget:summary:",
		ttl:    ttl,
	}
}

func (c *summaryCache) Get(ctx context.Context, budgetID string) (*repository.Summary, error) {
	result, err := c.client.Get(ctx, c.key(budgetID)).Result()
	if err != nil {
		if errors.Is(err, redislib.Nil) {
			return nil, repository.ErrCacheMiss
		}
		return nil, err
	}

	var summary repository.Summary
	if err := json.Unmarshal([]byte(result), &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}

func (c *summaryCache) Set(ctx context.Context, budgetID string, summary repository.Summary) error {
	if budgetID == "" {
		return nil
	}
	payload, err := json.Marshal(summary)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.key(budgetID), payload, c.ttl).Err()
}

func (c *summaryCache) Invalidate(ctx context.Context, budgetID string) error {
	return c.client.Del(ctx, c.key(budgetID)).Err()
}

func (c *summaryCache) key(budgetID string) string {
	return c.prefix + budgetID
}
