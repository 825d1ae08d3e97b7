package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"hydropoints/internal/model"
)

// ScoreCache handles Redis operations for the freshest trust score.
// The key TTL doubles as the staleness gate: a cache miss means the
// persisted score is older than the freshness window and must be
// recomputed before use.
type ScoreCache interface {
	Get(ctx context.Context, userID string) (*model.ScoreResult, error)
	Set(ctx context.Context, result *model.ScoreResult) error
	Invalidate(ctx context.Context, userID string) error
}

type scoreCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewScoreCache creates a new score cache with the given freshness window
func NewScoreCache(client *redis.Client, ttl time.Duration) ScoreCache {
	return &scoreCache{
		client: client,
		ttl:    ttl,
	}
}

func (c *scoreCache) key(userID string) string {
	return fmt.Sprintf("user:%s:trust", userID)
}

// Get returns the cached result, or nil on a miss (stale or never computed)
func (c *scoreCache) Get(ctx context.Context, userID string) (*model.ScoreResult, error) {
	data, err := c.client.Get(ctx, c.key(userID)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var result model.ScoreResult
	if err := json.Unmarshal([]byte(data), &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *scoreCache) Set(ctx context.Context, result *model.ScoreResult) error {
	data, err := json.Marshal(result)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.key(result.UserID), data, c.ttl).Err()
}

// Invalidate forces the next read to recompute, e.g. after new log entries
func (c *scoreCache) Invalidate(ctx context.Context, userID string) error {
	return c.client.Del(ctx, c.key(userID)).Err()
}
