package cache

import (
	"context"
	"encoding/json"
	"time"

	dom "github.com/AlyonaQA/ptm-server/internal/domain"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "task:q:"

// TaskCache caches task query results in Redis, keyed per owner and query.
// Every write for an owner invalidates all of that owner's cached queries.
type TaskCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewTaskCache returns a new TaskCache.
func NewTaskCache(rdb *redis.Client, ttl time.Duration) *TaskCache {
	return &TaskCache{rdb: rdb, ttl: ttl}
}

// Get returns the cached result for the owner's query, or nil on miss.
func (c *TaskCache) Get(ctx context.Context, ownerID, queryKey string) ([]dom.Task, error) {
	b, err := c.rdb.Get(ctx, key(ownerID, queryKey)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var list []dom.Task
	if err := json.Unmarshal(b, &list); err != nil {
		return nil, err
	}
	if list == nil {
		list = []dom.Task{}
	}
	return list, nil
}

// Set stores the query result. Empty results are cached too.
func (c *TaskCache) Set(ctx context.Context, ownerID, queryKey string, list []dom.Task) error {
	if list == nil {
		list = []dom.Task{}
	}
	b, err := json.Marshal(list)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, key(ownerID, queryKey), b, c.ttl).Err()
}

// Invalidate removes all cached queries for the owner.
func (c *TaskCache) Invalidate(ctx context.Context, ownerID string) error {
	iter := c.rdb.Scan(ctx, 0, key(ownerID, "*"), 100).Iterator()
	for iter.Next(ctx) {
		if err := c.rdb.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}

func key(ownerID, queryKey string) string {
	return keyPrefix + ownerID + ":" + queryKey
}
