package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sahilchouksey/task-manager-api/model"
)

var (
	ErrNotFound = errors.New("key not found in cache")
)

// RedisCache stores single tasks as JSON under task:<id>
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisCache creates a new Redis cache instance. Entries expire after ttl;
// zero keeps them until evicted.
func NewRedisCache(redisURL string, ttl time.Duration) (*RedisCache, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opt)

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, err
	}

	return &RedisCache{
		client: client,
		ttl:    ttl,
	}, nil
}

// TaskKey is the cache key of the task with the given id
func TaskKey(id uint) string {
	return fmt.Sprintf("task:%d", id)
}

// GetTask returns the cached task or ErrNotFound
func (r *RedisCache) GetTask(ctx context.Context, id uint) (*model.Task, error) {
	val, err := r.client.Get(ctx, TaskKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	var task model.Task
	if err := json.Unmarshal(val, &task); err != nil {
		return nil, fmt.Errorf("corrupt cache entry %s: %w", TaskKey(id), err)
	}
	return &task, nil
}

// SetTask caches task under its id
func (r *RedisCache) SetTask(ctx context.Context, task *model.Task) error {
	jsonData, err := json.Marshal(task)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, TaskKey(task.ID), jsonData, r.ttl).Err()
}

// DeleteTask evicts the task with the given id. Evicting a missing key is
// not an error.
func (r *RedisCache) DeleteTask(ctx context.Context, id uint) error {
	return r.client.Del(ctx, TaskKey(id)).Err()
}

// Close closes the Redis connection
func (r *RedisCache) Close() error {
	return r.client.Close()
}
