package reminders

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/patrickmn/go-cache"
)

const debounceKeyPrefix = "dietplan||reminders||"

func clampWindow(window time.Duration) time.Duration {
	if window < MinDebounceWindow {
		return MinDebounceWindow
	}
	return window
}

// RedisDebouncer shares the debounce window between service instances.
type RedisDebouncer struct {
	redisClient *redis.Client
	window      time.Duration
}

func NewRedisDebouncer(redisClient *redis.Client, window time.Duration) *RedisDebouncer {
	return &RedisDebouncer{
		redisClient: redisClient,
		window:      clampWindow(window),
	}
}

func (d *RedisDebouncer) Allow(ctx context.Context, key string) (bool, error) {
	return d.redisClient.SetNX(ctx, debounceKeyPrefix+key, 1, d.window).Result()
}

func (d *RedisDebouncer) Release(ctx context.Context, key string) error {
	return d.redisClient.Del(ctx, debounceKeyPrefix+key).Err()
}

// MemoryDebouncer keeps the windows in process.
type MemoryDebouncer struct {
	windows *cache.Cache
	window  time.Duration
}

func NewMemoryDebouncer(window time.Duration) *MemoryDebouncer {
	window = clampWindow(window)
	return &MemoryDebouncer{
		windows: cache.New(window, 2*window),
		window:  window,
	}
}

func (d *MemoryDebouncer) Allow(_ context.Context, key string) (bool, error) {
	// Add fails while an unexpired entry exists
	return d.windows.Add(key, time.Now(), d.window) == nil, nil
}

func (d *MemoryDebouncer) Release(_ context.Context, key string) error {
	d.windows.Delete(key)
	return nil
}
