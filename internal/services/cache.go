package services

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"blitzboat/backend-go/internal/config"
)

// Cache is the snapshot byte cache. Redis when reachable, an in-process TTL
// map otherwise, so a missing Redis never takes the dashboard down.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, val []byte, ttl time.Duration) error
}

func NewCache(cfg config.Config) Cache {
	opt, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return newMemoryCache()
	}
	client := redis.NewClient(opt)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return newMemoryCache()
	}
	return &redisCache{client: client}
}

type redisCache struct {
	client *redis.Client
}

func (r *redisCache) Get(ctx context.Context, key string) ([]byte, bool) {
	b, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	return b, true
}

func (r *redisCache) Set(ctx context.Context, key string, val []byte, ttl time.Duration) error {
	return r.client.Set(ctx, key, val, ttl).Err()
}

type memoryCache struct {
	mu    sync.Mutex
	items map[string]memItem
}

type memItem struct {
	val []byte
	exp time.Time
}

func newMemoryCache() *memoryCache {
	return &memoryCache{items: make(map[string]memItem)}
}

func (m *memoryCache) Get(_ context.Context, key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	it, ok := m.items[key]
	if !ok {
		return nil, false
	}
	if !it.exp.IsZero() && time.Now().After(it.exp) {
		delete(m.items, key)
		return nil, false
	}
	return it.val, true
}

func (m *memoryCache) Set(_ context.Context, key string, val []byte, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	exp := time.Time{}
	if ttl > 0 {
		exp = time.Now().Add(ttl)
	}
	m.items[key] = memItem{val: val, exp: exp}
	return nil
}

func MarshalCache(v any) ([]byte, error) {
	return json.Marshal(v)
}

func UnmarshalCache(data []byte, v any) error {
	return json.Unmarshal(data, v)
}
