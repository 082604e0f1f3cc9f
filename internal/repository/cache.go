package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"pet_discovery/internal/metrics"
	"pet_discovery/internal/models"

	"github.com/redis/go-redis/v9"
)

const (
	companiesSnapshotKey = "pet_discovery:companies:v1"
	defaultSnapshotTTL   = 5 * time.Minute
)

// SnapshotCache stores serialized snapshots by key.
type SnapshotCache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, val []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// RedisCache is a SnapshotCache backed by redis.
type RedisCache struct {
	client *redis.Client
}

func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{client: client}
}

// DialRedisCache connects to redis and checks it with a ping. Close the cache when done.
func DialRedisCache(ctx context.Context, opts *redis.Options) (*RedisCache, error) {
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis at %s: %w", opts.Addr, err)
	}
	return NewRedisCache(client), nil
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}

func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	b, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return b, true, nil
}

func (c *RedisCache) Set(ctx context.Context, key string, val []byte, ttl time.Duration) error {
	return c.client.Set(ctx, key, val, ttl).Err()
}

func (c *RedisCache) Delete(ctx context.Context, key string) error {
	return c.client.Del(ctx, key).Err()
}

// CachedCompanyRepo serves List from a snapshot cache and invalidates it on writes.
// Cache failures fall through to the wrapped repository.
type CachedCompanyRepo struct {
	inner CompanyRepo
	cache SnapshotCache
	ttl   time.Duration
}

var _ CompanyRepo = (*CachedCompanyRepo)(nil)

func NewCachedCompanyRepo(inner CompanyRepo, cache SnapshotCache, ttl time.Duration) *CachedCompanyRepo {
	if ttl <= 0 {
		ttl = defaultSnapshotTTL
	}
	return &CachedCompanyRepo{inner: inner, cache: cache, ttl: ttl}
}

func (r *CachedCompanyRepo) List(ctx context.Context) ([]models.Company, error) {
	if b, ok, err := r.cache.Get(ctx, companiesSnapshotKey); err == nil && ok {
		var out []models.Company
		if err := json.Unmarshal(b, &out); err == nil {
			metrics.CacheHitsTotal.Inc()
			return out, nil
		}
	}
	metrics.CacheMissesTotal.Inc()

	out, err := r.inner.List(ctx)
	if err != nil {
		return nil, err
	}
	if b, err := json.Marshal(out); err == nil {
		_ = r.cache.Set(ctx, companiesSnapshotKey, b, r.ttl)
	}
	return out, nil
}

func (r *CachedCompanyRepo) Get(ctx context.Context, id int) (models.Company, error) {
	return r.inner.Get(ctx, id)
}

func (r *CachedCompanyRepo) Create(ctx context.Context, c models.Company) (int, error) {
	id, err := r.inner.Create(ctx, c)
	if err != nil {
		return 0, err
	}
	_ = r.cache.Delete(ctx, companiesSnapshotKey)
	return id, nil
}

func (r *CachedCompanyRepo) UpsertAll(ctx context.Context, companies []models.Company) error {
	if err := r.inner.UpsertAll(ctx, companies); err != nil {
		return err
	}
	_ = r.cache.Delete(ctx, companiesSnapshotKey)
	return nil
}
