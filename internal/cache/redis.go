package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/patwell/ipgate/internal/config"
	"github.com/patwell/ipgate/pkg/errors"
)

// Redis is the shared Cache backend for multi-replica deployments.  Expiry is
// delegated to Redis itself via key TTLs, which preserves the contract's lazy
// semantics: a missing or expired key is a miss, and Set overwrites.
type Redis struct {
	client *redis.Client
	prefix string
}

// NewRedisClient builds a go-redis client from configuration.
func NewRedisClient(cfg config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	})
}

// NewRedis wraps a go-redis client as a Cache.  Every key is namespaced with
// prefix so the service can share a Redis database with other tenants.
func NewRedis(client *redis.Client, prefix string) *Redis {
	return &Redis{client: client, prefix: prefix}
}

func (r *Redis) fullKey(key string) string {
	return r.prefix + key
}

func (r *Redis) Get(ctx context.Context, key string, dest interface{}) error {
	data, err := r.client.Get(ctx, r.fullKey(key)).Bytes()
	if err == redis.Nil {
		return ErrMiss
	}
	if err != nil {
		return errors.Wrap(err, errors.CodeCacheError, "failed to get from redis")
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return errors.Wrap(err, errors.CodeCacheError, "failed to decode cached value")
	}
	return nil
}

func (r *Redis) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return errors.Wrap(err, errors.CodeCacheError, "failed to encode value for cache")
	}
	if err := r.client.Set(ctx, r.fullKey(key), data, ttl).Err(); err != nil {
		return errors.Wrap(err, errors.CodeCacheError, "failed to write to redis")
	}
	return nil
}

// Size is unsupported on the Redis backend; counting keys would require a
// full scan.
func (r *Redis) Size(_ context.Context) (int, bool) {
	return 0, false
}

func (r *Redis) Ping(ctx context.Context) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return errors.Wrap(err, errors.CodeCacheError, "redis unreachable")
	}
	return nil
}
