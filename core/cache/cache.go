package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"time2gather/core/logger"

	"github.com/redis/go-redis/v9"
)

var (
	// ErrCacheMiss is returned by GetJSON and UpdateJSON when the key does not exist.
	ErrCacheMiss = errors.New("cache: key not found")
	// ErrConflict is returned by UpdateJSON when the key changed under every attempt.
	ErrConflict = errors.New("cache: concurrent update conflict")
)

const maxUpdateAttempts = 5

// UpdateFunc receives the stored value and returns the replacement, or nil to leave the key as is.
// It may run more than once and must not keep state between calls.
type UpdateFunc func(raw []byte) (any, error)

type Cache interface {
	GetJSON(ctx context.Context, key string, dest any) error
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	// UpdateJSON is an atomic read-modify-write of key. Writes restart the TTL.
	UpdateJSON(ctx context.Context, key string, ttl time.Duration, update UpdateFunc) error
	Del(ctx context.Context, keys ...string) error
}

type RedisCache struct {
	client *redis.Client
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

func NewRedisCache(ctx context.Context, config RedisConfig) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     config.Addr,
		Password: config.Password,
		DB:       config.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		logger.Error("Cache:NewRedisCache:Ping", "addr", config.Addr, "error", err)
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	logger.Info("Redis connected", "addr", config.Addr, "db", config.DB)
	return &RedisCache{client: client}, nil
}

func (c *RedisCache) GetJSON(ctx context.Context, key string, dest any) error {
	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ErrCacheMiss
		}
		return err
	}
	return json.Unmarshal(raw, dest)
}

func (c *RedisCache) SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, raw, ttl).Err()
}

// UpdateJSON runs update inside WATCH/MULTI and retries when another client wrote the key first.
func (c *RedisCache) UpdateJSON(ctx context.Context, key string, ttl time.Duration, update UpdateFunc) error {
	txf := func(tx *redis.Tx) error {
		raw, err := tx.Get(ctx, key).Bytes()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				return ErrCacheMiss
			}
			return err
		}

		value, err := update(raw)
		if err != nil || value == nil {
			return err
		}
		next, err := json.Marshal(value)
		if err != nil {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, next, ttl)
			return nil
		})
		return err
	}

	for attempt := 1; attempt <= maxUpdateAttempts; attempt++ {
		err := c.client.Watch(ctx, txf, key)
		if !errors.Is(err, redis.TxFailedErr) {
			return err
		}
		logger.Debug("Cache:UpdateJSON:Retry", "key", key, "attempt", attempt)
	}
	return ErrConflict
}

func (c *RedisCache) Del(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return c.client.Del(ctx, keys...).Err()
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}
