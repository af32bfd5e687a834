package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"
)

// Runs against a real Redis when TEST_REDIS_ADDR is set.
func newTestRedis(t *testing.T) *RedisCache {
	t.Helper()
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TEST_REDIS_ADDR not set")
	}
	c, err := NewRedisCache(context.Background(), RedisConfig{Addr: addr})
	if err != nil {
		t.Fatalf("NewRedisCache: %v", err)
	}
	t.Cleanup(func() { c.Close() })
	return c
}

func TestRedisCache_UpdateJSONConcurrent(t *testing.T) {
	c := newTestRedis(t)
	ctx := context.Background()
	key := fmt.Sprintf("test:update:%d", time.Now().UnixNano())
	t.Cleanup(func() { c.Del(ctx, key) })

	if err := c.SetJSON(ctx, key, []int{}, time.Minute); err != nil {
		t.Fatalf("SetJSON: %v", err)
	}

	var wg sync.WaitGroup
	for i := 0; i < 3; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			err := c.UpdateJSON(ctx, key, time.Minute, func(raw []byte) (any, error) {
				var list []int
				if err := json.Unmarshal(raw, &list); err != nil {
					return nil, err
				}
				return append(list, n), nil
			})
			if err != nil {
				t.Errorf("UpdateJSON: %v", err)
			}
		}(i)
	}
	wg.Wait()

	var got []int
	if err := c.GetJSON(ctx, key, &got); err != nil {
		t.Fatalf("GetJSON: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected every update to land, got %v", got)
	}
}

func TestRedisCache_UpdateJSONMiss(t *testing.T) {
	c := newTestRedis(t)
	called := false
	err := c.UpdateJSON(context.Background(), "test:update:missing", time.Minute, func([]byte) (any, error) {
		called = true
		return nil, nil
	})
	if err != ErrCacheMiss || called {
		t.Fatalf("expected ErrCacheMiss without calling update, got %v", err)
	}
}
