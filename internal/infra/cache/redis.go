package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/xavierca1/ligue-csr/internal/entity"
)

const (
	snapshotKey    = "csr:leads:snapshot"
	reminderPrefix = "csr:reminder:"
)

func NewRedisClient(addr, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           db,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MinIdleConns: 2,
	})
}

// SnapshotCache keeps the full lead list as one JSON document.
type SnapshotCache struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewSnapshotCache(client *redis.Client, ttl time.Duration) *SnapshotCache {
	return &SnapshotCache{Client: client, TTL: ttl}
}

func (c *SnapshotCache) Get(ctx context.Context) ([]entity.Lead, bool, error) {
	raw, err := c.Client.Get(ctx, snapshotKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get snapshot: %w", err)
	}

	var leads []entity.Lead
	if err := json.Unmarshal(raw, &leads); err != nil {
		return nil, false, fmt.Errorf("decode snapshot: %w", err)
	}
	return leads, true, nil
}

func (c *SnapshotCache) Set(ctx context.Context, leads []entity.Lead) error {
	raw, err := json.Marshal(leads)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	if err := c.Client.Set(ctx, snapshotKey, raw, c.TTL).Err(); err != nil {
		return fmt.Errorf("redis set snapshot: %w", err)
	}
	return nil
}

func (c *SnapshotCache) Invalidate(ctx context.Context) error {
	if err := c.Client.Del(ctx, snapshotKey).Err(); err != nil {
		return fmt.Errorf("redis del snapshot: %w", err)
	}
	return nil
}

// ReminderDeduper lets a reminder key through once per TTL window.
type ReminderDeduper struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewReminderDeduper(client *redis.Client, ttl time.Duration) *ReminderDeduper {
	return &ReminderDeduper{Client: client, TTL: ttl}
}

// FirstSeen reports whether key had not been claimed yet, claiming it.
func (d *ReminderDeduper) FirstSeen(ctx context.Context, key string) (bool, error) {
	ok, err := d.Client.SetNX(ctx, reminderPrefix+key, 1, d.TTL).Result()
	if err != nil {
		return false, fmt.Errorf("redis setnx reminder: %w", err)
	}
	return ok, nil
}

// NopSnapshotCache always misses. Used when Redis is not configured.
type NopSnapshotCache struct{}

func (NopSnapshotCache) Get(context.Context) ([]entity.Lead, bool, error) { return nil, false, nil }
func (NopSnapshotCache) Set(context.Context, []entity.Lead) error          { return nil }
func (NopSnapshotCache) Invalidate(context.Context) error                  { return nil }

// NopDeduper lets every key through.
type NopDeduper struct{}

func (NopDeduper) FirstSeen(context.Context, string) (bool, error) { return true, nil }
