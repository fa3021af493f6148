// Package cache keeps published EPK pages in Redis, keyed by slug.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/example/epkadmin/internal/models"
)

const slugKeyPrefix = "epk:slug:"

// Options configures the Redis connection.
type Options struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

// SlugCache stores EPKs by slug for the public page route.
type SlugCache struct {
	db  *redis.Client
	ttl time.Duration
}

// Connect opens a client and pings the server.
func Connect(ctx context.Context, opts Options) (*SlugCache, error) {
	const op = "cache.Connect"
	db := redis.NewClient(&redis.Options{
		Addr:         opts.Addr,
		Password:     opts.Password,
		DB:           opts.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
	})

	if err := db.Ping(ctx).Err(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &SlugCache{db: db, ttl: opts.TTL}, nil
}

func slugKey(slug string) string {
	return slugKeyPrefix + slug
}

// Get returns the cached EPK for slug. ok is false on a miss.
func (c *SlugCache) Get(ctx context.Context, slug string) (*models.EPK, bool, error) {
	const op = "cache.Get"
	val, err := c.db.Get(ctx, slugKey(slug)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("%s: %w", op, err)
	}

	var epk models.EPK
	if err := json.Unmarshal(val, &epk); err != nil {
		return nil, false, fmt.Errorf("%s: %w", op, err)
	}
	return &epk, true, nil
}

// Set stores epk under its slug.
func (c *SlugCache) Set(ctx context.Context, epk *models.EPK) error {
	const op = "cache.Set"
	data, err := json.Marshal(epk)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := c.db.Set(ctx, slugKey(epk.Slug), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Invalidate drops the entries for slugs.
func (c *SlugCache) Invalidate(ctx context.Context, slugs ...string) error {
	if len(slugs) == 0 {
		return nil
	}
	keys := make([]string, len(slugs))
	for i, slug := range slugs {
		keys[i] = slugKey(slug)
	}
	return c.db.Del(ctx, keys...).Err()
}

// Close releases the client.
func (c *SlugCache) Close() error {
	return c.db.Close()
}
