// Package cache stores JSON projections in Redis.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/kovalchuka569/taskflow/internal/platform/logger"
)

type Config struct {
	Addr      string        `yaml:"addr"`
	Password  string        `yaml:"password"`
	DB        int           `yaml:"db"`
	TTL       time.Duration `yaml:"ttl"`
	KeyPrefix string        `yaml:"key_prefix"`
}

// Store is a keyed JSON cache for values of type T.
//
// Add only fills an absent key. Invalidate replaces whatever is stored with a
// short-lived tombstone, so a reader that loaded its value before the
// invalidation cannot Add it back until the tombstone expires.
type Store[T any] interface {
	Get(ctx context.Context, key string) (T, bool, error)
	Add(ctx context.Context, key string, value T) (bool, error)
	Invalidate(ctx context.Context, key string) error
}

// Tombstone is the raw payload Invalidate writes. It is never valid JSON.
const Tombstone = "\x00gone"

// TombstoneTTL bounds how long an invalidated key refuses Add.
const TombstoneTTL = 30 * time.Second

// NewClient connects to Redis and pings it. It returns (nil, nil) when no
// address is configured.
func NewClient(ctx context.Context, cfg Config, log *logger.Logger) (*goredis.Client, error) {
	addr := strings.TrimSpace(cfg.Addr)
	if addr == "" {
		log.Info("projection cache disabled (no REDIS_ADDR)")
		return nil, nil
	}
	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		Password:    cfg.Password,
		DB:          cfg.DB,
		DialTimeout: 5 * time.Second,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	log.Info("connected to Redis", "addr", addr, "db", cfg.DB)
	return rdb, nil
}

type redisStore[T any] struct {
	rdb    *goredis.Client
	prefix string
	ttl    time.Duration
	log    *logger.Logger
}

// NewRedisStore stores values as JSON under prefix+key with a TTL. A nil
// client yields a Noop store.
func NewRedisStore[T any](rdb *goredis.Client, prefix string, ttl time.Duration, log *logger.Logger) Store[T] {
	if rdb == nil {
		return Noop[T]{}
	}
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &redisStore[T]{rdb: rdb, prefix: prefix, ttl: ttl, log: log.With("service", "RedisProjectionCache")}
}

func (s *redisStore[T]) Get(ctx context.Context, key string) (T, bool, error) {
	var zero T
	raw, err := s.rdb.Get(ctx, s.prefix+key).Bytes()
	if errors.Is(err, goredis.Nil) {
		return zero, false, nil
	}
	if err != nil {
		return zero, false, fmt.Errorf("redis get: %w", err)
	}
	if string(raw) == Tombstone {
		return zero, false, nil
	}
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		// A payload from an older shape is treated as a miss and dropped.
		_ = s.rdb.Del(ctx, s.prefix+key).Err()
		return zero, false, fmt.Errorf("decode cached %s: %w", key, err)
	}
	return v, true, nil
}

func (s *redisStore[T]) Add(ctx context.Context, key string, value T) (bool, error) {
	raw, err := json.Marshal(value)
	if err != nil {
		return false, fmt.Errorf("encode cached %s: %w", key, err)
	}
	ok, err := s.rdb.SetNX(ctx, s.prefix+key, raw, s.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("redis setnx: %w", err)
	}
	return ok, nil
}

func (s *redisStore[T]) Invalidate(ctx context.Context, key string) error {
	if err := s.rdb.Set(ctx, s.prefix+key, Tombstone, TombstoneTTL).Err(); err != nil {
		return fmt.Errorf("redis set tombstone: %w", err)
	}
	return nil
}

// Noop never stores anything.
type Noop[T any] struct{}

func (Noop[T]) Get(context.Context, string) (T, bool, error) {
	var zero T
	return zero, false, nil
}
func (Noop[T]) Add(context.Context, string, T) (bool, error) { return false, nil }
func (Noop[T]) Invalidate(context.Context, string) error     { return nil }
