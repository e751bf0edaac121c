// Package cache is the Redis-backed JSON cache shared by the usecases.
//
// Every method is safe on a Redis with no client: reads miss, writes are
// dropped. The API keeps serving when Redis is down, only slower.
package cache

import (
	"cmp"
	"context"
	"encoding/json"
	"errors"
	"net"
	"strings"
	"sync/atomic"
	"time"

	"placement-prep/internal/config"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	defaultTTL     = 10 * time.Minute
	probeTimeout   = 2 * time.Second
	scanBatchCount = 100
)

var ErrUnavailable = errors.New("redis unavailable")

type Redis struct {
	client *redis.Client
	logger *zap.Logger
	ttl    time.Duration

	degraded atomic.Bool
}

// NewRedis connects and pings once. On failure it returns a pass-through cache rather than an error.
func NewRedis(cfg config.RedisConfig, logger *zap.Logger) *Redis {
	addr := net.JoinHostPort(
		cmp.Or(strings.TrimSpace(cfg.Host), "localhost"),
		cmp.Or(strings.TrimSpace(cfg.Port), "6379"),
	)
	client := redis.NewClient(&redis.Options{Addr: addr, Password: cfg.Password})
	r := NewFromClient(client, cfg.TTL, logger)

	ctx, cancel := context.WithTimeout(context.Background(), probeTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		r.logger.Warn("redis unavailable, bypassing cache", zap.String("addr", addr), zap.Error(err))
		_ = client.Close()
		r.client = nil
	}
	return r
}

// NewFromClient wraps an existing client without probing it. A nil client gives a pass-through cache.
func NewFromClient(client *redis.Client, ttl time.Duration, logger *zap.Logger) *Redis {
	if logger == nil {
		logger = zap.NewNop()
	}
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &Redis{client: client, logger: logger, ttl: ttl}
}

func (r *Redis) enabled() bool {
	return r != nil && r.client != nil
}

// observe logs the first transport failure and the recovery after it; redis.Nil is not a failure.
func (r *Redis) observe(err error) error {
	if errors.Is(err, redis.Nil) {
		return nil
	}
	if err == nil {
		if r.degraded.CompareAndSwap(true, false) {
			r.logger.Info("redis reachable again")
		}
		return nil
	}
	if r.degraded.CompareAndSwap(false, true) {
		r.logger.Warn("redis call failed, cache degraded", zap.Error(err))
	}
	return err
}

func (r *Redis) Ping(ctx context.Context) error {
	if !r.enabled() {
		return ErrUnavailable
	}
	return r.client.Ping(ctx).Err()
}

func (r *Redis) Close() error {
	if !r.enabled() {
		return nil
	}
	return r.client.Close()
}

// GetJSON decodes key into out and reports whether it was present.
func (r *Redis) GetJSON(ctx context.Context, key string, out any) (bool, error) {
	if !r.enabled() {
		return false, nil
	}
	raw, err := r.client.Get(ctx, key).Bytes()
	if err != nil || len(raw) == 0 {
		return false, r.observe(err)
	}
	_ = r.observe(nil)
	if err := json.Unmarshal(raw, out); err != nil {
		return false, err
	}
	return true, nil
}

// SetJSON stores value under key. A non-positive ttl means the configured default.
func (r *Redis) SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error {
	if !r.enabled() {
		return nil
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	if ttl <= 0 {
		ttl = r.ttl
	}
	return r.observe(r.client.Set(ctx, key, raw, ttl).Err())
}

func (r *Redis) Delete(ctx context.Context, keys ...string) error {
	if !r.enabled() || len(keys) == 0 {
		return nil
	}
	return r.observe(r.client.Del(ctx, keys...).Err())
}

// DeleteByPattern unlinks every key matching a glob, one SCAN page at a time.
func (r *Redis) DeleteByPattern(ctx context.Context, pattern string) error {
	pattern = strings.TrimSpace(pattern)
	if !r.enabled() || pattern == "" {
		return nil
	}

	var cursor uint64
	for {
		keys, next, err := r.client.Scan(ctx, cursor, pattern, scanBatchCount).Result()
		if err != nil {
			return r.observe(err)
		}
		if len(keys) > 0 {
			if err := r.client.Unlink(ctx, keys...).Err(); err != nil {
				r.logger.Warn("redis unlink failed", zap.String("pattern", pattern), zap.Int("keys", len(keys)), zap.Error(err))
			}
		}
		if next == 0 {
			return r.observe(nil)
		}
		cursor = next
	}
}
