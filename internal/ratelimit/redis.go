package ratelimit

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// checkAndIncrementScript runs GET, compare, INCR and PEXPIRE as one atomic
// step on the server. It returns 1 when the call is allowed and 0 otherwise.
var checkAndIncrementScript = goredis.NewScript(`
local current = tonumber(redis.call('GET', KEYS[1]) or '0')
if current >= tonumber(ARGV[1]) then
	return 0
end
local n = redis.call('INCR', KEYS[1])
if n == 1 then
	redis.call('PEXPIRE', KEYS[1], ARGV[2])
end
return 1
`)

// RedisClient is the subset of the go-redis client a RedisStore needs.
type RedisClient interface {
	goredis.Scripter
	PTTL(ctx context.Context, key string) *goredis.DurationCmd
}

// RedisStore is a Store shared by every process connected to the same Redis.
// Counter expiry is handled by Redis key TTLs.
type RedisStore struct {
	rdb RedisClient
}

// NewRedisStore wraps an existing client.
func NewRedisStore(rdb RedisClient) *RedisStore {
	return &RedisStore{rdb: rdb}
}

// OpenRedis parses a redis:// URL, connects and pings the server.
func OpenRedis(ctx context.Context, url string) (*goredis.Client, error) {
	opts, err := goredis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	if opts.DialTimeout == 0 {
		opts.DialTimeout = 5 * time.Second
	}

	rdb := goredis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return rdb, nil
}

// CheckAndIncrement implements Store.
func (s *RedisStore) CheckAndIncrement(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	ms := window.Milliseconds()
	if ms < 1 {
		ms = 1
	}
	n, err := checkAndIncrementScript.Run(ctx, s.rdb, []string{key}, limit, ms).Int()
	if err != nil {
		return false, fmt.Errorf("redis check and increment: %w", err)
	}
	return n == 1, nil
}

// TTL implements Store. Missing keys and keys without expiry report zero.
func (s *RedisStore) TTL(ctx context.Context, key string) (time.Duration, error) {
	ttl, err := s.rdb.PTTL(ctx, key).Result()
	if err != nil {
		return 0, fmt.Errorf("redis pttl: %w", err)
	}
	if ttl < 0 {
		return 0, nil
	}
	return ttl, nil
}
