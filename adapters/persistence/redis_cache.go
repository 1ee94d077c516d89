package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/khoahotran/portfolio-api/internal/application/service"
)

const (
	cachePrefix      = "portfolio:cache:"
	generationPrefix = "portfolio:cachegen:"
)

// KEYS[1] value, KEYS[2] generation; ARGV[1] payload, ARGV[2] expected
// generation, ARGV[3] ttl in ms (0 keeps it forever).
var setIfGenerationScript = redis.NewScript(`
local cur = redis.call("GET", KEYS[2]) or "0"
if cur ~= ARGV[2] then
  return 0
end
if tonumber(ARGV[3]) > 0 then
  redis.call("SET", KEYS[1], ARGV[1], "PX", ARGV[3])
else
  redis.call("SET", KEYS[1], ARGV[1])
end
return 1
`)

type redisContentCache struct {
	client redis.UniversalClient
}

func NewRedisContentCache(client redis.UniversalClient) service.ContentCache {
	return &redisContentCache{client: client}
}

func (c *redisContentCache) Get(ctx context.Context, key string, dest any) (bool, error) {
	raw, err := c.client.Get(ctx, cachePrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("redis get %s: %w", key, err)
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return false, fmt.Errorf("decode cached %s: %w", key, err)
	}
	return true, nil
}

func (c *redisContentCache) Generation(ctx context.Context, key string) (int64, error) {
	gen, err := c.client.Get(ctx, generationPrefix+key).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("redis get generation %s: %w", key, err)
	}
	return gen, nil
}

func (c *redisContentCache) Set(ctx context.Context, key string, value any, ttl time.Duration, gen int64) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode cached %s: %w", key, err)
	}
	ms := int64(0)
	if ttl > 0 {
		ms = ttl.Milliseconds()
	}
	err = setIfGenerationScript.Run(ctx, c.client,
		[]string{cachePrefix + key, generationPrefix + key},
		raw, strconv.FormatInt(gen, 10), strconv.FormatInt(ms, 10),
	).Err()
	if err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

func (c *redisContentCache) Invalidate(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, k := range keys {
			pipe.Incr(ctx, generationPrefix+k)
			pipe.Del(ctx, cachePrefix+k)
		}
		return nil
	})
	return err
}

type redisTokenRevoker struct {
	client redis.UniversalClient
}

func NewRedisTokenRevoker(client redis.UniversalClient) service.TokenRevoker {
	return &redisTokenRevoker{client: client}
}

func (r *redisTokenRevoker) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	return r.client.Set(ctx, revocationKey(jti), "1", ttl).Err()
}

func (r *redisTokenRevoker) IsRevoked(ctx context.Context, jti string) (bool, error) {
	n, err := r.client.Exists(ctx, revocationKey(jti)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func revocationKey(jti string) string {
	return "portfolio:revoked:" + jti
}
