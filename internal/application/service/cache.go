package service

import (
	"context"
	"time"
)

// ContentCache stores rendered public read models.
type ContentCache interface {
	// Get decodes the cached value into dest and reports whether it was present.
	Get(ctx context.Context, key string, dest any) (bool, error)
	// Generation returns the key's invalidation counter. Read it before
	// loading the value that will be passed to Set.
	Generation(ctx context.Context, key string) (int64, error)
	// Set stores value only if key is still at generation gen, so a load that
	// raced an Invalidate is discarded.
	Set(ctx context.Context, key string, value any, ttl time.Duration, gen int64) error
	// Invalidate drops the keys and bumps their generations.
	Invalidate(ctx context.Context, keys ...string) error
}

// TokenRevoker tracks revoked token ids until they would have expired anyway.
type TokenRevoker interface {
	Revoke(ctx context.Context, jti string, ttl time.Duration) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}
