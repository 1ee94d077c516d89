package memory

import (
	"context"
	"sync"
	"time"
)

// TokenRevoker keeps revoked token ids in-memory (single instance only).
type TokenRevoker struct {
	mu     sync.Mutex
	tokens map[string]time.Time
}

func NewTokenRevoker() *TokenRevoker {
	return &TokenRevoker{tokens: make(map[string]time.Time)}
}

func (r *TokenRevoker) Revoke(_ context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	r.mu.Lock()
	r.tokens[jti] = time.Now().Add(ttl)
	r.mu.Unlock()
	return nil
}

func (r *TokenRevoker) IsRevoked(_ context.Context, jti string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	expiry, ok := r.tokens[jti]
	if !ok {
		return false, nil
	}
	if time.Now().After(expiry) {
		delete(r.tokens, jti)
		return false, nil
	}
	return true, nil
}
