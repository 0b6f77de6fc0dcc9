package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Cassio-Ac/minerva-intelligence-sub006/internal/core/domain"
)

// Tokens are kept at most this long even if the browser never comes back;
// the JWT inside usually expires sooner and the backend is the authority.
const tokenTTL = 30 * 24 * time.Hour

const vaultKeyPrefix = "dashboard-auth-storage"

// TokenVault persists bearer tokens per browser session in Redis. It is the
// only durable piece of session state; everything else is re-derived from
// the backend on load.
type TokenVault struct {
	client *redis.Client
}

// NewTokenVault creates a TokenVault wrapping the given Redis client.
func NewTokenVault(client *redis.Client) *TokenVault {
	return &TokenVault{client: client}
}

// Get returns the persisted token for sid, or domain.ErrNoSession when none
// is stored.
func (v *TokenVault) Get(ctx context.Context, sid string) (string, error) {
	token, err := v.client.Get(ctx, v.key(sid)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", domain.ErrNoSession
		}
		return "", fmt.Errorf("vault get: %w", err)
	}
	return token, nil
}

// Put stores the token for sid, replacing any previous one.
func (v *TokenVault) Put(ctx context.Context, sid, token string) error {
	if err := v.client.Set(ctx, v.key(sid), token, tokenTTL).Err(); err != nil {
		return fmt.Errorf("vault put: %w", err)
	}
	return nil
}

// Delete discards the token for sid. Deleting a missing key is not an error.
func (v *TokenVault) Delete(ctx context.Context, sid string) error {
	if err := v.client.Del(ctx, v.key(sid)).Err(); err != nil {
		return fmt.Errorf("vault delete: %w", err)
	}
	return nil
}

func (v *TokenVault) key(sid string) string {
	return fmt.Sprintf("%s:%s", vaultKeyPrefix, sid)
}
