package ports

import "context"

// TokenVault is the durable store for bearer tokens, keyed by browser
// session ID. It is the only part of a session that survives a gateway
// restart; everything else is re-derived from the backend.
type TokenVault interface {
	Get(ctx context.Context, sid string) (string, error)
	Put(ctx context.Context, sid, token string) error
	Delete(ctx context.Context, sid string) error
}
