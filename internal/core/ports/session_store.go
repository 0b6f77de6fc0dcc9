package ports

import (
	"context"

	"github.com/Cassio-Ac/minerva-intelligence-sub006/internal/core/domain"
)

// SessionStore owns per-browser authentication state. See the service
// implementation for the state machine; guards and handlers only consume
// this surface.
type SessionStore interface {
	// Initialize resolves a not-yet-seen session from its persisted token,
	// returning once the session has settled.
	Initialize(ctx context.Context, sid string)
	// Resolved reports whether Initialize has already settled this session.
	Resolved(sid string) bool

	Login(ctx context.Context, sid, username, password string) bool
	Logout(ctx context.Context, sid string)
	LoadUser(ctx context.Context, sid string)
	AdoptToken(ctx context.Context, sid, token string) bool
	ClearError(sid string)
	Snapshot(sid string) domain.Session
}
