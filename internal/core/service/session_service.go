package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/Cassio-Ac/minerva-intelligence-sub006/internal/api/metrics"
	"github.com/Cassio-Ac/minerva-intelligence-sub006/internal/core/domain"
	"github.com/Cassio-Ac/minerva-intelligence-sub006/internal/core/ports"
)

// sessionExpiredMsg is the fixed message shown when a persisted token is no
// longer accepted by the backend.
const sessionExpiredMsg = "Session expired"

// SessionStore owns the authentication state of every browser session the
// gateway is serving. State lives in memory; only the bearer token is durable
// (via the TokenVault), so after a restart the user profile is always
// re-fetched from the backend before a session counts as authenticated.
type SessionStore struct {
	api   ports.AuthAPI
	vault ports.TokenVault
	log   zerolog.Logger

	mu       sync.Mutex
	sessions map[string]*domain.Session
	resolved map[string]bool
}

func NewSessionStore(api ports.AuthAPI, vault ports.TokenVault, log zerolog.Logger) *SessionStore {
	return &SessionStore{
		api:      api,
		vault:    vault,
		log:      log,
		sessions: make(map[string]*domain.Session),
		resolved: make(map[string]bool),
	}
}

// Initialize resolves a session the gateway has not seen since startup: it
// loads the persisted token, if any, and validates it against the backend.
// It returns once the session has settled, so callers can gate rendering on
// it. Calling it again for an already-resolved session is a no-op.
func (s *SessionStore) Initialize(ctx context.Context, sid string) {
	s.mu.Lock()
	if s.resolved[sid] {
		s.mu.Unlock()
		return
	}
	s.resolved[sid] = true
	sess := s.session(sid)
	sess.Loading = true
	s.mu.Unlock()

	token, err := s.vault.Get(ctx, sid)
	if err != nil && !errors.Is(err, domain.ErrNoSession) {
		s.log.Warn().Err(err).Str("sid", sid).Msg("token vault read failed")
	}

	if token == "" {
		s.mu.Lock()
		sess = s.session(sid)
		sess.Loading = false
		sess.Authenticated = false
		s.mu.Unlock()
		return
	}

	// A token whose exp claim is already past cannot be valid upstream;
	// skip the round trip and expire the session right away.
	exp := tokenExpiry(token)
	if !exp.IsZero() && exp.Before(time.Now()) {
		s.expire(ctx, sid)
		return
	}

	s.mu.Lock()
	sess = s.session(sid)
	sess.Token = token
	sess.TokenExpiresAt = exp
	s.mu.Unlock()

	s.LoadUser(ctx, sid)
}

// Login exchanges credentials for a token and profile. On success the whole
// session is replaced atomically and the token is persisted; on any failure
// the session is cleared and a human-readable error is recorded. Login never
// propagates an error to the caller; the boolean is the whole contract.
func (s *SessionStore) Login(ctx context.Context, sid, username, password string) bool {
	s.setLoading(sid, true)

	token, user, err := s.api.Login(ctx, username, password)
	if err != nil {
		s.fail(sid, loginErrorMessage(err))
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return false
	}
	metrics.LoginsTotal.WithLabelValues("success").Inc()

	exp := tokenExpiry(token)

	s.mu.Lock()
	s.resolved[sid] = true
	s.sessions[sid] = &domain.Session{
		User:           user,
		Token:          token,
		Authenticated:  true,
		TokenExpiresAt: exp,
	}
	s.mu.Unlock()

	if err := s.vault.Put(ctx, sid, token); err != nil {
		// The session stays usable in memory; it just will not survive a
		// gateway restart.
		s.log.Error().Err(err).Str("sid", sid).Msg("token persist failed")
	}

	return true
}

// Logout clears the session and the persisted token. It is a purely local
// transition: no revocation call is made upstream.
func (s *SessionStore) Logout(ctx context.Context, sid string) {
	s.mu.Lock()
	s.resolved[sid] = true
	s.sessions[sid] = &domain.Session{}
	s.mu.Unlock()

	if err := s.vault.Delete(ctx, sid); err != nil {
		s.log.Warn().Err(err).Str("sid", sid).Msg("token delete failed")
	}
}

// LoadUser re-derives the user profile from the backend using the held
// token. Without a token it only clears the authenticated flag. A rejected
// token clears the entire session and records the fixed expiry message.
func (s *SessionStore) LoadUser(ctx context.Context, sid string) {
	s.mu.Lock()
	sess := s.session(sid)
	token := sess.Token
	if token == "" {
		sess.Authenticated = false
		sess.Loading = false
		s.mu.Unlock()
		return
	}
	sess.Loading = true
	s.mu.Unlock()

	user, err := s.api.CurrentUser(ctx, token)
	if err != nil {
		s.log.Info().Err(err).Str("sid", sid).Msg("session refresh rejected")
		s.expire(ctx, sid)
		return
	}

	s.mu.Lock()
	sess = s.session(sid)
	sess.User = user
	sess.Authenticated = true
	sess.Loading = false
	sess.Err = ""
	s.mu.Unlock()
}

// AdoptToken installs an externally issued token (SSO callback) and
// validates it by loading the user. Returns whether the session ended up
// authenticated.
func (s *SessionStore) AdoptToken(ctx context.Context, sid, token string) bool {
	s.mu.Lock()
	s.resolved[sid] = true
	s.sessions[sid] = &domain.Session{
		Token:          token,
		TokenExpiresAt: tokenExpiry(token),
	}
	s.mu.Unlock()

	if err := s.vault.Put(ctx, sid, token); err != nil {
		s.log.Error().Err(err).Str("sid", sid).Msg("token persist failed")
	}

	s.LoadUser(ctx, sid)
	return s.Snapshot(sid).Authenticated
}

// ClearError resets the error field and nothing else.
func (s *SessionStore) ClearError(sid string) {
	s.mu.Lock()
	s.session(sid).Err = ""
	s.mu.Unlock()
}

// Snapshot returns a copy of the session state for guards and handlers.
func (s *SessionStore) Snapshot(sid string) domain.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return *s.session(sid)
}

// Resolved reports whether Initialize has already settled this session.
func (s *SessionStore) Resolved(sid string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.resolved[sid]
}

// session returns the live record for sid; callers must hold mu.
func (s *SessionStore) session(sid string) *domain.Session {
	sess, ok := s.sessions[sid]
	if !ok {
		sess = &domain.Session{}
		s.sessions[sid] = sess
	}
	return sess
}

func (s *SessionStore) setLoading(sid string, loading bool) {
	s.mu.Lock()
	s.session(sid).Loading = loading
	s.mu.Unlock()
}

// fail clears the session and records msg. Used for login failures.
func (s *SessionStore) fail(sid, msg string) {
	s.mu.Lock()
	s.resolved[sid] = true
	s.sessions[sid] = &domain.Session{Err: msg}
	s.mu.Unlock()
}

// expire clears both the in-memory session and the persisted token after the
// backend rejected the held token.
func (s *SessionStore) expire(ctx context.Context, sid string) {
	metrics.SessionExpirationsTotal.Inc()

	s.mu.Lock()
	s.resolved[sid] = true
	s.sessions[sid] = &domain.Session{Err: sessionExpiredMsg}
	s.mu.Unlock()

	if err := s.vault.Delete(ctx, sid); err != nil {
		s.log.Warn().Err(err).Str("sid", sid).Msg("token delete failed")
	}
}

// loginErrorMessage prefers the backend's own detail message; without one it
// falls back to a fixed message per failure class.
func loginErrorMessage(err error) string {
	var ue *domain.UpstreamError
	if errors.As(err, &ue) && ue.Detail != "" {
		return ue.Detail
	}
	switch {
	case errors.Is(err, domain.ErrCredentialsRejected):
		return "Invalid username or password"
	case errors.Is(err, domain.ErrUpstreamUnavailable):
		return "Cannot reach the authentication server"
	default:
		return err.Error()
	}
}

// tokenExpiry extracts the exp claim without verifying the signature; the
// backend owns the signing secret, the gateway only uses exp as a hint to
// avoid pointless round trips.
func tokenExpiry(token string) time.Time {
	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return time.Time{}
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}
	}
	return exp.Time
}
