package domain

import "time"

// SessionState is the coarse lifecycle state derived from the session fields.
type SessionState string

const (
	StateUnauthenticated SessionState = "unauthenticated"
	StateLoading         SessionState = "loading"
	StateAuthenticated   SessionState = "authenticated"
	StateError           SessionState = "error"
)

// Session is the gateway-held record of one browser's authentication status.
// Only Token survives a gateway restart; User is always re-derived from the
// backend and never trusted from storage.
//
// Invariant: Authenticated is true if and only if both User and Token are
// non-zero and the last backend fetch succeeded. Any fetch failure clears
// all three and sets Err.
type Session struct {
	User          *User
	Token         string
	Authenticated bool
	Loading       bool
	Err           string

	// TokenExpiresAt is the exp claim of the bearer token when one could be
	// extracted, zero otherwise. Informational only; the backend is the
	// authority on token validity.
	TokenExpiresAt time.Time
}

// State reports which lifecycle state the session fields currently encode.
func (s Session) State() SessionState {
	switch {
	case s.Loading:
		return StateLoading
	case s.Authenticated:
		return StateAuthenticated
	case s.Err != "":
		return StateError
	default:
		return StateUnauthenticated
	}
}
