package domain

import "errors"

var ErrNoSession = errors.New("no session")
var ErrCredentialsRejected = errors.New("invalid credentials")
var ErrSessionExpired = errors.New("session expired")
var ErrUpstreamUnavailable = errors.New("upstream unavailable")
var ErrAccessDenied = errors.New("access forbidden")
var ErrPreferencesNotFound = errors.New("preferences not found")

// UpstreamError is a failure reported by the Minerva backend. Detail carries
// the backend's own message verbatim so the login UI can show it; Kind is
// one of the sentinel errors above so callers can branch with errors.Is.
type UpstreamError struct {
	Status int
	Detail string
	Kind   error
}

func (e *UpstreamError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	return e.Kind.Error()
}

func (e *UpstreamError) Unwrap() error { return e.Kind }
