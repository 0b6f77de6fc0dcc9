package ports

import (
	"context"

	"github.com/Cassio-Ac/minerva-intelligence-sub006/internal/core/domain"
)

// AuthAPI is the slice of the Minerva backend the gateway authenticates
// against. Implementations must map a rejected credential or token to
// domain.ErrCredentialsRejected / domain.ErrSessionExpired and transport
// failures to domain.ErrUpstreamUnavailable.
type AuthAPI interface {
	// Login exchanges credentials for a bearer token and the user profile.
	Login(ctx context.Context, username, password string) (string, *domain.User, error)
	// CurrentUser fetches the profile the given bearer token belongs to.
	CurrentUser(ctx context.Context, token string) (*domain.User, error)
}
