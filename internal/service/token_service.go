package service

import (
	"context"

	"campusevents/internal/domain"
)

type TokenService interface {
	// Issue signs a bearer token embedding the user's email, issue time,
	// and expiry.
	Issue(ctx context.Context, user *domain.User) (string, error)
	// Subject validates signature and expiry and returns the embedded email.
	Subject(tokenString string) (string, error)
}

// IdentityService resolves an Authorization header to a user record. A
// missing, malformed, or invalid credential yields (nil, false); resolution
// never errors outward.
type IdentityService interface {
	Resolve(ctx context.Context, authorization string) (*domain.User, bool)
}
