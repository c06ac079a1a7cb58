package impl

import (
	"context"
	"strings"

	"campusevents/internal/domain"
	"campusevents/internal/service"
	"campusevents/internal/store"
)

// IdentityServiceImpl is the auth gate: Authorization header in, user record
// out. Every failure mode collapses to (nil, false); nothing here reaches
// the caller as an error.
type IdentityServiceImpl struct {
	Store  dataStore
	Tokens service.TokenService
}

func NewIdentityServiceImpl(st *store.Store, tokens service.TokenService) *IdentityServiceImpl {
	return &IdentityServiceImpl{Store: gormStoreAdapter{store: st}, Tokens: tokens}
}

func (i *IdentityServiceImpl) Resolve(ctx context.Context, authorization string) (*domain.User, bool) {
	const prefix = "Bearer "
	if !strings.HasPrefix(authorization, prefix) {
		return nil, false
	}
	token := strings.TrimSpace(authorization[len(prefix):])
	if token == "" {
		return nil, false
	}

	email, err := i.Tokens.Subject(token)
	if err != nil {
		return nil, false
	}

	var user *domain.User
	err = i.Store.WithTx(ctx, func(tx storeTx) error {
		u, err := tx.Users().GetByEmail(ctx, email)
		if err != nil {
			return err
		}
		user = u
		return nil
	})
	if err != nil {
		return nil, false
	}
	return user, true
}
