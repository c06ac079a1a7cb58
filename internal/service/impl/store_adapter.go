package impl

import (
	"context"
	"errors"
	"time"

	"campusevents/internal/domain"
	"campusevents/internal/store"
)

// The services only see these narrow interfaces so tests can swap in an
// in-memory store.

type dataStore interface {
	WithTx(ctx context.Context, fn func(tx storeTx) error) error
}

type storeTx interface {
	Users() userStore
	Events() eventStore
	Registrations() registrationStore
}

type userStore interface {
	Create(ctx context.Context, usr *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	SetVerified(ctx context.Context, email string) error
	SetVerificationCode(ctx context.Context, email string, code *string, expiry *time.Time) error
	SetResetCode(ctx context.Context, email string, code *string, expiry *time.Time) error
	SetPasswordHash(ctx context.Context, email, hash string) error
}

type eventStore interface {
	Create(ctx context.Context, evt *domain.Event) error
	GetByID(ctx context.Context, id int64) (*domain.Event, error)
	List(ctx context.Context) ([]domain.Event, error)
	UpdateFields(ctx context.Context, id int64, fields map[string]interface{}) error
	ApplyCapacity(ctx context.Context, id int64, newCapacity int) error
	SetImageURL(ctx context.Context, id int64, url string) error
	Delete(ctx context.Context, id int64) error
}

type registrationStore interface {
	Add(ctx context.Context, email string, eventID int64) error
	Remove(ctx context.Context, email string, eventID int64) (bool, error)
	ReserveSeat(ctx context.Context, eventID int64) (bool, error)
	ReleaseSeat(ctx context.Context, eventID int64) error
	ListEventsForUser(ctx context.Context, email, search string) ([]domain.Event, error)
}

type gormStoreAdapter struct {
	store *store.Store
}

func (g gormStoreAdapter) WithTx(ctx context.Context, fn func(tx storeTx) error) error {
	if g.store == nil {
		return errors.New("nil store")
	}
	return g.store.WithTx(ctx, func(tx *store.Store) error {
		return fn(gormTxAdapter{tx: tx})
	})
}

type gormTxAdapter struct {
	tx *store.Store
}

func (g gormTxAdapter) Users() userStore { return g.tx.Users() }

func (g gormTxAdapter) Events() eventStore { return g.tx.Events() }

func (g gormTxAdapter) Registrations() registrationStore { return g.tx.Registrations() }
