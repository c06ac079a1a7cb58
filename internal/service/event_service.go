package service

import (
	"context"
	"io"

	"campusevents/internal/domain"
	"campusevents/internal/dto"
)

// EventService is the capacity/registration engine plus event CRUD. Mutating
// operations take the acting user so ownership can be enforced in one place.
type EventService interface {
	Create(ctx context.Context, actor *domain.User, req dto.EventCreateRequest) (*domain.Event, error)
	Get(ctx context.Context, id int64) (*domain.Event, error)
	List(ctx context.Context) ([]domain.Event, error)
	Update(ctx context.Context, actor *domain.User, id int64, req dto.EventPatchRequest) (*domain.Event, error)
	Delete(ctx context.Context, actor *domain.User, id int64) error
	SetImage(ctx context.Context, actor *domain.User, id int64, filename, contentType string, body io.Reader) (string, error)

	Register(ctx context.Context, email string, eventID int64) error
	Unregister(ctx context.Context, email string, eventID int64) error
	ListForUser(ctx context.Context, email, search string) ([]domain.Event, error)
}
