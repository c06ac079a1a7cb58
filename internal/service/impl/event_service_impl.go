package impl

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"path"
	"strings"
	"time"

	"campusevents/internal/domain"
	"campusevents/internal/dto"
	"campusevents/internal/observability/metrics"
	"campusevents/internal/observability/middleware"
	"campusevents/internal/storage"
	"campusevents/internal/store"

	"github.com/google/uuid"
)

type EventServiceImpl struct {
	Store  dataStore
	Images storage.Uploader // nil when object storage is not configured
}

func NewEventServiceImpl(st *store.Store, images storage.Uploader) *EventServiceImpl {
	return &EventServiceImpl{Store: gormStoreAdapter{store: st}, Images: images}
}

func requireAdmin(actor *domain.User) error {
	if actor == nil || !actor.IsAdmin {
		return domain.ErrNotAdmin
	}
	return nil
}

// requireOwner enforces creator-only mutation; ownership is case-insensitive
// email equality. An event with no recorded creator has no owner.
func requireOwner(evt *domain.Event, actor *domain.User) error {
	if err := requireAdmin(actor); err != nil {
		return err
	}
	if evt.Creator == nil || !strings.EqualFold(*evt.Creator, actor.Email) {
		return domain.ErrNotOwner
	}
	return nil
}

func validateCreate(req dto.EventCreateRequest) error {
	switch {
	case strings.TrimSpace(req.Title) == "":
		return domain.ErrMissingTitle
	case req.Capacity <= 1:
		return domain.ErrBadCapacity
	case len(req.Organizers) == 0:
		return domain.ErrEmptyOrganizers
	case len(req.Speakers) == 0:
		return domain.ErrEmptySpeakers
	}
	return nil
}

func (e *EventServiceImpl) Create(ctx context.Context, actor *domain.User, req dto.EventCreateRequest) (*domain.Event, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	if err := validateCreate(req); err != nil {
		return nil, err
	}

	creator := normalizeEmail(actor.Email)
	now := time.Now().UTC()
	evt := &domain.Event{
		Title:          strings.TrimSpace(req.Title),
		Description:    req.Description,
		Date:           req.Date,
		Location:       req.Location,
		Capacity:       req.Capacity,
		AvailableSeats: req.Capacity, // a new event starts fully open
		Organizers:     req.Organizers,
		Speakers:       req.Speakers,
		Category:       req.Category,
		Creator:        &creator,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	err := e.Store.WithTx(ctx, func(tx storeTx) error {
		return tx.Events().Create(ctx, evt)
	})
	if err != nil {
		return nil, err
	}

	slog.Info("event created",
		"event_id", evt.ID,
		"creator", creator,
		"capacity", evt.Capacity,
		"request_id", middleware.RequestIDFromContext(ctx),
	)
	return evt, nil
}

func (e *EventServiceImpl) Get(ctx context.Context, id int64) (*domain.Event, error) {
	var evt *domain.Event
	err := e.Store.WithTx(ctx, func(tx storeTx) error {
		ev, err := tx.Events().GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, store.ErrRecordNotFound) {
				return domain.ErrEventNotFound
			}
			return err
		}
		evt = ev
		return nil
	})
	if err != nil {
		return nil, err
	}
	return evt, nil
}

func (e *EventServiceImpl) List(ctx context.Context) ([]domain.Event, error) {
	var events []domain.Event
	err := e.Store.WithTx(ctx, func(tx storeTx) error {
		evs, err := tx.Events().List(ctx)
		if err != nil {
			return err
		}
		events = evs
		return nil
	})
	if err != nil {
		return nil, err
	}
	return events, nil
}

func (e *EventServiceImpl) Update(ctx context.Context, actor *domain.User, id int64, req dto.EventPatchRequest) (*domain.Event, error) {
	var updated *domain.Event

	err := e.Store.WithTx(ctx, func(tx storeTx) error {
		evt, err := tx.Events().GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, store.ErrRecordNotFound) {
				return domain.ErrEventNotFound
			}
			return err
		}
		if err := requireOwner(evt, actor); err != nil {
			return err
		}

		fields := map[string]interface{}{}
		if req.Title != nil {
			if strings.TrimSpace(*req.Title) == "" {
				return domain.ErrMissingTitle
			}
			fields["title"] = strings.TrimSpace(*req.Title)
		}
		if req.Description != nil {
			fields["description"] = *req.Description
		}
		if req.Date != nil {
			fields["date"] = *req.Date
		}
		if req.Location != nil {
			fields["location"] = *req.Location
		}
		if req.Category != nil {
			fields["category"] = *req.Category
		}
		if req.Organizers != nil {
			if len(req.Organizers) == 0 {
				return domain.ErrEmptyOrganizers
			}
			fields["organizers"] = domain.StringList(req.Organizers)
		}
		if req.Speakers != nil {
			if len(req.Speakers) == 0 {
				return domain.ErrEmptySpeakers
			}
			fields["speakers"] = domain.StringList(req.Speakers)
		}
		if len(fields) > 0 {
			fields["updated_at"] = time.Now().UTC()
			if err := tx.Events().UpdateFields(ctx, id, fields); err != nil {
				return err
			}
		}

		// Capacity moves available_seats with it: grow adds the delta,
		// shrink clamps. A shrink below the registrant count is accepted
		// overbooking; nobody is evicted.
		if req.Capacity != nil {
			if *req.Capacity <= 1 {
				return domain.ErrBadCapacity
			}
			if err := tx.Events().ApplyCapacity(ctx, id, *req.Capacity); err != nil {
				return err
			}
		}

		evt, err = tx.Events().GetByID(ctx, id)
		if err != nil {
			return err
		}
		updated = evt
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (e *EventServiceImpl) Delete(ctx context.Context, actor *domain.User, id int64) error {
	return e.Store.WithTx(ctx, func(tx storeTx) error {
		evt, err := tx.Events().GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, store.ErrRecordNotFound) {
				return domain.ErrEventNotFound
			}
			return err
		}
		if err := requireOwner(evt, actor); err != nil {
			return err
		}
		return tx.Events().Delete(ctx, id)
	})
}

func (e *EventServiceImpl) SetImage(ctx context.Context, actor *domain.User, id int64, filename, contentType string, body io.Reader) (string, error) {
	if e.Images == nil {
		return "", ErrStorageUnconfigured
	}
	if !strings.HasPrefix(contentType, "image/") {
		return "", ErrUnsupportedImageType
	}

	var evt *domain.Event
	err := e.Store.WithTx(ctx, func(tx storeTx) error {
		ev, err := tx.Events().GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, store.ErrRecordNotFound) {
				return domain.ErrEventNotFound
			}
			return err
		}
		evt = ev
		return requireOwner(ev, actor)
	})
	if err != nil {
		return "", err
	}

	key := uuid.New().String() + strings.ToLower(path.Ext(filename))
	url, err := e.Images.Upload(ctx, key, contentType, body)
	if err != nil {
		return "", err
	}

	err = e.Store.WithTx(ctx, func(tx storeTx) error {
		return tx.Events().SetImageURL(ctx, evt.ID, url)
	})
	if err != nil {
		return "", err
	}
	return url, nil
}

func (e *EventServiceImpl) Register(ctx context.Context, email string, eventID int64) error {
	result := "failure"
	defer func() {
		metrics.EventRegistrationsTotal.WithLabelValues("register", result).Inc()
	}()

	email = normalizeEmail(email)

	// One transaction covers existence, uniqueness, and the seat
	// decrement; two concurrent registrations race on the guarded UPDATE,
	// and the loser's ledger insert rolls back with the transaction.
	err := e.Store.WithTx(ctx, func(tx storeTx) error {
		if _, err := tx.Events().GetByID(ctx, eventID); err != nil {
			if errors.Is(err, store.ErrRecordNotFound) {
				return domain.ErrEventNotFound
			}
			return err
		}
		if _, err := tx.Users().GetByEmail(ctx, email); err != nil {
			if errors.Is(err, store.ErrRecordNotFound) {
				return domain.ErrUserNotFound
			}
			return err
		}
		if err := tx.Registrations().Add(ctx, email, eventID); err != nil {
			if errors.Is(err, store.ErrDuplicateKey) {
				return domain.ErrAlreadyRegistered
			}
			return err
		}
		ok, err := tx.Registrations().ReserveSeat(ctx, eventID)
		if err != nil {
			return err
		}
		if !ok {
			return domain.ErrEventFull
		}
		return nil
	})
	if err != nil {
		return err
	}

	result = "success"
	slog.Info("registered for event",
		"email", email,
		"event_id", eventID,
		"request_id", middleware.RequestIDFromContext(ctx),
	)
	return nil
}

func (e *EventServiceImpl) Unregister(ctx context.Context, email string, eventID int64) error {
	result := "failure"
	defer func() {
		metrics.EventRegistrationsTotal.WithLabelValues("unregister", result).Inc()
	}()

	email = normalizeEmail(email)

	err := e.Store.WithTx(ctx, func(tx storeTx) error {
		if _, err := tx.Events().GetByID(ctx, eventID); err != nil {
			if errors.Is(err, store.ErrRecordNotFound) {
				return domain.ErrEventNotFound
			}
			return err
		}
		removed, err := tx.Registrations().Remove(ctx, email, eventID)
		if err != nil {
			return err
		}
		if !removed {
			return domain.ErrNotRegistered
		}
		return tx.Registrations().ReleaseSeat(ctx, eventID)
	})
	if err != nil {
		return err
	}

	result = "success"
	slog.Info("unregistered from event",
		"email", email,
		"event_id", eventID,
		"request_id", middleware.RequestIDFromContext(ctx),
	)
	return nil
}

func (e *EventServiceImpl) ListForUser(ctx context.Context, email, search string) ([]domain.Event, error) {
	email = normalizeEmail(email)

	var events []domain.Event
	err := e.Store.WithTx(ctx, func(tx storeTx) error {
		evs, err := tx.Registrations().ListEventsForUser(ctx, email, search)
		if err != nil {
			return err
		}
		events = evs
		return nil
	})
	if err != nil {
		return nil, err
	}
	return events, nil
}
