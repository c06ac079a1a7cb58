package store

import (
	"context"
	"errors"

	"campusevents/internal/domain"

	"gorm.io/gorm"
)

type EventStore struct{ db *gorm.DB }

func (s *Store) Events() *EventStore { return &EventStore{db: s.DB} }

func (e *EventStore) Create(ctx context.Context, evt *domain.Event) error {
	return e.db.WithContext(ctx).Create(evt).Error
}

func (e *EventStore) GetByID(ctx context.Context, id int64) (*domain.Event, error) {
	var evt domain.Event
	if err := e.db.WithContext(ctx).First(&evt, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return &evt, nil
}

func (e *EventStore) List(ctx context.Context) ([]domain.Event, error) {
	var events []domain.Event
	if err := e.db.WithContext(ctx).Order("id").Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

func (e *EventStore) ListByCreator(ctx context.Context, email string) ([]domain.Event, error) {
	var events []domain.Event
	if err := e.db.WithContext(ctx).Where("creator = ?", email).Order("id").Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

// UpdateFields applies scalar column updates. Capacity must not be in the
// map; capacity edits go through ApplyCapacity so available_seats moves with
// them.
func (e *EventStore) UpdateFields(ctx context.Context, id int64, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}
	res := e.db.WithContext(ctx).Model(&domain.Event{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}

// ApplyCapacity sets a new capacity and moves available_seats with it in one
// statement: a grow adds the delta, a shrink clamps to the new capacity.
// Registrants are never evicted on shrink, so a shrink can leave the event
// overbooked relative to the new capacity with zero seats available.
func (e *EventStore) ApplyCapacity(ctx context.Context, id int64, newCapacity int) error {
	res := e.db.WithContext(ctx).Model(&domain.Event{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"available_seats": gorm.Expr(
				"CASE WHEN ? > capacity THEN available_seats + (? - capacity) ELSE LEAST(available_seats, ?) END",
				newCapacity, newCapacity, newCapacity,
			),
			"capacity": newCapacity,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}

func (e *EventStore) SetImageURL(ctx context.Context, id int64, url string) error {
	res := e.db.WithContext(ctx).Model(&domain.Event{}).
		Where("id = ?", id).
		Update("image_url", url)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}

func (e *EventStore) Delete(ctx context.Context, id int64) error {
	if err := e.db.WithContext(ctx).Delete(&domain.Registration{}, "event_id = ?", id).Error; err != nil {
		return err
	}
	res := e.db.WithContext(ctx).Delete(&domain.Event{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}
