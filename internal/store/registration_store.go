package store

import (
	"context"
	"errors"
	"time"

	"campusevents/internal/domain"

	"gorm.io/gorm"
)

type RegistrationStore struct{ db *gorm.DB }

func (s *Store) Registrations() *RegistrationStore { return &RegistrationStore{db: s.DB} }

// Add inserts a ledger row. The composite primary key turns a repeat
// registration into ErrDuplicateKey.
func (r *RegistrationStore) Add(ctx context.Context, email string, eventID int64) error {
	reg := domain.Registration{
		UserEmail: email,
		EventID:   eventID,
		CreatedAt: time.Now().UTC(),
	}
	if err := r.db.WithContext(ctx).Create(&reg).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateKey
		}
		return err
	}
	return nil
}

// Remove deletes the ledger row; reports whether the pair existed.
func (r *RegistrationStore) Remove(ctx context.Context, email string, eventID int64) (bool, error) {
	res := r.db.WithContext(ctx).
		Delete(&domain.Registration{}, "user_email = ? AND event_id = ?", email, eventID)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// ReserveSeat is the guarded decrement: it only succeeds while a seat is
// free, so two concurrent registrations cannot both take the last one.
func (r *RegistrationStore) ReserveSeat(ctx context.Context, eventID int64) (bool, error) {
	res := r.db.WithContext(ctx).Model(&domain.Event{}).
		Where("id = ? AND available_seats > 0", eventID).
		Update("available_seats", gorm.Expr("available_seats - 1"))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// ReleaseSeat gives a seat back, clamped so available_seats can never pass
// capacity even if the ledger and the counter ever disagree.
func (r *RegistrationStore) ReleaseSeat(ctx context.Context, eventID int64) error {
	return r.db.WithContext(ctx).Model(&domain.Event{}).
		Where("id = ?", eventID).
		Update("available_seats", gorm.Expr("LEAST(available_seats + 1, capacity)")).Error
}

// ListEventsForUser walks the ledger for one user, optionally filtering by a
// case-insensitive substring of title, location, or description.
func (r *RegistrationStore) ListEventsForUser(ctx context.Context, email, search string) ([]domain.Event, error) {
	q := r.db.WithContext(ctx).Model(&domain.Event{}).
		Joins("JOIN registrations ON registrations.event_id = events.id").
		Where("registrations.user_email = ?", email)
	if search != "" {
		pattern := "%" + search + "%"
		q = q.Where("events.title ILIKE ? OR events.location ILIKE ? OR events.description ILIKE ?",
			pattern, pattern, pattern)
	}
	var events []domain.Event
	if err := q.Order("events.id").Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

func (r *RegistrationStore) CountForEvent(ctx context.Context, eventID int64) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&domain.Registration{}).
		Where("event_id = ?", eventID).Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}

func allModels() []interface{} {
	return []interface{}{&domain.User{}, &domain.Event{}, &domain.Registration{}}
}
