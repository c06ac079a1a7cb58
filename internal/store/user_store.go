package store

import (
	"context"
	"errors"
	"time"

	"campusevents/internal/domain"

	"gorm.io/gorm"
)

type UserStore struct{ db *gorm.DB }

func (s *Store) Users() *UserStore { return &UserStore{db: s.DB} }

var ErrDuplicateKey = errors.New("duplicate key")

func (u *UserStore) Create(ctx context.Context, usr *domain.User) error {
	if err := u.db.WithContext(ctx).Create(usr).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateKey
		}
		return err
	}
	return nil
}

func (u *UserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User
	if err := u.db.WithContext(ctx).First(&user, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (u *UserStore) SetVerified(ctx context.Context, email string) error {
	return u.db.WithContext(ctx).Model(&domain.User{}).
		Where("email = ?", email).
		Update("is_verified", true).Error
}

func (u *UserStore) SetAdmin(ctx context.Context, email string, admin bool) error {
	return u.db.WithContext(ctx).Model(&domain.User{}).
		Where("email = ?", email).
		Update("is_admin", admin).Error
}

func (u *UserStore) SetVerificationCode(ctx context.Context, email string, code *string, expiry *time.Time) error {
	return u.db.WithContext(ctx).Model(&domain.User{}).
		Where("email = ?", email).
		Updates(map[string]interface{}{
			"verification_code":   code,
			"verification_expiry": expiry,
		}).Error
}

func (u *UserStore) SetResetCode(ctx context.Context, email string, code *string, expiry *time.Time) error {
	return u.db.WithContext(ctx).Model(&domain.User{}).
		Where("email = ?", email).
		Updates(map[string]interface{}{
			"reset_code":   code,
			"reset_expiry": expiry,
		}).Error
}

func (u *UserStore) SetPasswordHash(ctx context.Context, email, hash string) error {
	return u.db.WithContext(ctx).Model(&domain.User{}).
		Where("email = ?", email).
		Update("password_hash", hash).Error
}

func (u *UserStore) List(ctx context.Context) ([]domain.User, error) {
	var users []domain.User
	if err := u.db.WithContext(ctx).Order("email").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// Delete removes the user and their ledger rows, releasing any held seats.
func (u *UserStore) Delete(ctx context.Context, email string) error {
	var regs []domain.Registration
	if err := u.db.WithContext(ctx).Find(&regs, "user_email = ?", email).Error; err != nil {
		return err
	}
	for _, reg := range regs {
		if err := u.db.WithContext(ctx).Model(&domain.Event{}).
			Where("id = ?", reg.EventID).
			Update("available_seats", gorm.Expr("LEAST(available_seats + 1, capacity)")).Error; err != nil {
			return err
		}
	}
	if err := u.db.WithContext(ctx).Delete(&domain.Registration{}, "user_email = ?", email).Error; err != nil {
		return err
	}
	res := u.db.WithContext(ctx).Delete(&domain.User{}, "email = ?", email)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}
