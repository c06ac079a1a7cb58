package domain

import "time"

type User struct {
	Email        string `gorm:"type:citext;primaryKey" db:"email" json:"email"`
	PasswordHash string `gorm:"type:text;not null" db:"password_hash" json:"-"`

	IsAdmin    bool `gorm:"not null;default:false" db:"is_admin" json:"isAdmin"`
	IsVerified bool `gorm:"not null;default:false" db:"is_verified" json:"isVerified"`

	VerificationCode   *string    `gorm:"type:text" db:"verification_code" json:"-"`
	VerificationExpiry *time.Time `db:"verification_expiry" json:"-"`

	ResetCode   *string    `gorm:"type:text" db:"reset_code" json:"-"`
	ResetExpiry *time.Time `db:"reset_expiry" json:"-"`

	CreatedAt time.Time `gorm:"not null" db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null" db:"updated_at" json:"updatedAt"`
}

func (User) TableName() string { return "users" }
