package domain

import "time"

// Registration is one row of the ledger: user X holds a seat at event Y.
// The composite primary key is what makes double-registration impossible.
type Registration struct {
	UserEmail string    `gorm:"type:citext;primaryKey" db:"user_email" json:"userEmail"`
	EventID   int64     `gorm:"primaryKey" db:"event_id" json:"eventId"`
	CreatedAt time.Time `gorm:"not null" db:"created_at" json:"createdAt"`
}

func (Registration) TableName() string { return "registrations" }
