package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// StringList stores an ordered list of names as a JSON text column.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]string(l))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (l *StringList) Scan(value interface{}) error {
	if value == nil {
		*l = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, (*[]string)(l))
	case string:
		return json.Unmarshal([]byte(v), (*[]string)(l))
	default:
		return fmt.Errorf("cannot scan type %T into StringList", value)
	}
}

type Event struct {
	ID          int64      `gorm:"primaryKey;autoIncrement" db:"id" json:"id"`
	Title       string     `gorm:"type:text;not null" db:"title" json:"title"`
	Description string     `gorm:"type:text" db:"description" json:"description"`
	Date        *time.Time `db:"date" json:"date"`
	Location    string     `gorm:"type:text" db:"location" json:"location"`

	// AvailableSeats never exceeds Capacity. Both change together on
	// capacity edits; registration traffic only touches AvailableSeats.
	Capacity       int `gorm:"not null" db:"capacity" json:"capacity"`
	AvailableSeats int `gorm:"not null" db:"available_seats" json:"availableSeats"`

	Organizers StringList `gorm:"type:text;not null" db:"organizers" json:"organizers"`
	Speakers   StringList `gorm:"type:text;not null" db:"speakers" json:"speakers"`
	Category   string     `gorm:"type:text" db:"category" json:"category"`

	// Creator is the owning admin's email; nil for rows that predate
	// ownership tracking.
	Creator  *string `gorm:"type:citext;index" db:"creator" json:"creator"`
	ImageURL string  `gorm:"type:text" db:"image_url" json:"imageUrl"`

	CreatedAt time.Time `gorm:"not null" db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null" db:"updated_at" json:"updatedAt"`
}

func (Event) TableName() string { return "events" }
