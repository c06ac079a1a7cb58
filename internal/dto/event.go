package dto

import (
	"time"

	"campusevents/internal/domain"
)

type EventCreateRequest struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Date        *time.Time `json:"date"`
	Location    string     `json:"location"`
	Capacity    int        `json:"capacity"`
	Organizers  []string   `json:"organizers"`
	Speakers    []string   `json:"speakers"`
	Category    string     `json:"category"`
}

// EventPatchRequest carries partial updates; nil means "leave unchanged".
type EventPatchRequest struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	Date        *time.Time `json:"date"`
	Location    *string    `json:"location"`
	Capacity    *int       `json:"capacity"`
	Organizers  []string   `json:"organizers"`
	Speakers    []string   `json:"speakers"`
	Category    *string    `json:"category"`
}

type EventResponse struct {
	ID             int64      `json:"id"`
	Title          string     `json:"title"`
	Description    string     `json:"description"`
	Date           *time.Time `json:"date"`
	Location       string     `json:"location"`
	Capacity       int        `json:"capacity"`
	AvailableSeats int        `json:"available_seats"`
	Organizers     []string   `json:"organizers"`
	Speakers       []string   `json:"speakers"`
	Category       string     `json:"category"`
	Creator        *string    `json:"creator"`
	ImageURL       string     `json:"image_url,omitempty"`
}

func FromEvent(e *domain.Event) EventResponse {
	return EventResponse{
		ID:             e.ID,
		Title:          e.Title,
		Description:    e.Description,
		Date:           e.Date,
		Location:       e.Location,
		Capacity:       e.Capacity,
		AvailableSeats: e.AvailableSeats,
		Organizers:     e.Organizers,
		Speakers:       e.Speakers,
		Category:       e.Category,
		Creator:        e.Creator,
		ImageURL:       e.ImageURL,
	}
}

type EventListResponse struct {
	Events []EventResponse `json:"events"`
}

type RegistrationRequest struct {
	EventID int64 `json:"event_id"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
