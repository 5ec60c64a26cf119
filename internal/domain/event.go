package domain

import (
	"context"
	"time"
)

// Event is the reservation template shared by all bookings made in one submission:
// room, time of day, name and point of contact.
// swagger:model Event
type Event struct {
	ID          string    `json:"id"`
	RoomID      string    `json:"room_id"`
	EventName   string    `json:"event_name"`
	PocName     string    `json:"poc_name"`
	PhoneNumber *string   `json:"phone_number"`
	StartTime   TimeOfDay `json:"start_time"`
	EndTime     TimeOfDay `json:"end_time"`
	Color       string    `json:"color"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewEvent returns a new Event with the given fields. ID is typically set by the repository on create.
func NewEvent(roomID, eventName, pocName string, phoneNumber *string, start, end TimeOfDay, color string, createdAt, updatedAt time.Time) *Event {
	return &Event{
		RoomID:      roomID,
		EventName:   eventName,
		PocName:     pocName,
		PhoneNumber: phoneNumber,
		StartTime:   start,
		EndTime:     end,
		Color:       color,
		CreatedAt:   createdAt,
		UpdatedAt:   updatedAt,
	}
}

// RangeOn returns the event's time range on the given date.
func (e *Event) RangeOn(date Date) (TimeRange, error) {
	return NewTimeRange(date, e.StartTime, e.EndTime)
}

// EventUpdate carries the fields to change on an event; nil fields are left untouched.
// A PhoneNumber pointing at an empty string clears the phone number.
type EventUpdate struct {
	RoomID      *string
	EventName   *string
	PocName     *string
	PhoneNumber *string
	StartTime   *TimeOfDay
	EndTime     *TimeOfDay
	Color       *string
}

// IsEmpty reports whether no field is set.
func (u EventUpdate) IsEmpty() bool {
	return u.RoomID == nil && u.EventName == nil && u.PocName == nil && u.PhoneNumber == nil &&
		u.StartTime == nil && u.EndTime == nil && u.Color == nil
}

// EventRepository defines the interface for event storage.
type EventRepository interface {
	Create(ctx context.Context, event *Event) error
	GetByID(ctx context.Context, id string) (*Event, error)
	Update(ctx context.Context, id string, update EventUpdate) (*Event, error)
	// Delete removes the event; the store cascades to its bookings.
	Delete(ctx context.Context, id string) error
	// DeleteOrphans removes events that have no bookings and were created before the cutoff.
	// It returns the number of deleted events.
	DeleteOrphans(ctx context.Context, createdBefore time.Time) (int64, error)
}
