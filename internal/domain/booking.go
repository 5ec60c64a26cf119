package domain

import (
	"context"
	"time"
)

// Booking is one concrete date occurrence of an Event.
// swagger:model Booking
type Booking struct {
	ID        string    `json:"id"`
	EventID   string    `json:"event_id"`
	Date      Date      `json:"date"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BookingWithEventDetails is the denormalized read model joining a booking with its event and room.
// swagger:model BookingWithEventDetails
type BookingWithEventDetails struct {
	BookingID   string    `json:"booking_id"`
	EventID     string    `json:"event_id"`
	Date        Date      `json:"date"`
	RoomID      string    `json:"room_id"`
	RoomName    string    `json:"room_name"`
	EventName   string    `json:"event_name"`
	PocName     string    `json:"poc_name"`
	PhoneNumber *string   `json:"phone_number"`
	StartTime   TimeOfDay `json:"start_time"`
	EndTime     TimeOfDay `json:"end_time"`
	Color       string    `json:"color"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Range returns the booked time range. Rows with an inverted range are reported with ok=false.
func (b BookingWithEventDetails) Range() (TimeRange, bool) {
	r, err := NewTimeRange(b.Date, b.StartTime, b.EndTime)
	return r, err == nil
}

// BookingRepository defines the interface for booking storage.
type BookingRepository interface {
	// CreateBatch inserts one booking per date for the event in a single atomic statement.
	CreateBatch(ctx context.Context, eventID string, dates []Date) ([]*Booking, error)
	GetByID(ctx context.Context, id string) (*Booking, error)
	ListByEventID(ctx context.Context, eventID string) ([]*Booking, error)
	UpdateDate(ctx context.Context, id string, date Date) (*Booking, error)
	Delete(ctx context.Context, id string) error
	DeleteByEventID(ctx context.Context, eventID string) error
}

// BookingReader serves the read model used by the calendar and by the fallback conflict scan.
type BookingReader interface {
	ListBookingDetailsForDate(ctx context.Context, date Date) ([]BookingWithEventDetails, error)
	ListBookingDetailsForMonth(ctx context.Context, year int, month time.Month) ([]BookingWithEventDetails, error)
}
