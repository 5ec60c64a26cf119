package domain

import (
	"context"
	"time"
)

// CreateBookingRequest books one date for a new event.
type CreateBookingRequest struct {
	RoomID      string
	Date        Date
	StartTime   TimeOfDay
	EndTime     TimeOfDay
	EventName   string
	PocName     string
	PhoneNumber *string
	Color       string
}

// CreateMultiDateBookingRequest books several dates for a new event. Either Dates or a
// consecutive RangeStart..RangeEnd (inclusive) must be given.
type CreateMultiDateBookingRequest struct {
	RoomID      string
	Dates       []Date
	RangeStart  *Date
	RangeEnd    *Date
	StartTime   TimeOfDay
	EndTime     TimeOfDay
	EventName   string
	PocName     string
	PhoneNumber *string
	Color       string
}

// EventWithBookings is returned by the create operations and by GetEvent.
// swagger:model EventWithBookings
type EventWithBookings struct {
	Event    *Event     `json:"event"`
	Bookings []*Booking `json:"bookings"`
}

// BookingService is the booking and event mutation service together with its read operations.
type BookingService interface {
	ListRooms(ctx context.Context) ([]*Room, error)
	IsTimeSlotAvailable(ctx context.Context, q SlotQuery) (bool, error)
	CheckMultiDateAvailability(ctx context.Context, q MultiDateQuery) (AvailabilityPartition, error)

	CreateBookingWithEvent(ctx context.Context, req CreateBookingRequest) (*EventWithBookings, error)
	CreateMultiDateBooking(ctx context.Context, req CreateMultiDateBookingRequest) (*EventWithBookings, error)
	UpdateEvent(ctx context.Context, eventID string, update EventUpdate) (*Event, error)
	UpdateBookingDate(ctx context.Context, bookingID string, date Date) (*Booking, error)
	DeleteEvent(ctx context.Context, eventID string) error
	DeleteBooking(ctx context.Context, bookingID string) error

	GetEvent(ctx context.Context, eventID string) (*EventWithBookings, error)
	GetBooking(ctx context.Context, bookingID string) (*Booking, error)
	GetBookingsForDate(ctx context.Context, date Date) ([]BookingWithEventDetails, error)
	GetBookingsForMonth(ctx context.Context, year int, month time.Month) ([]BookingWithEventDetails, error)
}

// OrphanReaper removes events left without bookings by a partially failed create.
type OrphanReaper interface {
	ReapOrphanEvents(ctx context.Context) (int64, error)
}
