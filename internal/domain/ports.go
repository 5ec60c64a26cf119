package domain

import (
	"context"
	"time"
)

// MonthCache caches the month read model.
type MonthCache interface {
	// GetMonth returns the cached rows and whether they were present.
	GetMonth(ctx context.Context, year int, month time.Month) ([]BookingWithEventDetails, bool, error)
	// MonthGeneration returns the month's invalidation counter. Read it before loading
	// the rows that will be passed to SetMonth.
	MonthGeneration(ctx context.Context, year int, month time.Month) (int64, error)
	// SetMonth stores rows only while the month is still at generation gen and reports
	// whether it did.
	SetMonth(ctx context.Context, year int, month time.Month, gen int64, rows []BookingWithEventDetails) (bool, error)
	// InvalidateMonths drops the months of dates and advances their generations.
	InvalidateMonths(ctx context.Context, dates ...Date) error
}

// Routing keys for booking domain events.
const (
	TopicBookingCreated = "booking.created"
	TopicBookingUpdated = "booking.updated"
	TopicBookingDeleted = "booking.deleted"
	TopicEventUpdated   = "event.updated"
	TopicEventDeleted   = "event.deleted"
)

// BookingEvent is the payload published after a committed mutation.
type BookingEvent struct {
	EventID    string    `json:"event_id"`
	RoomID     string    `json:"room_id,omitempty"`
	BookingIDs []string  `json:"booking_ids,omitempty"`
	Dates      []Date    `json:"dates,omitempty"`
	StartTime  string    `json:"start_time,omitempty"`
	EndTime    string    `json:"end_time,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// EventPublisher publishes booking domain events.
type EventPublisher interface {
	Publish(ctx context.Context, topic string, event BookingEvent) error
}
