package domain

import "context"

// SlotQuery asks whether a time range is free. RoomID and ExcludeEventID are optional:
// an empty RoomID checks across all rooms, and bookings of ExcludeEventID are ignored so an
// event can be moved over its own previous slot.
type SlotQuery struct {
	RoomID         string
	Range          TimeRange
	ExcludeEventID string
}

// SlotPredicate is the store's server-side conflict check.
type SlotPredicate interface {
	// IsSlotAvailableForRoom evaluates the room-scoped predicate.
	IsSlotAvailableForRoom(ctx context.Context, q SlotQuery) (bool, error)
	// IsSlotAvailable evaluates the older room-agnostic predicate.
	IsSlotAvailable(ctx context.Context, q SlotQuery) (bool, error)
}

// MultiDateQuery checks the same time of day across several dates.
type MultiDateQuery struct {
	Dates          []Date
	Start          TimeOfDay
	End            TimeOfDay
	ExcludeEventID string
	RoomID         string
}

// AvailabilityPartition splits the queried dates by availability. Order follows the query.
// swagger:model AvailabilityPartition
type AvailabilityPartition struct {
	Available   []Date `json:"available"`
	Unavailable []Date `json:"unavailable"`
}
