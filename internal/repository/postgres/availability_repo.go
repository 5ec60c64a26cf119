package postgres

import (
	"context"
	"database/sql"

	"roomcalendar/internal/domain"
)

type availabilityRepository struct {
	DB *sql.DB
}

// NewAvailabilityRepository evaluates the slot predicates as SQL functions inside the database.
func NewAvailabilityRepository(db *sql.DB) domain.SlotPredicate {
	return &availabilityRepository{
		DB: db,
	}
}

func excludeArg(eventID string) sql.NullString {
	return sql.NullString{String: eventID, Valid: eventID != ""}
}

func (r *availabilityRepository) IsSlotAvailableForRoom(ctx context.Context, q domain.SlotQuery) (bool, error) {
	query := `SELECT is_time_slot_available_for_room($1, $2, $3, $4, $5)`
	var available bool
	err := r.DB.QueryRowContext(ctx, query,
		q.RoomID, q.Range.Date, q.Range.Start, q.Range.End, excludeArg(q.ExcludeEventID),
	).Scan(&available)
	return available, err
}

func (r *availabilityRepository) IsSlotAvailable(ctx context.Context, q domain.SlotQuery) (bool, error) {
	query := `SELECT is_time_slot_available($1, $2, $3, $4)`
	var available bool
	err := r.DB.QueryRowContext(ctx, query,
		q.Range.Date, q.Range.Start, q.Range.End, excludeArg(q.ExcludeEventID),
	).Scan(&available)
	return available, err
}
