package postgres

import (
	"context"
	"database/sql"
	"time"

	"roomcalendar/internal/domain"
)

const detailColumns = `booking_id, event_id, date, room_id, room_name, event_name, poc_name, phone_number, start_time, end_time, color, created_at, updated_at`

type bookingDetailsRepository struct {
	DB *sql.DB
}

func NewBookingDetailsRepository(db *sql.DB) domain.BookingReader {
	return &bookingDetailsRepository{
		DB: db,
	}
}

func (r *bookingDetailsRepository) ListBookingDetailsForDate(ctx context.Context, date domain.Date) ([]domain.BookingWithEventDetails, error) {
	query := `SELECT ` + detailColumns + ` FROM booking_details WHERE date = $1 ORDER BY start_time`
	return r.list(ctx, query, date)
}

func (r *bookingDetailsRepository) ListBookingDetailsForMonth(ctx context.Context, year int, month time.Month) ([]domain.BookingWithEventDetails, error) {
	query := `SELECT ` + detailColumns + ` FROM get_bookings_for_month($1, $2)`
	return r.list(ctx, query, year, int(month))
}

func (r *bookingDetailsRepository) list(ctx context.Context, query string, args ...interface{}) ([]domain.BookingWithEventDetails, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]domain.BookingWithEventDetails, 0)
	for rows.Next() {
		var d domain.BookingWithEventDetails
		var phoneNull sql.NullString
		if err := rows.Scan(&d.BookingID, &d.EventID, &d.Date, &d.RoomID, &d.RoomName, &d.EventName, &d.PocName,
			&phoneNull, &d.StartTime, &d.EndTime, &d.Color, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, err
		}
		if phoneNull.Valid {
			d.PhoneNumber = &phoneNull.String
		}
		out = append(out, d)
	}
	return out, rows.Err()
}
