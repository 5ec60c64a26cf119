package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"roomcalendar/internal/domain"
)

const bookingColumns = `id, event_id, date, created_at, updated_at`

type bookingRepository struct {
	DB *sql.DB
}

func NewBookingRepository(db *sql.DB) domain.BookingRepository {
	return &bookingRepository{
		DB: db,
	}
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	b := &domain.Booking{}
	if err := row.Scan(&b.ID, &b.EventID, &b.Date, &b.CreatedAt, &b.UpdatedAt); err != nil {
		return nil, err
	}
	return b, nil
}

func dateStrings(dates []domain.Date) []string {
	out := make([]string, len(dates))
	for i, d := range dates {
		out[i] = d.String()
	}
	return out
}

// CreateBatch inserts every date in one statement, so either all bookings exist afterwards or none do.
// The result follows the order of dates.
func (r *bookingRepository) CreateBatch(ctx context.Context, eventID string, dates []domain.Date) ([]*domain.Booking, error) {
	query := `
		INSERT INTO bookings (event_id, date)
		SELECT $1, d::date FROM unnest($2::text[]) AS d
		RETURNING ` + bookingColumns
	rows, err := r.DB.QueryContext(ctx, query, eventID, pq.Array(dateStrings(dates)))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	byDate := make(map[domain.Date]*domain.Booking, len(dates))
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		byDate[b.Date] = b
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	bookings := make([]*domain.Booking, 0, len(dates))
	for _, d := range dates {
		if b, ok := byDate[d]; ok {
			bookings = append(bookings, b)
		}
	}
	return bookings, nil
}

func (r *bookingRepository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`
	b, err := scanBooking(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return b, nil
}

func (r *bookingRepository) ListByEventID(ctx context.Context, eventID string) ([]*domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE event_id = $1 ORDER BY date`
	rows, err := r.DB.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	bookings := make([]*domain.Booking, 0)
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

func (r *bookingRepository) UpdateDate(ctx context.Context, id string, date domain.Date) (*domain.Booking, error) {
	query := `
		UPDATE bookings SET date = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING ` + bookingColumns
	b, err := scanBooking(r.DB.QueryRowContext(ctx, query, date, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return b, nil
}

func (r *bookingRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM bookings WHERE id = $1`
	result, err := r.DB.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *bookingRepository) DeleteByEventID(ctx context.Context, eventID string) error {
	query := `DELETE FROM bookings WHERE event_id = $1`
	_, err := r.DB.ExecContext(ctx, query, eventID)
	return err
}
