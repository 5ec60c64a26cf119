package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"roomcalendar/internal/domain"
)

const eventColumns = `id, room_id, event_name, poc_name, phone_number, start_time, end_time, color, created_at, updated_at`

type eventRepository struct {
	DB *sql.DB
}

func NewEventRepository(db *sql.DB) domain.EventRepository {
	return &eventRepository{
		DB: db,
	}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEvent(row rowScanner) (*domain.Event, error) {
	e := &domain.Event{}
	var phoneNull sql.NullString
	if err := row.Scan(&e.ID, &e.RoomID, &e.EventName, &e.PocName, &phoneNull, &e.StartTime, &e.EndTime, &e.Color, &e.CreatedAt, &e.UpdatedAt); err != nil {
		return nil, err
	}
	if phoneNull.Valid {
		e.PhoneNumber = &phoneNull.String
	}
	return e, nil
}

func nullString(s *string) sql.NullString {
	if s == nil || *s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func (r *eventRepository) Create(ctx context.Context, e *domain.Event) error {
	query := `
		INSERT INTO events (room_id, event_name, poc_name, phone_number, start_time, end_time, color, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query,
		e.RoomID, e.EventName, e.PocName, nullString(e.PhoneNumber), e.StartTime, e.EndTime, e.Color, e.CreatedAt, e.UpdatedAt,
	).Scan(&e.ID)
}

func (r *eventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = $1`
	e, err := scanEvent(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

func (r *eventRepository) Update(ctx context.Context, id string, u domain.EventUpdate) (*domain.Event, error) {
	setClauses := []string{"updated_at = NOW()"}
	args := []interface{}{}
	n := 1
	add := func(column string, value interface{}) {
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", column, n))
		args = append(args, value)
		n++
	}
	if u.RoomID != nil {
		add("room_id", *u.RoomID)
	}
	if u.EventName != nil {
		add("event_name", *u.EventName)
	}
	if u.PocName != nil {
		add("poc_name", *u.PocName)
	}
	if u.PhoneNumber != nil {
		add("phone_number", nullString(u.PhoneNumber))
	}
	if u.StartTime != nil {
		add("start_time", *u.StartTime)
	}
	if u.EndTime != nil {
		add("end_time", *u.EndTime)
	}
	if u.Color != nil {
		add("color", *u.Color)
	}
	if n == 1 {
		return r.GetByID(ctx, id)
	}
	args = append(args, id)
	query := fmt.Sprintf(`
		UPDATE events SET %s
		WHERE id = $%d
		RETURNING %s
	`, strings.Join(setClauses, ", "), n, eventColumns)
	e, err := scanEvent(r.DB.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

// Delete removes the event. Its bookings go with it through ON DELETE CASCADE.
func (r *eventRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM events WHERE id = $1`
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

func (r *eventRepository) DeleteOrphans(ctx context.Context, createdBefore time.Time) (int64, error) {
	query := `
		DELETE FROM events e
		WHERE e.created_at < $1
		  AND NOT EXISTS (SELECT 1 FROM bookings b WHERE b.event_id = e.id)
	`
	result, err := r.DB.ExecContext(ctx, query, createdBefore)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
