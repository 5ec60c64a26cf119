package postgres

import (
	"context"
	"database/sql"
	"errors"

	"roomcalendar/internal/domain"
)

type roomRepository struct {
	DB *sql.DB
}

func NewRoomRepository(db *sql.DB) domain.RoomRepository {
	return &roomRepository{
		DB: db,
	}
}

func (r *roomRepository) List(ctx context.Context) ([]*domain.Room, error) {
	query := `
		SELECT id, name, capacity, active, color, created_at, updated_at
		FROM rooms
		ORDER BY id
	`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	rooms := make([]*domain.Room, 0)
	for rows.Next() {
		room := &domain.Room{}
		if err := rows.Scan(&room.ID, &room.Name, &room.Capacity, &room.Active, &room.Color, &room.CreatedAt, &room.UpdatedAt); err != nil {
			return nil, err
		}
		rooms = append(rooms, room)
	}
	return rooms, rows.Err()
}

func (r *roomRepository) GetByID(ctx context.Context, id string) (*domain.Room, error) {
	query := `
		SELECT id, name, capacity, active, color, created_at, updated_at
		FROM rooms
		WHERE id = $1
	`
	room := &domain.Room{}
	err := r.DB.QueryRowContext(ctx, query, id).Scan(&room.ID, &room.Name, &room.Capacity, &room.Active, &room.Color, &room.CreatedAt, &room.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return room, nil
}

func (r *roomRepository) Upsert(ctx context.Context, room *domain.Room) error {
	query := `
		INSERT INTO rooms (id, name, capacity, active, color, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE
		SET name = EXCLUDED.name, capacity = EXCLUDED.capacity, active = EXCLUDED.active,
			color = EXCLUDED.color, updated_at = EXCLUDED.updated_at
		RETURNING created_at
	`
	return r.DB.QueryRowContext(ctx, query, room.ID, room.Name, room.Capacity, room.Active, room.Color, room.CreatedAt, room.UpdatedAt).Scan(&room.CreatedAt)
}
