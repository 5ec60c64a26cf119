package domain

import (
	"context"
	"time"
)

// Room is a bookable physical room. Rooms are reference data loaded from the room catalog.
// swagger:model Room
type Room struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Capacity  int       `json:"capacity"`
	Active    bool      `json:"active"`
	Color     string    `json:"color"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewRoom returns a new active Room with the given fields.
func NewRoom(id, name string, capacity int, color string, createdAt, updatedAt time.Time) *Room {
	return &Room{
		ID:        id,
		Name:      name,
		Capacity:  capacity,
		Active:    true,
		Color:     color,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}
}

// RoomRepository defines the interface for room storage.
type RoomRepository interface {
	List(ctx context.Context) ([]*Room, error)
	GetByID(ctx context.Context, id string) (*Room, error)
	// Upsert inserts the room or updates name, capacity, active and color of an existing one.
	Upsert(ctx context.Context, room *Room) error
}
