package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"regexp"
	"time"

	"gopkg.in/yaml.v3"

	"roomcalendar/internal/domain"
)

// RoomConfig describes one bookable room in the catalog file.
type RoomConfig struct {
	ID       string `yaml:"id"`
	Name     string `yaml:"name"`
	Capacity int    `yaml:"capacity"`
	Color    string `yaml:"color"`
	// Active defaults to true when omitted.
	Active *bool `yaml:"active,omitempty"`
}

// IsActive reports whether the room accepts new bookings.
func (r RoomConfig) IsActive() bool { return r.Active == nil || *r.Active }

// Room converts the catalog entry to the stored model.
func (r RoomConfig) Room(now time.Time) *domain.Room {
	room := domain.NewRoom(r.ID, r.Name, r.Capacity, r.Color, now, now)
	room.Active = r.IsActive()
	return room
}

type roomCatalog struct {
	Rooms []RoomConfig `yaml:"rooms"`
}

var roomColorPattern = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// DefaultRooms is used when no catalog file is configured.
func DefaultRooms() []RoomConfig {
	return []RoomConfig{
		{ID: "1-21", Name: "AES Learnet Room 1-21", Capacity: 30, Color: "#dc2626"},
		{ID: "1-17", Name: "AES Learnet Room 1-17", Capacity: 20, Color: "#2563eb"},
	}
}

// LoadRooms reads the YAML room catalog at path. An empty path, or a path that does not
// exist, yields DefaultRooms.
func LoadRooms(path string) ([]RoomConfig, error) {
	if path == "" {
		return DefaultRooms(), nil
	}
	raw, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return DefaultRooms(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read room catalog: %w", err)
	}
	return ParseRooms(raw)
}

// ParseRooms decodes and validates a catalog document.
func ParseRooms(raw []byte) ([]RoomConfig, error) {
	var cat roomCatalog
	if err := yaml.Unmarshal(raw, &cat); err != nil {
		return nil, fmt.Errorf("parse room catalog: %w", err)
	}
	if len(cat.Rooms) == 0 {
		return nil, errors.New("room catalog has no rooms")
	}
	seen := make(map[string]struct{}, len(cat.Rooms))
	for i, r := range cat.Rooms {
		if r.ID == "" {
			return nil, fmt.Errorf("room %d: id is required", i)
		}
		if _, dup := seen[r.ID]; dup {
			return nil, fmt.Errorf("room %s: duplicate id", r.ID)
		}
		seen[r.ID] = struct{}{}
		if r.Name == "" {
			cat.Rooms[i].Name = "Room " + r.ID
		}
		if r.Capacity < 0 {
			return nil, fmt.Errorf("room %s: capacity must not be negative", r.ID)
		}
		if r.Color != "" && !roomColorPattern.MatchString(r.Color) {
			return nil, fmt.Errorf("room %s: color must look like #rrggbb", r.ID)
		}
	}
	return cat.Rooms, nil
}
