package services

import (
	"context"
	"log/slog"

	"roomcalendar/internal/domain"
)

// SyncRooms upserts every catalog room into the store. Rooms missing from the catalog are
// left untouched so their bookings stay readable; deactivate them in the catalog instead.
func SyncRooms(ctx context.Context, repo domain.RoomRepository, catalog []*domain.Room, retrier Retrier, logger *slog.Logger) error {
	for _, room := range catalog {
		err := withRetryErr(ctx, retrier, domain.SourceStore, "upsert_room", func(ctx context.Context) error {
			return repo.Upsert(ctx, room)
		})
		if err != nil {
			return err
		}
	}
	logger.InfoContext(ctx, "room catalog synced", "rooms", len(catalog))
	return nil
}
