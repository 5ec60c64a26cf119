package services

import (
	"context"
	"log/slog"
	"time"

	"roomcalendar/internal/domain"
)

// DefaultOrphanGracePeriod keeps fresh events out of reach while their bookings are still being written.
const DefaultOrphanGracePeriod = time.Hour

type orphanReaper struct {
	events  domain.EventRepository
	retrier Retrier
	grace   time.Duration
	now     func() time.Time
	logger  *slog.Logger
}

// NewOrphanReaper returns a reaper deleting events without bookings that are older than grace.
func NewOrphanReaper(events domain.EventRepository, retrier Retrier, grace time.Duration, now func() time.Time, logger *slog.Logger) domain.OrphanReaper {
	if grace <= 0 {
		grace = DefaultOrphanGracePeriod
	}
	if now == nil {
		now = time.Now
	}
	return &orphanReaper{events: events, retrier: retrier, grace: grace, now: now, logger: logger}
}

func (r *orphanReaper) ReapOrphanEvents(ctx context.Context) (int64, error) {
	cutoff := r.now().Add(-r.grace)
	n, err := withRetry(ctx, r.retrier, domain.SourceStore, "delete_orphan_events", func(ctx context.Context) (int64, error) {
		return r.events.DeleteOrphans(ctx, cutoff)
	})
	if err != nil {
		return 0, err
	}
	if n > 0 {
		r.logger.InfoContext(ctx, "reaped orphan events", "count", n, "cutoff", cutoff)
	}
	return n, nil
}
