package services

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"roomcalendar/internal/domain"
)

// DefaultAvailabilityConcurrency bounds the per-date fan-out of multi-date checks.
const DefaultAvailabilityConcurrency = 8

// AvailabilityChecker decides whether a slot is free. It asks the store's predicate first
// and scans the day's bookings itself when the predicate cannot be evaluated.
type AvailabilityChecker struct {
	predicate domain.SlotPredicate
	reader    domain.BookingReader
	// predicateRetrier is kept separate so a store without the predicate falls back quickly.
	predicateRetrier Retrier
	scanRetrier      Retrier
	concurrency      int
	logger           *slog.Logger
}

// NewAvailabilityChecker wires the two stages. concurrency <= 0 uses the default.
func NewAvailabilityChecker(predicate domain.SlotPredicate, reader domain.BookingReader, predicateRetrier, scanRetrier Retrier, concurrency int, logger *slog.Logger) *AvailabilityChecker {
	if concurrency <= 0 {
		concurrency = DefaultAvailabilityConcurrency
	}
	return &AvailabilityChecker{
		predicate:        predicate,
		reader:           reader,
		predicateRetrier: predicateRetrier,
		scanRetrier:      scanRetrier,
		concurrency:      concurrency,
		logger:           logger,
	}
}

// IsAvailable reports whether q.Range is free for q.RoomID.
func (c *AvailabilityChecker) IsAvailable(ctx context.Context, q domain.SlotQuery) (bool, error) {
	ok, err := c.primaryCheck(ctx, q)
	if err == nil {
		return ok, nil
	}
	c.logger.WarnContext(ctx, "availability predicate unavailable, scanning bookings",
		"room_id", q.RoomID, "date", q.Range.Date.String(), "err", err)
	return c.fallbackScan(ctx, q)
}

func (c *AvailabilityChecker) primaryCheck(ctx context.Context, q domain.SlotQuery) (bool, error) {
	if q.RoomID == "" {
		return withRetry(ctx, c.predicateRetrier, domain.SourceAvailability, "is_time_slot_available", func(ctx context.Context) (bool, error) {
			return c.predicate.IsSlotAvailable(ctx, q)
		})
	}
	return withRetry(ctx, c.predicateRetrier, domain.SourceAvailability, "is_time_slot_available_for_room", func(ctx context.Context) (bool, error) {
		return c.predicate.IsSlotAvailableForRoom(ctx, q)
	})
}

func (c *AvailabilityChecker) fallbackScan(ctx context.Context, q domain.SlotQuery) (bool, error) {
	rows, err := withRetry(ctx, c.scanRetrier, domain.SourceAvailability, "list_bookings_for_date", func(ctx context.Context) ([]domain.BookingWithEventDetails, error) {
		return c.reader.ListBookingDetailsForDate(ctx, q.Range.Date)
	})
	if err != nil {
		return false, err
	}
	return ScanForConflict(q, rows), nil
}

// ScanForConflict returns true when none of rows conflicts with q. Rows of other rooms (when
// q.RoomID is set), rows of the excluded event, and rows on other dates are ignored.
func ScanForConflict(q domain.SlotQuery, rows []domain.BookingWithEventDetails) bool {
	for _, row := range rows {
		if q.RoomID != "" && row.RoomID != q.RoomID {
			continue
		}
		if q.ExcludeEventID != "" && row.EventID == q.ExcludeEventID {
			continue
		}
		r, ok := row.Range()
		if !ok {
			continue
		}
		if q.Range.Overlaps(r) {
			return false
		}
	}
	return true
}

// CheckMultiDate checks every date independently and partitions them. Dates are checked
// concurrently; the partition keeps the input order.
func (c *AvailabilityChecker) CheckMultiDate(ctx context.Context, q domain.MultiDateQuery) (domain.AvailabilityPartition, error) {
	ranges := make([]domain.TimeRange, len(q.Dates))
	for i, d := range q.Dates {
		r, err := domain.NewTimeRange(d, q.Start, q.End)
		if err != nil {
			return domain.AvailabilityPartition{}, Classify(err, domain.SourceAvailability)
		}
		ranges[i] = r
	}

	results := make([]bool, len(ranges))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.concurrency)
	for i, r := range ranges {
		g.Go(func() error {
			ok, err := c.IsAvailable(gctx, domain.SlotQuery{RoomID: q.RoomID, Range: r, ExcludeEventID: q.ExcludeEventID})
			if err != nil {
				return err
			}
			results[i] = ok
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return domain.AvailabilityPartition{}, Classify(err, domain.SourceAvailability)
	}

	partition := domain.AvailabilityPartition{Available: []domain.Date{}, Unavailable: []domain.Date{}}
	for i, ok := range results {
		if ok {
			partition.Available = append(partition.Available, q.Dates[i])
		} else {
			partition.Unavailable = append(partition.Unavailable, q.Dates[i])
		}
	}
	return partition, nil
}
