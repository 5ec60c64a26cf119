package services

import (
	"context"
	"log/slog"
	"time"

	"roomcalendar/internal/domain"
)

type mutationState string

const (
	stateValidating mutationState = "validating"
	stateChecking   mutationState = "checking-availability"
	statePersisting mutationState = "persisting"
	stateDone       mutationState = "done"
	stateFailed     mutationState = "failed"
)

const compensateTimeout = 5 * time.Second

// BookingDeps collects the collaborators of the booking service.
type BookingDeps struct {
	Rooms        domain.RoomRepository
	Events       domain.EventRepository
	Bookings     domain.BookingRepository
	Reader       domain.BookingReader
	Availability *AvailabilityChecker
	Retrier      Retrier
	Cache        domain.MonthCache
	Publisher    domain.EventPublisher
	Logger       *slog.Logger
	Timeout      time.Duration
	// Now defaults to time.Now. Dates before Now's calendar date cannot be booked.
	Now func() time.Time
}

type bookingService struct {
	rooms          domain.RoomRepository
	events         domain.EventRepository
	bookings       domain.BookingRepository
	reader         domain.BookingReader
	availability   *AvailabilityChecker
	retrier        Retrier
	cache          domain.MonthCache
	publisher      domain.EventPublisher
	logger         *slog.Logger
	contextTimeout time.Duration
	now            func() time.Time
}

func NewBookingService(deps BookingDeps) domain.BookingService {
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &bookingService{
		rooms:          deps.Rooms,
		events:         deps.Events,
		bookings:       deps.Bookings,
		reader:         deps.Reader,
		availability:   deps.Availability,
		retrier:        deps.Retrier,
		cache:          deps.Cache,
		publisher:      deps.Publisher,
		logger:         logger,
		contextTimeout: deps.Timeout,
		now:            now,
	}
}

func (s *bookingService) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.contextTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.contextTimeout)
}

func (s *bookingService) enter(ctx context.Context, op string, state mutationState) {
	s.logger.DebugContext(ctx, "booking mutation", "op", op, "state", string(state))
}

func (s *bookingService) fail(ctx context.Context, op string, err error) error {
	classified := Classify(err, domain.SourceBooking)
	s.logger.DebugContext(ctx, "booking mutation", "op", op, "state", string(stateFailed), "kind", classified.Kind)
	return classified
}

func (s *bookingService) today() domain.Date {
	return domain.DateOf(s.now())
}

func (s *bookingService) ListRooms(ctx context.Context) ([]*domain.Room, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	rooms, err := withRetry(ctx, s.retrier, domain.SourceStore, "list_rooms", s.rooms.List)
	if err != nil {
		return nil, err
	}
	if rooms == nil {
		rooms = []*domain.Room{}
	}
	return rooms, nil
}

// requireRoom returns the active catalog room or a validation error.
func (s *bookingService) requireRoom(ctx context.Context, roomID string) (*domain.Room, error) {
	if roomID == "" {
		return nil, domain.NewValidationError("room_id", "is required")
	}
	room, err := withRetry(ctx, s.retrier, domain.SourceStore, "get_room", func(ctx context.Context) (*domain.Room, error) {
		return s.rooms.GetByID(ctx, roomID)
	})
	if err != nil {
		if domain.IsKind(err, domain.KindBookingNotFound) {
			return nil, domain.NewValidationError("room_id", "unknown room "+roomID)
		}
		return nil, err
	}
	if !room.Active {
		return nil, domain.NewValidationError("room_id", "room "+roomID+" is not available for booking")
	}
	return room, nil
}

func (s *bookingService) IsTimeSlotAvailable(ctx context.Context, q domain.SlotQuery) (bool, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	if q.Range.Start >= q.Range.End {
		return false, Classify(&domain.InvalidRangeError{Start: q.Range.Start, End: q.Range.End}, domain.SourceAvailability)
	}
	return s.availability.IsAvailable(ctx, q)
}

func (s *bookingService) CheckMultiDateAvailability(ctx context.Context, q domain.MultiDateQuery) (domain.AvailabilityPartition, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	if len(q.Dates) == 0 {
		return domain.AvailabilityPartition{}, domain.NewValidationError("dates", "at least one date must be selected")
	}
	return s.availability.CheckMultiDate(ctx, q)
}

// eventDraft is a validated set of event fields ready to persist.
type eventDraft struct {
	room      *domain.Room
	eventName string
	pocName   string
	phone     *string
	color     string
}

func (s *bookingService) validateDraft(ctx context.Context, roomID, eventName, pocName string, phone *string, color string, start, end domain.TimeOfDay) (eventDraft, error) {
	var d eventDraft
	var err error
	if d.eventName, err = validateEventName(eventName); err != nil {
		return d, err
	}
	if d.pocName, err = validatePocName(pocName); err != nil {
		return d, err
	}
	if d.phone, err = normalizePhone(phone); err != nil {
		return d, err
	}
	if err = validateColor(color); err != nil {
		return d, err
	}
	if err = validateTimes(start, end); err != nil {
		return d, err
	}
	if d.room, err = s.requireRoom(ctx, roomID); err != nil {
		return d, err
	}
	d.color = color
	if d.color == "" {
		d.color = d.room.Color
	}
	return d, nil
}

func (s *bookingService) CreateBookingWithEvent(ctx context.Context, req domain.CreateBookingRequest) (*domain.EventWithBookings, error) {
	const op = "create_booking"
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	s.enter(ctx, op, stateValidating)
	if err := validateNotPast(req.Date, s.today()); err != nil {
		return nil, s.fail(ctx, op, err)
	}
	draft, err := s.validateDraft(ctx, req.RoomID, req.EventName, req.PocName, req.PhoneNumber, req.Color, req.StartTime, req.EndTime)
	if err != nil {
		return nil, s.fail(ctx, op, err)
	}
	r, err := domain.NewTimeRange(req.Date, req.StartTime, req.EndTime)
	if err != nil {
		return nil, s.fail(ctx, op, err)
	}

	s.enter(ctx, op, stateChecking)
	ok, err := s.availability.IsAvailable(ctx, domain.SlotQuery{RoomID: req.RoomID, Range: r})
	if err != nil {
		return nil, s.fail(ctx, op, err)
	}
	if !ok {
		return nil, s.fail(ctx, op, domain.NewBookingConflictError(domain.SourceBooking, []domain.Date{req.Date}))
	}

	s.enter(ctx, op, statePersisting)
	result, err := s.persistEventWithBookings(ctx, draft, req.StartTime, req.EndTime, []domain.Date{req.Date})
	if err != nil {
		return nil, s.fail(ctx, op, err)
	}
	s.enter(ctx, op, stateDone)
	return result, nil
}

// resolveDates returns the explicit dates or the expanded consecutive range.
func resolveDates(req domain.CreateMultiDateBookingRequest) ([]domain.Date, error) {
	hasRange := req.RangeStart != nil || req.RangeEnd != nil
	switch {
	case len(req.Dates) > 0 && hasRange:
		return nil, domain.NewValidationError("dates", "provide either dates or range_start and range_end, not both")
	case hasRange:
		if req.RangeStart == nil || req.RangeEnd == nil {
			return nil, domain.NewValidationError("dates", "range_start and range_end must both be set")
		}
		return ExpandDateRange(*req.RangeStart, *req.RangeEnd, MaxDatesPerBooking)
	default:
		return req.Dates, nil
	}
}

func (s *bookingService) CreateMultiDateBooking(ctx context.Context, req domain.CreateMultiDateBookingRequest) (*domain.EventWithBookings, error) {
	const op = "create_multi_date_booking"
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	s.enter(ctx, op, stateValidating)
	dates, err := resolveDates(req)
	if err != nil {
		return nil, s.fail(ctx, op, err)
	}
	if err := validateDates(dates, s.today()); err != nil {
		return nil, s.fail(ctx, op, err)
	}
	draft, err := s.validateDraft(ctx, req.RoomID, req.EventName, req.PocName, req.PhoneNumber, req.Color, req.StartTime, req.EndTime)
	if err != nil {
		return nil, s.fail(ctx, op, err)
	}

	s.enter(ctx, op, stateChecking)
	partition, err := s.availability.CheckMultiDate(ctx, domain.MultiDateQuery{
		Dates:  dates,
		Start:  req.StartTime,
		End:    req.EndTime,
		RoomID: req.RoomID,
	})
	if err != nil {
		return nil, s.fail(ctx, op, err)
	}
	if len(partition.Unavailable) > 0 {
		return nil, s.fail(ctx, op, domain.NewBookingConflictError(domain.SourceBooking, partition.Unavailable))
	}

	s.enter(ctx, op, statePersisting)
	result, err := s.persistEventWithBookings(ctx, draft, req.StartTime, req.EndTime, dates)
	if err != nil {
		return nil, s.fail(ctx, op, err)
	}
	s.enter(ctx, op, stateDone)
	return result, nil
}

// persistEventWithBookings inserts the event and then all its bookings in one batch. When the
// batch fails the event is deleted again; if that also fails the event is left for the reaper.
func (s *bookingService) persistEventWithBookings(ctx context.Context, draft eventDraft, start, end domain.TimeOfDay, dates []domain.Date) (*domain.EventWithBookings, error) {
	now := s.now()
	event := domain.NewEvent(draft.room.ID, draft.eventName, draft.pocName, draft.phone, start, end, draft.color, now, now)
	if err := withRetryErr(ctx, s.retrier, domain.SourceStore, "create_event", func(ctx context.Context) error {
		return s.events.Create(ctx, event)
	}); err != nil {
		return nil, err
	}

	bookings, err := withRetry(ctx, s.retrier, domain.SourceStore, "create_bookings", func(ctx context.Context) ([]*domain.Booking, error) {
		return s.bookings.CreateBatch(ctx, event.ID, dates)
	})
	if err != nil {
		s.compensateEvent(ctx, event.ID, err)
		return nil, err
	}

	s.invalidate(ctx, dates...)
	s.publish(ctx, domain.TopicBookingCreated, domain.BookingEvent{
		EventID:    event.ID,
		RoomID:     event.RoomID,
		BookingIDs: bookingIDs(bookings),
		Dates:      dates,
		StartTime:  start.String(),
		EndTime:    end.String(),
		OccurredAt: now,
	})
	return &domain.EventWithBookings{Event: event, Bookings: bookings}, nil
}

func (s *bookingService) compensateEvent(ctx context.Context, eventID string, cause error) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), compensateTimeout)
	defer cancel()
	if err := s.events.Delete(ctx, eventID); err != nil {
		s.logger.WarnContext(ctx, "orphan event left after failed booking insert",
			"event_id", eventID, "cause", cause, "err", err)
		return
	}
	s.logger.InfoContext(ctx, "removed event after failed booking insert", "event_id", eventID, "cause", cause)
}

func (s *bookingService) getEvent(ctx context.Context, eventID string) (*domain.Event, error) {
	event, err := withRetry(ctx, s.retrier, domain.SourceStore, "get_event", func(ctx context.Context) (*domain.Event, error) {
		return s.events.GetByID(ctx, eventID)
	})
	if domain.IsKind(err, domain.KindBookingNotFound) {
		return nil, domain.NewBookingNotFoundError("event", eventID)
	}
	return event, err
}

func (s *bookingService) getBooking(ctx context.Context, bookingID string) (*domain.Booking, error) {
	booking, err := withRetry(ctx, s.retrier, domain.SourceStore, "get_booking", func(ctx context.Context) (*domain.Booking, error) {
		return s.bookings.GetByID(ctx, bookingID)
	})
	if domain.IsKind(err, domain.KindBookingNotFound) {
		return nil, domain.NewBookingNotFoundError("booking", bookingID)
	}
	return booking, err
}

func (s *bookingService) listEventBookings(ctx context.Context, eventID string) ([]*domain.Booking, error) {
	bookings, err := withRetry(ctx, s.retrier, domain.SourceStore, "list_event_bookings", func(ctx context.Context) ([]*domain.Booking, error) {
		return s.bookings.ListByEventID(ctx, eventID)
	})
	if err != nil {
		return nil, err
	}
	if bookings == nil {
		bookings = []*domain.Booking{}
	}
	return bookings, nil
}

// normalizeUpdate validates the set fields of u and returns a copy holding trimmed values.
// A phone number set to blank is kept as an empty string, which clears it.
func (s *bookingService) normalizeUpdate(ctx context.Context, event *domain.Event, u domain.EventUpdate) (domain.EventUpdate, error) {
	out := u
	if u.EventName != nil {
		name, err := validateEventName(*u.EventName)
		if err != nil {
			return out, err
		}
		out.EventName = &name
	}
	if u.PocName != nil {
		name, err := validatePocName(*u.PocName)
		if err != nil {
			return out, err
		}
		out.PocName = &name
	}
	if u.PhoneNumber != nil {
		phone, err := normalizePhone(u.PhoneNumber)
		if err != nil {
			return out, err
		}
		if phone == nil {
			empty := ""
			phone = &empty
		}
		out.PhoneNumber = phone
	}
	if u.Color != nil {
		if err := validateColor(*u.Color); err != nil {
			return out, err
		}
	}
	if u.StartTime != nil || u.EndTime != nil {
		start, end := mergedTimes(event, u)
		if err := validateTimes(start, end); err != nil {
			return out, err
		}
	}
	if u.RoomID != nil && *u.RoomID != event.RoomID {
		if _, err := s.requireRoom(ctx, *u.RoomID); err != nil {
			return out, err
		}
	}
	return out, nil
}

func mergedTimes(event *domain.Event, u domain.EventUpdate) (domain.TimeOfDay, domain.TimeOfDay) {
	start, end := event.StartTime, event.EndTime
	if u.StartTime != nil {
		start = *u.StartTime
	}
	if u.EndTime != nil {
		end = *u.EndTime
	}
	return start, end
}

func (s *bookingService) UpdateEvent(ctx context.Context, eventID string, update domain.EventUpdate) (*domain.Event, error) {
	const op = "update_event"
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	s.enter(ctx, op, stateValidating)
	if update.IsEmpty() {
		return nil, s.fail(ctx, op, domain.NewValidationError("event", "no fields to update"))
	}
	event, err := s.getEvent(ctx, eventID)
	if err != nil {
		return nil, s.fail(ctx, op, err)
	}
	normalized, err := s.normalizeUpdate(ctx, event, update)
	if err != nil {
		return nil, s.fail(ctx, op, err)
	}
	bookings, err := s.listEventBookings(ctx, eventID)
	if err != nil {
		return nil, s.fail(ctx, op, err)
	}
	dates := bookingDates(bookings)

	roomID := event.RoomID
	if update.RoomID != nil {
		roomID = *update.RoomID
	}
	start, end := mergedTimes(event, update)
	moved := roomID != event.RoomID || start != event.StartTime || end != event.EndTime
	if moved && len(dates) > 0 {
		s.enter(ctx, op, stateChecking)
		partition, err := s.availability.CheckMultiDate(ctx, domain.MultiDateQuery{
			Dates:          dates,
			Start:          start,
			End:            end,
			ExcludeEventID: eventID,
			RoomID:         roomID,
		})
		if err != nil {
			return nil, s.fail(ctx, op, err)
		}
		if len(partition.Unavailable) > 0 {
			return nil, s.fail(ctx, op, domain.NewBookingConflictError(domain.SourceBooking, partition.Unavailable))
		}
	}

	s.enter(ctx, op, statePersisting)
	updated, err := withRetry(ctx, s.retrier, domain.SourceStore, "update_event", func(ctx context.Context) (*domain.Event, error) {
		return s.events.Update(ctx, eventID, normalized)
	})
	if err != nil {
		if domain.IsKind(err, domain.KindBookingNotFound) {
			err = domain.NewBookingNotFoundError("event", eventID)
		}
		return nil, s.fail(ctx, op, err)
	}

	s.invalidate(ctx, dates...)
	s.publish(ctx, domain.TopicEventUpdated, domain.BookingEvent{
		EventID:    updated.ID,
		RoomID:     updated.RoomID,
		BookingIDs: bookingIDs(bookings),
		Dates:      dates,
		StartTime:  updated.StartTime.String(),
		EndTime:    updated.EndTime.String(),
		OccurredAt: s.now(),
	})
	s.enter(ctx, op, stateDone)
	return updated, nil
}

func (s *bookingService) UpdateBookingDate(ctx context.Context, bookingID string, date domain.Date) (*domain.Booking, error) {
	const op = "update_booking_date"
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	s.enter(ctx, op, stateValidating)
	if err := validateNotPast(date, s.today()); err != nil {
		return nil, s.fail(ctx, op, err)
	}
	booking, err := s.getBooking(ctx, bookingID)
	if err != nil {
		return nil, s.fail(ctx, op, err)
	}
	if booking.Date == date {
		s.enter(ctx, op, stateDone)
		return booking, nil
	}
	event, err := s.getEvent(ctx, booking.EventID)
	if err != nil {
		return nil, s.fail(ctx, op, err)
	}
	siblings, err := s.listEventBookings(ctx, event.ID)
	if err != nil {
		return nil, s.fail(ctx, op, err)
	}
	for _, b := range siblings {
		if b.ID != booking.ID && b.Date == date {
			return nil, s.fail(ctx, op, domain.NewValidationError("date", "event is already booked on "+date.String()))
		}
	}
	r, err := event.RangeOn(date)
	if err != nil {
		return nil, s.fail(ctx, op, err)
	}

	s.enter(ctx, op, stateChecking)
	ok, err := s.availability.IsAvailable(ctx, domain.SlotQuery{RoomID: event.RoomID, Range: r, ExcludeEventID: event.ID})
	if err != nil {
		return nil, s.fail(ctx, op, err)
	}
	if !ok {
		return nil, s.fail(ctx, op, domain.NewBookingConflictError(domain.SourceBooking, []domain.Date{date}))
	}

	s.enter(ctx, op, statePersisting)
	previous := booking.Date
	updated, err := withRetry(ctx, s.retrier, domain.SourceStore, "update_booking_date", func(ctx context.Context) (*domain.Booking, error) {
		return s.bookings.UpdateDate(ctx, bookingID, date)
	})
	if err != nil {
		if domain.IsKind(err, domain.KindBookingNotFound) {
			err = domain.NewBookingNotFoundError("booking", bookingID)
		}
		return nil, s.fail(ctx, op, err)
	}

	s.invalidate(ctx, previous, date)
	s.publish(ctx, domain.TopicBookingUpdated, domain.BookingEvent{
		EventID:    event.ID,
		RoomID:     event.RoomID,
		BookingIDs: []string{updated.ID},
		Dates:      []domain.Date{previous, date},
		StartTime:  event.StartTime.String(),
		EndTime:    event.EndTime.String(),
		OccurredAt: s.now(),
	})
	s.enter(ctx, op, stateDone)
	return updated, nil
}

func (s *bookingService) DeleteEvent(ctx context.Context, eventID string) error {
	const op = "delete_event"
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	s.enter(ctx, op, stateValidating)
	event, err := s.getEvent(ctx, eventID)
	if err != nil {
		return s.fail(ctx, op, err)
	}
	bookings, err := s.listEventBookings(ctx, eventID)
	if err != nil {
		return s.fail(ctx, op, err)
	}

	s.enter(ctx, op, statePersisting)
	if err := withRetryErr(ctx, s.retrier, domain.SourceStore, "delete_event_bookings", func(ctx context.Context) error {
		return s.bookings.DeleteByEventID(ctx, eventID)
	}); err != nil {
		return s.fail(ctx, op, err)
	}
	if err := withRetryErr(ctx, s.retrier, domain.SourceStore, "delete_event", func(ctx context.Context) error {
		return s.events.Delete(ctx, eventID)
	}); err != nil {
		if domain.IsKind(err, domain.KindBookingNotFound) {
			err = domain.NewBookingNotFoundError("event", eventID)
		}
		return s.fail(ctx, op, err)
	}

	dates := bookingDates(bookings)
	s.invalidate(ctx, dates...)
	s.publish(ctx, domain.TopicEventDeleted, domain.BookingEvent{
		EventID:    eventID,
		RoomID:     event.RoomID,
		BookingIDs: bookingIDs(bookings),
		Dates:      dates,
		OccurredAt: s.now(),
	})
	s.enter(ctx, op, stateDone)
	return nil
}

func (s *bookingService) DeleteBooking(ctx context.Context, bookingID string) error {
	const op = "delete_booking"
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	s.enter(ctx, op, stateValidating)
	booking, err := s.getBooking(ctx, bookingID)
	if err != nil {
		return s.fail(ctx, op, err)
	}

	s.enter(ctx, op, statePersisting)
	if err := withRetryErr(ctx, s.retrier, domain.SourceStore, "delete_booking", func(ctx context.Context) error {
		return s.bookings.Delete(ctx, bookingID)
	}); err != nil {
		if domain.IsKind(err, domain.KindBookingNotFound) {
			err = domain.NewBookingNotFoundError("booking", bookingID)
		}
		return s.fail(ctx, op, err)
	}

	s.invalidate(ctx, booking.Date)
	s.publish(ctx, domain.TopicBookingDeleted, domain.BookingEvent{
		EventID:    booking.EventID,
		BookingIDs: []string{bookingID},
		Dates:      []domain.Date{booking.Date},
		OccurredAt: s.now(),
	})
	s.enter(ctx, op, stateDone)
	return nil
}

func (s *bookingService) GetEvent(ctx context.Context, eventID string) (*domain.EventWithBookings, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	event, err := s.getEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	bookings, err := s.listEventBookings(ctx, eventID)
	if err != nil {
		return nil, err
	}
	return &domain.EventWithBookings{Event: event, Bookings: bookings}, nil
}

func (s *bookingService) GetBooking(ctx context.Context, bookingID string) (*domain.Booking, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	return s.getBooking(ctx, bookingID)
}

func (s *bookingService) GetBookingsForDate(ctx context.Context, date domain.Date) ([]domain.BookingWithEventDetails, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	rows, err := withRetry(ctx, s.retrier, domain.SourceStore, "list_bookings_for_date", func(ctx context.Context) ([]domain.BookingWithEventDetails, error) {
		return s.reader.ListBookingDetailsForDate(ctx, date)
	})
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []domain.BookingWithEventDetails{}
	}
	return rows, nil
}

// GetBookingsForMonth serves the month from the cache when present. Cache failures are logged
// and the store is read instead.
func (s *bookingService) GetBookingsForMonth(ctx context.Context, year int, month time.Month) ([]domain.BookingWithEventDetails, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	if month < time.January || month > time.December {
		return nil, domain.NewValidationError("month", "must be between 1 and 12")
	}
	if year < 1 {
		return nil, domain.NewValidationError("year", "must be positive")
	}

	gen, cacheable := int64(0), false
	if s.cache != nil {
		rows, hit, err := s.cache.GetMonth(ctx, year, month)
		if err != nil {
			s.logger.WarnContext(ctx, "month cache read failed", "year", year, "month", int(month), "err", err)
		} else if hit {
			return rows, nil
		}
		if gen, err = s.cache.MonthGeneration(ctx, year, month); err != nil {
			s.logger.WarnContext(ctx, "month cache generation read failed", "year", year, "month", int(month), "err", err)
		} else {
			cacheable = true
		}
	}

	rows, err := withRetry(ctx, s.retrier, domain.SourceStore, "get_bookings_for_month", func(ctx context.Context) ([]domain.BookingWithEventDetails, error) {
		return s.reader.ListBookingDetailsForMonth(ctx, year, month)
	})
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []domain.BookingWithEventDetails{}
	}
	if cacheable {
		stored, err := s.cache.SetMonth(ctx, year, month, gen, rows)
		switch {
		case err != nil:
			s.logger.WarnContext(ctx, "month cache write failed", "year", year, "month", int(month), "err", err)
		case !stored:
			s.logger.DebugContext(ctx, "month invalidated during read, not caching", "year", year, "month", int(month))
		}
	}
	return rows, nil
}

func (s *bookingService) invalidate(ctx context.Context, dates ...domain.Date) {
	if s.cache == nil || len(dates) == 0 {
		return
	}
	if err := s.cache.InvalidateMonths(ctx, dates...); err != nil {
		s.logger.WarnContext(ctx, "month cache invalidation failed", "err", err)
	}
}

func (s *bookingService) publish(ctx context.Context, topic string, evt domain.BookingEvent) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, topic, evt); err != nil {
		s.logger.WarnContext(ctx, "publish booking event failed", "topic", topic, "event_id", evt.EventID, "err", err)
	}
}

func bookingDates(bookings []*domain.Booking) []domain.Date {
	dates := make([]domain.Date, len(bookings))
	for i, b := range bookings {
		dates[i] = b.Date
	}
	return dates
}

func bookingIDs(bookings []*domain.Booking) []string {
	ids := make([]string, len(bookings))
	for i, b := range bookings {
		ids[i] = b.ID
	}
	return ids
}
