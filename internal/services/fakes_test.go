package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"sync"
	"testing"
	"time"

	"roomcalendar/internal/domain"
)

var testLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelDebug}))

// noSleep keeps retry tests instant.
func noSleep(context.Context, time.Duration) error { return nil }

func testRetrier(attempts int) Retrier {
	return Retrier{MaxAttempts: attempts, BaseDelay: time.Millisecond, Logger: testLogger, Sleep: noSleep}
}

func mustDate(t *testing.T, s string) domain.Date {
	t.Helper()
	d, err := domain.ParseDate(s)
	if err != nil {
		t.Fatalf("parse date %q: %v", s, err)
	}
	return d
}

func tod(s string) domain.TimeOfDay {
	t, err := domain.ParseTimeOfDay(s)
	if err != nil {
		panic(err)
	}
	return t
}

// fakeRoomRepo is an in-memory RoomRepository for tests.
type fakeRoomRepo struct {
	byID map[string]*domain.Room
	err  error
}

func newFakeRoomRepo(rooms ...*domain.Room) *fakeRoomRepo {
	f := &fakeRoomRepo{byID: make(map[string]*domain.Room)}
	for _, r := range rooms {
		f.byID[r.ID] = r
	}
	return f
}

func (f *fakeRoomRepo) List(ctx context.Context) ([]*domain.Room, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([]*domain.Room, 0, len(f.byID))
	for _, r := range f.byID {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeRoomRepo) GetByID(ctx context.Context, id string) (*domain.Room, error) {
	if f.err != nil {
		return nil, f.err
	}
	if r, ok := f.byID[id]; ok {
		return r, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeRoomRepo) Upsert(ctx context.Context, room *domain.Room) error {
	f.byID[room.ID] = room
	return nil
}

// fakeEventRepo is an in-memory EventRepository for tests.
type fakeEventRepo struct {
	mu        sync.RWMutex
	byID      map[string]*domain.Event
	nextID    int
	bookings  *fakeBookingRepo
	err       error // if set, Create returns this error
	deleteErr error
	deleted   []string
}

func newFakeEventRepo(bookings *fakeBookingRepo) *fakeEventRepo {
	return &fakeEventRepo{byID: make(map[string]*domain.Event), nextID: 1, bookings: bookings}
}

func (f *fakeEventRepo) Create(ctx context.Context, e *domain.Event) error {
	if f.err != nil {
		return f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	e.ID = fmt.Sprintf("ev-%d", f.nextID)
	f.nextID++
	f.byID[e.ID] = e
	return nil
}

func (f *fakeEventRepo) get(id string) (*domain.Event, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	e, ok := f.byID[id]
	return e, ok
}

func (f *fakeEventRepo) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	if e, ok := f.get(id); ok {
		cp := *e
		return &cp, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeEventRepo) Update(ctx context.Context, id string, u domain.EventUpdate) (*domain.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	e, ok := f.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if u.RoomID != nil {
		e.RoomID = *u.RoomID
	}
	if u.EventName != nil {
		e.EventName = *u.EventName
	}
	if u.PocName != nil {
		e.PocName = *u.PocName
	}
	if u.PhoneNumber != nil {
		if *u.PhoneNumber == "" {
			e.PhoneNumber = nil
		} else {
			p := *u.PhoneNumber
			e.PhoneNumber = &p
		}
	}
	if u.StartTime != nil {
		e.StartTime = *u.StartTime
	}
	if u.EndTime != nil {
		e.EndTime = *u.EndTime
	}
	if u.Color != nil {
		e.Color = *u.Color
	}
	cp := *e
	return &cp, nil
}

func (f *fakeEventRepo) Delete(ctx context.Context, id string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.mu.Lock()
	if _, ok := f.byID[id]; !ok {
		f.mu.Unlock()
		return domain.ErrNotFound
	}
	delete(f.byID, id)
	f.deleted = append(f.deleted, id)
	f.mu.Unlock()
	// cascade
	return f.bookings.DeleteByEventID(ctx, id)
}

func (f *fakeEventRepo) DeleteOrphans(ctx context.Context, createdBefore time.Time) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	f.bookings.mu.RLock()
	defer f.bookings.mu.RUnlock()
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for id, e := range f.byID {
		if e.CreatedAt.Before(createdBefore) && len(f.bookings.byEvent(id)) == 0 {
			delete(f.byID, id)
			f.deleted = append(f.deleted, id)
			n++
		}
	}
	return n, nil
}

// fakeBookingRepo is an in-memory BookingRepository for tests.
type fakeBookingRepo struct {
	mu        sync.RWMutex
	byID      map[string]*domain.Booking
	nextID    int
	createErr error
	now       time.Time
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{byID: make(map[string]*domain.Booking), nextID: 1}
}

func (f *fakeBookingRepo) CreateBatch(ctx context.Context, eventID string, dates []domain.Date) ([]*domain.Booking, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*domain.Booking, 0, len(dates))
	for _, d := range dates {
		b := &domain.Booking{ID: fmt.Sprintf("bk-%d", f.nextID), EventID: eventID, Date: d, CreatedAt: f.now, UpdatedAt: f.now}
		f.nextID++
		f.byID[b.ID] = b
		out = append(out, b)
	}
	return out, nil
}

func (f *fakeBookingRepo) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if b, ok := f.byID[id]; ok {
		cp := *b
		return &cp, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeBookingRepo) byEvent(eventID string) []*domain.Booking {
	var out []*domain.Booking
	for _, b := range f.byID {
		if b.EventID == eventID {
			cp := *b
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}

func (f *fakeBookingRepo) ListByEventID(ctx context.Context, eventID string) ([]*domain.Booking, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.byEvent(eventID), nil
}

func (f *fakeBookingRepo) UpdateDate(ctx context.Context, id string, date domain.Date) (*domain.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	b.Date = date
	cp := *b
	return &cp, nil
}

func (f *fakeBookingRepo) Delete(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

func (f *fakeBookingRepo) deleteByEvent(eventID string) {
	for id, b := range f.byID {
		if b.EventID == eventID {
			delete(f.byID, id)
		}
	}
}

func (f *fakeBookingRepo) DeleteByEventID(ctx context.Context, eventID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleteByEvent(eventID)
	return nil
}

func (f *fakeBookingRepo) count() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.byID)
}

// fakeReader joins the fake repositories into the details read model.
type fakeReader struct {
	rooms    *fakeRoomRepo
	events   *fakeEventRepo
	bookings *fakeBookingRepo
	err      error
	// onMonthRead runs after the month rows are loaded, before they are returned.
	onMonthRead func()

	mu    sync.Mutex
	calls int
}

func (f *fakeReader) details(match func(domain.Date) bool) []domain.BookingWithEventDetails {
	f.bookings.mu.RLock()
	defer f.bookings.mu.RUnlock()
	var out []domain.BookingWithEventDetails
	for _, b := range f.bookings.byID {
		if !match(b.Date) {
			continue
		}
		e, ok := f.events.get(b.EventID)
		if !ok {
			continue
		}
		row := domain.BookingWithEventDetails{
			BookingID: b.ID, EventID: e.ID, Date: b.Date, RoomID: e.RoomID,
			EventName: e.EventName, PocName: e.PocName, PhoneNumber: e.PhoneNumber,
			StartTime: e.StartTime, EndTime: e.EndTime, Color: e.Color,
		}
		if r, ok := f.rooms.byID[e.RoomID]; ok {
			row.RoomName = r.Name
		}
		out = append(out, row)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].BookingID < out[j].BookingID })
	return out
}

func (f *fakeReader) ListBookingDetailsForDate(ctx context.Context, date domain.Date) ([]domain.BookingWithEventDetails, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return f.details(func(d domain.Date) bool { return d == date }), nil
}

func (f *fakeReader) ListBookingDetailsForMonth(ctx context.Context, year int, month time.Month) ([]domain.BookingWithEventDetails, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	rows := f.details(func(d domain.Date) bool { return d.Year == year && d.Month == month })
	if f.onMonthRead != nil {
		f.onMonthRead()
	}
	return rows, nil
}

func (f *fakeReader) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

// fakePredicate evaluates the slot predicate over the fake store, or fails with err.
type fakePredicate struct {
	reader *fakeReader
	err    error

	mu          sync.Mutex
	roomCalls   int
	legacyCalls int
}

func (f *fakePredicate) eval(q domain.SlotQuery) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	rows := f.reader.details(func(d domain.Date) bool { return d == q.Range.Date })
	return ScanForConflict(q, rows), nil
}

func (f *fakePredicate) IsSlotAvailableForRoom(ctx context.Context, q domain.SlotQuery) (bool, error) {
	f.mu.Lock()
	f.roomCalls++
	f.mu.Unlock()
	return f.eval(q)
}

func (f *fakePredicate) IsSlotAvailable(ctx context.Context, q domain.SlotQuery) (bool, error) {
	f.mu.Lock()
	f.legacyCalls++
	f.mu.Unlock()
	return f.eval(q)
}

// fakeCache records invalidations and keeps a generation per month.
type fakeCache struct {
	mu          sync.Mutex
	months      map[string][]domain.BookingWithEventDetails
	generations map[string]int64
	invalidated []domain.Date
	err         error
}

func newFakeCache() *fakeCache {
	return &fakeCache{
		months:      make(map[string][]domain.BookingWithEventDetails),
		generations: make(map[string]int64),
	}
}

func monthKey(year int, month time.Month) string { return fmt.Sprintf("%04d-%02d", year, int(month)) }

func (f *fakeCache) GetMonth(ctx context.Context, year int, month time.Month) ([]domain.BookingWithEventDetails, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, false, f.err
	}
	rows, ok := f.months[monthKey(year, month)]
	return rows, ok, nil
}

func (f *fakeCache) MonthGeneration(ctx context.Context, year int, month time.Month) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return 0, f.err
	}
	return f.generations[monthKey(year, month)], nil
}

func (f *fakeCache) SetMonth(ctx context.Context, year int, month time.Month, gen int64, rows []domain.BookingWithEventDetails) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return false, f.err
	}
	key := monthKey(year, month)
	if f.generations[key] != gen {
		return false, nil
	}
	f.months[key] = rows
	return true, nil
}

func (f *fakeCache) InvalidateMonths(ctx context.Context, dates ...domain.Date) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.invalidated = append(f.invalidated, dates...)
	for _, d := range dates {
		key := monthKey(d.Year, d.Month)
		delete(f.months, key)
		f.generations[key]++
	}
	return f.err
}

type publishedEvent struct {
	topic string
	event domain.BookingEvent
}

// fakePublisher records published events.
type fakePublisher struct {
	mu     sync.Mutex
	events []publishedEvent
	err    error
}

func (f *fakePublisher) Publish(ctx context.Context, topic string, event domain.BookingEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, publishedEvent{topic: topic, event: event})
	return f.err
}

func (f *fakePublisher) topics() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.events))
	for i, e := range f.events {
		out[i] = e.topic
	}
	return out
}

var testNow = time.Date(2025, time.June, 1, 9, 0, 0, 0, time.UTC)

// testEnv wires the booking service over the fakes with rooms "1-21" and "1-17".
type testEnv struct {
	rooms     *fakeRoomRepo
	events    *fakeEventRepo
	bookings  *fakeBookingRepo
	reader    *fakeReader
	predicate *fakePredicate
	cache     *fakeCache
	publisher *fakePublisher
	checker   *AvailabilityChecker
	svc       domain.BookingService
}

func newTestEnv() *testEnv {
	rooms := newFakeRoomRepo(
		domain.NewRoom("1-21", "Room 1-21", 20, "#3b82f6", testNow, testNow),
		domain.NewRoom("1-17", "Room 1-17", 12, "#10b981", testNow, testNow),
	)
	closed := domain.NewRoom("0-01", "Closed room", 4, "#999999", testNow, testNow)
	closed.Active = false
	rooms.byID[closed.ID] = closed

	bookings := newFakeBookingRepo()
	bookings.now = testNow
	events := newFakeEventRepo(bookings)
	reader := &fakeReader{rooms: rooms, events: events, bookings: bookings}
	predicate := &fakePredicate{reader: reader}
	checker := NewAvailabilityChecker(predicate, reader, testRetrier(1), testRetrier(3), 4, testLogger)
	env := &testEnv{
		rooms:     rooms,
		events:    events,
		bookings:  bookings,
		reader:    reader,
		predicate: predicate,
		cache:     newFakeCache(),
		publisher: &fakePublisher{},
		checker:   checker,
	}
	env.svc = NewBookingService(BookingDeps{
		Rooms:        rooms,
		Events:       events,
		Bookings:     bookings,
		Reader:       reader,
		Availability: checker,
		Retrier:      testRetrier(3),
		Cache:        env.cache,
		Publisher:    env.publisher,
		Logger:       testLogger,
		Timeout:      5 * time.Second,
		Now:          func() time.Time { return testNow },
	})
	return env
}

// seed stores an event with bookings directly, bypassing the service.
func (e *testEnv) seed(t *testing.T, roomID, start, end string, dates ...string) *domain.Event {
	t.Helper()
	ev := domain.NewEvent(roomID, "Seeded event", "Alice", nil, tod(start), tod(end), "#3b82f6", testNow, testNow)
	if err := e.events.Create(context.Background(), ev); err != nil {
		t.Fatalf("seed event: %v", err)
	}
	ds := make([]domain.Date, len(dates))
	for i, s := range dates {
		ds[i] = mustDate(t, s)
	}
	if _, err := e.bookings.CreateBatch(context.Background(), ev.ID, ds); err != nil {
		t.Fatalf("seed bookings: %v", err)
	}
	return ev
}
