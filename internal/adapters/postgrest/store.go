package postgrest

import (
	"context"
	"net/url"
	"time"

	"roomcalendar/internal/domain"
)

// Store implements the room, event and booking repositories, the slot predicate and the
// booking reader over PostgREST. The repositories share method names, so each is exposed
// through its own accessor.
type Store struct {
	client *Client
}

func NewStore(client *Client) *Store {
	return &Store{client: client}
}

func (s *Store) Rooms() domain.RoomRepository       { return roomStore{s.client} }
func (s *Store) Events() domain.EventRepository     { return eventStore{s.client} }
func (s *Store) Bookings() domain.BookingRepository { return bookingStore{s.client} }
func (s *Store) Predicate() domain.SlotPredicate    { return predicateStore{s.client} }
func (s *Store) Reader() domain.BookingReader       { return readerStore{s.client} }

type roomStore struct{ c *Client }

func (r roomStore) List(ctx context.Context) ([]*domain.Room, error) {
	rooms := make([]*domain.Room, 0)
	err := r.c.Select(ctx, "rooms", url.Values{"select": {"*"}, "order": {"id.asc"}}, &rooms)
	return rooms, err
}

func (r roomStore) GetByID(ctx context.Context, id string) (*domain.Room, error) {
	var rooms []*domain.Room
	if err := r.c.Select(ctx, "rooms", url.Values{"select": {"*"}, "id": {eq(id)}}, &rooms); err != nil {
		return nil, err
	}
	if len(rooms) == 0 {
		return nil, domain.ErrNotFound
	}
	return rooms[0], nil
}

func (r roomStore) Upsert(ctx context.Context, room *domain.Room) error {
	var rows []*domain.Room
	if err := r.c.Insert(ctx, "rooms", room, &rows, true); err != nil {
		return err
	}
	if len(rows) > 0 {
		room.CreatedAt = rows[0].CreatedAt
	}
	return nil
}

type eventInsert struct {
	RoomID      string           `json:"room_id"`
	EventName   string           `json:"event_name"`
	PocName     string           `json:"poc_name"`
	PhoneNumber *string          `json:"phone_number"`
	StartTime   domain.TimeOfDay `json:"start_time"`
	EndTime     domain.TimeOfDay `json:"end_time"`
	Color       string           `json:"color"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

type eventStore struct{ c *Client }

func (r eventStore) Create(ctx context.Context, e *domain.Event) error {
	var rows []*domain.Event
	body := eventInsert{
		RoomID: e.RoomID, EventName: e.EventName, PocName: e.PocName, PhoneNumber: e.PhoneNumber,
		StartTime: e.StartTime, EndTime: e.EndTime, Color: e.Color, CreatedAt: e.CreatedAt, UpdatedAt: e.UpdatedAt,
	}
	if err := r.c.Insert(ctx, "events", body, &rows, false); err != nil {
		return err
	}
	if len(rows) == 0 {
		return &APIError{Status: 500, Message: "insert returned no event"}
	}
	e.ID = rows[0].ID
	return nil
}

func (r eventStore) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	var rows []*domain.Event
	if err := r.c.Select(ctx, "events", url.Values{"select": {"*"}, "id": {eq(id)}}, &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, domain.ErrNotFound
	}
	return rows[0], nil
}

func (r eventStore) Update(ctx context.Context, id string, u domain.EventUpdate) (*domain.Event, error) {
	body := map[string]any{"updated_at": time.Now().UTC()}
	if u.RoomID != nil {
		body["room_id"] = *u.RoomID
	}
	if u.EventName != nil {
		body["event_name"] = *u.EventName
	}
	if u.PocName != nil {
		body["poc_name"] = *u.PocName
	}
	if u.PhoneNumber != nil {
		if *u.PhoneNumber == "" {
			body["phone_number"] = nil
		} else {
			body["phone_number"] = *u.PhoneNumber
		}
	}
	if u.StartTime != nil {
		body["start_time"] = u.StartTime.String()
	}
	if u.EndTime != nil {
		body["end_time"] = u.EndTime.String()
	}
	if u.Color != nil {
		body["color"] = *u.Color
	}
	var rows []*domain.Event
	if err := r.c.Update(ctx, "events", url.Values{"id": {eq(id)}}, body, &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, domain.ErrNotFound
	}
	return rows[0], nil
}

func (r eventStore) Delete(ctx context.Context, id string) error {
	n, err := r.c.Delete(ctx, "events", url.Values{"id": {eq(id)}})
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r eventStore) DeleteOrphans(ctx context.Context, createdBefore time.Time) (int64, error) {
	var n int64
	err := r.c.RPC(ctx, "delete_orphan_events", map[string]any{"p_created_before": createdBefore.UTC()}, &n)
	return n, err
}

type bookingInsert struct {
	EventID string      `json:"event_id"`
	Date    domain.Date `json:"date"`
}

type bookingStore struct{ c *Client }

// CreateBatch posts all rows as one bulk insert, which PostgREST runs as a single statement.
func (r bookingStore) CreateBatch(ctx context.Context, eventID string, dates []domain.Date) ([]*domain.Booking, error) {
	body := make([]bookingInsert, len(dates))
	for i, d := range dates {
		body[i] = bookingInsert{EventID: eventID, Date: d}
	}
	var rows []*domain.Booking
	if err := r.c.Insert(ctx, "bookings", body, &rows, false); err != nil {
		return nil, err
	}
	byDate := make(map[domain.Date]*domain.Booking, len(rows))
	for _, b := range rows {
		byDate[b.Date] = b
	}
	out := make([]*domain.Booking, 0, len(dates))
	for _, d := range dates {
		if b, ok := byDate[d]; ok {
			out = append(out, b)
		}
	}
	return out, nil
}

const bookingSelect = "id,event_id,date,created_at,updated_at"

func (r bookingStore) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	var rows []*domain.Booking
	if err := r.c.Select(ctx, "bookings", url.Values{"select": {bookingSelect}, "id": {eq(id)}}, &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, domain.ErrNotFound
	}
	return rows[0], nil
}

func (r bookingStore) ListByEventID(ctx context.Context, eventID string) ([]*domain.Booking, error) {
	rows := make([]*domain.Booking, 0)
	err := r.c.Select(ctx, "bookings", url.Values{"select": {bookingSelect}, "event_id": {eq(eventID)}, "order": {"date.asc"}}, &rows)
	return rows, err
}

func (r bookingStore) UpdateDate(ctx context.Context, id string, date domain.Date) (*domain.Booking, error) {
	var rows []*domain.Booking
	body := map[string]any{"date": date.String(), "updated_at": time.Now().UTC()}
	if err := r.c.Update(ctx, "bookings", url.Values{"id": {eq(id)}, "select": {bookingSelect}}, body, &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, domain.ErrNotFound
	}
	return rows[0], nil
}

func (r bookingStore) Delete(ctx context.Context, id string) error {
	n, err := r.c.Delete(ctx, "bookings", url.Values{"id": {eq(id)}})
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r bookingStore) DeleteByEventID(ctx context.Context, eventID string) error {
	_, err := r.c.Delete(ctx, "bookings", url.Values{"event_id": {eq(eventID)}})
	return err
}

type predicateStore struct{ c *Client }

func slotParams(q domain.SlotQuery) map[string]any {
	params := map[string]any{
		"p_date":             q.Range.Date.String(),
		"p_start_time":       q.Range.Start.String(),
		"p_end_time":         q.Range.End.String(),
		"p_exclude_event_id": nil,
	}
	if q.ExcludeEventID != "" {
		params["p_exclude_event_id"] = q.ExcludeEventID
	}
	return params
}

func (r predicateStore) IsSlotAvailableForRoom(ctx context.Context, q domain.SlotQuery) (bool, error) {
	params := slotParams(q)
	params["p_room_id"] = q.RoomID
	var available bool
	err := r.c.RPC(ctx, "is_time_slot_available_for_room", params, &available)
	return available, err
}

func (r predicateStore) IsSlotAvailable(ctx context.Context, q domain.SlotQuery) (bool, error) {
	var available bool
	err := r.c.RPC(ctx, "is_time_slot_available", slotParams(q), &available)
	return available, err
}

type readerStore struct{ c *Client }

func (r readerStore) ListBookingDetailsForDate(ctx context.Context, date domain.Date) ([]domain.BookingWithEventDetails, error) {
	rows := make([]domain.BookingWithEventDetails, 0)
	err := r.c.Select(ctx, "booking_details", url.Values{"select": {"*"}, "date": {eq(date.String())}, "order": {"start_time.asc"}}, &rows)
	return rows, err
}

func (r readerStore) ListBookingDetailsForMonth(ctx context.Context, year int, month time.Month) ([]domain.BookingWithEventDetails, error) {
	rows := make([]domain.BookingWithEventDetails, 0)
	err := r.c.RPC(ctx, "get_bookings_for_month", map[string]any{"p_year": year, "p_month": int(month)}, &rows)
	return rows, err
}
