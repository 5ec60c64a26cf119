package postgrest

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roomcalendar/internal/domain"
)

type recorded struct {
	method string
	path   string
	query  string
	prefer string
	apikey string
	body   string
}

func newTestStore(t *testing.T, handler func(w http.ResponseWriter, r *http.Request)) (*Store, *[]recorded) {
	t.Helper()
	var calls []recorded
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		calls = append(calls, recorded{
			method: r.Method,
			path:   r.URL.Path,
			query:  r.URL.RawQuery,
			prefer: r.Header.Get("Prefer"),
			apikey: r.Header.Get("apikey"),
			body:   string(body),
		})
		w.Header().Set("Content-Type", "application/json")
		handler(w, r)
	}))
	t.Cleanup(srv.Close)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewStore(NewClient(srv.URL, "anon-key", 2*time.Second, logger)), &calls
}

func writeJSON(w http.ResponseWriter, status int, v string) {
	w.WriteHeader(status)
	_, _ = io.WriteString(w, v)
}

func TestRooms_List(t *testing.T) {
	store, calls := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `[{"id":"1-17","name":"Room 1-17","capacity":8,"active":true,"color":"#10b981"},
			{"id":"1-21","name":"Room 1-21","capacity":12,"active":true,"color":"#3b82f6"}]`)
	})

	rooms, err := store.Rooms().List(context.Background())
	require.NoError(t, err)
	require.Len(t, rooms, 2)
	assert.Equal(t, "1-17", rooms[0].ID)
	assert.Equal(t, 12, rooms[1].Capacity)

	require.Len(t, *calls, 1)
	c := (*calls)[0]
	assert.Equal(t, http.MethodGet, c.method)
	assert.Equal(t, "/rest/v1/rooms", c.path)
	assert.Contains(t, c.query, "order=id.asc")
	assert.Equal(t, "anon-key", c.apikey)
}

func TestRooms_GetByIDNotFound(t *testing.T) {
	store, _ := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `[]`)
	})
	_, err := store.Rooms().GetByID(context.Background(), "9-99")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRooms_UpsertMergesDuplicates(t *testing.T) {
	store, calls := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusCreated, `[{"id":"1-21","created_at":"2025-01-01T00:00:00Z"}]`)
	})
	room := domain.NewRoom("1-21", "Room 1-21", 12, "#3b82f6", time.Time{}, time.Time{})
	require.NoError(t, store.Rooms().Upsert(context.Background(), room))
	assert.Equal(t, 2025, room.CreatedAt.Year())
	assert.Contains(t, (*calls)[0].prefer, "resolution=merge-duplicates")
}

func TestEvents_CreateSetsID(t *testing.T) {
	store, calls := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusCreated, `[{"id":"5f0c8a52-9d0e-4a8e-8f3a-0a0b0c0d0e0f","room_id":"1-21","start_time":"09:00:00","end_time":"10:00:00"}]`)
	})
	ev := domain.NewEvent("1-21", "Standup", "Ana", nil, domain.MustTimeOfDay(9, 0), domain.MustTimeOfDay(10, 0), "#3b82f6", time.Now(), time.Now())
	require.NoError(t, store.Events().Create(context.Background(), ev))
	assert.Equal(t, "5f0c8a52-9d0e-4a8e-8f3a-0a0b0c0d0e0f", ev.ID)

	var sent map[string]any
	require.NoError(t, json.Unmarshal([]byte((*calls)[0].body), &sent))
	assert.Equal(t, "09:00", sent["start_time"])
	assert.NotContains(t, sent, "id")
	assert.Nil(t, sent["phone_number"])
}

func TestEvents_UpdateClearsPhone(t *testing.T) {
	store, calls := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `[{"id":"ev-1","event_name":"Retro","start_time":"09:00:00","end_time":"10:00:00"}]`)
	})
	name, empty := "Retro", ""
	ev, err := store.Events().Update(context.Background(), "ev-1", domain.EventUpdate{EventName: &name, PhoneNumber: &empty})
	require.NoError(t, err)
	assert.Equal(t, "Retro", ev.EventName)

	c := (*calls)[0]
	assert.Equal(t, http.MethodPatch, c.method)
	assert.Contains(t, c.query, "id=eq.ev-1")
	var sent map[string]any
	require.NoError(t, json.Unmarshal([]byte(c.body), &sent))
	assert.Contains(t, sent, "phone_number")
	assert.Nil(t, sent["phone_number"])
	assert.NotContains(t, sent, "room_id")
}

func TestEvents_DeleteMissing(t *testing.T) {
	store, _ := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `[]`)
	})
	assert.ErrorIs(t, store.Events().Delete(context.Background(), "ev-1"), domain.ErrNotFound)
}

func TestEvents_DeleteOrphansRPC(t *testing.T) {
	store, calls := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `3`)
	})
	n, err := store.Events().DeleteOrphans(context.Background(), time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
	assert.Equal(t, "/rest/v1/rpc/delete_orphan_events", (*calls)[0].path)
	assert.Contains(t, (*calls)[0].body, `"p_created_before":"2025-06-01T08:00:00Z"`)
}

func TestBookings_CreateBatchKeepsInputOrder(t *testing.T) {
	store, calls := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusCreated, `[{"id":"b-1","event_id":"ev-1","date":"2025-06-15"},{"id":"b-2","event_id":"ev-1","date":"2025-06-20"}]`)
	})
	dates := []domain.Date{domain.NewDate(2025, 6, 20), domain.NewDate(2025, 6, 15)}
	got, err := store.Bookings().CreateBatch(context.Background(), "ev-1", dates)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "b-2", got[0].ID)
	assert.Equal(t, "b-1", got[1].ID)
	assert.JSONEq(t, `[{"event_id":"ev-1","date":"2025-06-20"},{"event_id":"ev-1","date":"2025-06-15"}]`, (*calls)[0].body)
}

func TestBookings_ExclusionViolationSurfacesSQLState(t *testing.T) {
	store, _ := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusConflict, `{"code":"23P01","message":"conflicting key value violates exclusion constraint \"bookings_no_overlap\"","details":null,"hint":null}`)
	})
	_, err := store.Bookings().CreateBatch(context.Background(), "ev-1", []domain.Date{domain.NewDate(2025, 6, 15)})
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusConflict, apiErr.StatusCode())
	assert.Equal(t, "23P01", apiErr.SQLState())
	assert.Contains(t, apiErr.Error(), "bookings_no_overlap")
}

func TestBookings_ListByEventID(t *testing.T) {
	store, calls := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `[{"id":"b-1","event_id":"ev-1","date":"2025-06-15"}]`)
	})
	got, err := store.Bookings().ListByEventID(context.Background(), "ev-1")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, domain.NewDate(2025, 6, 15), got[0].Date)
	assert.Contains(t, (*calls)[0].query, "event_id=eq.ev-1")
	assert.Contains(t, (*calls)[0].query, "order=date.asc")
}

func TestPredicate_RoomScoped(t *testing.T) {
	store, calls := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `false`)
	})
	r, err := domain.NewTimeRange(domain.NewDate(2025, 6, 15), domain.MustTimeOfDay(11, 0), domain.MustTimeOfDay(13, 0))
	require.NoError(t, err)

	ok, err := store.Predicate().IsSlotAvailableForRoom(context.Background(), domain.SlotQuery{RoomID: "1-21", Range: r})
	require.NoError(t, err)
	assert.False(t, ok)

	c := (*calls)[0]
	assert.Equal(t, "/rest/v1/rpc/is_time_slot_available_for_room", c.path)
	assert.JSONEq(t, `{"p_room_id":"1-21","p_date":"2025-06-15","p_start_time":"11:00","p_end_time":"13:00","p_exclude_event_id":null}`, c.body)
}

func TestPredicate_LegacyWithExclusion(t *testing.T) {
	store, calls := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `true`)
	})
	r, err := domain.NewTimeRange(domain.NewDate(2025, 6, 15), domain.MustTimeOfDay(9, 0), domain.MustTimeOfDay(10, 0))
	require.NoError(t, err)

	ok, err := store.Predicate().IsSlotAvailable(context.Background(), domain.SlotQuery{Range: r, ExcludeEventID: "ev-1"})
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "/rest/v1/rpc/is_time_slot_available", (*calls)[0].path)
	assert.Contains(t, (*calls)[0].body, `"p_exclude_event_id":"ev-1"`)
	assert.NotContains(t, (*calls)[0].body, "p_room_id")
}

func TestReader_ForDateAndMonth(t *testing.T) {
	row := `[{"booking_id":"b-1","event_id":"ev-1","date":"2025-06-15","room_id":"1-21","room_name":"Room 1-21",
		"event_name":"Standup","poc_name":"Ana","phone_number":"91234567","start_time":"08:00:00","end_time":"12:00:00","color":"#3b82f6"}]`
	store, calls := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, row)
	})

	day, err := store.Reader().ListBookingDetailsForDate(context.Background(), domain.NewDate(2025, 6, 15))
	require.NoError(t, err)
	require.Len(t, day, 1)
	rng, ok := day[0].Range()
	require.True(t, ok)
	assert.Equal(t, domain.MustTimeOfDay(8, 0), rng.Start)
	require.NotNil(t, day[0].PhoneNumber)
	assert.Contains(t, (*calls)[0].query, "date=eq.2025-06-15")

	month, err := store.Reader().ListBookingDetailsForMonth(context.Background(), 2025, time.June)
	require.NoError(t, err)
	assert.Len(t, month, 1)
	assert.Equal(t, "/rest/v1/rpc/get_bookings_for_month", (*calls)[1].path)
	assert.JSONEq(t, `{"p_year":2025,"p_month":6}`, (*calls)[1].body)
}

func TestClient_ErrorWithoutBody(t *testing.T) {
	store, _ := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusServiceUnavailable)
	})
	_, err := store.Rooms().List(context.Background())
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusServiceUnavailable, apiErr.Status)
	assert.Equal(t, "Service Unavailable", apiErr.Message)
}
