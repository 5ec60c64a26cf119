package controllers

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"roomcalendar/internal/delivery/http/helpers"
	"roomcalendar/internal/domain"
)

// testLogger is a no-op logger for controller tests so we don't assert on log output.
var testLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))

const (
	testEventID   = "5f0c8a52-9d0e-4a8e-8f3a-0a0b0c0d0e0f"
	testBookingID = "7d1e2f3a-4b5c-4d6e-8f70-8192a3b4c5d6"
)

var fixedNow = time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

// fakeBookingService implements domain.BookingService for handler tests.
type fakeBookingService struct {
	err error

	rooms     []*domain.Room
	available bool
	partition domain.AvailabilityPartition
	created   *domain.EventWithBookings
	event     *domain.EventWithBookings
	updated   *domain.Event
	booking   *domain.Booking
	details   []domain.BookingWithEventDetails

	lastSlot        domain.SlotQuery
	lastMulti       domain.MultiDateQuery
	lastCreate      domain.CreateBookingRequest
	lastCreateMulti domain.CreateMultiDateBookingRequest
	lastEventID     string
	lastBookingID   string
	lastUpdate      domain.EventUpdate
	lastDate        domain.Date
	lastYear        int
	lastMonth       time.Month
}

func (f *fakeBookingService) ListRooms(context.Context) ([]*domain.Room, error) {
	return f.rooms, f.err
}

func (f *fakeBookingService) IsTimeSlotAvailable(_ context.Context, q domain.SlotQuery) (bool, error) {
	f.lastSlot = q
	return f.available, f.err
}

func (f *fakeBookingService) CheckMultiDateAvailability(_ context.Context, q domain.MultiDateQuery) (domain.AvailabilityPartition, error) {
	f.lastMulti = q
	return f.partition, f.err
}

func (f *fakeBookingService) CreateBookingWithEvent(_ context.Context, req domain.CreateBookingRequest) (*domain.EventWithBookings, error) {
	f.lastCreate = req
	if f.err != nil {
		return nil, f.err
	}
	return f.created, nil
}

func (f *fakeBookingService) CreateMultiDateBooking(_ context.Context, req domain.CreateMultiDateBookingRequest) (*domain.EventWithBookings, error) {
	f.lastCreateMulti = req
	if f.err != nil {
		return nil, f.err
	}
	return f.created, nil
}

func (f *fakeBookingService) UpdateEvent(_ context.Context, id string, u domain.EventUpdate) (*domain.Event, error) {
	f.lastEventID, f.lastUpdate = id, u
	if f.err != nil {
		return nil, f.err
	}
	return f.updated, nil
}

func (f *fakeBookingService) UpdateBookingDate(_ context.Context, id string, date domain.Date) (*domain.Booking, error) {
	f.lastBookingID, f.lastDate = id, date
	if f.err != nil {
		return nil, f.err
	}
	return f.booking, nil
}

func (f *fakeBookingService) DeleteEvent(_ context.Context, id string) error {
	f.lastEventID = id
	return f.err
}

func (f *fakeBookingService) DeleteBooking(_ context.Context, id string) error {
	f.lastBookingID = id
	return f.err
}

func (f *fakeBookingService) GetEvent(_ context.Context, id string) (*domain.EventWithBookings, error) {
	f.lastEventID = id
	if f.err != nil {
		return nil, f.err
	}
	return f.event, nil
}

func (f *fakeBookingService) GetBooking(_ context.Context, id string) (*domain.Booking, error) {
	f.lastBookingID = id
	if f.err != nil {
		return nil, f.err
	}
	return f.booking, nil
}

func (f *fakeBookingService) GetBookingsForDate(_ context.Context, date domain.Date) ([]domain.BookingWithEventDetails, error) {
	f.lastDate = date
	return f.details, f.err
}

func (f *fakeBookingService) GetBookingsForMonth(_ context.Context, year int, month time.Month) ([]domain.BookingWithEventDetails, error) {
	f.lastYear, f.lastMonth = year, month
	return f.details, f.err
}

// decodeEnvelope decodes the response envelope and, when out is non-nil, its data into out.
func decodeEnvelope(t *testing.T, rr *httptest.ResponseRecorder, out any) helpers.APIResponse {
	t.Helper()
	var envelope helpers.APIResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&envelope), "response must be valid JSON envelope")
	if out != nil {
		require.Nil(t, envelope.Error, "success response must have error nil")
		raw, err := json.Marshal(envelope.Data)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(raw, out))
	}
	return envelope
}

func sampleDetails() []domain.BookingWithEventDetails {
	return []domain.BookingWithEventDetails{{
		BookingID: testBookingID, EventID: testEventID, Date: domain.NewDate(2025, 6, 15),
		RoomID: "1-21", RoomName: "Room 1-21", EventName: "Standup", PocName: "Ana",
		StartTime: domain.MustTimeOfDay(8, 0), EndTime: domain.MustTimeOfDay(12, 0), Color: "#dc2626",
	}}
}
