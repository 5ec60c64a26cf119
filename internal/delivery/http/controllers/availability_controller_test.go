package controllers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roomcalendar/internal/domain"
)

func TestAvailabilityController_CheckAvailability(t *testing.T) {
	tests := []struct {
		name           string
		query          string
		available      bool
		fakeErr        error
		wantStatus     int
		wantAvailable  bool
		wantBodySubstr string
	}{
		{name: "free", query: "?room_id=1-21&date=2025-06-15&start_time=09:00&end_time=10:00", available: true, wantStatus: http.StatusOK, wantAvailable: true},
		{name: "taken", query: "?room_id=1-21&date=2025-06-15&start_time=09:00&end_time=10:00", wantStatus: http.StatusOK},
		{name: "all rooms", query: "?date=2025-06-15&start_time=09:00&end_time=10:00", available: true, wantStatus: http.StatusOK, wantAvailable: true},
		{name: "missing date", query: "?start_time=09:00&end_time=10:00", wantStatus: http.StatusBadRequest, wantBodySubstr: "date is required"},
		{name: "bad start", query: "?date=2025-06-15&start_time=9&end_time=10:00", wantStatus: http.StatusBadRequest, wantBodySubstr: "HH:MM"},
		{name: "missing end", query: "?date=2025-06-15&start_time=09:00", wantStatus: http.StatusBadRequest, wantBodySubstr: "end_time is required"},
		{name: "inverted range", query: "?date=2025-06-15&start_time=11:00&end_time=10:00", wantStatus: http.StatusBadRequest},
		{name: "empty range", query: "?date=2025-06-15&start_time=10:00&end_time=10:00", wantStatus: http.StatusBadRequest},
		{
			name: "both paths failed", query: "?date=2025-06-15&start_time=09:00&end_time=10:00",
			fakeErr:    &domain.BookingError{Kind: domain.KindTimeout, UserMessage: "The request timed out. Please try again."},
			wantStatus: http.StatusServiceUnavailable,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeBookingService{available: tt.available, err: tt.fakeErr}
			req := httptest.NewRequest(http.MethodGet, "http://test/availability"+tt.query+"&exclude_event_id="+testEventID, nil)
			rr := httptest.NewRecorder()
			NewAvailabilityController(testLogger, fake).CheckAvailability(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code)
			if tt.wantStatus != http.StatusOK {
				if tt.wantBodySubstr != "" {
					envelope := decodeEnvelope(t, rr, nil)
					require.NotNil(t, envelope.Error)
					assert.Contains(t, envelope.Error.Message, tt.wantBodySubstr)
				}
				return
			}
			var out AvailabilityResult
			decodeEnvelope(t, rr, &out)
			assert.Equal(t, tt.wantAvailable, out.Available)
			assert.Equal(t, domain.NewDate(2025, 6, 15), fake.lastSlot.Range.Date)
			assert.Equal(t, testEventID, fake.lastSlot.ExcludeEventID)
		})
	}
}

func TestAvailabilityController_CheckAvailabilityPassesRoom(t *testing.T) {
	fake := &fakeBookingService{available: true}
	req := httptest.NewRequest(http.MethodGet, "http://test/availability?room_id=1-17&date=2025-06-15&start_time=09:00&end_time=10:30", nil)
	rr := httptest.NewRecorder()
	NewAvailabilityController(testLogger, fake).CheckAvailability(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "1-17", fake.lastSlot.RoomID)
	assert.Equal(t, domain.MustTimeOfDay(9, 0), fake.lastSlot.Range.Start)
	assert.Equal(t, domain.MustTimeOfDay(10, 30), fake.lastSlot.Range.End)
	assert.Empty(t, fake.lastSlot.ExcludeEventID)
}

func TestAvailabilityController_CheckMultiDate(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
	}{
		{"partitioned", `{"room_id":"1-21","dates":["2025-06-15","2025-06-16","2025-06-17"],"start_time":"09:00","end_time":"10:00"}`, http.StatusOK},
		{"no dates", `{"room_id":"1-21","dates":[],"start_time":"09:00","end_time":"10:00"}`, http.StatusBadRequest},
		{"no times", `{"dates":["2025-06-15"]}`, http.StatusBadRequest},
		{"bad date", `{"dates":["2025-02-30"],"start_time":"09:00","end_time":"10:00"}`, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeBookingService{partition: domain.AvailabilityPartition{
				Available:   []domain.Date{domain.NewDate(2025, 6, 15), domain.NewDate(2025, 6, 17)},
				Unavailable: []domain.Date{domain.NewDate(2025, 6, 16)},
			}}
			req := httptest.NewRequest(http.MethodPost, "http://test/availability/multi-date", strings.NewReader(tt.body))
			rr := httptest.NewRecorder()
			NewAvailabilityController(testLogger, fake).CheckMultiDate(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code)
			if tt.wantStatus != http.StatusOK {
				return
			}
			assert.Len(t, fake.lastMulti.Dates, 3)
			assert.Equal(t, "1-21", fake.lastMulti.RoomID)
			assert.Equal(t, domain.MustTimeOfDay(10, 0), fake.lastMulti.End)

			var out domain.AvailabilityPartition
			decodeEnvelope(t, rr, &out)
			assert.Equal(t, []domain.Date{domain.NewDate(2025, 6, 15), domain.NewDate(2025, 6, 17)}, out.Available)
			assert.Equal(t, []domain.Date{domain.NewDate(2025, 6, 16)}, out.Unavailable)
		})
	}
}
