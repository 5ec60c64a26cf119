package postgres

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roomcalendar/internal/domain"
)

func slotQuery(t *testing.T, roomID, excludeID string) domain.SlotQuery {
	t.Helper()
	r, err := domain.NewTimeRange(domain.NewDate(2025, 6, 15), domain.MustTimeOfDay(11, 0), domain.MustTimeOfDay(13, 0))
	require.NoError(t, err)
	return domain.SlotQuery{RoomID: roomID, Range: r, ExcludeEventID: excludeID}
}

func TestAvailabilityRepository_IsSlotAvailableForRoom(t *testing.T) {
	tests := []struct {
		name      string
		excludeID string
		wantArg   interface{}
		result    bool
	}{
		{"busy", "", nil, false},
		{"free when own event excluded", "ev-1", "ev-1", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			mock.ExpectQuery(`SELECT is_time_slot_available_for_room\(\$1, \$2, \$3, \$4, \$5\)`).
				WithArgs("1-21", "2025-06-15", "11:00", "13:00", tt.wantArg).
				WillReturnRows(sqlmock.NewRows([]string{"available"}).AddRow(tt.result))

			got, err := NewAvailabilityRepository(db).IsSlotAvailableForRoom(context.Background(), slotQuery(t, "1-21", tt.excludeID))
			require.NoError(t, err)
			assert.Equal(t, tt.result, got)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestAvailabilityRepository_IsSlotAvailable(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT is_time_slot_available\(\$1, \$2, \$3, \$4\)`).
		WithArgs("2025-06-15", "11:00", "13:00", nil).
		WillReturnRows(sqlmock.NewRows([]string{"available"}).AddRow(true))

	got, err := NewAvailabilityRepository(db).IsSlotAvailable(context.Background(), slotQuery(t, "", ""))
	require.NoError(t, err)
	assert.True(t, got)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAvailabilityRepository_MissingFunction(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT is_time_slot_available_for_room`).WillReturnError(&pq.Error{Code: "42883", Message: "function does not exist"})

	_, err = NewAvailabilityRepository(db).IsSlotAvailableForRoom(context.Background(), slotQuery(t, "1-21", ""))
	require.Error(t, err)
}
