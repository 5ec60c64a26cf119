package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roomcalendar/internal/domain"
)

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		name    string
		in      *string
		want    *string
		wantErr bool
	}{
		{"absent", nil, nil, false},
		{"blank", strPtr("   "), nil, false},
		{"mobile with space", strPtr("9123 4567"), strPtr("91234567"), false},
		{"landline", strPtr("61234567"), strPtr("61234567"), false},
		{"starts with 8", strPtr(" 8765 4321 "), strPtr("87654321"), false},
		{"starts with 7", strPtr("71234567"), nil, true},
		{"too short", strPtr("9123456"), nil, true},
		{"too long", strPtr("912345678"), nil, true},
		{"letters", strPtr("9123abcd"), nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := normalizePhone(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, domain.IsKind(err, domain.KindValidation))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValidateTimes(t *testing.T) {
	tests := []struct {
		name       string
		start, end string
		wantErr    bool
	}{
		{"full day", "08:00", "17:30", false},
		{"exactly thirty minutes", "09:00", "09:30", false},
		{"exactly twelve hours", "08:00", "20:00", false},
		{"whole business day exceeds twelve hours", "07:00", "22:00", true},
		{"late evening", "21:00", "22:00", false},
		{"twenty nine minutes", "09:00", "09:29", true},
		{"equal", "09:00", "09:00", true},
		{"inverted", "10:00", "09:00", true},
		{"ends after closing", "21:00", "22:30", true},
		{"starts before opening", "06:59", "08:00", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateTimes(tod(tt.start), tod(tt.end))
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, domain.IsKind(err, domain.KindValidation))
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestValidateNames(t *testing.T) {
	name, err := validateEventName("  Standup ")
	require.NoError(t, err)
	assert.Equal(t, "Standup", name)

	_, err = validateEventName("ab")
	require.Error(t, err)
	_, err = validatePocName("")
	require.Error(t, err)
	_, err = validatePocName(string(make([]byte, 256)))
	require.Error(t, err)

	long := make([]rune, 255)
	for i := range long {
		long[i] = 'é'
	}
	_, err = validatePocName(string(long))
	require.NoError(t, err, "length counts characters, not bytes")
}

func TestValidateDates(t *testing.T) {
	today := domain.NewDate(2025, 6, 1)
	require.NoError(t, validateDates([]domain.Date{today, today.AddDays(1)}, today))
	require.Error(t, validateDates(nil, today))
	require.Error(t, validateDates([]domain.Date{today.AddDays(-1)}, today))
	require.Error(t, validateDates([]domain.Date{today, today}, today))

	var thirty []domain.Date
	for i := 0; i < MaxDatesPerBooking; i++ {
		thirty = append(thirty, today.AddDays(i))
	}
	require.NoError(t, validateDates(thirty, today))
	require.Error(t, validateDates(append(thirty, today.AddDays(MaxDatesPerBooking)), today))
}
