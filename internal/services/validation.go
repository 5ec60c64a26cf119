package services

import (
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"roomcalendar/internal/domain"
)

// Booking limits enforced on every create and update.
const (
	MinBookingDuration = 30 * time.Minute
	MaxBookingDuration = 12 * time.Hour
	MaxDatesPerBooking = 30

	eventNameMin = 3
	pocNameMin   = 2
	nameMax      = 255
)

var (
	BusinessHoursStart = domain.MustTimeOfDay(7, 0)
	BusinessHoursEnd   = domain.MustTimeOfDay(22, 0)

	phonePattern = regexp.MustCompile(`^[689]\d{7}$`)
	colorPattern = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)
)

func validateName(field, value string, min int) (string, error) {
	value = strings.TrimSpace(value)
	n := utf8.RuneCountInString(value)
	switch {
	case n == 0:
		return "", domain.NewValidationError(field, "is required")
	case n < min:
		return "", domain.NewValidationError(field, "must be at least "+strconv.Itoa(min)+" characters")
	case n > nameMax:
		return "", domain.NewValidationError(field, "must not exceed 255 characters")
	}
	return value, nil
}

func validateEventName(v string) (string, error) { return validateName("event_name", v, eventNameMin) }

func validatePocName(v string) (string, error) { return validateName("poc_name", v, pocNameMin) }

// normalizePhone strips whitespace and checks the 8-digit local format. Blank input means no phone.
func normalizePhone(phone *string) (*string, error) {
	if phone == nil {
		return nil, nil
	}
	compact := strings.Join(strings.Fields(*phone), "")
	if compact == "" {
		return nil, nil
	}
	if !phonePattern.MatchString(compact) {
		return nil, domain.NewValidationError("phone_number", "must be 8 digits starting with 6, 8, or 9")
	}
	return &compact, nil
}

func validateColor(color string) error {
	if color == "" || colorPattern.MatchString(color) {
		return nil
	}
	return domain.NewValidationError("color", "must be a hex color like #1a2b3c")
}

// validateTimes checks ordering, duration bounds and business hours.
func validateTimes(start, end domain.TimeOfDay) error {
	if start >= end {
		return Classify(&domain.InvalidRangeError{Start: start, End: end}, domain.SourceValidation)
	}
	d := time.Duration(end-start) * time.Minute
	if d < MinBookingDuration {
		return domain.NewValidationError("end_time", "booking must be at least 30 minutes long")
	}
	if d > MaxBookingDuration {
		return domain.NewValidationError("end_time", "booking cannot exceed 12 hours")
	}
	if start < BusinessHoursStart || end > BusinessHoursEnd {
		return domain.NewValidationError("start_time", "booking must be within business hours "+
			BusinessHoursStart.String()+"-"+BusinessHoursEnd.String())
	}
	return nil
}

func validateNotPast(date, today domain.Date) error {
	if date.Before(today) {
		return domain.NewValidationError("date", date.String()+" must be today or in the future")
	}
	return nil
}

// validateDates checks the multi-date list: 1..MaxDatesPerBooking entries, no duplicates, none in the past.
func validateDates(dates []domain.Date, today domain.Date) error {
	if len(dates) == 0 {
		return domain.NewValidationError("dates", "at least one date must be selected")
	}
	if len(dates) > MaxDatesPerBooking {
		return domain.NewValidationError("dates", "cannot select more than 30 dates")
	}
	seen := make(map[domain.Date]struct{}, len(dates))
	for _, d := range dates {
		if _, dup := seen[d]; dup {
			return domain.NewValidationError("dates", "duplicate date "+d.String())
		}
		seen[d] = struct{}{}
		if err := validateNotPast(d, today); err != nil {
			return err
		}
	}
	return nil
}
