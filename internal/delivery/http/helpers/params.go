package helpers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"roomcalendar/internal/domain"
)

// ParseYearMonth reads year and month from the query string. When both are absent the
// month containing now is used. Range checks beyond parsing are left to the service.
func ParseYearMonth(r *http.Request, now time.Time) (int, time.Month, error) {
	q := r.URL.Query()
	ys, ms := q.Get("year"), q.Get("month")
	if ys == "" && ms == "" {
		return now.Year(), now.Month(), nil
	}
	if ys == "" || ms == "" {
		return 0, 0, fmt.Errorf("year and month must be given together")
	}
	year, err := strconv.Atoi(ys)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid year %q", ys)
	}
	month, err := strconv.Atoi(ms)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid month %q", ms)
	}
	return year, time.Month(month), nil
}

// PathUUID returns the named path value when it is a canonical UUID.
func PathUUID(r *http.Request, name string) (string, error) {
	v := r.PathValue(name)
	if v == "" {
		return "", fmt.Errorf("missing %s", name)
	}
	if _, err := uuid.Parse(v); err != nil || len(v) != 36 {
		return "", fmt.Errorf("invalid %s: must be a UUID", name)
	}
	return v, nil
}

// QueryDate parses a required YYYY-MM-DD query or path value.
func QueryDate(name, v string) (domain.Date, error) {
	if v == "" {
		return domain.Date{}, fmt.Errorf("%s is required", name)
	}
	return domain.ParseDate(v)
}

// QueryTime parses a required HH:MM query value.
func QueryTime(name, v string) (domain.TimeOfDay, error) {
	if v == "" {
		return 0, fmt.Errorf("%s is required", name)
	}
	return domain.ParseTimeOfDay(v)
}
