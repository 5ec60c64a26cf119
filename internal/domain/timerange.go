package domain

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"time"
)

// DateLayout is the only accepted textual date format at the service boundary.
const DateLayout = "2006-01-02"

// Date is a calendar date without a time component.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// NewDate returns the Date for the given year, month, and day. Out-of-range values are
// normalized the same way time.Date normalizes them.
func NewDate(year int, month time.Month, day int) Date {
	return DateOf(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

// DateOf returns the calendar date of t in t's location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: must be YYYY-MM-DD", s)
	}
	return DateOf(t), nil
}

// Time returns midnight UTC of the date.
func (d Date) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

func (d Date) IsZero() bool { return d == Date{} }

func (d Date) Before(o Date) bool { return d.Time().Before(o.Time()) }

func (d Date) After(o Date) bool { return d.Time().After(o.Time()) }

// AddDays returns the date n days later (or earlier when n is negative).
func (d Date) AddDays(n int) Date {
	return DateOf(d.Time().AddDate(0, 0, n))
}

func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Date) UnmarshalText(b []byte) error {
	parsed, err := ParseDate(string(b))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Value implements driver.Valuer so dates are sent to the store as YYYY-MM-DD.
func (d Date) Value() (driver.Value, error) {
	return d.String(), nil
}

// Scan implements sql.Scanner for DATE columns.
func (d *Date) Scan(src any) error {
	switch v := src.(type) {
	case time.Time:
		*d = DateOf(v)
		return nil
	case []byte:
		return d.UnmarshalText(v)
	case string:
		return d.UnmarshalText([]byte(v))
	default:
		return fmt.Errorf("cannot scan %T into Date", src)
	}
}

// TimeOfDay is a naive local time of day with minute resolution, stored as minutes since midnight.
type TimeOfDay int

// MinutesPerDay bounds TimeOfDay values; 24:00 is not representable.
const MinutesPerDay = 24 * 60

// NewTimeOfDay returns the TimeOfDay for hour:minute.
func NewTimeOfDay(hour, minute int) (TimeOfDay, error) {
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("invalid time %02d:%02d", hour, minute)
	}
	return TimeOfDay(hour*60 + minute), nil
}

// MustTimeOfDay is NewTimeOfDay for constants and tests.
func MustTimeOfDay(hour, minute int) TimeOfDay {
	t, err := NewTimeOfDay(hour, minute)
	if err != nil {
		panic(err)
	}
	return t
}

// ParseTimeOfDay parses "HH:MM" (24-hour, exactly two digits per field). "HH:MM:00" is
// also accepted because TIME columns are rendered that way by the store.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 && len(parts) != 3 {
		return 0, fmt.Errorf("invalid time %q: must be HH:MM", s)
	}
	if len(parts) == 3 && parts[2] != "00" {
		return 0, fmt.Errorf("invalid time %q: seconds are not supported", s)
	}
	h, ok := twoDigits(parts[0])
	if !ok {
		return 0, fmt.Errorf("invalid time %q: must be HH:MM", s)
	}
	m, ok := twoDigits(parts[1])
	if !ok {
		return 0, fmt.Errorf("invalid time %q: must be HH:MM", s)
	}
	return NewTimeOfDay(h, m)
}

func twoDigits(s string) (int, bool) {
	if len(s) != 2 || s[0] < '0' || s[0] > '9' || s[1] < '0' || s[1] > '9' {
		return 0, false
	}
	return int(s[0]-'0')*10 + int(s[1]-'0'), true
}

func (t TimeOfDay) Hour() int   { return int(t) / 60 }
func (t TimeOfDay) Minute() int { return int(t) % 60 }

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute())
}

func (t TimeOfDay) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *TimeOfDay) UnmarshalText(b []byte) error {
	parsed, err := ParseTimeOfDay(string(b))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

func (t TimeOfDay) Value() (driver.Value, error) {
	return t.String(), nil
}

// Scan implements sql.Scanner for TIME columns.
func (t *TimeOfDay) Scan(src any) error {
	switch v := src.(type) {
	case []byte:
		return t.UnmarshalText(v)
	case string:
		return t.UnmarshalText([]byte(v))
	case time.Time:
		parsed, err := NewTimeOfDay(v.Hour(), v.Minute())
		if err != nil {
			return err
		}
		*t = parsed
		return nil
	default:
		return fmt.Errorf("cannot scan %T into TimeOfDay", src)
	}
}

// InvalidRangeError is returned when a time range does not start strictly before it ends.
type InvalidRangeError struct {
	Start TimeOfDay
	End   TimeOfDay
}

func (e *InvalidRangeError) Error() string {
	return fmt.Sprintf("invalid time range %s-%s: start must be before end", e.Start, e.End)
}

// TimeRange is the half-open interval [Start, End) on a single calendar date.
type TimeRange struct {
	Date  Date      `json:"date"`
	Start TimeOfDay `json:"start_time"`
	End   TimeOfDay `json:"end_time"`
}

// NewTimeRange validates start < end.
func NewTimeRange(date Date, start, end TimeOfDay) (TimeRange, error) {
	if start >= end {
		return TimeRange{}, &InvalidRangeError{Start: start, End: end}
	}
	return TimeRange{Date: date, Start: start, End: end}, nil
}

// Overlaps reports whether two ranges intersect. Ranges on different dates never overlap,
// and ranges that only touch (one ends where the other starts) do not overlap.
func (r TimeRange) Overlaps(other TimeRange) bool {
	if r.Date != other.Date {
		return false
	}
	return r.Start < other.End && r.End > other.Start
}

// Duration is the length of the range.
func (r TimeRange) Duration() time.Duration {
	return time.Duration(r.End-r.Start) * time.Minute
}

func (r TimeRange) String() string {
	return fmt.Sprintf("%s %s-%s", r.Date, r.Start, r.End)
}
