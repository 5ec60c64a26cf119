package services

import (
	"strconv"

	"github.com/teambition/rrule-go"

	"roomcalendar/internal/domain"
)

// ExpandDateRange returns every date from start to end inclusive. Ranges longer than max dates
// are rejected before expansion.
func ExpandDateRange(start, end domain.Date, max int) ([]domain.Date, error) {
	if end.Before(start) {
		return nil, domain.NewValidationError("range_end", "must not be before range_start")
	}
	days := int(end.Time().Sub(start.Time()).Hours()/24) + 1
	if days > max {
		return nil, domain.NewValidationError("range_end", "range cannot cover more than "+strconv.Itoa(max)+" dates")
	}

	rule, err := rrule.NewRRule(rrule.ROption{
		Freq:    rrule.DAILY,
		Dtstart: start.Time(),
		Until:   end.Time(),
	})
	if err != nil {
		return nil, domain.NewValidationError("range_start", err.Error())
	}
	occurrences := rule.All()
	dates := make([]domain.Date, 0, len(occurrences))
	for _, t := range occurrences {
		dates = append(dates, domain.DateOf(t))
	}
	return dates, nil
}
