// Package ical renders room bookings as an iCalendar feed.
package ical

import (
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"

	"roomcalendar/internal/domain"
)

// ContentType is the MIME type of the feed.
const ContentType = "text/calendar; charset=utf-8"

const (
	productID      = "-//roomcalendar//Room Bookings//EN"
	floatingLayout = "20060102T150405"
)

func floating(d domain.Date, t domain.TimeOfDay) string {
	return time.Date(d.Year, d.Month, d.Day, t.Hour(), t.Minute(), 0, 0, time.UTC).Format(floatingLayout)
}

// RoomFeed builds a VCALENDAR with one VEVENT per booking of room. Times are floating local
// times, matching how bookings are stored. Rows of other rooms are skipped.
func RoomFeed(room *domain.Room, rows []domain.BookingWithEventDetails, stamp time.Time) string {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId(productID)
	cal.SetXWRCalName(room.Name)
	if room.Color != "" {
		cal.SetColor(room.Color)
	}

	for _, r := range rows {
		if r.RoomID != room.ID {
			continue
		}
		ev := cal.AddEvent(r.BookingID)
		ev.SetDtStampTime(stamp)
		ev.SetProperty(ics.ComponentPropertyDtStart, floating(r.Date, r.StartTime))
		ev.SetProperty(ics.ComponentPropertyDtEnd, floating(r.Date, r.EndTime))
		ev.SetSummary(r.EventName)
		ev.SetLocation(room.Name)
		desc := "Contact: " + r.PocName
		if r.PhoneNumber != nil {
			desc += fmt.Sprintf(" (%s)", *r.PhoneNumber)
		}
		ev.SetDescription(desc)
		ev.SetProperty(ics.ComponentPropertyRelatedTo, r.EventID)
		if r.Color != "" {
			ev.SetColor(r.Color)
		}
	}
	return cal.Serialize()
}
