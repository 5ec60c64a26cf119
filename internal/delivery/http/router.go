package http

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"roomcalendar/internal/delivery/http/controllers"
)

// Controllers groups the handlers mounted by NewRouter.
type Controllers struct {
	Bookings     *controllers.BookingController
	Events       *controllers.EventController
	Availability *controllers.AvailabilityController
	Rooms        *controllers.RoomController
	Health       *controllers.HealthController
}

// NewRouter initializes the HTTP router with all application routes
func NewRouter(c Controllers) *http.ServeMux {
	mux := http.NewServeMux()

	// Rooms and exports
	mux.HandleFunc("GET /rooms", c.Rooms.ListRooms)
	mux.HandleFunc("GET /rooms/{roomID}/calendar.ics", c.Rooms.RoomCalendar)
	mux.HandleFunc("GET /exports/bookings.xlsx", c.Rooms.ExportMonth)

	// Availability
	mux.HandleFunc("GET /availability", c.Availability.CheckAvailability)
	mux.HandleFunc("POST /availability/multi-date", c.Availability.CheckMultiDate)

	// Bookings
	mux.HandleFunc("POST /bookings", c.Bookings.CreateBooking)
	mux.HandleFunc("POST /bookings/multi-date", c.Bookings.CreateMultiDateBooking)
	mux.HandleFunc("GET /bookings", c.Bookings.GetBookingsForMonth)
	mux.HandleFunc("GET /bookings/date/{date}", c.Bookings.GetBookingsForDate)
	mux.HandleFunc("GET /bookings/{bookingID}", c.Bookings.GetBooking)
	mux.HandleFunc("PATCH /bookings/{bookingID}", c.Bookings.UpdateBookingDate)
	mux.HandleFunc("DELETE /bookings/{bookingID}", c.Bookings.DeleteBooking)

	// Events
	mux.HandleFunc("GET /events/{eventID}", c.Events.GetEvent)
	mux.HandleFunc("PATCH /events/{eventID}", c.Events.UpdateEvent)
	mux.HandleFunc("DELETE /events/{eventID}", c.Events.DeleteEvent)

	// Ops
	mux.HandleFunc("GET /health", c.Health.Health)
	if c.Health.Logs != nil {
		mux.HandleFunc("GET /debug/logs", c.Health.DebugLogs)
	}

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
