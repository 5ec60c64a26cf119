package controllers

import (
	"log/slog"
	"net/http"
	"time"

	"roomcalendar/internal/delivery/http/helpers"
	"roomcalendar/internal/domain"
)

// CreateBookingRequest is the request body for POST /bookings.
type CreateBookingRequest struct {
	RoomID      string            `json:"room_id"`
	Date        *domain.Date      `json:"date" swaggertype:"string" example:"2025-06-15"`
	StartTime   *domain.TimeOfDay `json:"start_time" swaggertype:"string" example:"09:00"`
	EndTime     *domain.TimeOfDay `json:"end_time" swaggertype:"string" example:"10:30"`
	EventName   string            `json:"event_name"`
	PocName     string            `json:"poc_name"`
	PhoneNumber *string           `json:"phone_number"`
	Color       string            `json:"color"`
}

// Validate implements Validator. Field formats are checked by the service.
func (c CreateBookingRequest) Validate() []string {
	var errs []string
	if c.RoomID == "" {
		errs = append(errs, "room_id is required")
	}
	if c.Date == nil {
		errs = append(errs, "date is required")
	}
	errs = append(errs, requireTimes(c.StartTime, c.EndTime)...)
	if c.EventName == "" {
		errs = append(errs, "event_name is required")
	}
	if c.PocName == "" {
		errs = append(errs, "poc_name is required")
	}
	return errs
}

func requireTimes(start, end *domain.TimeOfDay) []string {
	var errs []string
	if start == nil {
		errs = append(errs, "start_time is required")
	}
	if end == nil {
		errs = append(errs, "end_time is required")
	}
	return errs
}

// CreateMultiDateBookingRequest is the request body for POST /bookings/multi-date.
// Either dates or range_start and range_end (inclusive) must be set.
type CreateMultiDateBookingRequest struct {
	RoomID      string            `json:"room_id"`
	Dates       []domain.Date     `json:"dates" swaggertype:"array,string"`
	RangeStart  *domain.Date      `json:"range_start" swaggertype:"string"`
	RangeEnd    *domain.Date      `json:"range_end" swaggertype:"string"`
	StartTime   *domain.TimeOfDay `json:"start_time" swaggertype:"string" example:"09:00"`
	EndTime     *domain.TimeOfDay `json:"end_time" swaggertype:"string" example:"10:30"`
	EventName   string            `json:"event_name"`
	PocName     string            `json:"poc_name"`
	PhoneNumber *string           `json:"phone_number"`
	Color       string            `json:"color"`
}

// Validate implements Validator.
func (c CreateMultiDateBookingRequest) Validate() []string {
	var errs []string
	if c.RoomID == "" {
		errs = append(errs, "room_id is required")
	}
	hasRange := c.RangeStart != nil || c.RangeEnd != nil
	switch {
	case len(c.Dates) > 0 && hasRange:
		errs = append(errs, "give either dates or range_start and range_end, not both")
	case len(c.Dates) == 0 && !hasRange:
		errs = append(errs, "dates or range_start and range_end are required")
	case hasRange && (c.RangeStart == nil || c.RangeEnd == nil):
		errs = append(errs, "range_start and range_end must be given together")
	}
	errs = append(errs, requireTimes(c.StartTime, c.EndTime)...)
	if c.EventName == "" {
		errs = append(errs, "event_name is required")
	}
	if c.PocName == "" {
		errs = append(errs, "poc_name is required")
	}
	return errs
}

// UpdateBookingDateRequest is the request body for PATCH /bookings/{bookingID}.
type UpdateBookingDateRequest struct {
	Date *domain.Date `json:"date" swaggertype:"string" example:"2025-06-16"`
}

// Validate implements Validator.
func (c UpdateBookingDateRequest) Validate() []string {
	if c.Date == nil {
		return []string{"date is required"}
	}
	return nil
}

// EventWithBookingsResponse is the success response envelope for the create endpoints (201).
type EventWithBookingsResponse struct {
	Data  *domain.EventWithBookings `json:"data"`
	Error *helpers.APIError         `json:"error"`
}

// BookingResponse is the success response envelope for a single booking.
type BookingResponse struct {
	Data  *domain.Booking   `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// BookingDetailsResponse is the success response envelope for calendar reads.
type BookingDetailsResponse struct {
	Data  []domain.BookingWithEventDetails `json:"data"`
	Error *helpers.APIError                `json:"error"`
}

type BookingController struct {
	Logger  *slog.Logger
	Service domain.BookingService
	Now     func() time.Time
}

func NewBookingController(logger *slog.Logger, svc domain.BookingService) *BookingController {
	return &BookingController{Logger: logger, Service: svc, Now: time.Now}
}

// CreateBooking godoc
// @Summary Book one date
// @Description Creates an event and a single booking. The slot must be free in the room.
// @Tags bookings
// @Accept json
// @Produce json
// @Param booking body CreateBookingRequest true "Booking"
// @Success 201 {object} controllers.EventWithBookingsResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request or validation_error"
// @Failure 409 {object} helpers.APIResponse "error.code: booking_conflict"
// @Failure 503 {object} helpers.APIResponse "transient store failure"
// @Router /bookings [post]
func (c *BookingController) CreateBooking(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	out, err := c.Service.CreateBookingWithEvent(r.Context(), domain.CreateBookingRequest{
		RoomID:      req.RoomID,
		Date:        *req.Date,
		StartTime:   *req.StartTime,
		EndTime:     *req.EndTime,
		EventName:   req.EventName,
		PocName:     req.PocName,
		PhoneNumber: req.PhoneNumber,
		Color:       req.Color,
	})
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, out)
}

// CreateMultiDateBooking godoc
// @Summary Book several dates
// @Description Creates one event and a booking per date. All dates are booked or none are.
// @Tags bookings
// @Accept json
// @Produce json
// @Param booking body CreateMultiDateBookingRequest true "Booking"
// @Success 201 {object} controllers.EventWithBookingsResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request or validation_error"
// @Failure 409 {object} helpers.APIResponse "error.code: booking_conflict, details.dates lists every unavailable date"
// @Failure 503 {object} helpers.APIResponse "transient store failure"
// @Router /bookings/multi-date [post]
func (c *BookingController) CreateMultiDateBooking(w http.ResponseWriter, r *http.Request) {
	var req CreateMultiDateBookingRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	out, err := c.Service.CreateMultiDateBooking(r.Context(), domain.CreateMultiDateBookingRequest{
		RoomID:      req.RoomID,
		Dates:       req.Dates,
		RangeStart:  req.RangeStart,
		RangeEnd:    req.RangeEnd,
		StartTime:   *req.StartTime,
		EndTime:     *req.EndTime,
		EventName:   req.EventName,
		PocName:     req.PocName,
		PhoneNumber: req.PhoneNumber,
		Color:       req.Color,
	})
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, out)
}

// GetBookingsForMonth godoc
// @Summary Month calendar
// @Description Bookings with event details for one month, ordered by date and start time. Defaults to the current month.
// @Tags bookings
// @Produce json
// @Param year query int false "Year"
// @Param month query int false "Month (1-12)"
// @Success 200 {object} controllers.BookingDetailsResponse
// @Failure 400 {object} helpers.APIResponse
// @Router /bookings [get]
func (c *BookingController) GetBookingsForMonth(w http.ResponseWriter, r *http.Request) {
	year, month, err := helpers.ParseYearMonth(r, c.Now())
	if err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
		return
	}
	rows, err := c.Service.GetBookingsForMonth(r.Context(), year, month)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, rows)
}

// GetBookingsForDate godoc
// @Summary Day calendar
// @Description Bookings with event details for one date, ordered by start time.
// @Tags bookings
// @Produce json
// @Param date path string true "Date (YYYY-MM-DD)"
// @Success 200 {object} controllers.BookingDetailsResponse
// @Failure 400 {object} helpers.APIResponse
// @Router /bookings/date/{date} [get]
func (c *BookingController) GetBookingsForDate(w http.ResponseWriter, r *http.Request) {
	date, err := helpers.QueryDate("date", r.PathValue("date"))
	if err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
		return
	}
	rows, err := c.Service.GetBookingsForDate(r.Context(), date)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, rows)
}

// GetBooking godoc
// @Summary Get a booking
// @Tags bookings
// @Produce json
// @Param bookingID path string true "Booking ID (UUID)"
// @Success 200 {object} controllers.BookingResponse
// @Failure 400 {object} helpers.APIResponse
// @Failure 404 {object} helpers.APIResponse "error.code: booking_not_found"
// @Router /bookings/{bookingID} [get]
func (c *BookingController) GetBooking(w http.ResponseWriter, r *http.Request) {
	id, err := helpers.PathUUID(r, "bookingID")
	if err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
		return
	}
	b, err := c.Service.GetBooking(r.Context(), id)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, b)
}

// UpdateBookingDate godoc
// @Summary Move a booking to another date
// @Description Keeps the event's room and times. The new date must be free.
// @Tags bookings
// @Accept json
// @Produce json
// @Param bookingID path string true "Booking ID (UUID)"
// @Param body body UpdateBookingDateRequest true "New date"
// @Success 200 {object} controllers.BookingResponse
// @Failure 400 {object} helpers.APIResponse
// @Failure 404 {object} helpers.APIResponse "error.code: booking_not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: booking_conflict"
// @Router /bookings/{bookingID} [patch]
func (c *BookingController) UpdateBookingDate(w http.ResponseWriter, r *http.Request) {
	id, err := helpers.PathUUID(r, "bookingID")
	if err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
		return
	}
	var req UpdateBookingDateRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	b, err := c.Service.UpdateBookingDate(r.Context(), id, *req.Date)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, b)
}

// DeleteBooking godoc
// @Summary Delete a booking
// @Description Removes one date. The event and its other bookings are kept.
// @Tags bookings
// @Param bookingID path string true "Booking ID (UUID)"
// @Success 204
// @Failure 400 {object} helpers.APIResponse
// @Failure 404 {object} helpers.APIResponse "error.code: booking_not_found"
// @Router /bookings/{bookingID} [delete]
func (c *BookingController) DeleteBooking(w http.ResponseWriter, r *http.Request) {
	id, err := helpers.PathUUID(r, "bookingID")
	if err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
		return
	}
	if err := c.Service.DeleteBooking(r.Context(), id); err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
