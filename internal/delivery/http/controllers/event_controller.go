package controllers

import (
	"log/slog"
	"net/http"

	"roomcalendar/internal/delivery/http/helpers"
	"roomcalendar/internal/domain"
)

// UpdateEventRequest is the request body for PATCH /events/{eventID}. All fields optional;
// omitted fields are unchanged and an empty phone_number clears it.
type UpdateEventRequest struct {
	RoomID      *string           `json:"room_id"`
	EventName   *string           `json:"event_name"`
	PocName     *string           `json:"poc_name"`
	PhoneNumber *string           `json:"phone_number"`
	StartTime   *domain.TimeOfDay `json:"start_time" swaggertype:"string" example:"09:00"`
	EndTime     *domain.TimeOfDay `json:"end_time" swaggertype:"string" example:"10:30"`
	Color       *string           `json:"color"`
}

func (u UpdateEventRequest) toDomain() domain.EventUpdate {
	return domain.EventUpdate{
		RoomID:      u.RoomID,
		EventName:   u.EventName,
		PocName:     u.PocName,
		PhoneNumber: u.PhoneNumber,
		StartTime:   u.StartTime,
		EndTime:     u.EndTime,
		Color:       u.Color,
	}
}

// Validate implements Validator.
func (u UpdateEventRequest) Validate() []string {
	if u.toDomain().IsEmpty() {
		return []string{"at least one field is required"}
	}
	return nil
}

// EventResponse is the success response envelope for PATCH /events/{eventID}.
type EventResponse struct {
	Data  *domain.Event     `json:"data"`
	Error *helpers.APIError `json:"error"`
}

type EventController struct {
	Logger  *slog.Logger
	Service domain.BookingService
}

func NewEventController(logger *slog.Logger, svc domain.BookingService) *EventController {
	return &EventController{Logger: logger, Service: svc}
}

// GetEvent godoc
// @Summary Get an event with its bookings
// @Tags events
// @Produce json
// @Param eventID path string true "Event ID (UUID)"
// @Success 200 {object} controllers.EventWithBookingsResponse
// @Failure 400 {object} helpers.APIResponse
// @Failure 404 {object} helpers.APIResponse "error.code: booking_not_found"
// @Router /events/{eventID} [get]
func (c *EventController) GetEvent(w http.ResponseWriter, r *http.Request) {
	id, err := helpers.PathUUID(r, "eventID")
	if err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
		return
	}
	out, err := c.Service.GetEvent(r.Context(), id)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, out)
}

// UpdateEvent godoc
// @Summary Update an event
// @Description Changes apply to every booking of the event. Room or time changes are re-checked on all booked dates, ignoring the event's own bookings.
// @Tags events
// @Accept json
// @Produce json
// @Param eventID path string true "Event ID (UUID)"
// @Param body body UpdateEventRequest true "Fields to change"
// @Success 200 {object} controllers.EventResponse
// @Failure 400 {object} helpers.APIResponse
// @Failure 404 {object} helpers.APIResponse "error.code: booking_not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: booking_conflict"
// @Router /events/{eventID} [patch]
func (c *EventController) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	id, err := helpers.PathUUID(r, "eventID")
	if err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
		return
	}
	var req UpdateEventRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	ev, err := c.Service.UpdateEvent(r.Context(), id, req.toDomain())
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, ev)
}

// DeleteEvent godoc
// @Summary Delete an event and all its bookings
// @Tags events
// @Param eventID path string true "Event ID (UUID)"
// @Success 204
// @Failure 400 {object} helpers.APIResponse
// @Failure 404 {object} helpers.APIResponse "error.code: booking_not_found"
// @Router /events/{eventID} [delete]
func (c *EventController) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	id, err := helpers.PathUUID(r, "eventID")
	if err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
		return
	}
	if err := c.Service.DeleteEvent(r.Context(), id); err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
