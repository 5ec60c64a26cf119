package controllers

import (
	"log/slog"
	"net/http"

	"roomcalendar/internal/delivery/http/helpers"
	"roomcalendar/internal/domain"
)

// AvailabilityResult is the data of GET /availability.
type AvailabilityResult struct {
	Available bool `json:"available"`
}

// AvailabilityResponse is the success response envelope for GET /availability.
type AvailabilityResponse struct {
	Data  AvailabilityResult `json:"data"`
	Error *helpers.APIError  `json:"error"`
}

// MultiDateAvailabilityRequest is the request body for POST /availability/multi-date.
type MultiDateAvailabilityRequest struct {
	RoomID         string            `json:"room_id"`
	Dates          []domain.Date     `json:"dates" swaggertype:"array,string"`
	StartTime      *domain.TimeOfDay `json:"start_time" swaggertype:"string" example:"09:00"`
	EndTime        *domain.TimeOfDay `json:"end_time" swaggertype:"string" example:"10:30"`
	ExcludeEventID string            `json:"exclude_event_id"`
}

// Validate implements Validator.
func (m MultiDateAvailabilityRequest) Validate() []string {
	var errs []string
	if len(m.Dates) == 0 {
		errs = append(errs, "dates is required")
	}
	return append(errs, requireTimes(m.StartTime, m.EndTime)...)
}

// PartitionResponse is the success response envelope for POST /availability/multi-date.
type PartitionResponse struct {
	Data  domain.AvailabilityPartition `json:"data"`
	Error *helpers.APIError            `json:"error"`
}

type AvailabilityController struct {
	Logger  *slog.Logger
	Service domain.BookingService
}

func NewAvailabilityController(logger *slog.Logger, svc domain.BookingService) *AvailabilityController {
	return &AvailabilityController{Logger: logger, Service: svc}
}

// CheckAvailability godoc
// @Summary Is a time slot free
// @Description Without room_id every room is checked. Bookings of exclude_event_id are ignored.
// @Tags availability
// @Produce json
// @Param room_id query string false "Room ID"
// @Param date query string true "Date (YYYY-MM-DD)"
// @Param start_time query string true "Start (HH:MM)"
// @Param end_time query string true "End (HH:MM)"
// @Param exclude_event_id query string false "Event to ignore"
// @Success 200 {object} controllers.AvailabilityResponse
// @Failure 400 {object} helpers.APIResponse
// @Failure 503 {object} helpers.APIResponse "both the predicate and the fallback scan failed"
// @Router /availability [get]
func (c *AvailabilityController) CheckAvailability(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	date, err := helpers.QueryDate("date", q.Get("date"))
	if err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
		return
	}
	start, err := helpers.QueryTime("start_time", q.Get("start_time"))
	if err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
		return
	}
	end, err := helpers.QueryTime("end_time", q.Get("end_time"))
	if err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
		return
	}
	rng, err := domain.NewTimeRange(date, start, end)
	if err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
		return
	}
	ok, err := c.Service.IsTimeSlotAvailable(r.Context(), domain.SlotQuery{
		RoomID:         q.Get("room_id"),
		Range:          rng,
		ExcludeEventID: q.Get("exclude_event_id"),
	})
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, AvailabilityResult{Available: ok})
}

// CheckMultiDate godoc
// @Summary Check the same slot on several dates
// @Description Partitions the dates into available and unavailable, keeping request order.
// @Tags availability
// @Accept json
// @Produce json
// @Param body body MultiDateAvailabilityRequest true "Dates and times"
// @Success 200 {object} controllers.PartitionResponse
// @Failure 400 {object} helpers.APIResponse
// @Failure 503 {object} helpers.APIResponse
// @Router /availability/multi-date [post]
func (c *AvailabilityController) CheckMultiDate(w http.ResponseWriter, r *http.Request) {
	var req MultiDateAvailabilityRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	out, err := c.Service.CheckMultiDateAvailability(r.Context(), domain.MultiDateQuery{
		Dates:          req.Dates,
		Start:          *req.StartTime,
		End:            *req.EndTime,
		ExcludeEventID: req.ExcludeEventID,
		RoomID:         req.RoomID,
	})
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, out)
}
