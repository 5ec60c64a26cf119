package controllers

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"roomcalendar/internal/adapters/ical"
	"roomcalendar/internal/adapters/spreadsheet"
	"roomcalendar/internal/delivery/http/helpers"
	"roomcalendar/internal/domain"
)

// RoomsResponse is the success response envelope for GET /rooms.
type RoomsResponse struct {
	Data  []*domain.Room    `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// RoomController serves the room list and the calendar exports built on the month read model.
type RoomController struct {
	Logger  *slog.Logger
	Service domain.BookingService
	Now     func() time.Time
}

func NewRoomController(logger *slog.Logger, svc domain.BookingService) *RoomController {
	return &RoomController{Logger: logger, Service: svc, Now: time.Now}
}

// ListRooms godoc
// @Summary List rooms
// @Tags rooms
// @Produce json
// @Success 200 {object} controllers.RoomsResponse
// @Router /rooms [get]
func (c *RoomController) ListRooms(w http.ResponseWriter, r *http.Request) {
	rooms, err := c.Service.ListRooms(r.Context())
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, rooms)
}

// RoomCalendar godoc
// @Summary iCalendar feed of a room
// @Description One VEVENT per booking of the room in the month. Defaults to the current month.
// @Tags rooms
// @Produce text/calendar
// @Param roomID path string true "Room ID"
// @Param year query int false "Year"
// @Param month query int false "Month (1-12)"
// @Success 200 {string} string "VCALENDAR"
// @Failure 400 {object} helpers.APIResponse
// @Failure 404 {object} helpers.APIResponse
// @Router /rooms/{roomID}/calendar.ics [get]
func (c *RoomController) RoomCalendar(w http.ResponseWriter, r *http.Request) {
	roomID := r.PathValue("roomID")
	year, month, err := helpers.ParseYearMonth(r, c.Now())
	if err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
		return
	}
	rooms, err := c.Service.ListRooms(r.Context())
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	var room *domain.Room
	for _, rm := range rooms {
		if rm.ID == roomID {
			room = rm
			break
		}
	}
	if room == nil {
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "room not found")
		return
	}
	rows, err := c.Service.GetBookingsForMonth(r.Context(), year, month)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	w.Header().Set("Content-Type", ical.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`inline; filename="room-%s-%s.ics"`, room.ID, spreadsheet.SheetName(year, month)))
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, ical.RoomFeed(room, rows, c.Now()))
}

// ExportMonth godoc
// @Summary Spreadsheet of a month
// @Description XLSX workbook with one row per booking in the month. Defaults to the current month.
// @Tags exports
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param year query int false "Year"
// @Param month query int false "Month (1-12)"
// @Success 200 {file} file
// @Failure 400 {object} helpers.APIResponse
// @Router /exports/bookings.xlsx [get]
func (c *RoomController) ExportMonth(w http.ResponseWriter, r *http.Request) {
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
	out, err := spreadsheet.ExportMonth(year, month, rows)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	w.Header().Set("Content-Type", spreadsheet.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="bookings-%s.xlsx"`, spreadsheet.SheetName(year, month)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(out)
}
