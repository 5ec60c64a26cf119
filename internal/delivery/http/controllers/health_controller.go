package controllers

import (
	"net/http"

	"roomcalendar/config"
	"roomcalendar/internal/delivery/http/helpers"
)

// LogBuffer exposes recently logged records.
type LogBuffer interface {
	Entries() []config.LogEntry
}

type HealthController struct {
	Logs LogBuffer
}

// NewHealthController serves /health, and /debug/logs when logs is non-nil.
func NewHealthController(logs LogBuffer) *HealthController {
	return &HealthController{Logs: logs}
}

// Health godoc
// @Summary Liveness
// @Tags ops
// @Produce json
// @Success 200 {object} helpers.APIResponse
// @Router /health [get]
func (c *HealthController) Health(w http.ResponseWriter, r *http.Request) {
	helpers.WriteJSONSuccess(w, http.StatusOK, map[string]string{"status": "ok"})
}

// DebugLogs godoc
// @Summary Recent log records
// @Description Oldest first. Only registered when LOG_BUFFER_SIZE is positive.
// @Tags ops
// @Produce json
// @Success 200 {object} helpers.APIResponse
// @Router /debug/logs [get]
func (c *HealthController) DebugLogs(w http.ResponseWriter, r *http.Request) {
	if c.Logs == nil {
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "log buffer is disabled")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, c.Logs.Entries())
}
