package helpers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"roomcalendar/internal/domain"
)

// Error codes for API error responses that do not come from a classified service error.
const (
	ErrCodeBadRequest    = "bad_request"
	ErrCodeNotFound      = "not_found"
	ErrCodeInternalError = "internal_error"
)

// APIError is the error object in the standardized API response envelope.
// Code is a domain error kind (e.g. booking_conflict) or one of the ErrCode constants.
// swagger:model APIError
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// APIResponse is the standardized envelope for all API responses.
// On success: Data is set, Error is nil. On error: Data is nil, Error is set.
// swagger:model APIResponse
type APIResponse struct {
	Data  any       `json:"data"`
	Error *APIError `json:"error"`
}

// ConflictDetails is the error detail of a booking_conflict response.
type ConflictDetails struct {
	Dates []domain.Date `json:"dates"`
}

// WriteJSONSuccess sets Content-Type to application/json, writes statusCode, and
// encodes an APIResponse with the given data and error set to nil.
func WriteJSONSuccess(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(APIResponse{Data: data, Error: nil})
}

// WriteJSONError sets Content-Type to application/json, writes statusCode, and
// encodes an APIResponse with data nil and the given error code and message.
func WriteJSONError(w http.ResponseWriter, statusCode int, code, message string) {
	writeError(w, statusCode, &APIError{Code: code, Message: message})
}

func writeError(w http.ResponseWriter, statusCode int, apiErr *APIError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(APIResponse{Data: nil, Error: apiErr})
}

// StatusForKind maps a classified error kind to its HTTP status.
func StatusForKind(kind domain.ErrorKind) int {
	switch kind {
	case domain.KindBookingConflict, domain.KindConflict:
		return http.StatusConflict
	case domain.KindBookingNotFound, domain.KindNotFound:
		return http.StatusNotFound
	case domain.KindValidation:
		return http.StatusBadRequest
	case domain.KindUnauthorized:
		return http.StatusUnauthorized
	case domain.KindForbidden:
		return http.StatusForbidden
	}
	if kind.Retryable() {
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

// WriteServiceError writes the envelope for an error returned by a service. Classified
// errors carry their kind as code and their user message; conflicts list the dates.
// 5xx responses are logged.
func WriteServiceError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	var be *domain.BookingError
	if !errors.As(err, &be) {
		if errors.Is(err, domain.ErrNotFound) {
			WriteJSONError(w, http.StatusNotFound, ErrCodeNotFound, "resource not found")
			return
		}
		logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		WriteJSONError(w, http.StatusInternalServerError, ErrCodeInternalError, "An unexpected error occurred. Please try again.")
		return
	}

	status := StatusForKind(be.Kind)
	if status >= http.StatusInternalServerError {
		logger.ErrorContext(r.Context(), "request failed",
			"path", r.URL.Path, "method", r.Method, "kind", be.Kind, "source", be.Source, "err", err)
	}
	apiErr := &APIError{Code: string(be.Kind), Message: be.UserMessage}
	if apiErr.Message == "" {
		apiErr.Message = be.Message
	}
	if be.Kind == domain.KindBookingConflict && len(be.Dates) > 0 {
		apiErr.Details = ConflictDetails{Dates: be.Dates}
	}
	if status == http.StatusServiceUnavailable {
		w.Header().Set("Retry-After", "1")
	}
	writeError(w, status, apiErr)
}
