package services

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"io"
	"net"
	"net/http"
	"strings"

	"github.com/lib/pq"

	"roomcalendar/internal/domain"
)

// StatusCoder is implemented by transport errors that carry an HTTP status, such as the
// PostgREST adapter's APIError.
type StatusCoder interface {
	StatusCode() int
}

// SQLStater is implemented by errors that carry a Postgres SQLSTATE or a PostgREST code.
type SQLStater interface {
	SQLState() string
}

// Classify maps a raw failure into the booking error taxonomy. Errors that are already
// classified are returned unchanged.
func Classify(err error, source domain.Source) *domain.BookingError {
	if err == nil {
		return nil
	}
	var be *domain.BookingError
	if errors.As(err, &be) {
		return be
	}

	var rangeErr *domain.InvalidRangeError
	if errors.As(err, &rangeErr) {
		return classified(domain.KindValidation, domain.SourceValidation, err.Error(), "End time must be after start time.", err)
	}
	if errors.Is(err, domain.ErrInvalidInput) {
		return classified(domain.KindValidation, domain.SourceValidation, err.Error(), "Please check your input and try again.", err)
	}
	if errors.Is(err, domain.ErrNotFound) || errors.Is(err, sql.ErrNoRows) {
		return notFound(source, err)
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return timeout(source, err)
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, driver.ErrBadConn) || errors.Is(err, sql.ErrConnDone) ||
		errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) {
		return network(source, err)
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return classifySQLState(string(pqErr.Code), source, err)
	}
	var stater SQLStater
	if errors.As(err, &stater) {
		if c := classifySQLState(stater.SQLState(), source, err); c.Kind != domain.KindDatabase {
			return c
		}
	}
	var coder StatusCoder
	if errors.As(err, &coder) {
		if c := classifyStatus(coder.StatusCode(), source, err); c != nil {
			return c
		}
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		if netErr.Timeout() {
			return timeout(source, err)
		}
		return network(source, err)
	}
	return classifyMessage(err, source)
}

func classified(kind domain.ErrorKind, source domain.Source, message, userMessage string, err error) *domain.BookingError {
	return &domain.BookingError{Kind: kind, Source: source, Message: message, UserMessage: userMessage, Err: err}
}

func notFound(source domain.Source, err error) *domain.BookingError {
	return classified(domain.KindBookingNotFound, source, "booking not found",
		"The requested booking could not be found. It may have been deleted or does not exist.", err)
}

func timeout(source domain.Source, err error) *domain.BookingError {
	return classified(domain.KindTimeout, source, "request timed out",
		"The request took too long to complete. Please try again.", err)
}

func network(source domain.Source, err error) *domain.BookingError {
	return classified(domain.KindNetwork, source, "network request failed",
		"Unable to reach the booking server. Please check your connection and try again.", err)
}

func bookingConflict(source domain.Source, err error) *domain.BookingError {
	return classified(domain.KindBookingConflict, source, "booking conflict detected",
		"This time slot is already booked. Please choose a different time.", err)
}

// classifySQLState maps Postgres SQLSTATE codes and PostgREST PGRST codes.
func classifySQLState(code string, source domain.Source, err error) *domain.BookingError {
	switch {
	case code == "23505" || code == "23P01":
		return bookingConflict(source, err)
	case code == "PGRST116":
		return notFound(source, err)
	case code == "23503" || code == "23514" || code == "23502" || strings.HasPrefix(code, "22"):
		return classified(domain.KindValidation, source, "constraint rejected the request",
			"Some of the booking details are invalid. Please check them and try again.", err)
	case strings.HasPrefix(code, "28"):
		return classified(domain.KindUnauthorized, source, "unauthorized access", "Please log in to continue.", err)
	case code == "42501":
		return classified(domain.KindForbidden, source, "access forbidden", "You do not have permission to perform this action.", err)
	case code == "57014":
		return timeout(source, err)
	case strings.HasPrefix(code, "08"):
		return network(source, err)
	default:
		return domain.NewDatabaseError(string(source), err)
	}
}

// classifyStatus maps HTTP status codes. It returns nil for codes that carry no signal.
func classifyStatus(status int, source domain.Source, err error) *domain.BookingError {
	switch {
	case status == http.StatusUnauthorized:
		return classified(domain.KindUnauthorized, source, "unauthorized access", "Please log in to continue.", err)
	case status == http.StatusForbidden:
		return classified(domain.KindForbidden, source, "access forbidden", "You do not have permission to perform this action.", err)
	case status == http.StatusNotFound:
		return classified(domain.KindNotFound, source, "resource not found", "The requested resource could not be found.", err)
	case status == http.StatusConflict:
		return classified(domain.KindConflict, source, "conflict detected",
			"There was a conflict with your request. Please refresh and try again.", err)
	case status == http.StatusRequestTimeout || status == http.StatusGatewayTimeout:
		return timeout(source, err)
	case status == http.StatusBadRequest || status == http.StatusUnprocessableEntity:
		return classified(domain.KindValidation, source, "request rejected by server",
			"Some of the booking details are invalid. Please check them and try again.", err)
	case status >= 500:
		return classified(domain.KindAPI, source, "api operation failed", "A server error occurred. Please try again later.", err)
	default:
		return nil
	}
}

// classifyMessage is the last resort for errors that only carry text.
func classifyMessage(err error, source domain.Source) *domain.BookingError {
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "duplicate key") || strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "exclusion constraint") || strings.Contains(msg, "23505"):
		return bookingConflict(source, err)
	case strings.Contains(msg, "pgrst116") || strings.Contains(msg, "no rows"):
		return notFound(source, err)
	case strings.Contains(msg, "timeout") || strings.Contains(msg, "timed out"):
		return timeout(source, err)
	case strings.Contains(msg, "connection refused") || strings.Contains(msg, "network") ||
		strings.Contains(msg, "connection reset"):
		return network(source, err)
	default:
		return classified(domain.KindUnknown, source, err.Error(), "An unexpected error occurred. Please try again.", err)
	}
}
