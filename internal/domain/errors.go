package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors returned by repositories and adapters before classification.
var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input")
)

// ErrorKind is the closed set of failure categories surfaced to callers.
type ErrorKind string

const (
	KindNetwork         ErrorKind = "network_error"
	KindTimeout         ErrorKind = "timeout_error"
	KindDatabase        ErrorKind = "database_error"
	KindAPI             ErrorKind = "api_error"
	KindUnauthorized    ErrorKind = "unauthorized"
	KindForbidden       ErrorKind = "forbidden"
	KindNotFound        ErrorKind = "not_found"
	KindConflict        ErrorKind = "conflict"
	KindValidation      ErrorKind = "validation_error"
	KindBookingConflict ErrorKind = "booking_conflict"
	KindBookingNotFound ErrorKind = "booking_not_found"
	KindUnknown         ErrorKind = "unknown_error"
)

// Retryable reports whether an operation failing with this kind may succeed if repeated.
// Unknown failures are treated as transient.
func (k ErrorKind) Retryable() bool {
	switch k {
	case KindNetwork, KindTimeout, KindDatabase, KindAPI, KindUnknown:
		return true
	default:
		return false
	}
}

// Source identifies the component a classified error originated from.
type Source string

const (
	SourceStore        Source = "store"
	SourceAvailability Source = "availability"
	SourceBooking      Source = "booking"
	SourceValidation   Source = "validation"
	SourceTransport    Source = "transport"
)

// BookingError is the classified error type returned by the booking services.
// Message is technical and meant for logs; UserMessage is safe to show to end users.
type BookingError struct {
	Kind        ErrorKind
	Source      Source
	Message     string
	UserMessage string
	// Dates lists the conflicting dates for booking_conflict errors.
	Dates []Date
	Err   error
}

func (e *BookingError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *BookingError) Unwrap() error { return e.Err }

func (e *BookingError) Retryable() bool { return e.Kind.Retryable() }

// IsKind reports whether err is a BookingError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var be *BookingError
	return errors.As(err, &be) && be.Kind == kind
}

func joinDates(dates []Date) string {
	parts := make([]string, len(dates))
	for i, d := range dates {
		parts[i] = d.String()
	}
	return strings.Join(parts, ", ")
}

// NewBookingConflictError names every date that is already booked.
func NewBookingConflictError(source Source, dates []Date) *BookingError {
	list := joinDates(dates)
	return &BookingError{
		Kind:        KindBookingConflict,
		Source:      source,
		Message:     fmt.Sprintf("booking conflict detected for dates: %s", list),
		UserMessage: fmt.Sprintf("The selected dates (%s) are already booked. Please choose different dates or times.", list),
		Dates:       dates,
	}
}

// NewBookingNotFoundError reports a missing booking or event. entity is "booking" or "event".
func NewBookingNotFoundError(entity, id string) *BookingError {
	msg := entity + " not found"
	if id != "" {
		msg = fmt.Sprintf("%s with ID %s not found", entity, id)
	}
	return &BookingError{
		Kind:        KindBookingNotFound,
		Source:      SourceBooking,
		Message:     msg,
		UserMessage: fmt.Sprintf("The requested %s could not be found. It may have been deleted or does not exist.", entity),
	}
}

// NewValidationError reports a rejected input field.
func NewValidationError(field, message string) *BookingError {
	return &BookingError{
		Kind:        KindValidation,
		Source:      SourceValidation,
		Message:     fmt.Sprintf("validation failed for %s: %s", field, message),
		UserMessage: fmt.Sprintf("Please check %s: %s.", field, message),
		Err:         ErrInvalidInput,
	}
}

// NewDatabaseError wraps a store failure for the named operation.
func NewDatabaseError(operation string, err error) *BookingError {
	return &BookingError{
		Kind:        KindDatabase,
		Source:      SourceStore,
		Message:     "database operation failed: " + operation,
		UserMessage: "A database error occurred. Please try again later.",
		Err:         err,
	}
}
