// Package docs registers the OpenAPI description of the HTTP API served at /swagger/.
// It mirrors the controller annotations and the general info in cmd/roomcalendar.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/availability": {
            "get": {
                "description": "Without room_id every room is checked. Bookings of exclude_event_id are ignored.",
                "produces": ["application/json"],
                "tags": ["availability"],
                "summary": "Is a time slot free",
                "parameters": [
                    {"type": "string", "description": "Room ID", "name": "room_id", "in": "query"},
                    {"type": "string", "description": "Date (YYYY-MM-DD)", "name": "date", "in": "query", "required": true},
                    {"type": "string", "description": "Start (HH:MM)", "name": "start_time", "in": "query", "required": true},
                    {"type": "string", "description": "End (HH:MM)", "name": "end_time", "in": "query", "required": true},
                    {"type": "string", "description": "Event to ignore", "name": "exclude_event_id", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/controllers.AvailabilityResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/helpers.APIResponse"}},
                    "503": {"description": "both the predicate and the fallback scan failed", "schema": {"$ref": "#/definitions/helpers.APIResponse"}}
                }
            }
        },
        "/availability/multi-date": {
            "post": {
                "description": "Partitions the dates into available and unavailable, keeping request order.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["availability"],
                "summary": "Check the same slot on several dates",
                "parameters": [
                    {"description": "Dates and times", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/controllers.MultiDateAvailabilityRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/controllers.PartitionResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/helpers.APIResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/helpers.APIResponse"}}
                }
            }
        },
        "/bookings": {
            "get": {
                "description": "Bookings with event details for one month, ordered by date and start time. Defaults to the current month.",
                "produces": ["application/json"],
                "tags": ["bookings"],
                "summary": "Month calendar",
                "parameters": [
                    {"type": "integer", "description": "Year", "name": "year", "in": "query"},
                    {"type": "integer", "description": "Month (1-12)", "name": "month", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/controllers.BookingDetailsResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/helpers.APIResponse"}}
                }
            },
            "post": {
                "description": "Creates an event and a single booking. The slot must be free in the room.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["bookings"],
                "summary": "Book one date",
                "parameters": [
                    {"description": "Booking", "name": "booking", "in": "body", "required": true, "schema": {"$ref": "#/definitions/controllers.CreateBookingRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/controllers.EventWithBookingsResponse"}},
                    "400": {"description": "error.code: bad_request or validation_error", "schema": {"$ref": "#/definitions/helpers.APIResponse"}},
                    "409": {"description": "error.code: booking_conflict", "schema": {"$ref": "#/definitions/helpers.APIResponse"}},
                    "503": {"description": "transient store failure", "schema": {"$ref": "#/definitions/helpers.APIResponse"}}
                }
            }
        },
        "/bookings/date/{date}": {
            "get": {
                "description": "Bookings with event details for one date, ordered by start time.",
                "produces": ["application/json"],
                "tags": ["bookings"],
                "summary": "Day calendar",
                "parameters": [
                    {"type": "string", "description": "Date (YYYY-MM-DD)", "name": "date", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/controllers.BookingDetailsResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/helpers.APIResponse"}}
                }
            }
        },
        "/bookings/multi-date": {
            "post": {
                "description": "Creates one event and a booking per date. All dates are booked or none are.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["bookings"],
                "summary": "Book several dates",
                "parameters": [
                    {"description": "Booking", "name": "booking", "in": "body", "required": true, "schema": {"$ref": "#/definitions/controllers.CreateMultiDateBookingRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/controllers.EventWithBookingsResponse"}},
                    "400": {"description": "error.code: bad_request or validation_error", "schema": {"$ref": "#/definitions/helpers.APIResponse"}},
                    "409": {"description": "error.code: booking_conflict, details.dates lists every unavailable date", "schema": {"$ref": "#/definitions/helpers.APIResponse"}},
                    "503": {"description": "transient store failure", "schema": {"$ref": "#/definitions/helpers.APIResponse"}}
                }
            }
        },
        "/bookings/{bookingID}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["bookings"],
                "summary": "Get a booking",
                "parameters": [
                    {"type": "string", "description": "Booking ID (UUID)", "name": "bookingID", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/controllers.BookingResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/helpers.APIResponse"}},
                    "404": {"description": "error.code: booking_not_found", "schema": {"$ref": "#/definitions/helpers.APIResponse"}}
                }
            },
            "delete": {
                "description": "Removes one date. The event and its other bookings are kept.",
                "tags": ["bookings"],
                "summary": "Delete a booking",
                "parameters": [
                    {"type": "string", "description": "Booking ID (UUID)", "name": "bookingID", "in": "path", "required": true}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/helpers.APIResponse"}},
                    "404": {"description": "error.code: booking_not_found", "schema": {"$ref": "#/definitions/helpers.APIResponse"}}
                }
            },
            "patch": {
                "description": "Keeps the event's room and times. The new date must be free.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["bookings"],
                "summary": "Move a booking to another date",
                "parameters": [
                    {"type": "string", "description": "Booking ID (UUID)", "name": "bookingID", "in": "path", "required": true},
                    {"description": "New date", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/controllers.UpdateBookingDateRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/controllers.BookingResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/helpers.APIResponse"}},
                    "404": {"description": "error.code: booking_not_found", "schema": {"$ref": "#/definitions/helpers.APIResponse"}},
                    "409": {"description": "error.code: booking_conflict", "schema": {"$ref": "#/definitions/helpers.APIResponse"}}
                }
            }
        },
        "/debug/logs": {
            "get": {
                "description": "Oldest first. Only registered when LOG_BUFFER_SIZE is positive.",
                "produces": ["application/json"],
                "tags": ["ops"],
                "summary": "Recent log records",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/helpers.APIResponse"}}
                }
            }
        },
        "/events/{eventID}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["events"],
                "summary": "Get an event with its bookings",
                "parameters": [
                    {"type": "string", "description": "Event ID (UUID)", "name": "eventID", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/controllers.EventWithBookingsResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/helpers.APIResponse"}},
                    "404": {"description": "error.code: booking_not_found", "schema": {"$ref": "#/definitions/helpers.APIResponse"}}
                }
            },
            "delete": {
                "tags": ["events"],
                "summary": "Delete an event and all its bookings",
                "parameters": [
                    {"type": "string", "description": "Event ID (UUID)", "name": "eventID", "in": "path", "required": true}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/helpers.APIResponse"}},
                    "404": {"description": "error.code: booking_not_found", "schema": {"$ref": "#/definitions/helpers.APIResponse"}}
                }
            },
            "patch": {
                "description": "Changes apply to every booking of the event. Room or time changes are re-checked on all booked dates, ignoring the event's own bookings.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["events"],
                "summary": "Update an event",
                "parameters": [
                    {"type": "string", "description": "Event ID (UUID)", "name": "eventID", "in": "path", "required": true},
                    {"description": "Fields to change", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/controllers.UpdateEventRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/controllers.EventResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/helpers.APIResponse"}},
                    "404": {"description": "error.code: booking_not_found", "schema": {"$ref": "#/definitions/helpers.APIResponse"}},
                    "409": {"description": "error.code: booking_conflict", "schema": {"$ref": "#/definitions/helpers.APIResponse"}}
                }
            }
        },
        "/exports/bookings.xlsx": {
            "get": {
                "description": "XLSX workbook with one row per booking in the month. Defaults to the current month.",
                "produces": ["application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"],
                "tags": ["exports"],
                "summary": "Spreadsheet of a month",
                "parameters": [
                    {"type": "integer", "description": "Year", "name": "year", "in": "query"},
                    {"type": "integer", "description": "Month (1-12)", "name": "month", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "file"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/helpers.APIResponse"}}
                }
            }
        },
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["ops"],
                "summary": "Liveness",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/helpers.APIResponse"}}
                }
            }
        },
        "/rooms": {
            "get": {
                "produces": ["application/json"],
                "tags": ["rooms"],
                "summary": "List rooms",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/controllers.RoomsResponse"}}
                }
            }
        },
        "/rooms/{roomID}/calendar.ics": {
            "get": {
                "description": "One VEVENT per booking of the room in the month. Defaults to the current month.",
                "produces": ["text/calendar"],
                "tags": ["rooms"],
                "summary": "iCalendar feed of a room",
                "parameters": [
                    {"type": "string", "description": "Room ID", "name": "roomID", "in": "path", "required": true},
                    {"type": "integer", "description": "Year", "name": "year", "in": "query"},
                    {"type": "integer", "description": "Month (1-12)", "name": "month", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "VCALENDAR", "schema": {"type": "string"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/helpers.APIResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/helpers.APIResponse"}}
                }
            }
        }
    },
    "definitions": {
        "controllers.AvailabilityResponse": {
            "type": "object",
            "properties": {
                "data": {"$ref": "#/definitions/controllers.AvailabilityResult"},
                "error": {"$ref": "#/definitions/helpers.APIError"}
            }
        },
        "controllers.AvailabilityResult": {
            "type": "object",
            "properties": {
                "available": {"type": "boolean"}
            }
        },
        "controllers.BookingDetailsResponse": {
            "type": "object",
            "properties": {
                "data": {"type": "array", "items": {"$ref": "#/definitions/domain.BookingWithEventDetails"}},
                "error": {"$ref": "#/definitions/helpers.APIError"}
            }
        },
        "controllers.BookingResponse": {
            "type": "object",
            "properties": {
                "data": {"$ref": "#/definitions/domain.Booking"},
                "error": {"$ref": "#/definitions/helpers.APIError"}
            }
        },
        "controllers.CreateBookingRequest": {
            "type": "object",
            "properties": {
                "color": {"type": "string"},
                "date": {"type": "string", "example": "2025-06-15"},
                "end_time": {"type": "string", "example": "10:30"},
                "event_name": {"type": "string"},
                "phone_number": {"type": "string"},
                "poc_name": {"type": "string"},
                "room_id": {"type": "string"},
                "start_time": {"type": "string", "example": "09:00"}
            }
        },
        "controllers.CreateMultiDateBookingRequest": {
            "type": "object",
            "properties": {
                "color": {"type": "string"},
                "dates": {"type": "array", "items": {"type": "string"}},
                "end_time": {"type": "string", "example": "10:30"},
                "event_name": {"type": "string"},
                "phone_number": {"type": "string"},
                "poc_name": {"type": "string"},
                "range_end": {"type": "string"},
                "range_start": {"type": "string"},
                "room_id": {"type": "string"},
                "start_time": {"type": "string", "example": "09:00"}
            }
        },
        "controllers.EventResponse": {
            "type": "object",
            "properties": {
                "data": {"$ref": "#/definitions/domain.Event"},
                "error": {"$ref": "#/definitions/helpers.APIError"}
            }
        },
        "controllers.EventWithBookingsResponse": {
            "type": "object",
            "properties": {
                "data": {"$ref": "#/definitions/domain.EventWithBookings"},
                "error": {"$ref": "#/definitions/helpers.APIError"}
            }
        },
        "controllers.MultiDateAvailabilityRequest": {
            "type": "object",
            "properties": {
                "dates": {"type": "array", "items": {"type": "string"}},
                "end_time": {"type": "string", "example": "10:30"},
                "exclude_event_id": {"type": "string"},
                "room_id": {"type": "string"},
                "start_time": {"type": "string", "example": "09:00"}
            }
        },
        "controllers.PartitionResponse": {
            "type": "object",
            "properties": {
                "data": {"$ref": "#/definitions/domain.AvailabilityPartition"},
                "error": {"$ref": "#/definitions/helpers.APIError"}
            }
        },
        "controllers.RoomsResponse": {
            "type": "object",
            "properties": {
                "data": {"type": "array", "items": {"$ref": "#/definitions/domain.Room"}},
                "error": {"$ref": "#/definitions/helpers.APIError"}
            }
        },
        "controllers.UpdateBookingDateRequest": {
            "type": "object",
            "properties": {
                "date": {"type": "string", "example": "2025-06-16"}
            }
        },
        "controllers.UpdateEventRequest": {
            "type": "object",
            "properties": {
                "color": {"type": "string"},
                "end_time": {"type": "string", "example": "10:30"},
                "event_name": {"type": "string"},
                "phone_number": {"type": "string"},
                "poc_name": {"type": "string"},
                "room_id": {"type": "string"},
                "start_time": {"type": "string", "example": "09:00"}
            }
        },
        "domain.AvailabilityPartition": {
            "type": "object",
            "properties": {
                "available": {"type": "array", "items": {"type": "string"}},
                "unavailable": {"type": "array", "items": {"type": "string"}}
            }
        },
        "domain.Booking": {
            "type": "object",
            "properties": {
                "created_at": {"type": "string"},
                "date": {"type": "string"},
                "event_id": {"type": "string"},
                "id": {"type": "string"},
                "updated_at": {"type": "string"}
            }
        },
        "domain.BookingWithEventDetails": {
            "type": "object",
            "properties": {
                "booking_id": {"type": "string"},
                "color": {"type": "string"},
                "created_at": {"type": "string"},
                "date": {"type": "string"},
                "end_time": {"type": "string"},
                "event_id": {"type": "string"},
                "event_name": {"type": "string"},
                "phone_number": {"type": "string"},
                "poc_name": {"type": "string"},
                "room_id": {"type": "string"},
                "room_name": {"type": "string"},
                "start_time": {"type": "string"},
                "updated_at": {"type": "string"}
            }
        },
        "domain.Event": {
            "type": "object",
            "properties": {
                "color": {"type": "string"},
                "created_at": {"type": "string"},
                "end_time": {"type": "string"},
                "event_name": {"type": "string"},
                "id": {"type": "string"},
                "phone_number": {"type": "string"},
                "poc_name": {"type": "string"},
                "room_id": {"type": "string"},
                "start_time": {"type": "string"},
                "updated_at": {"type": "string"}
            }
        },
        "domain.EventWithBookings": {
            "type": "object",
            "properties": {
                "bookings": {"type": "array", "items": {"$ref": "#/definitions/domain.Booking"}},
                "event": {"$ref": "#/definitions/domain.Event"}
            }
        },
        "domain.Room": {
            "type": "object",
            "properties": {
                "active": {"type": "boolean"},
                "capacity": {"type": "integer"},
                "color": {"type": "string"},
                "created_at": {"type": "string"},
                "id": {"type": "string"},
                "name": {"type": "string"},
                "updated_at": {"type": "string"}
            }
        },
        "helpers.APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "details": {},
                "message": {"type": "string"}
            }
        },
        "helpers.APIResponse": {
            "type": "object",
            "properties": {
                "data": {},
                "error": {"$ref": "#/definitions/helpers.APIError"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Room Calendar API",
	Description:      "Room booking calendar: availability checks, bookings, events and exports.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
