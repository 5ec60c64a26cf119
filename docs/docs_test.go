package docs

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swaggo/swag"
)

func TestSwaggerDocIsRegistered(t *testing.T) {
	raw, err := swag.ReadDoc(SwaggerInfo.InstanceName())
	require.NoError(t, err)

	var doc struct {
		Info struct {
			Title   string `json:"title"`
			Version string `json:"version"`
		} `json:"info"`
		BasePath string                                `json:"basePath"`
		Paths    map[string]map[string]json.RawMessage `json:"paths"`
	}
	require.NoError(t, json.Unmarshal([]byte(raw), &doc))

	assert.Equal(t, "Room Calendar API", doc.Info.Title)
	assert.Equal(t, "1.0", doc.Info.Version)
	assert.Equal(t, "/", doc.BasePath)

	routes := map[string][]string{
		"/availability":                {"get"},
		"/availability/multi-date":     {"post"},
		"/bookings":                    {"get", "post"},
		"/bookings/date/{date}":        {"get"},
		"/bookings/multi-date":         {"post"},
		"/bookings/{bookingID}":        {"get", "patch", "delete"},
		"/events/{eventID}":            {"get", "patch", "delete"},
		"/exports/bookings.xlsx":       {"get"},
		"/health":                      {"get"},
		"/rooms":                       {"get"},
		"/rooms/{roomID}/calendar.ics": {"get"},
	}
	for path, methods := range routes {
		ops, ok := doc.Paths[path]
		require.True(t, ok, path)
		for _, m := range methods {
			assert.Contains(t, ops, m, path)
		}
	}
}
