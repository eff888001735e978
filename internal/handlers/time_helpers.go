package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/coach-platform/internal/httperr"
)

const dayLayout = "2006-01-02"

// timeQuery reads an optional RFC3339 timestamp or YYYY-MM-DD day from the
// query string. Days are taken as UTC midnight; with endOfDay the following
// midnight is returned so the day is included in a half-open window.
func timeQuery(c *gin.Context, name string, endOfDay bool) (*time.Time, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}

	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		t = t.UTC()
		return &t, nil
	}

	day, err := time.ParseInLocation(dayLayout, raw, time.UTC)
	if err != nil {
		return nil, httperr.Validation("invalid_time", "Invalid date or time.", map[string]string{
			name: "must be RFC3339 or YYYY-MM-DD",
		})
	}
	if endOfDay {
		day = day.Add(24 * time.Hour)
	}
	return &day, nil
}

// dayPtr parses an optional YYYY-MM-DD due date from a request body.
func dayPtr(field, raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	day, err := time.ParseInLocation(dayLayout, raw, time.UTC)
	if err != nil {
		return nil, httperr.Validation("invalid_date", "Invalid date.", map[string]string{
			field: "must be YYYY-MM-DD",
		})
	}
	return &day, nil
}
