package ical

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/BruksfildServices01/coach-platform/internal/models"
)

func TestRenderOneEventPerSessionWithAlarm(t *testing.T) {
	start := time.Date(2026, 5, 1, 14, 0, 0, 0, time.UTC)
	sessions := []models.Session{
		{
			ID:              uuid.MustParse("11111111-1111-4111-8111-111111111111"),
			ScheduledAt:     start,
			DurationMinutes: 45,
			Status:          "scheduled",
			MeetingURL:      "https://meet.example.com/abc",
			Coach:           &models.User{FullName: "Ana"},
			Client:          &models.User{FullName: "Bo"},
		},
		{
			ID:              uuid.MustParse("22222222-2222-4222-8222-222222222222"),
			Title:           "Check-in",
			ScheduledAt:     start.Add(48 * time.Hour),
			DurationMinutes: 30,
			Status:          "cancelled",
		},
	}

	out := Render("My sessions", sessions, start)

	assert.Equal(t, 2, strings.Count(out, "BEGIN:VEVENT"))
	assert.Equal(t, 2, strings.Count(out, "BEGIN:VALARM"))
	assert.Equal(t, 2, strings.Count(out, "TRIGGER:-PT15M"))
	assert.Contains(t, out, "ACTION:DISPLAY")
	assert.Contains(t, out, "UID:11111111-1111-4111-8111-111111111111@coach-platform")
	assert.Contains(t, out, "DTSTART:20260501T140000Z")
	assert.Contains(t, out, "DTEND:20260501T144500Z")
	assert.Contains(t, out, "SUMMARY:Coaching session: Ana / Bo")
	assert.Contains(t, out, "SUMMARY:Check-in")
	assert.Contains(t, out, "STATUS:CANCELLED")
	assert.Contains(t, out, "METHOD:PUBLISH")
}

func TestRenderEmptyCalendar(t *testing.T) {
	out := Render("Empty", nil, time.Now())

	assert.Contains(t, out, "BEGIN:VCALENDAR")
	assert.NotContains(t, out, "BEGIN:VEVENT")
}
