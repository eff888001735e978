package ical

import (
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"

	"github.com/BruksfildServices01/coach-platform/internal/models"
)

const (
	productID    = "-//coach-platform//sessions//EN"
	uidDomain    = "coach-platform"
	alarmTrigger = "-PT15M"
)

// Render builds an RFC 5545 calendar with one VEVENT per session and a
// DISPLAY alarm fifteen minutes before each start.
func Render(name string, sessions []models.Session, stamp time.Time) string {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId(productID)
	cal.SetName(name)

	for _, s := range sessions {
		ev := cal.AddEvent(s.ID.String() + "@" + uidDomain)
		ev.SetDtStampTime(stamp)
		ev.SetCreatedTime(s.CreatedAt)
		ev.SetModifiedAt(s.UpdatedAt)
		ev.SetStartAt(s.ScheduledAt)
		ev.SetEndAt(s.EndsAt())
		ev.SetSummary(summary(s))
		ev.SetStatus(eventStatus(s.Status))

		if desc := description(s); desc != "" {
			ev.SetDescription(desc)
		}
		if s.MeetingURL != "" {
			ev.SetLocation(s.MeetingURL)
			ev.SetURL(s.MeetingURL)
		}

		alarm := ev.AddAlarm()
		alarm.SetAction(ics.ActionDisplay)
		alarm.SetTrigger(alarmTrigger)
		alarm.SetProperty(ics.ComponentPropertyDescription, summary(s))
	}

	return cal.Serialize()
}

func summary(s models.Session) string {
	if s.Title != "" {
		return s.Title
	}

	var names []string
	if s.Coach != nil && s.Coach.FullName != "" {
		names = append(names, s.Coach.FullName)
	}
	if s.Client != nil && s.Client.FullName != "" {
		names = append(names, s.Client.FullName)
	}
	if len(names) == 0 {
		return "Coaching session"
	}
	return "Coaching session: " + strings.Join(names, " / ")
}

func description(s models.Session) string {
	var parts []string
	if s.Notes != "" {
		parts = append(parts, s.Notes)
	}
	if s.MeetingURL != "" {
		parts = append(parts, "Join: "+s.MeetingURL)
	}
	if s.Timezone != "" {
		parts = append(parts, "Timezone: "+s.Timezone)
	}
	return strings.Join(parts, "\n")
}

func eventStatus(status string) ics.ObjectStatus {
	switch status {
	case "cancelled", "no_show":
		return ics.ObjectStatusCancelled
	default:
		return ics.ObjectStatusConfirmed
	}
}
