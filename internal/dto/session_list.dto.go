package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/coach-platform/internal/models"
)

type SessionListDTO struct {
	ID              uuid.UUID `json:"id"`
	Title           string    `json:"title"`
	CoachID         uuid.UUID `json:"coach_id"`
	CoachName       string    `json:"coach_name"`
	ClientID        uuid.UUID `json:"client_id"`
	ClientName      string    `json:"client_name"`
	ScheduledAt     time.Time `json:"scheduled_at"`
	EndsAt          time.Time `json:"ends_at"`
	DurationMinutes int       `json:"duration_minutes"`
	Status          string    `json:"status"`
	MeetingURL      string    `json:"meeting_url"`
	Timezone        string    `json:"timezone"`
	Notes           string    `json:"notes"`
	ViewerRole      string    `json:"viewer_role"`
}

// SessionList reshapes rows for the calendar. viewer decides viewer_role:
// "coach", "client" or "admin" when the viewer is neither participant.
func SessionList(sessions []models.Session, viewer uuid.UUID) []SessionListDTO {
	out := make([]SessionListDTO, 0, len(sessions))
	for _, s := range sessions {
		item := SessionListDTO{
			ID:              s.ID,
			Title:           s.Title,
			CoachID:         s.CoachID,
			ClientID:        s.ClientID,
			ScheduledAt:     s.ScheduledAt,
			EndsAt:          s.EndsAt(),
			DurationMinutes: s.DurationMinutes,
			Status:          s.Status,
			MeetingURL:      s.MeetingURL,
			Timezone:        s.Timezone,
			Notes:           s.Notes,
		}
		if s.Coach != nil {
			item.CoachName = s.Coach.FullName
		}
		if s.Client != nil {
			item.ClientName = s.Client.FullName
		}

		switch viewer {
		case s.CoachID:
			item.ViewerRole = "coach"
		case s.ClientID:
			item.ViewerRole = "client"
		default:
			item.ViewerRole = "admin"
		}

		out = append(out, item)
	}
	return out
}
