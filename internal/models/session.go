package models

import (
	"time"

	"github.com/google/uuid"
)

type Session struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	CoachID uuid.UUID `gorm:"type:uuid;index;not null" json:"coach_id"`
	Coach   *User     `gorm:"foreignKey:CoachID" json:"coach,omitempty"`

	ClientID uuid.UUID `gorm:"type:uuid;index;not null" json:"client_id"`
	Client   *User     `gorm:"foreignKey:ClientID" json:"client,omitempty"`

	Title           string    `gorm:"size:150" json:"title"`
	ScheduledAt     time.Time `gorm:"index;not null" json:"scheduled_at"`
	DurationMinutes int       `gorm:"not null" json:"duration_minutes"`
	Status          string    `gorm:"size:20;not null;default:'scheduled'" json:"status"`
	MeetingURL      string    `gorm:"size:500" json:"meeting_url"`
	Timezone        string    `gorm:"size:64" json:"timezone"`
	Notes           string    `gorm:"type:text" json:"notes"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (s Session) EndsAt() time.Time {
	return s.ScheduledAt.Add(time.Duration(s.DurationMinutes) * time.Minute)
}

type SessionRequest struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	CoachID   uuid.UUID  `gorm:"type:uuid;index;not null" json:"coach_id"`
	ClientID  uuid.UUID  `gorm:"type:uuid;index;not null" json:"client_id"`
	SessionID *uuid.UUID `gorm:"type:uuid;index" json:"session_id"`

	RequestedBy     uuid.UUID `gorm:"type:uuid;not null" json:"requested_by"`
	RequestedAt     time.Time `gorm:"not null" json:"requested_at"`
	DurationMinutes int       `gorm:"not null" json:"duration_minutes"`
	Message         string    `gorm:"type:text" json:"message"`

	Status           string `gorm:"size:20;not null;default:'pending'" json:"status"`
	RescheduleReason string `gorm:"type:text" json:"reschedule_reason"`
	DeclineReason    string `gorm:"type:text" json:"decline_reason"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
