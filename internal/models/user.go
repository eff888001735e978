package models

import (
	"time"

	"github.com/google/uuid"
)

// User mirrors the auth provider's profile row. Credentials live with the
// provider; only the calendar feed secret hash is kept here.
type User struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Email    string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	FullName string    `gorm:"size:150" json:"full_name"`
	Role     string    `gorm:"size:20;not null;default:'client'" json:"role"`
	Timezone string    `gorm:"size:64;default:'UTC'" json:"timezone"`

	CalendarFeedTokenHash string `gorm:"size:255" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
