package models

import (
	"time"

	"github.com/google/uuid"
)

type Notification struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;index;not null" json:"user_id"`

	Kind  string `gorm:"size:50;not null" json:"kind"`
	Title string `gorm:"size:200;not null" json:"title"`
	Body  string `gorm:"type:text" json:"body"`

	EntityID *uuid.UUID `gorm:"type:uuid" json:"entity_id"`
	ReadAt   *time.Time `json:"read_at"`

	CreatedAt time.Time `json:"created_at"`
}
