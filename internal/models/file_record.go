package models

import (
	"time"

	"github.com/google/uuid"
)

type FileRecord struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	OwnerID uuid.UUID `gorm:"type:uuid;index;not null" json:"owner_id"`

	Directory    string `gorm:"size:50;not null" json:"directory"`
	FileName     string `gorm:"size:255;not null" json:"file_name"`
	ContentType  string `gorm:"size:100" json:"content_type"`
	Size         int64  `json:"size"`
	StorageKey   string `gorm:"size:500;not null" json:"-"`
	ThumbnailKey string `gorm:"size:500" json:"-"`

	CreatedAt time.Time `json:"created_at"`
}
