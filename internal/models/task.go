package models

import (
	"time"

	"github.com/google/uuid"
)

type TaskCategory struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CoachID uuid.UUID `gorm:"type:uuid;index;not null" json:"coach_id"`
	Name    string    `gorm:"size:100;not null" json:"name"`
	Color   string    `gorm:"size:20" json:"color"`

	CreatedAt time.Time `json:"created_at"`
}

type Task struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CoachID uuid.UUID `gorm:"type:uuid;index;not null" json:"coach_id"`

	CategoryID *uuid.UUID    `gorm:"type:uuid" json:"category_id"`
	Category   *TaskCategory `gorm:"foreignKey:CategoryID" json:"category,omitempty"`

	Title       string `gorm:"size:200;not null" json:"title"`
	Description string `gorm:"type:text" json:"description"`
	IsTemplate  bool   `gorm:"default:false" json:"is_template"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type TaskInstance struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	TaskID uuid.UUID `gorm:"type:uuid;index;not null" json:"task_id"`
	Task   *Task     `gorm:"foreignKey:TaskID" json:"task,omitempty"`

	ClientID uuid.UUID `gorm:"type:uuid;index;not null" json:"client_id"`
	CoachID  uuid.UUID `gorm:"type:uuid;index;not null" json:"coach_id"`

	DueDate     *time.Time `json:"due_date"`
	Status      string     `gorm:"size:20;not null;default:'pending'" json:"status"`
	CompletedAt *time.Time `json:"completed_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type ProgressUpdate struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	InstanceID uuid.UUID `gorm:"type:uuid;index;not null" json:"instance_id"`
	AuthorID   uuid.UUID `gorm:"type:uuid;not null" json:"author_id"`
	Percentage int       `gorm:"not null" json:"percentage"`
	Notes      string    `gorm:"type:text" json:"notes"`

	CreatedAt time.Time `json:"created_at"`
}
