package task

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/coach-platform/internal/models"
)

// Scope limits a listing to one coach's rows. All is set for admins.
type Scope struct {
	CoachID uuid.UUID
	All     bool
}

// InstanceFilter selects instances by participant. Zero ids are ignored.
type InstanceFilter struct {
	CoachID  uuid.UUID
	ClientID uuid.UUID
	TaskID   uuid.UUID
	Status   string
}

type Repository interface {
	// -------- Categories --------
	ListCategories(ctx context.Context, scope Scope) ([]models.TaskCategory, error)
	GetCategory(ctx context.Context, id uuid.UUID) (*models.TaskCategory, error)
	CreateCategory(ctx context.Context, c *models.TaskCategory) error
	DeleteCategory(ctx context.Context, id uuid.UUID) error

	// -------- Tasks --------
	ListTasks(ctx context.Context, scope Scope, templatesOnly bool) ([]models.Task, error)
	GetTask(ctx context.Context, id uuid.UUID) (*models.Task, error)
	CreateTask(ctx context.Context, t *models.Task) error
	UpdateTask(ctx context.Context, id uuid.UUID, fields map[string]any) (*models.Task, error)
	DeleteTask(ctx context.Context, id uuid.UUID) error

	// -------- Instances --------

	// CreateInstances writes all rows in a single INSERT statement.
	CreateInstances(ctx context.Context, instances []models.TaskInstance) error
	ListInstances(ctx context.Context, f InstanceFilter) ([]models.TaskInstance, error)
	GetInstance(ctx context.Context, id uuid.UUID) (*models.TaskInstance, error)
	SetInstanceStatus(ctx context.Context, id uuid.UUID, status Status, completedAt *time.Time) error

	// -------- Progress --------
	CreateProgress(ctx context.Context, p *models.ProgressUpdate) error
	// LatestProgress returns nil, nil when the instance has no updates.
	LatestProgress(ctx context.Context, instanceID uuid.UUID) (*models.ProgressUpdate, error)
	ListProgress(ctx context.Context, instanceID uuid.UUID) ([]models.ProgressUpdate, error)

	// -------- Users --------
	GetUser(ctx context.Context, id uuid.UUID) (*models.User, error)
}
