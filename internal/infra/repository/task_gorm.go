package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/coach-platform/internal/domain/task"
	"github.com/BruksfildServices01/coach-platform/internal/httperr"
	"github.com/BruksfildServices01/coach-platform/internal/models"
)

type TaskGormRepository struct {
	db *gorm.DB
}

func NewTaskGormRepository(db *gorm.DB) *TaskGormRepository {
	return &TaskGormRepository{db: db}
}

// --------------------------------------------------
// Categories
// --------------------------------------------------

func (r *TaskGormRepository) ListCategories(ctx context.Context, s domain.Scope) ([]models.TaskCategory, error) {
	q := r.db.WithContext(ctx)
	if !s.All {
		q = q.Where("coach_id = ?", s.CoachID)
	}

	var out []models.TaskCategory
	if err := q.Order("name ASC").Find(&out).Error; err != nil {
		return nil, httperr.FromStore(err, "task_category")
	}
	return out, nil
}

func (r *TaskGormRepository) GetCategory(ctx context.Context, id uuid.UUID) (*models.TaskCategory, error) {
	var c models.TaskCategory
	if err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error; err != nil {
		return nil, httperr.FromStore(err, "task_category")
	}
	return &c, nil
}

func (r *TaskGormRepository) CreateCategory(ctx context.Context, c *models.TaskCategory) error {
	return httperr.FromStore(r.db.WithContext(ctx).Create(c).Error, "task_category")
}

func (r *TaskGormRepository) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	return deleteByID(ctx, r.db, &models.TaskCategory{}, id, "task_category")
}

// --------------------------------------------------
// Tasks
// --------------------------------------------------

func (r *TaskGormRepository) ListTasks(ctx context.Context, s domain.Scope, templatesOnly bool) ([]models.Task, error) {
	q := r.db.WithContext(ctx).Preload("Category")
	if !s.All {
		q = q.Where("coach_id = ?", s.CoachID)
	}
	if templatesOnly {
		q = q.Where("is_template = ?", true)
	}

	var out []models.Task
	if err := q.Order("created_at DESC").Find(&out).Error; err != nil {
		return nil, httperr.FromStore(err, "task")
	}
	return out, nil
}

func (r *TaskGormRepository) GetTask(ctx context.Context, id uuid.UUID) (*models.Task, error) {
	var t models.Task
	if err := r.db.WithContext(ctx).Preload("Category").First(&t, "id = ?", id).Error; err != nil {
		return nil, httperr.FromStore(err, "task")
	}
	return &t, nil
}

func (r *TaskGormRepository) CreateTask(ctx context.Context, t *models.Task) error {
	return httperr.FromStore(r.db.WithContext(ctx).Create(t).Error, "task")
}

func (r *TaskGormRepository) UpdateTask(ctx context.Context, id uuid.UUID, fields map[string]any) (*models.Task, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Task{}).
		Where("id = ?", id).
		Updates(fields)
	if res.Error != nil {
		return nil, httperr.FromStore(res.Error, "task")
	}
	if res.RowsAffected == 0 {
		return nil, httperr.NotFound("task_not_found", "Not found.")
	}
	return r.GetTask(ctx, id)
}

func (r *TaskGormRepository) DeleteTask(ctx context.Context, id uuid.UUID) error {
	return deleteByID(ctx, r.db, &models.Task{}, id, "task")
}

// --------------------------------------------------
// Instances
// --------------------------------------------------

// CreateInstances relies on gorm turning a slice into one multi-row
// INSERT, which the database applies atomically.
func (r *TaskGormRepository) CreateInstances(ctx context.Context, instances []models.TaskInstance) error {
	if len(instances) == 0 {
		return nil
	}
	return httperr.FromStore(r.db.WithContext(ctx).Create(&instances).Error, "task_instance")
}

func (r *TaskGormRepository) ListInstances(ctx context.Context, f domain.InstanceFilter) ([]models.TaskInstance, error) {
	q := r.db.WithContext(ctx).Preload("Task")
	if f.CoachID != uuid.Nil {
		q = q.Where("coach_id = ?", f.CoachID)
	}
	if f.ClientID != uuid.Nil {
		q = q.Where("client_id = ?", f.ClientID)
	}
	if f.TaskID != uuid.Nil {
		q = q.Where("task_id = ?", f.TaskID)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}

	var out []models.TaskInstance
	if err := q.Order("due_date ASC NULLS LAST, created_at DESC").Find(&out).Error; err != nil {
		return nil, httperr.FromStore(err, "task_instance")
	}
	return out, nil
}

func (r *TaskGormRepository) GetInstance(ctx context.Context, id uuid.UUID) (*models.TaskInstance, error) {
	var i models.TaskInstance
	if err := r.db.WithContext(ctx).First(&i, "id = ?", id).Error; err != nil {
		return nil, httperr.FromStore(err, "task_instance")
	}
	return &i, nil
}

func (r *TaskGormRepository) SetInstanceStatus(
	ctx context.Context,
	id uuid.UUID,
	status domain.Status,
	completedAt *time.Time,
) error {

	res := r.db.WithContext(ctx).
		Model(&models.TaskInstance{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":       string(status),
			"completed_at": completedAt,
		})
	if res.Error != nil {
		return httperr.FromStore(res.Error, "task_instance")
	}
	if res.RowsAffected == 0 {
		return httperr.NotFound("task_instance_not_found", "Not found.")
	}
	return nil
}

// --------------------------------------------------
// Progress
// --------------------------------------------------

func (r *TaskGormRepository) CreateProgress(ctx context.Context, p *models.ProgressUpdate) error {
	return httperr.FromStore(r.db.WithContext(ctx).Create(p).Error, "progress_update")
}

func (r *TaskGormRepository) LatestProgress(ctx context.Context, instanceID uuid.UUID) (*models.ProgressUpdate, error) {
	var p models.ProgressUpdate
	err := r.db.WithContext(ctx).
		Where("instance_id = ?", instanceID).
		Order("created_at DESC").
		First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, httperr.FromStore(err, "progress_update")
	}
	return &p, nil
}

func (r *TaskGormRepository) ListProgress(ctx context.Context, instanceID uuid.UUID) ([]models.ProgressUpdate, error) {
	var out []models.ProgressUpdate
	if err := r.db.WithContext(ctx).
		Where("instance_id = ?", instanceID).
		Order("created_at DESC").
		Find(&out).Error; err != nil {
		return nil, httperr.FromStore(err, "progress_update")
	}
	return out, nil
}

// --------------------------------------------------
// Users
// --------------------------------------------------

func (r *TaskGormRepository) GetUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var u models.User
	if err := r.db.WithContext(ctx).First(&u, "id = ?", id).Error; err != nil {
		return nil, httperr.FromStore(err, "user")
	}
	return &u, nil
}

func deleteByID(ctx context.Context, db *gorm.DB, model any, id uuid.UUID, entity string) error {
	res := db.WithContext(ctx).Where("id = ?", id).Delete(model)
	if res.Error != nil {
		return httperr.FromStore(res.Error, entity)
	}
	if res.RowsAffected == 0 {
		return httperr.NotFound(entity+"_not_found", "Not found.")
	}
	return nil
}

// Compile-time check
var _ domain.Repository = (*TaskGormRepository)(nil)
