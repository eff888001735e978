package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/coach-platform/internal/domain/notification"
	"github.com/BruksfildServices01/coach-platform/internal/httperr"
	"github.com/BruksfildServices01/coach-platform/internal/models"
	"github.com/BruksfildServices01/coach-platform/internal/notify"
)

type NotificationGormRepository struct {
	db *gorm.DB
}

func NewNotificationGormRepository(db *gorm.DB) *NotificationGormRepository {
	return &NotificationGormRepository{db: db}
}

func (r *NotificationGormRepository) CreateNotification(ctx context.Context, n *models.Notification) error {
	return r.db.WithContext(ctx).Create(n).Error
}

func (r *NotificationGormRepository) ListNotifications(
	ctx context.Context,
	userID uuid.UUID,
	unreadOnly bool,
	limit int,
) ([]models.Notification, error) {

	q := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if unreadOnly {
		q = q.Where("read_at IS NULL")
	}

	var out []models.Notification
	if err := q.Order("created_at DESC").Limit(limit).Find(&out).Error; err != nil {
		return nil, httperr.FromStore(err, "notification")
	}
	return out, nil
}

func (r *NotificationGormRepository) MarkRead(
	ctx context.Context,
	id uuid.UUID,
	userID uuid.UUID,
	at time.Time,
) (*models.Notification, error) {

	var n models.Notification
	if err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&n).Error; err != nil {
		return nil, httperr.FromStore(err, "notification")
	}

	if n.ReadAt == nil {
		n.ReadAt = &at
		if err := r.db.WithContext(ctx).
			Model(&n).
			Update("read_at", at).Error; err != nil {
			return nil, httperr.FromStore(err, "notification")
		}
	}
	return &n, nil
}

// Compile-time check
var (
	_ notify.Store      = (*NotificationGormRepository)(nil)
	_ domain.Repository = (*NotificationGormRepository)(nil)
)
