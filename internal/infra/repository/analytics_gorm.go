package repository

import (
	"context"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/coach-platform/internal/domain/analytics"
	"github.com/BruksfildServices01/coach-platform/internal/httperr"
	"github.com/BruksfildServices01/coach-platform/internal/models"
)

type AnalyticsGormRepository struct {
	db *gorm.DB
}

func NewAnalyticsGormRepository(db *gorm.DB) *AnalyticsGormRepository {
	return &AnalyticsGormRepository{db: db}
}

type statusCount struct {
	Status string
	Count  int64
}

func (r *AnalyticsGormRepository) SessionsByStatus(ctx context.Context, s domain.Scope) (map[string]int64, error) {
	q := r.db.WithContext(ctx).Model(&models.Session{})
	if !s.All {
		q = q.Where("coach_id = ? OR client_id = ?", s.ActorID, s.ActorID)
	}
	return countByStatus(q, "session")
}

func (r *AnalyticsGormRepository) PendingRequests(ctx context.Context, s domain.Scope) (int64, error) {
	q := r.db.WithContext(ctx).
		Model(&models.SessionRequest{}).
		Where("status = ?", "pending")
	if !s.All {
		q = q.Where("(coach_id = ? OR client_id = ?)", s.ActorID, s.ActorID)
	}

	var n int64
	if err := q.Count(&n).Error; err != nil {
		return 0, httperr.FromStore(err, "session_request")
	}
	return n, nil
}

func (r *AnalyticsGormRepository) InstancesByStatus(ctx context.Context, s domain.Scope) (map[string]int64, error) {
	q := r.db.WithContext(ctx).Model(&models.TaskInstance{})
	if !s.All {
		q = q.Where("coach_id = ? OR client_id = ?", s.ActorID, s.ActorID)
	}
	return countByStatus(q, "task_instance")
}

func countByStatus(q *gorm.DB, entity string) (map[string]int64, error) {
	var rows []statusCount
	if err := q.Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, httperr.FromStore(err, entity)
	}

	out := make(map[string]int64, len(rows))
	for _, row := range rows {
		out[row.Status] = row.Count
	}
	return out, nil
}

// Compile-time check
var _ domain.Repository = (*AnalyticsGormRepository)(nil)
