package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/coach-platform/internal/audit"
	domain "github.com/BruksfildServices01/coach-platform/internal/domain/auditlog"
	"github.com/BruksfildServices01/coach-platform/internal/httperr"
	"github.com/BruksfildServices01/coach-platform/internal/models"
)

type AuditGormRepository struct {
	db *gorm.DB
}

func NewAuditGormRepository(db *gorm.DB) *AuditGormRepository {
	return &AuditGormRepository{db: db}
}

func (r *AuditGormRepository) CreateAuditLog(ctx context.Context, log *models.AuditLog) error {
	return r.db.WithContext(ctx).Create(log).Error
}

func (r *AuditGormRepository) ListAuditLogs(ctx context.Context, f domain.Filter) ([]models.AuditLog, int64, error) {
	q := r.db.WithContext(ctx).Model(&models.AuditLog{})

	if f.ActorID != nil {
		q = q.Where("actor_id = ?", *f.ActorID)
	}
	if f.Action != "" {
		q = q.Where("action = ?", f.Action)
	}
	if f.Entity != "" {
		q = q.Where("entity = ?", f.Entity)
	}
	if f.From != nil {
		q = q.Where("created_at >= ?", *f.From)
	}
	if f.To != nil {
		q = q.Where("created_at < ?", *f.To)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, httperr.FromStore(err, "audit_log")
	}

	var logs []models.AuditLog
	if err := q.Order("created_at DESC").
		Limit(f.Limit).
		Offset(f.Offset).
		Find(&logs).Error; err != nil {
		return nil, 0, httperr.FromStore(err, "audit_log")
	}

	return logs, total, nil
}

// Compile-time check
var (
	_ audit.Store       = (*AuditGormRepository)(nil)
	_ domain.Repository = (*AuditGormRepository)(nil)
)
