package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/coach-platform/internal/domain/upload"
	"github.com/BruksfildServices01/coach-platform/internal/httperr"
	"github.com/BruksfildServices01/coach-platform/internal/models"
)

type FileGormRepository struct {
	db *gorm.DB
}

func NewFileGormRepository(db *gorm.DB) *FileGormRepository {
	return &FileGormRepository{db: db}
}

func (r *FileGormRepository) CreateFile(ctx context.Context, f *models.FileRecord) error {
	return httperr.FromStore(r.db.WithContext(ctx).Create(f).Error, "file")
}

func (r *FileGormRepository) GetFile(ctx context.Context, id uuid.UUID) (*models.FileRecord, error) {
	var f models.FileRecord
	if err := r.db.WithContext(ctx).First(&f, "id = ?", id).Error; err != nil {
		return nil, httperr.FromStore(err, "file")
	}
	return &f, nil
}

func (r *FileGormRepository) ListFiles(ctx context.Context, f domain.FileFilter) ([]models.FileRecord, error) {
	q := r.db.WithContext(ctx)
	if !f.All {
		q = q.Where("owner_id = ?", f.OwnerID)
	}
	if f.Directory != "" {
		q = q.Where("directory = ?", f.Directory)
	}

	var out []models.FileRecord
	if err := q.Order("created_at DESC").
		Limit(f.Limit).
		Offset(f.Offset).
		Find(&out).Error; err != nil {
		return nil, httperr.FromStore(err, "file")
	}
	return out, nil
}

func (r *FileGormRepository) DeleteFile(ctx context.Context, id uuid.UUID) error {
	return deleteByID(ctx, r.db, &models.FileRecord{}, id, "file")
}

// Compile-time check
var _ domain.FileRepository = (*FileGormRepository)(nil)
