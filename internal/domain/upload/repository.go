package upload

import (
	"context"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/coach-platform/internal/models"
)

type FileFilter struct {
	OwnerID   uuid.UUID
	All       bool
	Directory string
	Limit     int
	Offset    int
}

type FileRepository interface {
	CreateFile(ctx context.Context, f *models.FileRecord) error
	GetFile(ctx context.Context, id uuid.UUID) (*models.FileRecord, error)
	ListFiles(ctx context.Context, f FileFilter) ([]models.FileRecord, error)
	DeleteFile(ctx context.Context, id uuid.UUID) error
}
