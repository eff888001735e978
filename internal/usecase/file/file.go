package file

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/coach-platform/internal/audit"
	domain "github.com/BruksfildServices01/coach-platform/internal/domain/upload"
	"github.com/BruksfildServices01/coach-platform/internal/httperr"
	"github.com/BruksfildServices01/coach-platform/internal/identity"
	"github.com/BruksfildServices01/coach-platform/internal/models"
	"github.com/BruksfildServices01/coach-platform/internal/storage"
)

const (
	DownloadTTL  = 15 * time.Minute
	maxListLimit = 100
)

type ListQuery struct {
	Directory string
	Limit     int
	Offset    int
}

// ======================================================
// LIST
// ======================================================

type ListFiles struct {
	repo domain.FileRepository
}

func NewListFiles(repo domain.FileRepository) *ListFiles {
	return &ListFiles{repo: repo}
}

func (uc *ListFiles) Execute(ctx context.Context, actor identity.Actor, q ListQuery) ([]models.FileRecord, error) {
	if q.Directory != "" {
		if _, err := domain.PolicyFor(q.Directory); err != nil {
			return nil, err
		}
	}

	limit := q.Limit
	if limit <= 0 || limit > maxListLimit {
		limit = maxListLimit
	}
	offset := q.Offset
	if offset < 0 {
		offset = 0
	}

	return uc.repo.ListFiles(ctx, domain.FileFilter{
		OwnerID:   actor.ID,
		All:       actor.IsAdmin(),
		Directory: q.Directory,
		Limit:     limit,
		Offset:    offset,
	})
}

// ======================================================
// DOWNLOAD
// ======================================================

type Download struct {
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expires_at"`
	Thumbnail string    `json:"thumbnail_url,omitempty"`
}

type DownloadFile struct {
	repo    domain.FileRepository
	backend storage.Backend
}

func NewDownloadFile(repo domain.FileRepository, backend storage.Backend) *DownloadFile {
	return &DownloadFile{repo: repo, backend: backend}
}

func (uc *DownloadFile) Execute(ctx context.Context, actor identity.Actor, id uuid.UUID) (*Download, error) {
	f, err := visible(ctx, uc.repo, actor, id)
	if err != nil {
		return nil, err
	}

	url, err := uc.backend.PresignGet(ctx, f.StorageKey, f.FileName, DownloadTTL)
	if err != nil {
		return nil, httperr.FromStore(err, "file")
	}

	out := &Download{URL: url, ExpiresAt: time.Now().UTC().Add(DownloadTTL)}
	if f.ThumbnailKey != "" {
		if thumb, err := uc.backend.PresignGet(ctx, f.ThumbnailKey, "", DownloadTTL); err == nil {
			out.Thumbnail = thumb
		}
	}
	return out, nil
}

// ======================================================
// DELETE
// ======================================================

type DeleteFile struct {
	repo    domain.FileRepository
	backend storage.Backend
	audit   *audit.Dispatcher
	log     *zap.Logger
}

func NewDeleteFile(
	repo domain.FileRepository,
	backend storage.Backend,
	audit *audit.Dispatcher,
	log *zap.Logger,
) *DeleteFile {
	return &DeleteFile{repo: repo, backend: backend, audit: audit, log: log}
}

// Execute removes the row first; a storage object that fails to delete
// afterwards is logged, not surfaced.
func (uc *DeleteFile) Execute(ctx context.Context, actor identity.Actor, id uuid.UUID) error {
	f, err := visible(ctx, uc.repo, actor, id)
	if err != nil {
		return err
	}

	if err := uc.repo.DeleteFile(ctx, id); err != nil {
		return err
	}

	for _, key := range []string{f.StorageKey, f.ThumbnailKey} {
		if key == "" {
			continue
		}
		if err := uc.backend.Delete(ctx, key); err != nil {
			uc.log.Warn("storage delete failed", zap.String("key", key), zap.Error(err))
		}
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  &actor.ID,
		Action:   "file_deleted",
		Entity:   "file",
		EntityID: &id,
		Metadata: map[string]any{"file_name": f.FileName},
	})
	return nil
}

func visible(ctx context.Context, repo domain.FileRepository, actor identity.Actor, id uuid.UUID) (*models.FileRecord, error) {
	f, err := repo.GetFile(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin() && f.OwnerID != actor.ID {
		return nil, httperr.NotFound("file_not_found", "Not found.")
	}
	return f, nil
}
