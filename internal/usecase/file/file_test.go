package file

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/coach-platform/internal/audit"
	domain "github.com/BruksfildServices01/coach-platform/internal/domain/upload"
	"github.com/BruksfildServices01/coach-platform/internal/httperr"
	"github.com/BruksfildServices01/coach-platform/internal/identity"
	"github.com/BruksfildServices01/coach-platform/internal/models"
	"github.com/BruksfildServices01/coach-platform/internal/storage"
)

type fakeFiles struct {
	rows       map[uuid.UUID]*models.FileRecord
	lastFilter domain.FileFilter
}

func (f *fakeFiles) CreateFile(_ context.Context, r *models.FileRecord) error {
	r.ID = uuid.New()
	f.rows[r.ID] = r
	return nil
}

func (f *fakeFiles) GetFile(_ context.Context, id uuid.UUID) (*models.FileRecord, error) {
	r, ok := f.rows[id]
	if !ok {
		return nil, httperr.NotFound("file_not_found", "Not found.")
	}
	return r, nil
}

func (f *fakeFiles) ListFiles(_ context.Context, flt domain.FileFilter) ([]models.FileRecord, error) {
	f.lastFilter = flt
	return nil, nil
}

func (f *fakeFiles) DeleteFile(_ context.Context, id uuid.UUID) error {
	delete(f.rows, id)
	return nil
}

type discardAudit struct{}

func (discardAudit) CreateAuditLog(context.Context, *models.AuditLog) error { return nil }

func TestDownloadAndDeleteRespectOwnership(t *testing.T) {
	ctx := context.Background()
	repo := &fakeFiles{rows: map[uuid.UUID]*models.FileRecord{}}
	backend := storage.NewMemory("http://test")
	d := audit.NewDispatcher(audit.New(discardAudit{}), zap.NewNop())
	t.Cleanup(d.Close)

	owner := identity.Actor{ID: uuid.New(), Role: identity.RoleClient}
	stranger := identity.Actor{ID: uuid.New(), Role: identity.RoleCoach}
	admin := identity.Actor{ID: uuid.New(), Role: identity.RoleAdmin}

	rec := &models.FileRecord{OwnerID: owner.ID, FileName: "plan.pdf", StorageKey: "shared/plan.pdf", ThumbnailKey: "shared/plan.thumb.webp"}
	require.NoError(t, repo.CreateFile(ctx, rec))
	require.NoError(t, backend.Put(ctx, rec.StorageKey, "application/pdf", []byte("%PDF")))
	require.NoError(t, backend.Put(ctx, rec.ThumbnailKey, "image/webp", []byte("w")))

	dl := NewDownloadFile(repo, backend)

	_, err := dl.Execute(ctx, stranger, rec.ID)
	assert.True(t, httperr.Is(err, "file_not_found"))

	out, err := dl.Execute(ctx, admin, rec.ID)
	require.NoError(t, err)
	assert.Contains(t, out.URL, "plan.pdf")
	assert.NotEmpty(t, out.Thumbnail)

	del := NewDeleteFile(repo, backend, d, zap.NewNop())
	assert.True(t, httperr.Is(del.Execute(ctx, stranger, rec.ID), "file_not_found"))

	require.NoError(t, del.Execute(ctx, owner, rec.ID))
	assert.Equal(t, 0, backend.Len())
	assert.Empty(t, repo.rows)
}

func TestListFilesScopesAndClampsPaging(t *testing.T) {
	repo := &fakeFiles{rows: map[uuid.UUID]*models.FileRecord{}}
	uc := NewListFiles(repo)
	actor := identity.Actor{ID: uuid.New(), Role: identity.RoleCoach}

	_, err := uc.Execute(context.Background(), actor, ListQuery{Limit: 1000, Offset: -4})
	require.NoError(t, err)
	assert.Equal(t, actor.ID, repo.lastFilter.OwnerID)
	assert.False(t, repo.lastFilter.All)
	assert.Equal(t, 100, repo.lastFilter.Limit)
	assert.Equal(t, 0, repo.lastFilter.Offset)

	_, err = uc.Execute(context.Background(), actor, ListQuery{Directory: "tmp"})
	assert.True(t, httperr.Is(err, "invalid_directory"))
}
