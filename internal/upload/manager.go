package upload

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/coach-platform/internal/audit"
	domain "github.com/BruksfildServices01/coach-platform/internal/domain/upload"
	"github.com/BruksfildServices01/coach-platform/internal/httperr"
	"github.com/BruksfildServices01/coach-platform/internal/identity"
	"github.com/BruksfildServices01/coach-platform/internal/imaging"
	"github.com/BruksfildServices01/coach-platform/internal/models"
	"github.com/BruksfildServices01/coach-platform/internal/storage"
	"github.com/BruksfildServices01/coach-platform/internal/timezone"
)

func errNotFound() error {
	return httperr.NotFound("upload_not_found", "Upload not found or expired.")
}

type InitInput struct {
	FileName    string
	FileSize    int64
	ContentType string
	Directory   string
	TotalChunks int
}

type InitResult struct {
	UploadID     uuid.UUID `json:"uploadId"`
	TotalChunks  int       `json:"totalChunks"`
	MaxChunkSize int64     `json:"maxChunkSize"`
	ExpiresAfter string    `json:"expiresAfterIdle"`
}

// Manager runs the chunked upload protocol: init, chunk, status, complete
// and abort, plus the idle sweep.
type Manager struct {
	store    domain.Store
	backend  storage.Backend
	files    domain.FileRepository
	audit    *audit.Dispatcher
	log      *zap.Logger
	maxChunk int64
	idleTTL  time.Duration

	now   func() time.Time
	thumb func([]byte) ([]byte, error)
}

func NewManager(
	store domain.Store,
	backend storage.Backend,
	files domain.FileRepository,
	audit *audit.Dispatcher,
	log *zap.Logger,
	maxChunk int64,
	idleTTL time.Duration,
) *Manager {
	return &Manager{
		store:    store,
		backend:  backend,
		files:    files,
		audit:    audit,
		log:      log,
		maxChunk: maxChunk,
		idleTTL:  idleTTL,
		now:      timezone.Now,
		thumb:    imaging.Thumbnail,
	}
}

// ======================================================
// INIT
// ======================================================

func (m *Manager) Init(ctx context.Context, actor identity.Actor, in InitInput) (*InitResult, error) {
	policy, err := domain.PolicyFor(in.Directory)
	if err != nil {
		return nil, err
	}
	if err := policy.Check(in.FileSize, in.ContentType); err != nil {
		return nil, err
	}

	name := cleanName(in.FileName)
	if name == "" {
		return nil, httperr.Validation("invalid_file_name", "File name is required.", map[string]string{
			"fileName": "is required",
		})
	}
	if in.TotalChunks < 1 {
		return nil, httperr.Validation("invalid_chunk_count", "At least one chunk is required.", map[string]string{
			"totalChunks": "must be at least 1",
		})
	}
	if in.FileSize > int64(in.TotalChunks)*m.maxChunk {
		return nil, httperr.Validation("chunk_count_too_small", "Chunks would exceed the maximum chunk size.", map[string]string{
			"totalChunks": fmt.Sprintf("must be at least %d", (in.FileSize+m.maxChunk-1)/m.maxChunk),
		})
	}
	if int64(in.TotalChunks) > in.FileSize {
		return nil, httperr.Validation("chunk_count_too_large", "More chunks than bytes.", map[string]string{
			"totalChunks": "must not exceed fileSize",
		})
	}

	now := m.now()
	st := &domain.State{
		ID:           uuid.New(),
		OwnerID:      actor.ID,
		Directory:    in.Directory,
		FileName:     name,
		ContentType:  in.ContentType,
		FileSize:     in.FileSize,
		TotalChunks:  in.TotalChunks,
		CreatedAt:    now,
		LastActivity: now,
	}
	if err := m.store.Create(ctx, st); err != nil {
		return nil, err
	}

	return &InitResult{
		UploadID:     st.ID,
		TotalChunks:  st.TotalChunks,
		MaxChunkSize: m.maxChunk,
		ExpiresAfter: m.idleTTL.String(),
	}, nil
}

// ======================================================
// CHUNK / STATUS
// ======================================================

func (m *Manager) Chunk(ctx context.Context, actor identity.Actor, id uuid.UUID, index int, data []byte) (domain.Progress, error) {
	st, err := m.owned(ctx, actor, id)
	if err != nil {
		return domain.Progress{}, err
	}

	if index < 0 || index >= st.TotalChunks {
		return domain.Progress{}, httperr.Validation("invalid_chunk_index", "Chunk index out of range.", map[string]string{
			"chunkIndex": fmt.Sprintf("must be between 0 and %d", st.TotalChunks-1),
		})
	}
	if len(data) == 0 {
		return domain.Progress{}, httperr.Validation("empty_chunk", "Chunk is empty.", map[string]string{
			"chunk": "is required",
		})
	}
	if int64(len(data)) > m.maxChunk {
		return domain.Progress{}, httperr.Validation("chunk_too_large", "Chunk exceeds the maximum size.", map[string]string{
			"chunk": fmt.Sprintf("must be at most %d bytes", m.maxChunk),
		})
	}

	// a resent index replaces its earlier bytes
	var stored int64
	for i, n := range st.Received {
		if i != index {
			stored += int64(n)
		}
	}
	if stored+int64(len(data)) > st.FileSize {
		return domain.Progress{}, httperr.Validation("upload_size_exceeded", "Chunks exceed the declared file size.", map[string]string{
			"chunk": fmt.Sprintf("at most %d more bytes accepted", st.FileSize-stored),
		})
	}

	st, err = m.store.PutChunk(ctx, id, index, data, m.now())
	if err != nil {
		return domain.Progress{}, err
	}
	return st.Progress(), nil
}

func (m *Manager) Status(ctx context.Context, actor identity.Actor, id uuid.UUID) (domain.Progress, error) {
	st, err := m.owned(ctx, actor, id)
	if err != nil {
		return domain.Progress{}, err
	}
	return st.Progress(), nil
}

// ======================================================
// COMPLETE
// ======================================================

// Complete assembles the chunks, stores the object and records it. The
// upload state is evicted whatever the outcome.
func (m *Manager) Complete(ctx context.Context, actor identity.Actor, id uuid.UUID) (*models.FileRecord, error) {
	st, err := m.owned(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	defer m.evict(context.WithoutCancel(ctx), id)

	if len(st.Received) != st.TotalChunks || len(st.Missing()) > 0 {
		return nil, httperr.Validation(
			"missing_chunks",
			fmt.Sprintf("missing chunks: received %d/%d", len(st.Received), st.TotalChunks),
			nil,
		)
	}

	chunks, err := m.store.Chunks(ctx, id)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	buf.Grow(int(st.FileSize))
	for i := 0; i < st.TotalChunks; i++ {
		part, ok := chunks[i]
		if !ok {
			return nil, httperr.Validation(
				"missing_chunks",
				fmt.Sprintf("missing chunks: received %d/%d", len(chunks), st.TotalChunks),
				nil,
			)
		}
		buf.Write(part)
	}

	if int64(buf.Len()) != st.FileSize {
		return nil, httperr.Validation(
			"size_mismatch",
			fmt.Sprintf("size mismatch: assembled %d bytes, declared %d", buf.Len(), st.FileSize),
			nil,
		)
	}

	// --------------------------------------------------
	// Storage
	// --------------------------------------------------
	key := path.Join(st.Directory, st.OwnerID.String(), st.ID.String(), st.FileName)
	if err := m.backend.Put(ctx, key, st.ContentType, buf.Bytes()); err != nil {
		return nil, httperr.FromStore(err, "upload")
	}

	rec := &models.FileRecord{
		OwnerID:     st.OwnerID,
		Directory:   st.Directory,
		FileName:    st.FileName,
		ContentType: st.ContentType,
		Size:        st.FileSize,
		StorageKey:  key,
	}

	if policy, _ := domain.PolicyFor(st.Directory); policy.Thumbnail {
		rec.ThumbnailKey = m.storeThumbnail(ctx, key, buf.Bytes())
	}

	// --------------------------------------------------
	// Metadata row; roll the objects back if it fails
	// --------------------------------------------------
	if err := m.files.CreateFile(ctx, rec); err != nil {
		cleanup := context.WithoutCancel(ctx)
		for _, k := range []string{key, rec.ThumbnailKey} {
			if k == "" {
				continue
			}
			if derr := m.backend.Delete(cleanup, k); derr != nil {
				m.log.Error("orphaned upload object", zap.String("key", k), zap.Error(derr))
			}
		}
		return nil, err
	}

	m.audit.Dispatch(audit.Event{
		ActorID:  &actor.ID,
		Action:   "file_uploaded",
		Entity:   "file",
		EntityID: &rec.ID,
		Metadata: map[string]any{"directory": rec.Directory, "size": rec.Size},
	})

	return rec, nil
}

func (m *Manager) storeThumbnail(ctx context.Context, key string, body []byte) string {
	thumb, err := m.thumb(body)
	if err != nil {
		m.log.Warn("thumbnail skipped", zap.String("key", key), zap.Error(err))
		return ""
	}

	thumbKey := strings.TrimSuffix(key, path.Ext(key)) + ".thumb.webp"
	if err := m.backend.Put(ctx, thumbKey, imaging.ThumbnailContentType, thumb); err != nil {
		m.log.Warn("thumbnail upload failed", zap.String("key", thumbKey), zap.Error(err))
		return ""
	}
	return thumbKey
}

// ======================================================
// ABORT / SWEEP
// ======================================================

func (m *Manager) Abort(ctx context.Context, actor identity.Actor, id uuid.UUID) error {
	if _, err := m.owned(ctx, actor, id); err != nil {
		return err
	}
	return m.store.Delete(ctx, id)
}

// Sweep evicts uploads idle for longer than the idle TTL.
func (m *Manager) Sweep(ctx context.Context) (int, error) {
	return m.store.Sweep(ctx, m.now().Add(-m.idleTTL))
}

// RunSweeper sweeps every interval until ctx is cancelled.
func (m *Manager) RunSweeper(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := m.Sweep(ctx)
			if err != nil {
				m.log.Warn("upload sweep failed", zap.Error(err))
				continue
			}
			if n > 0 {
				m.log.Info("upload sweep", zap.Int("evicted", n))
			}
		}
	}
}

// owned hides uploads of other users behind not_found.
func (m *Manager) owned(ctx context.Context, actor identity.Actor, id uuid.UUID) (*domain.State, error) {
	st, err := m.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if st.OwnerID != actor.ID {
		return nil, errNotFound()
	}
	return st, nil
}

func (m *Manager) evict(ctx context.Context, id uuid.UUID) {
	if err := m.store.Delete(ctx, id); err != nil {
		m.log.Warn("upload eviction failed", zap.String("upload_id", id.String()), zap.Error(err))
	}
}

func cleanName(name string) string {
	name = path.Base(strings.ReplaceAll(strings.TrimSpace(name), "\\", "/"))
	if name == "." || name == "/" || name == ".." {
		return ""
	}
	return strings.Map(func(r rune) rune {
		if r < 0x20 || r == 0x7f {
			return -1
		}
		return r
	}, name)
}
