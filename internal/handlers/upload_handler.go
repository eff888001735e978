package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/BruksfildServices01/coach-platform/internal/httperr"
	"github.com/BruksfildServices01/coach-platform/internal/httpresp"
	"github.com/BruksfildServices01/coach-platform/internal/upload"
	"github.com/BruksfildServices01/coach-platform/internal/validators"
)

// ======================================================
// HANDLER
// ======================================================

type UploadHandler struct {
	uploads  *upload.Manager
	maxChunk int64
}

func NewUploadHandler(uploads *upload.Manager, maxChunk int64) *UploadHandler {
	return &UploadHandler{uploads: uploads, maxChunk: maxChunk}
}

// ======================================================
// REQUESTS
// ======================================================

type InitUploadRequest struct {
	FileName    string `json:"fileName" binding:"required,notblank,max=255"`
	FileSize    int64  `json:"fileSize" binding:"required,gt=0"`
	ContentType string `json:"contentType" binding:"required"`
	Directory   string `json:"directory" binding:"required"`
	TotalChunks int    `json:"totalChunks" binding:"required,gt=0"`
}

// ChunkMetadata is the JSON carried in the "metadata" multipart field.
type ChunkMetadata struct {
	UploadID   uuid.UUID `json:"uploadId"`
	ChunkIndex *int      `json:"chunkIndex"`
}

type CompleteUploadRequest struct {
	UploadID uuid.UUID `json:"uploadId" binding:"required"`
}

// ======================================================
// INIT
// ======================================================

func (h *UploadHandler) Init(c *gin.Context) {
	actor, ok := actorOf(c)
	if !ok {
		return
	}

	var req InitUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Respond(c, validators.BindError(err))
		return
	}

	out, err := h.uploads.Init(c.Request.Context(), actor, upload.InitInput{
		FileName:    req.FileName,
		FileSize:    req.FileSize,
		ContentType: req.ContentType,
		Directory:   req.Directory,
		TotalChunks: req.TotalChunks,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.Created(c, out)
}

// ======================================================
// CHUNK
// ======================================================

func (h *UploadHandler) Chunk(c *gin.Context) {
	actor, ok := actorOf(c)
	if !ok {
		return
	}

	var meta ChunkMetadata
	if err := json.Unmarshal([]byte(c.PostForm("metadata")), &meta); err != nil || meta.UploadID == uuid.Nil || meta.ChunkIndex == nil {
		httperr.Respond(c, httperr.Validation("invalid_metadata", "Invalid chunk metadata.", map[string]string{
			"metadata": "must be JSON with uploadId and chunkIndex",
		}))
		return
	}

	fh, err := c.FormFile("chunk")
	if err != nil {
		httperr.Respond(c, httperr.Validation("missing_chunk", "Chunk is required.", map[string]string{
			"chunk": "is required",
		}))
		return
	}
	f, err := fh.Open()
	if err != nil {
		httperr.Respond(c, httperr.Internal(err, "chunk_read_failed"))
		return
	}
	defer f.Close()

	// one byte past the limit lets the manager report the oversize chunk
	data, err := io.ReadAll(io.LimitReader(f, h.maxChunk+1))
	if err != nil {
		httperr.Respond(c, httperr.Internal(err, "chunk_read_failed"))
		return
	}

	progress, err := h.uploads.Chunk(c.Request.Context(), actor, meta.UploadID, *meta.ChunkIndex, data)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, progress)
}

// ======================================================
// STATUS / COMPLETE / ABORT
// ======================================================

func (h *UploadHandler) Status(c *gin.Context) {
	actor, ok := actorOf(c)
	if !ok {
		return
	}
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	progress, err := h.uploads.Status(c.Request.Context(), actor, id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, progress)
}

func (h *UploadHandler) Complete(c *gin.Context) {
	actor, ok := actorOf(c)
	if !ok {
		return
	}

	var req CompleteUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Respond(c, validators.BindError(err))
		return
	}

	file, err := h.uploads.Complete(c.Request.Context(), actor, req.UploadID)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.Created(c, file)
}

func (h *UploadHandler) Abort(c *gin.Context) {
	actor, ok := actorOf(c)
	if !ok {
		return
	}
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	if err := h.uploads.Abort(c.Request.Context(), actor, id); err != nil {
		httperr.Respond(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
