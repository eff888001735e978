package auditlog

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/coach-platform/internal/models"
)

const (
	DefaultPageSize = 50
	MaxPageSize     = 200
	// ExportLimit caps a single CSV export.
	ExportLimit = 10000
)

type Filter struct {
	ActorID *uuid.UUID
	Action  string
	Entity  string
	From    *time.Time
	To      *time.Time
	Limit   int
	Offset  int
}

type Repository interface {
	// ListAuditLogs returns one page, newest first, and the total count
	// matching the filter.
	ListAuditLogs(ctx context.Context, f Filter) ([]models.AuditLog, int64, error)
}
