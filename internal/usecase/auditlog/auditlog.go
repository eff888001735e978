package auditlog

import (
	"context"
	"io"

	"github.com/BruksfildServices01/coach-platform/internal/audit"
	domain "github.com/BruksfildServices01/coach-platform/internal/domain/auditlog"
	"github.com/BruksfildServices01/coach-platform/internal/httperr"
	"github.com/BruksfildServices01/coach-platform/internal/identity"
	"github.com/BruksfildServices01/coach-platform/internal/models"
)

type Page struct {
	Items  []models.AuditLog `json:"items"`
	Total  int64             `json:"total"`
	Limit  int               `json:"limit"`
	Offset int               `json:"offset"`
}

// scoped applies role rules: admins read everything, coaches only their
// own actions, clients nothing.
func scoped(actor identity.Actor, f domain.Filter) (domain.Filter, error) {
	switch {
	case actor.IsAdmin():
	case actor.IsCoach():
		id := actor.ID
		f.ActorID = &id
	default:
		return f, httperr.Forbidden("forbidden")
	}

	if f.From != nil && f.To != nil && f.To.Before(*f.From) {
		return f, httperr.Validation("invalid_window", "from must be before to.", map[string]string{
			"to": "must be after from",
		})
	}
	return f, nil
}

// ======================================================
// LIST
// ======================================================

type ListAuditLogs struct {
	repo domain.Repository
}

func NewListAuditLogs(repo domain.Repository) *ListAuditLogs {
	return &ListAuditLogs{repo: repo}
}

func (uc *ListAuditLogs) Execute(ctx context.Context, actor identity.Actor, f domain.Filter) (*Page, error) {
	f, err := scoped(actor, f)
	if err != nil {
		return nil, err
	}

	if f.Limit <= 0 {
		f.Limit = domain.DefaultPageSize
	}
	if f.Limit > domain.MaxPageSize {
		f.Limit = domain.MaxPageSize
	}
	if f.Offset < 0 {
		f.Offset = 0
	}

	logs, total, err := uc.repo.ListAuditLogs(ctx, f)
	if err != nil {
		return nil, err
	}
	if logs == nil {
		logs = []models.AuditLog{}
	}

	return &Page{Items: logs, Total: total, Limit: f.Limit, Offset: f.Offset}, nil
}

// ======================================================
// EXPORT
// ======================================================

type ExportAuditLogs struct {
	repo domain.Repository
}

func NewExportAuditLogs(repo domain.Repository) *ExportAuditLogs {
	return &ExportAuditLogs{repo: repo}
}

// Execute writes the matching logs as CSV, newest first, up to
// domain.ExportLimit rows.
func (uc *ExportAuditLogs) Execute(ctx context.Context, actor identity.Actor, f domain.Filter, w io.Writer) error {
	f, err := scoped(actor, f)
	if err != nil {
		return err
	}
	f.Limit = domain.ExportLimit
	f.Offset = 0

	logs, _, err := uc.repo.ListAuditLogs(ctx, f)
	if err != nil {
		return err
	}
	return audit.WriteCSV(w, logs)
}
