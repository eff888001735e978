package handlers

import (
	"bytes"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/coach-platform/internal/domain/auditlog"
	"github.com/BruksfildServices01/coach-platform/internal/httperr"
	"github.com/BruksfildServices01/coach-platform/internal/httpresp"
	ucAuditLog "github.com/BruksfildServices01/coach-platform/internal/usecase/auditlog"
)

// ======================================================
// HANDLER
// ======================================================

type AuditLogsHandler struct {
	list   *ucAuditLog.ListAuditLogs
	export *ucAuditLog.ExportAuditLogs
}

func NewAuditLogsHandler(list *ucAuditLog.ListAuditLogs, export *ucAuditLog.ExportAuditLogs) *AuditLogsHandler {
	return &AuditLogsHandler{list: list, export: export}
}

// filter reads action, entity, from and to. from/to accept a day
// (YYYY-MM-DD, "to" inclusive) or an RFC3339 instant.
func (h *AuditLogsHandler) filter(c *gin.Context) (domain.Filter, error) {
	f := domain.Filter{
		Action: c.Query("action"),
		Entity: c.Query("entity"),
	}

	var err error
	if f.From, err = timeQuery(c, "from", false); err != nil {
		return f, err
	}
	if f.To, err = timeQuery(c, "to", true); err != nil {
		return f, err
	}
	return f, nil
}

func (h *AuditLogsHandler) List(c *gin.Context) {
	actor, ok := actorOf(c)
	if !ok {
		return
	}

	f, err := h.filter(c)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	page := intQuery(c, "page", 1)
	if page <= 0 {
		page = 1
	}
	f.Limit = intQuery(c, "limit", domain.DefaultPageSize)
	if f.Limit <= 0 || f.Limit > domain.MaxPageSize {
		f.Limit = domain.DefaultPageSize
	}
	f.Offset = (page - 1) * f.Limit

	out, err := h.list.Execute(c.Request.Context(), actor, f)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, out)
}

// Export answers with a CSV attachment. The body is buffered so a failure
// half way still produces a JSON error instead of a truncated file.
func (h *AuditLogsHandler) Export(c *gin.Context) {
	actor, ok := actorOf(c)
	if !ok {
		return
	}

	f, err := h.filter(c)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	var buf bytes.Buffer
	if err := h.export.Execute(c.Request.Context(), actor, f, &buf); err != nil {
		httperr.Respond(c, err)
		return
	}

	name := "audit-logs-" + time.Now().UTC().Format("20060102") + ".csv"
	c.Header("Content-Disposition", `attachment; filename="`+name+`"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}
