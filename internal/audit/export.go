package audit

import (
	"bufio"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/coach-platform/internal/models"
)

var csvHeader = []string{"id", "created_at", "actor_id", "action", "entity", "entity_id", "metadata"}

// WriteCSV renders logs with every field quoted. Commas inside the JSON
// metadata become semicolons so spreadsheet imports keep one column.
func WriteCSV(w io.Writer, logs []models.AuditLog) error {
	bw := bufio.NewWriter(w)

	if err := writeRow(bw, csvHeader); err != nil {
		return err
	}

	for _, l := range logs {
		row := []string{
			l.ID.String(),
			l.CreatedAt.UTC().Format(time.RFC3339),
			optionalID(l.ActorID),
			l.Action,
			l.Entity,
			optionalID(l.EntityID),
			strings.ReplaceAll(l.Metadata, ",", ";"),
		}
		if err := writeRow(bw, row); err != nil {
			return err
		}
	}

	return bw.Flush()
}

func writeRow(w *bufio.Writer, fields []string) error {
	for i, f := range fields {
		if i > 0 {
			if err := w.WriteByte(','); err != nil {
				return err
			}
		}
		if _, err := w.WriteString(`"` + strings.ReplaceAll(f, `"`, `""`) + `"`); err != nil {
			return err
		}
	}
	_, err := w.WriteString("\r\n")
	return err
}

func optionalID(id *uuid.UUID) string {
	if id == nil {
		return ""
	}
	return id.String()
}
