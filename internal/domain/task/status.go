package task

import (
	"github.com/BruksfildServices01/coach-platform/internal/httperr"
)

// ===============================
// Instance Status
// ===============================

type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
)

func InitialStatus() Status {
	return StatusPending
}

func ParseStatus(s string) (Status, error) {
	switch st := Status(s); st {
	case StatusPending, StatusInProgress, StatusCompleted:
		return st, nil
	}
	return "", httperr.Validation("invalid_status", "Unknown task status.", map[string]string{
		"status": "must be one of pending, in_progress, completed",
	})
}
