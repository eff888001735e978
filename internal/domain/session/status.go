package session

import (
	"github.com/BruksfildServices01/coach-platform/internal/httperr"
)

// ===============================
// Session Status
// ===============================

type Status string

const (
	StatusScheduled  Status = "scheduled"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
	StatusNoShow     Status = "no_show"
)

var transitions = map[Status][]Status{
	StatusScheduled: {StatusInProgress, StatusCompleted, StatusCancelled, StatusNoShow},
}

func ParseStatus(s string) (Status, error) {
	switch st := Status(s); st {
	case StatusScheduled, StatusInProgress, StatusCompleted, StatusCancelled, StatusNoShow:
		return st, nil
	}
	return "", httperr.Validation("invalid_status", "Unknown session status.", map[string]string{
		"status": "must be one of scheduled, in_progress, completed, cancelled, no_show",
	})
}

// CanTransition checks the lifecycle table. Keeping the same status is
// always allowed.
func CanTransition(from, to Status) error {
	if from == to {
		return nil
	}
	for _, next := range transitions[from] {
		if next == to {
			return nil
		}
	}
	return httperr.Conflict("invalid_state", "Session cannot move from "+string(from)+" to "+string(to)+".")
}

func InitialStatus() Status {
	return StatusScheduled
}

// ===============================
// Request Status
// ===============================

type RequestStatus string

const (
	RequestPending  RequestStatus = "pending"
	RequestApproved RequestStatus = "approved"
	RequestDeclined RequestStatus = "declined"
)
