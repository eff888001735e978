package session

import (
	"github.com/google/uuid"

	"github.com/BruksfildServices01/coach-platform/internal/httperr"
	"github.com/BruksfildServices01/coach-platform/internal/models"
)

// ===============================
// Request actions
// ===============================

// Approve links a pending request to its session. Approved and declined
// requests are terminal.
func Approve(req *models.SessionRequest, sessionID uuid.UUID) error {
	if RequestStatus(req.Status) != RequestPending {
		return httperr.Conflict("request_not_pending", "Request was already handled.")
	}
	if sessionID == uuid.Nil {
		return httperr.Validation("missing_session", "Approved requests need a session.", nil)
	}

	req.Status = string(RequestApproved)
	req.SessionID = &sessionID
	return nil
}

func Decline(req *models.SessionRequest, reason string) error {
	if RequestStatus(req.Status) != RequestPending {
		return httperr.Conflict("request_not_pending", "Request was already handled.")
	}

	req.Status = string(RequestDeclined)
	req.DeclineReason = reason
	return nil
}

// CheckRequest enforces: approved implies a session id, pending implies none.
func CheckRequest(req *models.SessionRequest) error {
	switch RequestStatus(req.Status) {
	case RequestApproved:
		if req.SessionID == nil || *req.SessionID == uuid.Nil {
			return httperr.Internal(nil, "approved_request_without_session")
		}
	case RequestPending:
		if req.SessionID != nil {
			return httperr.Internal(nil, "pending_request_with_session")
		}
	case RequestDeclined:
	default:
		return httperr.Validation("invalid_request_status", "Unknown request status.", nil)
	}
	return nil
}

// RequestFor builds the approved audit-trail request matching a session.
func RequestFor(s *models.Session, requestedBy uuid.UUID, rescheduleReason string) *models.SessionRequest {
	id := s.ID
	return &models.SessionRequest{
		CoachID:          s.CoachID,
		ClientID:         s.ClientID,
		SessionID:        &id,
		RequestedBy:      requestedBy,
		RequestedAt:      s.ScheduledAt,
		DurationMinutes:  s.DurationMinutes,
		Status:           string(RequestApproved),
		RescheduleReason: rescheduleReason,
	}
}
