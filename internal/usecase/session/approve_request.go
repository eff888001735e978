package session

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/coach-platform/internal/audit"
	domain "github.com/BruksfildServices01/coach-platform/internal/domain/session"
	"github.com/BruksfildServices01/coach-platform/internal/httperr"
	"github.com/BruksfildServices01/coach-platform/internal/identity"
	"github.com/BruksfildServices01/coach-platform/internal/models"
	"github.com/BruksfildServices01/coach-platform/internal/notify"
	"github.com/BruksfildServices01/coach-platform/internal/timezone"
)

type ApproveRequestInput struct {
	Title      string
	MeetingURL string
	Timezone   string
	Notes      string
}

type ApproveRequest struct {
	repo   domain.Repository
	audit  *audit.Dispatcher
	notify *notify.Notifier
}

func NewApproveRequest(
	repo domain.Repository,
	audit *audit.Dispatcher,
	notifier *notify.Notifier,
) *ApproveRequest {
	return &ApproveRequest{
		repo:   repo,
		audit:  audit,
		notify: notifier,
	}
}

// Execute promotes a pending request into a scheduled session.
func (uc *ApproveRequest) Execute(
	ctx context.Context,
	actor identity.Actor,
	requestID uuid.UUID,
	in ApproveRequestInput,
) (*CreateRequestResult, error) {

	req, err := loadForStaff(ctx, uc.repo, actor, requestID)
	if err != nil {
		return nil, err
	}
	if domain.RequestStatus(req.Status) != domain.RequestPending {
		return nil, httperr.Conflict("request_not_pending", "Request was already handled.")
	}

	tz := in.Timezone
	if tz == "" {
		if client, err := uc.repo.GetUser(ctx, req.ClientID); err == nil {
			tz = client.Timezone
		}
	}

	s := &models.Session{
		CoachID:         req.CoachID,
		ClientID:        req.ClientID,
		Title:           in.Title,
		ScheduledAt:     req.RequestedAt,
		DurationMinutes: req.DurationMinutes,
		Status:          string(domain.InitialStatus()),
		MeetingURL:      in.MeetingURL,
		Timezone:        timezone.OrDefault(tz, timezone.DefaultTimezone),
		Notes:           in.Notes,
	}

	// PromoteRequest assigns the session id and runs domain.Approve
	// inside the same transaction.
	if err := uc.repo.PromoteRequest(ctx, s, req); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  &actor.ID,
		Action:   "session_request_approved",
		Entity:   "session_request",
		EntityID: &req.ID,
		Metadata: map[string]any{"session_id": s.ID},
	})

	uc.notify.Notify(ctx, notify.Notice{
		UserID:   req.ClientID,
		Kind:     notify.KindRequestApproved,
		Title:    "Session request approved",
		Body:     "Your session on " + s.ScheduledAt.Format(time.RFC1123) + " is confirmed.",
		EntityID: &s.ID,
	})

	return &CreateRequestResult{Request: req, Session: s}, nil
}

// loadForStaff fetches a request the actor may act on as coach or admin.
func loadForStaff(
	ctx context.Context,
	repo domain.Repository,
	actor identity.Actor,
	requestID uuid.UUID,
) (*models.SessionRequest, error) {

	if !actor.IsStaff() {
		return nil, httperr.Forbidden("forbidden")
	}

	req, err := repo.GetRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if actor.IsCoach() && req.CoachID != actor.ID {
		return nil, httperr.Forbidden("not_request_coach")
	}
	return req, nil
}
