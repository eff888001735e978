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

// ======================================================
// INPUT
// ======================================================

type CreateRequestInput struct {
	CoachID  uuid.UUID
	ClientID uuid.UUID

	RequestedAt     time.Time
	DurationMinutes int
	Message         string

	// Used only when staff schedule directly.
	Title      string
	MeetingURL string
	Timezone   string
	Notes      string
}

type CreateRequestResult struct {
	Request *models.SessionRequest `json:"request"`
	Session *models.Session        `json:"session,omitempty"`
}

// ======================================================
// USE CASE
// ======================================================

type CreateRequest struct {
	repo   domain.Repository
	audit  *audit.Dispatcher
	notify *notify.Notifier
	now    func() time.Time
}

func NewCreateRequest(
	repo domain.Repository,
	audit *audit.Dispatcher,
	notifier *notify.Notifier,
) *CreateRequest {
	return &CreateRequest{
		repo:   repo,
		audit:  audit,
		notify: notifier,
		now:    timezone.Now,
	}
}

// Execute lets a client propose a session (pending request) while coaches
// and admins schedule directly: a session plus an approved request pointing
// at it, written together.
func (uc *CreateRequest) Execute(
	ctx context.Context,
	actor identity.Actor,
	in CreateRequestInput,
) (*CreateRequestResult, error) {

	if in.DurationMinutes <= 0 {
		return nil, httperr.Validation("invalid_duration", "Duration must be positive.", map[string]string{
			"duration_minutes": "must be greater than 0",
		})
	}
	if in.RequestedAt.IsZero() {
		return nil, httperr.Validation("invalid_time", "Requested time is required.", map[string]string{
			"requested_at": "is required",
		})
	}

	// --------------------------------------------------
	// Participants by role
	// --------------------------------------------------
	switch {
	case actor.IsClient():
		in.ClientID = actor.ID
		if in.CoachID == uuid.Nil {
			return nil, httperr.Validation("missing_coach", "Coach is required.", map[string]string{
				"coach_id": "is required",
			})
		}
	case actor.IsCoach():
		in.CoachID = actor.ID
		if in.ClientID == uuid.Nil {
			return nil, httperr.Validation("missing_client", "Client is required.", map[string]string{
				"client_id": "is required",
			})
		}
	case actor.IsAdmin():
		if in.CoachID == uuid.Nil || in.ClientID == uuid.Nil {
			return nil, httperr.Validation("missing_participants", "Coach and client are required.", map[string]string{
				"coach_id":  "is required",
				"client_id": "is required",
			})
		}
	default:
		return nil, httperr.Forbidden("forbidden")
	}

	if actor.IsClient() {
		return uc.propose(ctx, actor, in)
	}
	return uc.schedule(ctx, actor, in)
}

func (uc *CreateRequest) propose(
	ctx context.Context,
	actor identity.Actor,
	in CreateRequestInput,
) (*CreateRequestResult, error) {

	if in.RequestedAt.Before(uc.now()) {
		return nil, httperr.Validation("time_in_past", "Requested time is in the past.", map[string]string{
			"requested_at": "must be in the future",
		})
	}

	coach, err := uc.repo.GetUser(ctx, in.CoachID)
	if err != nil {
		return nil, err
	}
	if identity.Role(coach.Role) != identity.RoleCoach {
		return nil, httperr.Validation("not_a_coach", "Selected user is not a coach.", map[string]string{
			"coach_id": "must reference a coach",
		})
	}

	req := &models.SessionRequest{
		CoachID:         in.CoachID,
		ClientID:        in.ClientID,
		RequestedBy:     actor.ID,
		RequestedAt:     in.RequestedAt.UTC(),
		DurationMinutes: in.DurationMinutes,
		Message:         in.Message,
		Status:          string(domain.RequestPending),
	}

	if err := uc.repo.CreateRequest(ctx, req); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  &actor.ID,
		Action:   "session_request_created",
		Entity:   "session_request",
		EntityID: &req.ID,
	})

	uc.notify.Notify(ctx, notify.Notice{
		UserID:   req.CoachID,
		Kind:     notify.KindSessionRequested,
		Title:    "New session request",
		Body:     "A client requested a session on " + req.RequestedAt.Format(time.RFC1123) + ".",
		EntityID: &req.ID,
	})

	return &CreateRequestResult{Request: req}, nil
}

func (uc *CreateRequest) schedule(
	ctx context.Context,
	actor identity.Actor,
	in CreateRequestInput,
) (*CreateRequestResult, error) {

	s := &models.Session{
		CoachID:         in.CoachID,
		ClientID:        in.ClientID,
		Title:           in.Title,
		ScheduledAt:     in.RequestedAt.UTC(),
		DurationMinutes: in.DurationMinutes,
		Status:          string(domain.InitialStatus()),
		MeetingURL:      in.MeetingURL,
		Timezone:        timezone.OrDefault(in.Timezone, timezone.DefaultTimezone),
		Notes:           in.Notes,
	}

	req := &models.SessionRequest{
		CoachID:         in.CoachID,
		ClientID:        in.ClientID,
		RequestedBy:     actor.ID,
		RequestedAt:     s.ScheduledAt,
		DurationMinutes: in.DurationMinutes,
		Message:         in.Message,
		Status:          string(domain.RequestApproved),
	}

	if err := uc.repo.CreateSessionWithRequest(ctx, s, req); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  &actor.ID,
		Action:   "session_created",
		Entity:   "session",
		EntityID: &s.ID,
		Metadata: map[string]any{"request_id": req.ID},
	})

	uc.notify.Notify(ctx, notify.Notice{
		UserID:   s.ClientID,
		Kind:     notify.KindSessionScheduled,
		Title:    "Session scheduled",
		Body:     "A session was scheduled on " + s.ScheduledAt.Format(time.RFC1123) + ".",
		EntityID: &s.ID,
	})

	return &CreateRequestResult{Request: req, Session: s}, nil
}
