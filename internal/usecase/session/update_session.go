package session

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/coach-platform/internal/audit"
	"github.com/BruksfildServices01/coach-platform/internal/config"
	domain "github.com/BruksfildServices01/coach-platform/internal/domain/session"
	"github.com/BruksfildServices01/coach-platform/internal/httperr"
	"github.com/BruksfildServices01/coach-platform/internal/identity"
	"github.com/BruksfildServices01/coach-platform/internal/models"
	"github.com/BruksfildServices01/coach-platform/internal/timezone"
)

// UpdateSessionInput carries only the fields the caller sent.
type UpdateSessionInput struct {
	Status          *string
	ScheduledAt     *time.Time
	DurationMinutes *int
	MeetingURL      *string
	Timezone        *string
	Notes           *string

	RequestID        *uuid.UUID
	RescheduleReason string
}

type UpdateSession struct {
	repo        domain.Repository
	audit       *audit.Dispatcher
	transitions string
}

func NewUpdateSession(
	repo domain.Repository,
	audit *audit.Dispatcher,
	transitions string,
) *UpdateSession {
	return &UpdateSession{
		repo:        repo,
		audit:       audit,
		transitions: transitions,
	}
}

func (uc *UpdateSession) Execute(
	ctx context.Context,
	actor identity.Actor,
	sessionID uuid.UUID,
	in UpdateSessionInput,
) (*models.Session, error) {

	// Clients never mutate sessions, whatever they send.
	if !actor.IsStaff() {
		return nil, httperr.Forbidden("forbidden")
	}

	current, err := uc.repo.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if actor.IsCoach() && current.CoachID != actor.ID {
		return nil, httperr.Forbidden("not_session_coach")
	}

	// --------------------------------------------------
	// Partial update
	// --------------------------------------------------
	fields := map[string]any{}

	if in.Status != nil {
		next, err := domain.ParseStatus(*in.Status)
		if err != nil {
			return nil, err
		}
		if uc.transitions == config.TransitionsStrict {
			if err := domain.CanTransition(domain.Status(current.Status), next); err != nil {
				return nil, err
			}
		}
		fields["status"] = string(next)
	}
	if in.ScheduledAt != nil {
		fields["scheduled_at"] = in.ScheduledAt.UTC()
	}
	if in.DurationMinutes != nil {
		if *in.DurationMinutes <= 0 {
			return nil, httperr.Validation("invalid_duration", "Duration must be positive.", map[string]string{
				"duration_minutes": "must be greater than 0",
			})
		}
		fields["duration_minutes"] = *in.DurationMinutes
	}
	if in.MeetingURL != nil {
		fields["meeting_url"] = *in.MeetingURL
	}
	if in.Timezone != nil {
		if !timezone.IsValid(*in.Timezone) {
			return nil, httperr.Validation("invalid_timezone", "Unknown timezone.", map[string]string{
				"timezone": "must be an IANA zone name",
			})
		}
		fields["timezone"] = *in.Timezone
	}
	if in.Notes != nil {
		fields["notes"] = *in.Notes
	}

	// Load the linked request before writing so a bad id leaves the
	// session untouched.
	var linked *models.SessionRequest
	if in.RequestID != nil {
		linked, err = uc.repo.GetRequest(ctx, *in.RequestID)
		if err != nil {
			return nil, err
		}
		if linked.CoachID != current.CoachID || linked.ClientID != current.ClientID {
			return nil, httperr.Validation("request_mismatch", "Request belongs to other participants.", map[string]string{
				"request_id": "must match the session's coach and client",
			})
		}
		if err := domain.Approve(linked, current.ID); err != nil {
			return nil, err
		}
	}

	updated := current
	if len(fields) > 0 {
		updated, err = uc.repo.UpdateSession(ctx, sessionID, fields)
		if err != nil {
			return nil, err
		}
	}

	// --------------------------------------------------
	// Request bookkeeping
	// --------------------------------------------------
	switch {
	case linked != nil:
		if err := uc.repo.UpdateRequest(ctx, linked); err != nil {
			return nil, err
		}
	case in.RescheduleReason != "":
		trail := domain.RequestFor(updated, actor.ID, in.RescheduleReason)
		if err := uc.repo.CreateRequest(ctx, trail); err != nil {
			return nil, err
		}
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  &actor.ID,
		Action:   "session_updated",
		Entity:   "session",
		EntityID: &updated.ID,
		Metadata: map[string]any{
			"fields":            keys(fields),
			"reschedule_reason": in.RescheduleReason,
		},
	})

	return updated, nil
}

func keys(m map[string]any) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
