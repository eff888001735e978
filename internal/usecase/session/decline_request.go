package session

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/coach-platform/internal/audit"
	domain "github.com/BruksfildServices01/coach-platform/internal/domain/session"
	"github.com/BruksfildServices01/coach-platform/internal/httperr"
	"github.com/BruksfildServices01/coach-platform/internal/identity"
	"github.com/BruksfildServices01/coach-platform/internal/models"
	"github.com/BruksfildServices01/coach-platform/internal/notify"
)

type DeclineRequest struct {
	repo   domain.Repository
	audit  *audit.Dispatcher
	notify *notify.Notifier
}

func NewDeclineRequest(
	repo domain.Repository,
	audit *audit.Dispatcher,
	notifier *notify.Notifier,
) *DeclineRequest {
	return &DeclineRequest{
		repo:   repo,
		audit:  audit,
		notify: notifier,
	}
}

func (uc *DeclineRequest) Execute(
	ctx context.Context,
	actor identity.Actor,
	requestID uuid.UUID,
	reason string,
) (*models.SessionRequest, error) {

	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, httperr.Validation("missing_reason", "A decline reason is required.", map[string]string{
			"reason": "is required",
		})
	}

	req, err := loadForStaff(ctx, uc.repo, actor, requestID)
	if err != nil {
		return nil, err
	}

	if err := domain.Decline(req, reason); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateRequest(ctx, req); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  &actor.ID,
		Action:   "session_request_declined",
		Entity:   "session_request",
		EntityID: &req.ID,
		Metadata: map[string]any{"reason": reason},
	})

	uc.notify.Notify(ctx, notify.Notice{
		UserID:   req.ClientID,
		Kind:     notify.KindRequestDeclined,
		Title:    "Session request declined",
		Body:     reason,
		EntityID: &req.ID,
	})

	return req, nil
}
