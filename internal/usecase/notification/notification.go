package notification

import (
	"context"

	"github.com/google/uuid"

	domain "github.com/BruksfildServices01/coach-platform/internal/domain/notification"
	"github.com/BruksfildServices01/coach-platform/internal/identity"
	"github.com/BruksfildServices01/coach-platform/internal/models"
	"github.com/BruksfildServices01/coach-platform/internal/timezone"
)

type ListNotifications struct {
	repo domain.Repository
}

func NewListNotifications(repo domain.Repository) *ListNotifications {
	return &ListNotifications{repo: repo}
}

func (uc *ListNotifications) Execute(
	ctx context.Context,
	actor identity.Actor,
	unreadOnly bool,
) ([]models.Notification, error) {
	return uc.repo.ListNotifications(ctx, actor.ID, unreadOnly, domain.ListLimit)
}

type MarkRead struct {
	repo domain.Repository
}

func NewMarkRead(repo domain.Repository) *MarkRead {
	return &MarkRead{repo: repo}
}

func (uc *MarkRead) Execute(
	ctx context.Context,
	actor identity.Actor,
	id uuid.UUID,
) (*models.Notification, error) {
	return uc.repo.MarkRead(ctx, id, actor.ID, timezone.Now())
}
