package analytics

import (
	"context"

	domain "github.com/BruksfildServices01/coach-platform/internal/domain/analytics"
	"github.com/BruksfildServices01/coach-platform/internal/identity"
)

type Overview struct {
	repo domain.Repository
}

func NewOverview(repo domain.Repository) *Overview {
	return &Overview{repo: repo}
}

func (uc *Overview) Execute(ctx context.Context, actor identity.Actor) (*domain.Overview, error) {
	scope := domain.Scope{ActorID: actor.ID, All: actor.IsAdmin()}

	sessions, err := uc.repo.SessionsByStatus(ctx, scope)
	if err != nil {
		return nil, err
	}
	pending, err := uc.repo.PendingRequests(ctx, scope)
	if err != nil {
		return nil, err
	}
	instances, err := uc.repo.InstancesByStatus(ctx, scope)
	if err != nil {
		return nil, err
	}

	return &domain.Overview{
		SessionsByStatus:  sessions,
		PendingRequests:   pending,
		InstancesByStatus: instances,
		CompletionRate:    domain.CompletionRate(instances),
	}, nil
}
