package session

import (
	"context"

	domain "github.com/BruksfildServices01/coach-platform/internal/domain/session"
	"github.com/BruksfildServices01/coach-platform/internal/identity"
	"github.com/BruksfildServices01/coach-platform/internal/models"
)

type ListRequests struct {
	repo domain.Repository
}

func NewListRequests(repo domain.Repository) *ListRequests {
	return &ListRequests{repo: repo}
}

// Execute returns the newest requests where the actor is coach, client or
// requester.
func (uc *ListRequests) Execute(
	ctx context.Context,
	actor identity.Actor,
) ([]models.SessionRequest, error) {
	return uc.repo.ListRequests(
		ctx,
		domain.Scope{ActorID: actor.ID, All: actor.IsAdmin()},
		domain.RequestListLimit,
	)
}
