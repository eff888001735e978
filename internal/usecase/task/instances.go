package task

import (
	"context"

	"github.com/google/uuid"

	domain "github.com/BruksfildServices01/coach-platform/internal/domain/task"
	"github.com/BruksfildServices01/coach-platform/internal/identity"
	"github.com/BruksfildServices01/coach-platform/internal/models"
)

type InstanceQuery struct {
	ClientID uuid.UUID
	TaskID   uuid.UUID
	Status   string
}

type ListInstances struct {
	repo domain.Repository
}

func NewListInstances(repo domain.Repository) *ListInstances {
	return &ListInstances{repo: repo}
}

// Execute lists instances the actor takes part in: clients see their own,
// coaches those of their tasks and admins everything.
func (uc *ListInstances) Execute(
	ctx context.Context,
	actor identity.Actor,
	q InstanceQuery,
) ([]models.TaskInstance, error) {

	f := domain.InstanceFilter{
		ClientID: q.ClientID,
		TaskID:   q.TaskID,
	}

	if q.Status != "" {
		st, err := domain.ParseStatus(q.Status)
		if err != nil {
			return nil, err
		}
		f.Status = string(st)
	}

	switch {
	case actor.IsClient():
		f.ClientID = actor.ID
	case actor.IsCoach():
		f.CoachID = actor.ID
	}

	return uc.repo.ListInstances(ctx, f)
}
