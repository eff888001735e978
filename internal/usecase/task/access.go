package task

import (
	"context"

	"github.com/google/uuid"

	domain "github.com/BruksfildServices01/coach-platform/internal/domain/task"
	"github.com/BruksfildServices01/coach-platform/internal/httperr"
	"github.com/BruksfildServices01/coach-platform/internal/identity"
	"github.com/BruksfildServices01/coach-platform/internal/models"
)

func scopeOf(actor identity.Actor) domain.Scope {
	return domain.Scope{CoachID: actor.ID, All: actor.IsAdmin()}
}

// ownedTask loads a task the actor may manage: its coach, or an admin.
func ownedTask(
	ctx context.Context,
	repo domain.Repository,
	actor identity.Actor,
	taskID uuid.UUID,
) (*models.Task, error) {

	if !actor.IsStaff() {
		return nil, httperr.Forbidden("forbidden")
	}

	t, err := repo.GetTask(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if actor.IsCoach() && t.CoachID != actor.ID {
		return nil, httperr.Forbidden("not_task_owner")
	}
	return t, nil
}

// visibleInstance loads an instance the actor takes part in.
func visibleInstance(
	ctx context.Context,
	repo domain.Repository,
	actor identity.Actor,
	instanceID uuid.UUID,
) (*models.TaskInstance, error) {

	inst, err := repo.GetInstance(ctx, instanceID)
	if err != nil {
		return nil, err
	}
	if actor.IsAdmin() || inst.ClientID == actor.ID || inst.CoachID == actor.ID {
		return inst, nil
	}
	return nil, httperr.Forbidden("not_instance_participant")
}
