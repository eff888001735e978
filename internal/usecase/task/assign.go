package task

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/coach-platform/internal/audit"
	domain "github.com/BruksfildServices01/coach-platform/internal/domain/task"
	"github.com/BruksfildServices01/coach-platform/internal/httperr"
	"github.com/BruksfildServices01/coach-platform/internal/identity"
	"github.com/BruksfildServices01/coach-platform/internal/models"
	"github.com/BruksfildServices01/coach-platform/internal/notify"
)

const MaxBulkAssign = 100

type AssignTask struct {
	repo   domain.Repository
	audit  *audit.Dispatcher
	notify *notify.Notifier
}

func NewAssignTask(
	repo domain.Repository,
	audit *audit.Dispatcher,
	notifier *notify.Notifier,
) *AssignTask {
	return &AssignTask{
		repo:   repo,
		audit:  audit,
		notify: notifier,
	}
}

// Execute assigns the task to one client.
func (uc *AssignTask) Execute(
	ctx context.Context,
	actor identity.Actor,
	taskID uuid.UUID,
	clientID uuid.UUID,
	dueDate *time.Time,
) (*models.TaskInstance, error) {

	out, err := uc.assign(ctx, actor, taskID, []uuid.UUID{clientID}, dueDate)
	if err != nil {
		return nil, err
	}
	return &out[0], nil
}

// ExecuteBulk creates one pending instance per distinct client with a
// single insert.
func (uc *AssignTask) ExecuteBulk(
	ctx context.Context,
	actor identity.Actor,
	taskID uuid.UUID,
	clientIDs []uuid.UUID,
	dueDate *time.Time,
) ([]models.TaskInstance, error) {
	return uc.assign(ctx, actor, taskID, clientIDs, dueDate)
}

func (uc *AssignTask) assign(
	ctx context.Context,
	actor identity.Actor,
	taskID uuid.UUID,
	clientIDs []uuid.UUID,
	dueDate *time.Time,
) ([]models.TaskInstance, error) {

	t, err := ownedTask(ctx, uc.repo, actor, taskID)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// Clients
	// --------------------------------------------------
	clients := dedupe(clientIDs)
	if len(clients) == 0 {
		return nil, httperr.Validation("missing_clients", "At least one client is required.", map[string]string{
			"client_ids": "is required",
		})
	}
	if len(clients) > MaxBulkAssign {
		return nil, httperr.Validation("too_many_clients", "Too many clients in one assignment.", map[string]string{
			"client_ids": "must contain at most 100 entries",
		})
	}

	for _, id := range clients {
		u, err := uc.repo.GetUser(ctx, id)
		if err != nil {
			return nil, err
		}
		if identity.Role(u.Role) != identity.RoleClient {
			return nil, httperr.Validation("not_a_client", "Tasks can only be assigned to clients.", map[string]string{
				"client_ids": id.String() + " is not a client",
			})
		}
	}

	// --------------------------------------------------
	// Instances
	// --------------------------------------------------
	var due *time.Time
	if dueDate != nil {
		d := dueDate.UTC()
		due = &d
	}

	instances := make([]models.TaskInstance, 0, len(clients))
	for _, id := range clients {
		instances = append(instances, models.TaskInstance{
			TaskID:   t.ID,
			ClientID: id,
			CoachID:  t.CoachID,
			DueDate:  due,
			Status:   string(domain.InitialStatus()),
		})
	}

	if err := uc.repo.CreateInstances(ctx, instances); err != nil {
		return nil, err
	}

	notices := make([]notify.Notice, 0, len(instances))
	for i := range instances {
		inst := &instances[i]

		uc.audit.Dispatch(audit.Event{
			ActorID:  &actor.ID,
			Action:   "task_assigned",
			Entity:   "task_instance",
			EntityID: &inst.ID,
			Metadata: map[string]any{"task_id": t.ID, "client_id": inst.ClientID},
		})

		notices = append(notices, notify.Notice{
			UserID:   inst.ClientID,
			Kind:     notify.KindTaskAssigned,
			Title:    "New task: " + t.Title,
			Body:     t.Description,
			EntityID: &inst.ID,
		})
	}
	uc.notify.Notify(ctx, notices...)

	return instances, nil
}

func dedupe(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if id == uuid.Nil {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
