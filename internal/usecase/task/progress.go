package task

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/coach-platform/internal/audit"
	"github.com/BruksfildServices01/coach-platform/internal/config"
	domain "github.com/BruksfildServices01/coach-platform/internal/domain/task"
	"github.com/BruksfildServices01/coach-platform/internal/identity"
	"github.com/BruksfildServices01/coach-platform/internal/models"
	"github.com/BruksfildServices01/coach-platform/internal/notify"
	"github.com/BruksfildServices01/coach-platform/internal/timezone"
)

// ======================================================
// CREATE
// ======================================================

type CreateProgress struct {
	repo   domain.Repository
	audit  *audit.Dispatcher
	notify *notify.Notifier
	policy string
	now    func() time.Time
}

func NewCreateProgress(
	repo domain.Repository,
	audit *audit.Dispatcher,
	notifier *notify.Notifier,
	policy string,
) *CreateProgress {
	return &CreateProgress{
		repo:   repo,
		audit:  audit,
		notify: notifier,
		policy: policy,
		now:    timezone.Now,
	}
}

// Execute records the update, then moves the instance status. The two
// writes are independent; concurrent updates resolve as last write wins.
func (uc *CreateProgress) Execute(
	ctx context.Context,
	actor identity.Actor,
	instanceID uuid.UUID,
	percentage int,
	notes string,
) (*models.ProgressUpdate, error) {

	if err := domain.ValidatePercentage(percentage); err != nil {
		return nil, err
	}

	inst, err := visibleInstance(ctx, uc.repo, actor, instanceID)
	if err != nil {
		return nil, err
	}

	if uc.policy == config.ProgressMonotonic {
		latest, err := uc.repo.LatestProgress(ctx, inst.ID)
		if err != nil {
			return nil, err
		}
		var prev *int
		if latest != nil {
			prev = &latest.Percentage
		}
		if err := domain.CheckMonotonic(prev, percentage); err != nil {
			return nil, err
		}
	}

	p := &models.ProgressUpdate{
		InstanceID: inst.ID,
		AuthorID:   actor.ID,
		Percentage: percentage,
		Notes:      notes,
	}
	if err := uc.repo.CreateProgress(ctx, p); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// Instance status
	// --------------------------------------------------
	next, changed := domain.NextStatus(domain.Status(inst.Status), percentage)
	if changed {
		var completedAt *time.Time
		if next == domain.StatusCompleted {
			at := uc.now()
			completedAt = &at
		}
		if err := uc.repo.SetInstanceStatus(ctx, inst.ID, next, completedAt); err != nil {
			return nil, err
		}

		if next == domain.StatusCompleted {
			uc.audit.Dispatch(audit.Event{
				ActorID:  &actor.ID,
				Action:   "task_instance_completed",
				Entity:   "task_instance",
				EntityID: &inst.ID,
			})
			if actor.ID != inst.CoachID {
				uc.notify.Notify(ctx, notify.Notice{
					UserID:   inst.CoachID,
					Kind:     notify.KindTaskCompleted,
					Title:    "Task completed",
					Body:     "A client finished an assigned task.",
					EntityID: &inst.ID,
				})
			}
		}
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  &actor.ID,
		Action:   "progress_recorded",
		Entity:   "progress_update",
		EntityID: &p.ID,
		Metadata: map[string]any{"instance_id": inst.ID, "percentage": percentage},
	})

	return p, nil
}

// ======================================================
// LIST
// ======================================================

type ListProgress struct {
	repo domain.Repository
}

func NewListProgress(repo domain.Repository) *ListProgress {
	return &ListProgress{repo: repo}
}

// Execute returns the instance's updates, newest first.
func (uc *ListProgress) Execute(
	ctx context.Context,
	actor identity.Actor,
	instanceID uuid.UUID,
) ([]models.ProgressUpdate, error) {

	if _, err := visibleInstance(ctx, uc.repo, actor, instanceID); err != nil {
		return nil, err
	}
	return uc.repo.ListProgress(ctx, instanceID)
}
