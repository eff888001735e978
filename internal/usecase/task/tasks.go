package task

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/coach-platform/internal/audit"
	domain "github.com/BruksfildServices01/coach-platform/internal/domain/task"
	"github.com/BruksfildServices01/coach-platform/internal/httperr"
	"github.com/BruksfildServices01/coach-platform/internal/identity"
	"github.com/BruksfildServices01/coach-platform/internal/models"
)

type TaskInput struct {
	CategoryID  *uuid.UUID
	Title       string
	Description string
	IsTemplate  bool
}

// TaskPatch carries only the fields the caller sent. ClearCategory
// removes the category link.
type TaskPatch struct {
	CategoryID    *uuid.UUID
	ClearCategory bool
	Title         *string
	Description   *string
	IsTemplate    *bool
}

// ======================================================
// LIST
// ======================================================

type ListTasks struct {
	repo domain.Repository
}

func NewListTasks(repo domain.Repository) *ListTasks {
	return &ListTasks{repo: repo}
}

func (uc *ListTasks) Execute(
	ctx context.Context,
	actor identity.Actor,
	templatesOnly bool,
) ([]models.Task, error) {
	if !actor.IsStaff() {
		return nil, httperr.Forbidden("forbidden")
	}
	return uc.repo.ListTasks(ctx, scopeOf(actor), templatesOnly)
}

// ======================================================
// CREATE
// ======================================================

type CreateTask struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCreateTask(repo domain.Repository, audit *audit.Dispatcher) *CreateTask {
	return &CreateTask{repo: repo, audit: audit}
}

func (uc *CreateTask) Execute(
	ctx context.Context,
	actor identity.Actor,
	in TaskInput,
) (*models.Task, error) {

	if !actor.IsCoach() {
		return nil, httperr.Forbidden("coach_only")
	}

	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, httperr.Validation("missing_title", "Title is required.", map[string]string{
			"title": "is required",
		})
	}

	if in.CategoryID != nil {
		if err := checkCategory(ctx, uc.repo, actor, *in.CategoryID); err != nil {
			return nil, err
		}
	}

	t := &models.Task{
		CoachID:     actor.ID,
		CategoryID:  in.CategoryID,
		Title:       title,
		Description: in.Description,
		IsTemplate:  in.IsTemplate,
	}
	if err := uc.repo.CreateTask(ctx, t); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  &actor.ID,
		Action:   "task_created",
		Entity:   "task",
		EntityID: &t.ID,
	})

	return t, nil
}

// ======================================================
// UPDATE
// ======================================================

type UpdateTask struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewUpdateTask(repo domain.Repository, audit *audit.Dispatcher) *UpdateTask {
	return &UpdateTask{repo: repo, audit: audit}
}

func (uc *UpdateTask) Execute(
	ctx context.Context,
	actor identity.Actor,
	taskID uuid.UUID,
	in TaskPatch,
) (*models.Task, error) {

	current, err := ownedTask(ctx, uc.repo, actor, taskID)
	if err != nil {
		return nil, err
	}

	fields := map[string]any{}

	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		if title == "" {
			return nil, httperr.Validation("missing_title", "Title is required.", map[string]string{
				"title": "cannot be empty",
			})
		}
		fields["title"] = title
	}
	if in.Description != nil {
		fields["description"] = *in.Description
	}
	if in.IsTemplate != nil {
		fields["is_template"] = *in.IsTemplate
	}
	switch {
	case in.ClearCategory:
		fields["category_id"] = nil
	case in.CategoryID != nil:
		if err := checkCategory(ctx, uc.repo, actor, *in.CategoryID); err != nil {
			return nil, err
		}
		fields["category_id"] = *in.CategoryID
	}

	if len(fields) == 0 {
		return current, nil
	}

	updated, err := uc.repo.UpdateTask(ctx, taskID, fields)
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  &actor.ID,
		Action:   "task_updated",
		Entity:   "task",
		EntityID: &taskID,
	})

	return updated, nil
}

// ======================================================
// DELETE
// ======================================================

type DeleteTask struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewDeleteTask(repo domain.Repository, audit *audit.Dispatcher) *DeleteTask {
	return &DeleteTask{repo: repo, audit: audit}
}

func (uc *DeleteTask) Execute(ctx context.Context, actor identity.Actor, taskID uuid.UUID) error {
	if _, err := ownedTask(ctx, uc.repo, actor, taskID); err != nil {
		return err
	}

	if err := uc.repo.DeleteTask(ctx, taskID); err != nil {
		return err
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  &actor.ID,
		Action:   "task_deleted",
		Entity:   "task",
		EntityID: &taskID,
	})
	return nil
}

func checkCategory(
	ctx context.Context,
	repo domain.Repository,
	actor identity.Actor,
	id uuid.UUID,
) error {
	c, err := repo.GetCategory(ctx, id)
	if err != nil {
		return err
	}
	if actor.IsCoach() && c.CoachID != actor.ID {
		return httperr.Forbidden("not_category_owner")
	}
	return nil
}
