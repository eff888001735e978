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

// ======================================================
// LIST
// ======================================================

type ListCategories struct {
	repo domain.Repository
}

func NewListCategories(repo domain.Repository) *ListCategories {
	return &ListCategories{repo: repo}
}

func (uc *ListCategories) Execute(ctx context.Context, actor identity.Actor) ([]models.TaskCategory, error) {
	if !actor.IsStaff() {
		return nil, httperr.Forbidden("forbidden")
	}
	return uc.repo.ListCategories(ctx, scopeOf(actor))
}

// ======================================================
// CREATE
// ======================================================

type CreateCategory struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCreateCategory(repo domain.Repository, audit *audit.Dispatcher) *CreateCategory {
	return &CreateCategory{repo: repo, audit: audit}
}

func (uc *CreateCategory) Execute(
	ctx context.Context,
	actor identity.Actor,
	name string,
	color string,
) (*models.TaskCategory, error) {

	if !actor.IsCoach() {
		return nil, httperr.Forbidden("coach_only")
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, httperr.Validation("missing_name", "Name is required.", map[string]string{
			"name": "is required",
		})
	}

	c := &models.TaskCategory{
		CoachID: actor.ID,
		Name:    name,
		Color:   color,
	}
	if err := uc.repo.CreateCategory(ctx, c); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  &actor.ID,
		Action:   "task_category_created",
		Entity:   "task_category",
		EntityID: &c.ID,
	})

	return c, nil
}

// ======================================================
// DELETE
// ======================================================

type DeleteCategory struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewDeleteCategory(repo domain.Repository, audit *audit.Dispatcher) *DeleteCategory {
	return &DeleteCategory{repo: repo, audit: audit}
}

// Execute removes the category. There is no cascade: while tasks still
// reference it the store rejects the delete.
func (uc *DeleteCategory) Execute(ctx context.Context, actor identity.Actor, id uuid.UUID) error {
	if !actor.IsStaff() {
		return httperr.Forbidden("forbidden")
	}

	c, err := uc.repo.GetCategory(ctx, id)
	if err != nil {
		return err
	}
	if actor.IsCoach() && c.CoachID != actor.ID {
		return httperr.Forbidden("not_category_owner")
	}

	if err := uc.repo.DeleteCategory(ctx, id); err != nil {
		return err
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  &actor.ID,
		Action:   "task_category_deleted",
		Entity:   "task_category",
		EntityID: &id,
	})
	return nil
}
