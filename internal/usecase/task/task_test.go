package task

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/coach-platform/internal/config"
	domain "github.com/BruksfildServices01/coach-platform/internal/domain/task"
	"github.com/BruksfildServices01/coach-platform/internal/httperr"
	"github.com/BruksfildServices01/coach-platform/internal/identity"
	"github.com/BruksfildServices01/coach-platform/internal/models"
)

func actorOf(u *models.User) identity.Actor {
	return identity.Actor{ID: u.ID, Role: identity.Role(u.Role)}
}

type fixture struct {
	repo   *fakeRepo
	coach  *models.User
	client *models.User
	task   *models.Task
	assign *AssignTask
}

func setup(t *testing.T) fixture {
	t.Helper()

	repo := newFakeRepo()
	dispatcher, notifier := newDeps(t, repo)
	coach := repo.addUser("coach")
	client := repo.addUser("client")

	task, err := NewCreateTask(repo, dispatcher).Execute(context.Background(), actorOf(coach), TaskInput{
		Title: "Morning journal",
	})
	require.NoError(t, err)

	return fixture{
		repo:   repo,
		coach:  coach,
		client: client,
		task:   task,
		assign: NewAssignTask(repo, dispatcher, notifier),
	}
}

func TestBulkAssignCreatesOnePendingInstancePerClient(t *testing.T) {
	fx := setup(t)
	due := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

	ids := []uuid.UUID{fx.client.ID, fx.repo.addUser("client").ID, fx.repo.addUser("client").ID}

	out, err := fx.assign.ExecuteBulk(context.Background(), actorOf(fx.coach), fx.task.ID, ids, &due)
	require.NoError(t, err)

	assert.Len(t, out, 3)
	assert.Len(t, fx.repo.instances, 3)
	assert.Equal(t, 1, fx.repo.insertCalls)

	for _, inst := range fx.repo.instances {
		assert.Equal(t, string(domain.StatusPending), inst.Status)
		require.NotNil(t, inst.DueDate)
		assert.True(t, due.Equal(*inst.DueDate))
		assert.Equal(t, fx.coach.ID, inst.CoachID)
	}
	assert.Len(t, fx.repo.notices, 3)
}

func TestBulkAssignDedupesAndRejectsNonClients(t *testing.T) {
	fx := setup(t)
	ctx := context.Background()

	out, err := fx.assign.ExecuteBulk(ctx, actorOf(fx.coach), fx.task.ID, []uuid.UUID{fx.client.ID, fx.client.ID, uuid.Nil}, nil)
	require.NoError(t, err)
	assert.Len(t, out, 1)

	_, err = fx.assign.ExecuteBulk(ctx, actorOf(fx.coach), fx.task.ID, []uuid.UUID{fx.coach.ID}, nil)
	assert.True(t, httperr.Is(err, "not_a_client"))

	_, err = fx.assign.ExecuteBulk(ctx, actorOf(fx.coach), fx.task.ID, nil, nil)
	assert.True(t, httperr.Is(err, "missing_clients"))
}

func TestAssignRequiresTaskOwner(t *testing.T) {
	fx := setup(t)
	other := fx.repo.addUser("coach")

	_, err := fx.assign.Execute(context.Background(), actorOf(other), fx.task.ID, fx.client.ID, nil)
	assert.True(t, httperr.Is(err, "not_task_owner"))

	_, err = fx.assign.Execute(context.Background(), actorOf(fx.client), fx.task.ID, fx.client.ID, nil)
	assert.Equal(t, httperr.KindForbidden, httperr.KindOf(err))
}

func TestProgressAtHundredCompletesInstance(t *testing.T) {
	fx := setup(t)
	ctx := context.Background()
	dispatcher, notifier := newDeps(t, fx.repo)

	inst, err := fx.assign.Execute(ctx, actorOf(fx.coach), fx.task.ID, fx.client.ID, nil)
	require.NoError(t, err)

	uc := NewCreateProgress(fx.repo, dispatcher, notifier, config.ProgressAllowRegression)
	fixed := time.Date(2026, 2, 2, 10, 0, 0, 0, time.UTC)
	uc.now = func() time.Time { return fixed }

	_, err = uc.Execute(ctx, actorOf(fx.client), inst.ID, 40, "halfway-ish")
	require.NoError(t, err)

	got, _ := fx.repo.GetInstance(ctx, inst.ID)
	assert.Equal(t, string(domain.StatusInProgress), got.Status)
	assert.Nil(t, got.CompletedAt)

	_, err = uc.Execute(ctx, actorOf(fx.client), inst.ID, 100, "done")
	require.NoError(t, err)

	got, _ = fx.repo.GetInstance(ctx, inst.ID)
	assert.Equal(t, string(domain.StatusCompleted), got.Status)
	require.NotNil(t, got.CompletedAt)
	assert.Equal(t, fixed, *got.CompletedAt)

	// regression is accepted by default and keeps the instance completed
	_, err = uc.Execute(ctx, actorOf(fx.client), inst.ID, 30, "oops")
	require.NoError(t, err)

	list, err := NewListProgress(fx.repo).Execute(ctx, actorOf(fx.coach), inst.ID)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, 30, list[0].Percentage)
	assert.Equal(t, 40, list[2].Percentage)
}

func TestMonotonicPolicyRejectsRegression(t *testing.T) {
	fx := setup(t)
	ctx := context.Background()
	dispatcher, notifier := newDeps(t, fx.repo)

	inst, err := fx.assign.Execute(ctx, actorOf(fx.coach), fx.task.ID, fx.client.ID, nil)
	require.NoError(t, err)

	uc := NewCreateProgress(fx.repo, dispatcher, notifier, config.ProgressMonotonic)

	_, err = uc.Execute(ctx, actorOf(fx.client), inst.ID, 70, "")
	require.NoError(t, err)

	_, err = uc.Execute(ctx, actorOf(fx.client), inst.ID, 50, "")
	assert.Equal(t, httperr.KindConflict, httperr.KindOf(err))
	assert.Len(t, fx.repo.progress, 1)
}

func TestProgressRejectsStrangers(t *testing.T) {
	fx := setup(t)
	ctx := context.Background()
	dispatcher, notifier := newDeps(t, fx.repo)

	inst, err := fx.assign.Execute(ctx, actorOf(fx.coach), fx.task.ID, fx.client.ID, nil)
	require.NoError(t, err)

	stranger := fx.repo.addUser("client")
	_, err = NewCreateProgress(fx.repo, dispatcher, notifier, "").Execute(ctx, actorOf(stranger), inst.ID, 10, "")
	assert.Equal(t, httperr.KindForbidden, httperr.KindOf(err))

	_, err = NewCreateProgress(fx.repo, dispatcher, notifier, "").Execute(ctx, actorOf(fx.client), inst.ID, 120, "")
	assert.True(t, httperr.Is(err, "invalid_percentage"))
}

func TestListInstancesScopesByRole(t *testing.T) {
	fx := setup(t)
	ctx := context.Background()
	other := fx.repo.addUser("client")

	_, err := fx.assign.ExecuteBulk(ctx, actorOf(fx.coach), fx.task.ID, []uuid.UUID{fx.client.ID, other.ID}, nil)
	require.NoError(t, err)

	uc := NewListInstances(fx.repo)

	mine, err := uc.Execute(ctx, actorOf(fx.client), InstanceQuery{ClientID: other.ID})
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, fx.client.ID, mine[0].ClientID)

	coachView, err := uc.Execute(ctx, actorOf(fx.coach), InstanceQuery{})
	require.NoError(t, err)
	assert.Len(t, coachView, 2)

	_, err = uc.Execute(ctx, actorOf(fx.coach), InstanceQuery{Status: "archived"})
	assert.True(t, httperr.Is(err, "invalid_status"))
}

func TestTaskCrudAndCategories(t *testing.T) {
	fx := setup(t)
	ctx := context.Background()
	dispatcher, _ := newDeps(t, fx.repo)

	cat, err := NewCreateCategory(fx.repo, dispatcher).Execute(ctx, actorOf(fx.coach), "Habits", "#00aa00")
	require.NoError(t, err)

	title := "Evening journal"
	updated, err := NewUpdateTask(fx.repo, dispatcher).Execute(ctx, actorOf(fx.coach), fx.task.ID, TaskPatch{
		Title:      &title,
		CategoryID: &cat.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, title, updated.Title)
	assert.Equal(t, cat.ID, *updated.CategoryID)

	updated, err = NewUpdateTask(fx.repo, dispatcher).Execute(ctx, actorOf(fx.coach), fx.task.ID, TaskPatch{ClearCategory: true})
	require.NoError(t, err)
	assert.Nil(t, updated.CategoryID)

	other := fx.repo.addUser("coach")
	assert.True(t, httperr.Is(NewDeleteCategory(fx.repo, dispatcher).Execute(ctx, actorOf(other), cat.ID), "not_category_owner"))
	require.NoError(t, NewDeleteCategory(fx.repo, dispatcher).Execute(ctx, actorOf(fx.coach), cat.ID))

	require.NoError(t, NewDeleteTask(fx.repo, dispatcher).Execute(ctx, actorOf(fx.coach), fx.task.ID))
	_, err = fx.repo.GetTask(ctx, fx.task.ID)
	assert.Equal(t, httperr.KindNotFound, httperr.KindOf(err))

	_, err = NewCreateTask(fx.repo, dispatcher).Execute(ctx, actorOf(fx.client), TaskInput{Title: "x"})
	assert.True(t, httperr.Is(err, "coach_only"))
}
