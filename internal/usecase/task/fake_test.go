package task

import (
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/coach-platform/internal/audit"
	domain "github.com/BruksfildServices01/coach-platform/internal/domain/task"
	"github.com/BruksfildServices01/coach-platform/internal/httperr"
	"github.com/BruksfildServices01/coach-platform/internal/models"
	"github.com/BruksfildServices01/coach-platform/internal/notify"
)

type fakeRepo struct {
	mu         sync.Mutex
	categories map[uuid.UUID]*models.TaskCategory
	tasks      map[uuid.UUID]*models.Task
	instances  map[uuid.UUID]*models.TaskInstance
	progress   []models.ProgressUpdate
	users      map[uuid.UUID]*models.User
	notices    []*models.Notification

	insertCalls int
	clock       time.Time
}

var _ domain.Repository = (*fakeRepo)(nil)

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		categories: map[uuid.UUID]*models.TaskCategory{},
		tasks:      map[uuid.UUID]*models.Task{},
		instances:  map[uuid.UUID]*models.TaskInstance{},
		users:      map[uuid.UUID]*models.User{},
		clock:      time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (f *fakeRepo) addUser(role string) *models.User {
	u := &models.User{ID: uuid.New(), Role: role}
	f.users[u.ID] = u
	return u
}

func (f *fakeRepo) ListCategories(_ context.Context, s domain.Scope) ([]models.TaskCategory, error) {
	var out []models.TaskCategory
	for _, c := range f.categories {
		if s.All || c.CoachID == s.CoachID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (f *fakeRepo) GetCategory(_ context.Context, id uuid.UUID) (*models.TaskCategory, error) {
	c, ok := f.categories[id]
	if !ok {
		return nil, httperr.NotFound("task_category_not_found", "Not found.")
	}
	cp := *c
	return &cp, nil
}

func (f *fakeRepo) CreateCategory(_ context.Context, c *models.TaskCategory) error {
	c.ID = uuid.New()
	cp := *c
	f.categories[c.ID] = &cp
	return nil
}

func (f *fakeRepo) DeleteCategory(_ context.Context, id uuid.UUID) error {
	delete(f.categories, id)
	return nil
}

func (f *fakeRepo) ListTasks(_ context.Context, s domain.Scope, templatesOnly bool) ([]models.Task, error) {
	var out []models.Task
	for _, t := range f.tasks {
		if (s.All || t.CoachID == s.CoachID) && (!templatesOnly || t.IsTemplate) {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (f *fakeRepo) GetTask(_ context.Context, id uuid.UUID) (*models.Task, error) {
	t, ok := f.tasks[id]
	if !ok {
		return nil, httperr.NotFound("task_not_found", "Not found.")
	}
	cp := *t
	return &cp, nil
}

func (f *fakeRepo) CreateTask(_ context.Context, t *models.Task) error {
	t.ID = uuid.New()
	cp := *t
	f.tasks[t.ID] = &cp
	return nil
}

func (f *fakeRepo) UpdateTask(_ context.Context, id uuid.UUID, fields map[string]any) (*models.Task, error) {
	t, ok := f.tasks[id]
	if !ok {
		return nil, httperr.NotFound("task_not_found", "Not found.")
	}
	for k, v := range fields {
		switch k {
		case "title":
			t.Title = v.(string)
		case "description":
			t.Description = v.(string)
		case "is_template":
			t.IsTemplate = v.(bool)
		case "category_id":
			if v == nil {
				t.CategoryID = nil
			} else {
				id := v.(uuid.UUID)
				t.CategoryID = &id
			}
		}
	}
	cp := *t
	return &cp, nil
}

func (f *fakeRepo) DeleteTask(_ context.Context, id uuid.UUID) error {
	delete(f.tasks, id)
	return nil
}

func (f *fakeRepo) CreateInstances(_ context.Context, instances []models.TaskInstance) error {
	f.insertCalls++
	for i := range instances {
		instances[i].ID = uuid.New()
		cp := instances[i]
		f.instances[cp.ID] = &cp
	}
	return nil
}

func (f *fakeRepo) ListInstances(_ context.Context, flt domain.InstanceFilter) ([]models.TaskInstance, error) {
	var out []models.TaskInstance
	for _, i := range f.instances {
		if flt.ClientID != uuid.Nil && i.ClientID != flt.ClientID {
			continue
		}
		if flt.CoachID != uuid.Nil && i.CoachID != flt.CoachID {
			continue
		}
		if flt.TaskID != uuid.Nil && i.TaskID != flt.TaskID {
			continue
		}
		if flt.Status != "" && i.Status != flt.Status {
			continue
		}
		out = append(out, *i)
	}
	return out, nil
}

func (f *fakeRepo) GetInstance(_ context.Context, id uuid.UUID) (*models.TaskInstance, error) {
	i, ok := f.instances[id]
	if !ok {
		return nil, httperr.NotFound("task_instance_not_found", "Not found.")
	}
	cp := *i
	return &cp, nil
}

func (f *fakeRepo) SetInstanceStatus(_ context.Context, id uuid.UUID, status domain.Status, completedAt *time.Time) error {
	i, ok := f.instances[id]
	if !ok {
		return httperr.NotFound("task_instance_not_found", "Not found.")
	}
	i.Status = string(status)
	i.CompletedAt = completedAt
	return nil
}

func (f *fakeRepo) CreateProgress(_ context.Context, p *models.ProgressUpdate) error {
	p.ID = uuid.New()
	f.clock = f.clock.Add(time.Minute)
	p.CreatedAt = f.clock
	f.progress = append(f.progress, *p)
	return nil
}

func (f *fakeRepo) LatestProgress(ctx context.Context, instanceID uuid.UUID) (*models.ProgressUpdate, error) {
	list, _ := f.ListProgress(ctx, instanceID)
	if len(list) == 0 {
		return nil, nil
	}
	return &list[0], nil
}

func (f *fakeRepo) ListProgress(_ context.Context, instanceID uuid.UUID) ([]models.ProgressUpdate, error) {
	var out []models.ProgressUpdate
	for _, p := range f.progress {
		if p.InstanceID == instanceID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (f *fakeRepo) GetUser(_ context.Context, id uuid.UUID) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, httperr.NotFound("user_not_found", "Not found.")
	}
	cp := *u
	return &cp, nil
}

func (f *fakeRepo) CreateNotification(_ context.Context, n *models.Notification) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.notices = append(f.notices, n)
	return nil
}

type discardAudit struct{}

func (discardAudit) CreateAuditLog(context.Context, *models.AuditLog) error { return nil }

func newDeps(t *testing.T, repo *fakeRepo) (*audit.Dispatcher, *notify.Notifier) {
	t.Helper()

	d := audit.NewDispatcher(audit.New(discardAudit{}), zap.NewNop())
	t.Cleanup(d.Close)

	return d, notify.New(repo, zap.NewNop())
}
