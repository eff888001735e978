package session

import (
	"context"
	"sort"
	"sync"
	"testing"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/coach-platform/internal/audit"
	domain "github.com/BruksfildServices01/coach-platform/internal/domain/session"
	"github.com/BruksfildServices01/coach-platform/internal/httperr"
	"github.com/BruksfildServices01/coach-platform/internal/models"
	"github.com/BruksfildServices01/coach-platform/internal/notify"
)

type fakeRepo struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]*models.Session
	requests map[uuid.UUID]*models.SessionRequest
	users    map[uuid.UUID]*models.User
	notices  []*models.Notification
}

var (
	_ domain.Repository     = (*fakeRepo)(nil)
	_ domain.FeedTokenStore = (*fakeRepo)(nil)
)

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		sessions: map[uuid.UUID]*models.Session{},
		requests: map[uuid.UUID]*models.SessionRequest{},
		users:    map[uuid.UUID]*models.User{},
	}
}

func (f *fakeRepo) addUser(role string) *models.User {
	u := &models.User{ID: uuid.New(), Role: role, Timezone: "UTC", FullName: role + " user"}
	f.users[u.ID] = u
	return u
}

func (f *fakeRepo) addSession(s models.Session) *models.Session {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	if s.Status == "" {
		s.Status = string(domain.StatusScheduled)
	}
	f.sessions[s.ID] = &s
	return &s
}

func (f *fakeRepo) ListSessions(_ context.Context, flt domain.CalendarFilter) ([]models.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []models.Session
	for _, s := range f.sessions {
		if !flt.All && s.CoachID != flt.ActorID && s.ClientID != flt.ActorID {
			continue
		}
		if flt.Start != nil && s.ScheduledAt.Before(*flt.Start) {
			continue
		}
		if flt.End != nil && !s.ScheduledAt.Before(*flt.End) {
			continue
		}
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ScheduledAt.Before(out[j].ScheduledAt) })
	if flt.Limit > 0 && len(out) > flt.Limit {
		out = out[:flt.Limit]
	}
	return out, nil
}

func (f *fakeRepo) GetSession(_ context.Context, id uuid.UUID) (*models.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	s, ok := f.sessions[id]
	if !ok {
		return nil, httperr.NotFound("session_not_found", "Not found.")
	}
	cp := *s
	return &cp, nil
}

func (f *fakeRepo) UpdateSession(_ context.Context, id uuid.UUID, fields map[string]any) (*models.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	s, ok := f.sessions[id]
	if !ok {
		return nil, httperr.NotFound("session_not_found", "Not found.")
	}
	for k, v := range fields {
		switch k {
		case "status":
			s.Status = v.(string)
		case "meeting_url":
			s.MeetingURL = v.(string)
		case "notes":
			s.Notes = v.(string)
		case "timezone":
			s.Timezone = v.(string)
		case "duration_minutes":
			s.DurationMinutes = v.(int)
		}
	}
	cp := *s
	return &cp, nil
}

func (f *fakeRepo) ListRequests(_ context.Context, scope domain.Scope, limit int) ([]models.SessionRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []models.SessionRequest
	for _, r := range f.requests {
		if scope.All || r.CoachID == scope.ActorID || r.ClientID == scope.ActorID || r.RequestedBy == scope.ActorID {
			out = append(out, *r)
		}
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeRepo) GetRequest(_ context.Context, id uuid.UUID) (*models.SessionRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	r, ok := f.requests[id]
	if !ok {
		return nil, httperr.NotFound("session_request_not_found", "Not found.")
	}
	cp := *r
	return &cp, nil
}

func (f *fakeRepo) CreateRequest(_ context.Context, req *models.SessionRequest) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if req.ID == uuid.Nil {
		req.ID = uuid.New()
	}
	cp := *req
	f.requests[req.ID] = &cp
	return nil
}

func (f *fakeRepo) UpdateRequest(_ context.Context, req *models.SessionRequest) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	cp := *req
	f.requests[req.ID] = &cp
	return nil
}

func (f *fakeRepo) CreateSessionWithRequest(ctx context.Context, s *models.Session, req *models.SessionRequest) error {
	s.ID = uuid.New()
	f.mu.Lock()
	cp := *s
	f.sessions[s.ID] = &cp
	f.mu.Unlock()

	req.SessionID = &s.ID
	return f.CreateRequest(ctx, req)
}

func (f *fakeRepo) PromoteRequest(ctx context.Context, s *models.Session, req *models.SessionRequest) error {
	s.ID = uuid.New()
	if err := domain.Approve(req, s.ID); err != nil {
		return err
	}
	f.mu.Lock()
	cp := *s
	f.sessions[s.ID] = &cp
	f.mu.Unlock()

	return f.UpdateRequest(ctx, req)
}

func (f *fakeRepo) GetUser(_ context.Context, id uuid.UUID) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	u, ok := f.users[id]
	if !ok {
		return nil, httperr.NotFound("user_not_found", "Not found.")
	}
	cp := *u
	return &cp, nil
}

func (f *fakeRepo) SetCalendarFeedTokenHash(_ context.Context, userID uuid.UUID, hash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	u, ok := f.users[userID]
	if !ok {
		return httperr.NotFound("user_not_found", "Not found.")
	}
	u.CalendarFeedTokenHash = hash
	return nil
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
