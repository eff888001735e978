package session

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/coach-platform/internal/config"
	domain "github.com/BruksfildServices01/coach-platform/internal/domain/session"
	"github.com/BruksfildServices01/coach-platform/internal/httperr"
	"github.com/BruksfildServices01/coach-platform/internal/identity"
	"github.com/BruksfildServices01/coach-platform/internal/models"
	"github.com/BruksfildServices01/coach-platform/internal/notify"
)

func actorOf(u *models.User) identity.Actor {
	return identity.Actor{ID: u.ID, Role: identity.Role(u.Role)}
}

func TestClientRequestThenCoachApproves(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepo()
	dispatcher, notifier := newDeps(t, repo)

	coach := repo.addUser("coach")
	client := repo.addUser("client")
	at := time.Now().UTC().Add(48 * time.Hour).Truncate(time.Minute)

	created, err := NewCreateRequest(repo, dispatcher, notifier).Execute(ctx, actorOf(client), CreateRequestInput{
		CoachID:         coach.ID,
		RequestedAt:     at,
		DurationMinutes: 45,
	})
	require.NoError(t, err)
	assert.Nil(t, created.Session)
	assert.Equal(t, string(domain.RequestPending), created.Request.Status)
	assert.Nil(t, created.Request.SessionID)
	assert.Equal(t, client.ID, created.Request.ClientID)

	approved, err := NewApproveRequest(repo, dispatcher, notifier).Execute(ctx, actorOf(coach), created.Request.ID, ApproveRequestInput{
		MeetingURL: "https://meet.example.com/abc",
	})
	require.NoError(t, err)

	stored, err := repo.GetRequest(ctx, created.Request.ID)
	require.NoError(t, err)
	assert.Equal(t, string(domain.RequestApproved), stored.Status)
	require.NotNil(t, stored.SessionID)
	assert.Equal(t, approved.Session.ID, *stored.SessionID)
	assert.NoError(t, domain.CheckRequest(stored))

	s, err := repo.GetSession(ctx, approved.Session.ID)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusScheduled), s.Status)
	assert.Equal(t, 45, s.DurationMinutes)
	assert.Equal(t, at, s.ScheduledAt)
	assert.Equal(t, "https://meet.example.com/abc", s.MeetingURL)

	kinds := []string{}
	for _, n := range repo.notices {
		kinds = append(kinds, n.Kind)
	}
	assert.Equal(t, []string{notify.KindSessionRequested, notify.KindRequestApproved}, kinds)
}

func TestCoachSchedulesDirectly(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepo()
	dispatcher, notifier := newDeps(t, repo)

	coach := repo.addUser("coach")
	client := repo.addUser("client")

	res, err := NewCreateRequest(repo, dispatcher, notifier).Execute(ctx, actorOf(coach), CreateRequestInput{
		ClientID:        client.ID,
		RequestedAt:     time.Now().Add(time.Hour),
		DurationMinutes: 60,
		Timezone:        "Nowhere/Special",
	})
	require.NoError(t, err)

	require.NotNil(t, res.Session)
	assert.Equal(t, coach.ID, res.Session.CoachID)
	assert.Equal(t, "UTC", res.Session.Timezone)
	assert.Equal(t, string(domain.RequestApproved), res.Request.Status)
	require.NotNil(t, res.Request.SessionID)
	assert.Equal(t, res.Session.ID, *res.Request.SessionID)
}

func TestClientCannotRequestInThePast(t *testing.T) {
	repo := newFakeRepo()
	dispatcher, notifier := newDeps(t, repo)
	coach := repo.addUser("coach")
	client := repo.addUser("client")

	_, err := NewCreateRequest(repo, dispatcher, notifier).Execute(context.Background(), actorOf(client), CreateRequestInput{
		CoachID:         coach.ID,
		RequestedAt:     time.Now().Add(-time.Hour),
		DurationMinutes: 30,
	})

	assert.True(t, httperr.Is(err, "time_in_past"))
	assert.Empty(t, repo.requests)
}

func TestClientRequestNeedsACoach(t *testing.T) {
	repo := newFakeRepo()
	dispatcher, notifier := newDeps(t, repo)
	other := repo.addUser("client")
	client := repo.addUser("client")

	_, err := NewCreateRequest(repo, dispatcher, notifier).Execute(context.Background(), actorOf(client), CreateRequestInput{
		CoachID:         other.ID,
		RequestedAt:     time.Now().Add(time.Hour),
		DurationMinutes: 30,
	})

	assert.True(t, httperr.Is(err, "not_a_coach"))
}

func TestClientsAreAlwaysForbiddenFromUpdatingSessions(t *testing.T) {
	repo := newFakeRepo()
	dispatcher, _ := newDeps(t, repo)
	client := repo.addUser("client")
	s := repo.addSession(models.Session{CoachID: uuid.New(), ClientID: client.ID, DurationMinutes: 30})

	uc := NewUpdateSession(repo, dispatcher, config.TransitionsLenient)

	bad := "not-a-status"
	inputs := []UpdateSessionInput{
		{},
		{Status: &bad},
		{Notes: strPtr("fine")},
	}
	for _, in := range inputs {
		_, err := uc.Execute(context.Background(), actorOf(client), s.ID, in)
		assert.Equal(t, httperr.KindForbidden, httperr.KindOf(err))
	}

	// unknown session id still answers 403, not 404
	_, err := uc.Execute(context.Background(), actorOf(client), uuid.New(), UpdateSessionInput{})
	assert.Equal(t, httperr.KindForbidden, httperr.KindOf(err))
}

func TestCoachCannotUpdateAnotherCoachesSession(t *testing.T) {
	repo := newFakeRepo()
	dispatcher, _ := newDeps(t, repo)
	coach := repo.addUser("coach")
	s := repo.addSession(models.Session{CoachID: uuid.New(), ClientID: uuid.New(), DurationMinutes: 30})

	_, err := NewUpdateSession(repo, dispatcher, config.TransitionsLenient).
		Execute(context.Background(), actorOf(coach), s.ID, UpdateSessionInput{Notes: strPtr("x")})

	assert.True(t, httperr.Is(err, "not_session_coach"))
}

func TestUpdateSessionPartialFieldsAndRescheduleTrail(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepo()
	dispatcher, _ := newDeps(t, repo)
	coach := repo.addUser("coach")
	s := repo.addSession(models.Session{CoachID: coach.ID, ClientID: uuid.New(), DurationMinutes: 30, Notes: "keep", MeetingURL: "old"})

	updated, err := NewUpdateSession(repo, dispatcher, config.TransitionsLenient).Execute(ctx, actorOf(coach), s.ID, UpdateSessionInput{
		MeetingURL:       strPtr("https://new.example.com"),
		RescheduleReason: "client travelling",
	})
	require.NoError(t, err)

	assert.Equal(t, "https://new.example.com", updated.MeetingURL)
	assert.Equal(t, "keep", updated.Notes)

	require.Len(t, repo.requests, 1)
	for _, r := range repo.requests {
		assert.Equal(t, string(domain.RequestApproved), r.Status)
		assert.Equal(t, "client travelling", r.RescheduleReason)
		assert.Equal(t, s.ID, *r.SessionID)
	}
}

func TestUpdateSessionLinksRequest(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepo()
	dispatcher, _ := newDeps(t, repo)
	coach := repo.addUser("coach")
	clientID := uuid.New()
	s := repo.addSession(models.Session{CoachID: coach.ID, ClientID: clientID, DurationMinutes: 30})

	req := &models.SessionRequest{CoachID: coach.ID, ClientID: clientID, Status: string(domain.RequestPending)}
	require.NoError(t, repo.CreateRequest(ctx, req))

	_, err := NewUpdateSession(repo, dispatcher, config.TransitionsLenient).
		Execute(ctx, actorOf(coach), s.ID, UpdateSessionInput{RequestID: &req.ID})
	require.NoError(t, err)

	stored, _ := repo.GetRequest(ctx, req.ID)
	assert.Equal(t, string(domain.RequestApproved), stored.Status)
	assert.Equal(t, s.ID, *stored.SessionID)
}

func TestStrictTransitions(t *testing.T) {
	repo := newFakeRepo()
	dispatcher, _ := newDeps(t, repo)
	coach := repo.addUser("coach")
	s := repo.addSession(models.Session{CoachID: coach.ID, ClientID: uuid.New(), DurationMinutes: 30, Status: string(domain.StatusCancelled)})

	back := string(domain.StatusScheduled)

	_, err := NewUpdateSession(repo, dispatcher, config.TransitionsStrict).
		Execute(context.Background(), actorOf(coach), s.ID, UpdateSessionInput{Status: &back})
	assert.True(t, httperr.Is(err, "invalid_state"))

	updated, err := NewUpdateSession(repo, dispatcher, config.TransitionsLenient).
		Execute(context.Background(), actorOf(coach), s.ID, UpdateSessionInput{Status: &back})
	require.NoError(t, err)
	assert.Equal(t, back, updated.Status)
}

func TestCalendarNeverLeaksForeignSessions(t *testing.T) {
	repo := newFakeRepo()
	coach := repo.addUser("coach")
	client := repo.addUser("client")
	admin := repo.addUser("admin")

	base := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	repo.addSession(models.Session{CoachID: coach.ID, ClientID: client.ID, ScheduledAt: base, DurationMinutes: 30})
	repo.addSession(models.Session{CoachID: coach.ID, ClientID: uuid.New(), ScheduledAt: base.Add(time.Hour), DurationMinutes: 30})
	repo.addSession(models.Session{CoachID: uuid.New(), ClientID: uuid.New(), ScheduledAt: base.Add(2 * time.Hour), DurationMinutes: 30})

	uc := NewListCalendar(repo, 50)

	for _, u := range []*models.User{coach, client} {
		items, err := uc.Execute(context.Background(), actorOf(u), CalendarQuery{})
		require.NoError(t, err)
		for _, it := range items {
			assert.True(t, it.CoachID == u.ID || it.ClientID == u.ID)
		}
	}

	items, err := uc.Execute(context.Background(), actorOf(client), CalendarQuery{})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "client", items[0].ViewerRole)

	all, err := uc.Execute(context.Background(), actorOf(admin), CalendarQuery{})
	require.NoError(t, err)
	assert.Len(t, all, 3)
	assert.True(t, all[0].ScheduledAt.Before(all[1].ScheduledAt))
}

func TestCalendarWindowAndLimit(t *testing.T) {
	repo := newFakeRepo()
	coach := repo.addUser("coach")
	base := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	for i := 0; i < 60; i++ {
		repo.addSession(models.Session{CoachID: coach.ID, ClientID: uuid.New(), ScheduledAt: base.Add(time.Duration(i) * time.Hour), DurationMinutes: 30})
	}
	uc := NewListCalendar(repo, 0)

	items, err := uc.Execute(context.Background(), actorOf(coach), CalendarQuery{Limit: 500})
	require.NoError(t, err)
	assert.Len(t, items, domain.DefaultCalendarLimit)

	start, end := base, base.Add(3*time.Hour)
	items, err = uc.Execute(context.Background(), actorOf(coach), CalendarQuery{Start: &start, End: &end})
	require.NoError(t, err)
	assert.Len(t, items, 3)

	_, err = uc.Execute(context.Background(), actorOf(coach), CalendarQuery{Start: &end, End: &start})
	assert.True(t, httperr.Is(err, "invalid_window"))
}

func TestDeclineRequest(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepo()
	dispatcher, notifier := newDeps(t, repo)
	coach := repo.addUser("coach")
	client := repo.addUser("client")

	req := &models.SessionRequest{CoachID: coach.ID, ClientID: client.ID, Status: string(domain.RequestPending)}
	require.NoError(t, repo.CreateRequest(ctx, req))

	uc := NewDeclineRequest(repo, dispatcher, notifier)

	_, err := uc.Execute(ctx, actorOf(coach), req.ID, "  ")
	assert.True(t, httperr.Is(err, "missing_reason"))

	_, err = uc.Execute(ctx, actorOf(client), req.ID, "nope")
	assert.Equal(t, httperr.KindForbidden, httperr.KindOf(err))

	out, err := uc.Execute(ctx, actorOf(coach), req.ID, "fully booked")
	require.NoError(t, err)
	assert.Equal(t, string(domain.RequestDeclined), out.Status)
	assert.Nil(t, out.SessionID)

	_, err = NewApproveRequest(repo, dispatcher, notifier).Execute(ctx, actorOf(coach), req.ID, ApproveRequestInput{})
	assert.True(t, httperr.Is(err, "request_not_pending"))
}

func TestFeedTokenRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepo()
	dispatcher, _ := newDeps(t, repo)
	coach := repo.addUser("coach")

	now := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	repo.addSession(models.Session{CoachID: coach.ID, ClientID: uuid.New(), ScheduledAt: now.Add(time.Hour), DurationMinutes: 30, Title: "Kickoff"})
	repo.addSession(models.Session{CoachID: coach.ID, ClientID: uuid.New(), ScheduledAt: now.Add(-60 * 24 * time.Hour), DurationMinutes: 30, Title: "Ancient"})
	repo.addSession(models.Session{CoachID: uuid.New(), ClientID: uuid.New(), ScheduledAt: now.Add(time.Hour), DurationMinutes: 30, Title: "Foreign"})

	token, err := NewIssueFeedToken(repo, dispatcher).Execute(ctx, actorOf(coach))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(token, coach.ID.String()+"."))

	render := NewRenderFeed(repo, repo)
	render.now = func() time.Time { return now }

	body, err := render.Execute(ctx, token)
	require.NoError(t, err)
	assert.Contains(t, body, "SUMMARY:Kickoff")
	assert.NotContains(t, body, "Ancient")
	assert.NotContains(t, body, "Foreign")

	for _, bad := range []string{"", "garbage", coach.ID.String() + ".wrong", uuid.NewString() + ".x"} {
		_, err := render.Execute(ctx, bad)
		assert.Equal(t, httperr.KindUnauthorized, httperr.KindOf(err), bad)
	}
}

func strPtr(s string) *string { return &s }
