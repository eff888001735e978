package session

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/BruksfildServices01/coach-platform/internal/audit"
	domain "github.com/BruksfildServices01/coach-platform/internal/domain/session"
	"github.com/BruksfildServices01/coach-platform/internal/httperr"
	"github.com/BruksfildServices01/coach-platform/internal/ical"
	"github.com/BruksfildServices01/coach-platform/internal/identity"
	"github.com/BruksfildServices01/coach-platform/internal/timezone"
)

const (
	feedLookback = 30 * 24 * time.Hour
	feedLimit    = 500
)

// ======================================================
// ISSUE
// ======================================================

type IssueFeedToken struct {
	users domain.FeedTokenStore
	audit *audit.Dispatcher
}

func NewIssueFeedToken(
	users domain.FeedTokenStore,
	audit *audit.Dispatcher,
) *IssueFeedToken {
	return &IssueFeedToken{
		users: users,
		audit: audit,
	}
}

// Execute mints "<userID>.<secret>". Only the bcrypt hash of the secret is
// stored, so a new token replaces the previous one.
func (uc *IssueFeedToken) Execute(
	ctx context.Context,
	actor identity.Actor,
) (string, error) {

	buf := make([]byte, 24)
	if _, err := rand.Read(buf); err != nil {
		return "", httperr.Internal(err, "feed_token_failed")
	}
	secret := base64.RawURLEncoding.EncodeToString(buf)

	hash, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		return "", httperr.Internal(err, "feed_token_failed")
	}

	if err := uc.users.SetCalendarFeedTokenHash(ctx, actor.ID, string(hash)); err != nil {
		return "", err
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  &actor.ID,
		Action:   "calendar_feed_token_issued",
		Entity:   "user",
		EntityID: &actor.ID,
	})

	return actor.ID.String() + "." + secret, nil
}

// ======================================================
// RENDER
// ======================================================

type RenderFeed struct {
	repo  domain.Repository
	users domain.FeedTokenStore
	now   func() time.Time
}

func NewRenderFeed(
	repo domain.Repository,
	users domain.FeedTokenStore,
) *RenderFeed {
	return &RenderFeed{
		repo:  repo,
		users: users,
		now:   timezone.Now,
	}
}

// Execute authenticates the token and renders the owner's sessions from
// thirty days ago onwards. Any token problem is reported as unauthorized.
func (uc *RenderFeed) Execute(
	ctx context.Context,
	token string,
) (string, error) {

	invalid := httperr.New(httperr.KindUnauthorized, "invalid_feed_token", "Invalid calendar token.")

	rawID, secret, ok := strings.Cut(token, ".")
	if !ok || secret == "" {
		return "", invalid
	}
	userID, err := uuid.Parse(rawID)
	if err != nil {
		return "", invalid
	}

	user, err := uc.users.GetUser(ctx, userID)
	if err != nil {
		if httperr.KindOf(err) == httperr.KindNotFound {
			return "", invalid
		}
		return "", err
	}
	if user.CalendarFeedTokenHash == "" ||
		bcrypt.CompareHashAndPassword([]byte(user.CalendarFeedTokenHash), []byte(secret)) != nil {
		return "", invalid
	}

	now := uc.now()
	start := now.Add(-feedLookback)

	sessions, err := uc.repo.ListSessions(ctx, domain.CalendarFilter{
		Scope: domain.Scope{ActorID: user.ID},
		Start: &start,
		Limit: feedLimit,
	})
	if err != nil {
		return "", err
	}

	name := "Coaching sessions"
	if user.FullName != "" {
		name += " - " + user.FullName
	}

	return ical.Render(name, sessions, now), nil
}
