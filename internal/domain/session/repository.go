package session

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/coach-platform/internal/models"
)

const (
	DefaultCalendarLimit = 50
	RequestListLimit     = 50
)

// Scope restricts queries to rows where ActorID is coach, client (or
// requester). All lifts the restriction for admins.
type Scope struct {
	ActorID uuid.UUID
	All     bool
}

type CalendarFilter struct {
	Scope
	Start *time.Time
	End   *time.Time
	Limit int
}

type Repository interface {
	// -------- Sessions --------
	ListSessions(ctx context.Context, f CalendarFilter) ([]models.Session, error)

	GetSession(ctx context.Context, id uuid.UUID) (*models.Session, error)

	UpdateSession(
		ctx context.Context,
		id uuid.UUID,
		fields map[string]any,
	) (*models.Session, error)

	// -------- Requests --------
	ListRequests(ctx context.Context, scope Scope, limit int) ([]models.SessionRequest, error)

	GetRequest(ctx context.Context, id uuid.UUID) (*models.SessionRequest, error)

	CreateRequest(ctx context.Context, req *models.SessionRequest) error

	UpdateRequest(ctx context.Context, req *models.SessionRequest) error

	// -------- Atomic pairs --------

	// CreateSessionWithRequest inserts the session, points req at it and
	// inserts req, all in one transaction.
	CreateSessionWithRequest(
		ctx context.Context,
		s *models.Session,
		req *models.SessionRequest,
	) error

	// PromoteRequest inserts s and approves the existing req in one transaction.
	PromoteRequest(
		ctx context.Context,
		s *models.Session,
		req *models.SessionRequest,
	) error

	// -------- Users --------
	GetUser(ctx context.Context, id uuid.UUID) (*models.User, error)
}

// FeedTokenStore persists the bcrypt hash behind a user's calendar feed token.
type FeedTokenStore interface {
	GetUser(ctx context.Context, id uuid.UUID) (*models.User, error)
	SetCalendarFeedTokenHash(ctx context.Context, userID uuid.UUID, hash string) error
}
