package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/coach-platform/internal/domain/session"
	"github.com/BruksfildServices01/coach-platform/internal/httperr"
	"github.com/BruksfildServices01/coach-platform/internal/models"
)

type SessionGormRepository struct {
	db *gorm.DB
}

func NewSessionGormRepository(db *gorm.DB) *SessionGormRepository {
	return &SessionGormRepository{db: db}
}

// --------------------------------------------------
// Sessions
// --------------------------------------------------

func (r *SessionGormRepository) ListSessions(
	ctx context.Context,
	f domain.CalendarFilter,
) ([]models.Session, error) {

	q := r.db.WithContext(ctx).
		Preload("Coach").
		Preload("Client")

	if !f.All {
		q = q.Where("coach_id = ? OR client_id = ?", f.ActorID, f.ActorID)
	}
	if f.Start != nil {
		q = q.Where("scheduled_at >= ?", *f.Start)
	}
	if f.End != nil {
		q = q.Where("scheduled_at < ?", *f.End)
	}
	if f.Limit > 0 {
		q = q.Limit(f.Limit)
	}

	var sessions []models.Session
	if err := q.Order("scheduled_at ASC").Find(&sessions).Error; err != nil {
		return nil, httperr.FromStore(err, "session")
	}
	return sessions, nil
}

func (r *SessionGormRepository) GetSession(
	ctx context.Context,
	id uuid.UUID,
) (*models.Session, error) {

	var s models.Session
	if err := r.db.WithContext(ctx).First(&s, "id = ?", id).Error; err != nil {
		return nil, httperr.FromStore(err, "session")
	}
	return &s, nil
}

func (r *SessionGormRepository) UpdateSession(
	ctx context.Context,
	id uuid.UUID,
	fields map[string]any,
) (*models.Session, error) {

	res := r.db.WithContext(ctx).
		Model(&models.Session{}).
		Where("id = ?", id).
		Updates(fields)
	if res.Error != nil {
		return nil, httperr.FromStore(res.Error, "session")
	}
	if res.RowsAffected == 0 {
		return nil, httperr.NotFound("session_not_found", "Not found.")
	}

	return r.GetSession(ctx, id)
}

// --------------------------------------------------
// Requests
// --------------------------------------------------

func (r *SessionGormRepository) ListRequests(
	ctx context.Context,
	scope domain.Scope,
	limit int,
) ([]models.SessionRequest, error) {

	q := r.db.WithContext(ctx)
	if !scope.All {
		q = q.Where(
			"coach_id = ? OR client_id = ? OR requested_by = ?",
			scope.ActorID, scope.ActorID, scope.ActorID,
		)
	}

	var reqs []models.SessionRequest
	if err := q.Order("created_at DESC").Limit(limit).Find(&reqs).Error; err != nil {
		return nil, httperr.FromStore(err, "session_request")
	}
	return reqs, nil
}

func (r *SessionGormRepository) GetRequest(
	ctx context.Context,
	id uuid.UUID,
) (*models.SessionRequest, error) {

	var req models.SessionRequest
	if err := r.db.WithContext(ctx).First(&req, "id = ?", id).Error; err != nil {
		return nil, httperr.FromStore(err, "session_request")
	}
	return &req, nil
}

func (r *SessionGormRepository) CreateRequest(
	ctx context.Context,
	req *models.SessionRequest,
) error {
	if err := domain.CheckRequest(req); err != nil {
		return err
	}
	return httperr.FromStore(r.db.WithContext(ctx).Create(req).Error, "session_request")
}

func (r *SessionGormRepository) UpdateRequest(
	ctx context.Context,
	req *models.SessionRequest,
) error {
	if err := domain.CheckRequest(req); err != nil {
		return err
	}
	return httperr.FromStore(r.db.WithContext(ctx).Save(req).Error, "session_request")
}

// --------------------------------------------------
// Atomic pairs
// --------------------------------------------------

func (r *SessionGormRepository) CreateSessionWithRequest(
	ctx context.Context,
	s *models.Session,
	req *models.SessionRequest,
) error {

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(s).Error; err != nil {
			return err
		}

		req.SessionID = &s.ID
		if err := domain.CheckRequest(req); err != nil {
			return err
		}
		return tx.Create(req).Error
	})
	return httperr.FromStore(err, "session")
}

func (r *SessionGormRepository) PromoteRequest(
	ctx context.Context,
	s *models.Session,
	req *models.SessionRequest,
) error {

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Lock the request so two approvals cannot both create a session.
		var locked models.SessionRequest
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&locked, "id = ?", req.ID).Error; err != nil {
			return err
		}

		if err := tx.Create(s).Error; err != nil {
			return err
		}
		if err := domain.Approve(&locked, s.ID); err != nil {
			return err
		}
		if err := tx.Save(&locked).Error; err != nil {
			return err
		}

		*req = locked
		return nil
	})
	return httperr.FromStore(err, "session_request")
}

// --------------------------------------------------
// Users
// --------------------------------------------------

func (r *SessionGormRepository) GetUser(
	ctx context.Context,
	id uuid.UUID,
) (*models.User, error) {

	var u models.User
	if err := r.db.WithContext(ctx).First(&u, "id = ?", id).Error; err != nil {
		return nil, httperr.FromStore(err, "user")
	}
	return &u, nil
}

func (r *SessionGormRepository) SetCalendarFeedTokenHash(
	ctx context.Context,
	userID uuid.UUID,
	hash string,
) error {

	res := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", userID).
		Update("calendar_feed_token_hash", hash)
	if res.Error != nil {
		return httperr.FromStore(res.Error, "user")
	}
	if res.RowsAffected == 0 {
		return httperr.NotFound("user_not_found", "Not found.")
	}
	return nil
}

// Compile-time check
var (
	_ domain.Repository     = (*SessionGormRepository)(nil)
	_ domain.FeedTokenStore = (*SessionGormRepository)(nil)
)
