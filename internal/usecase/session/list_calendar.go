package session

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/coach-platform/internal/domain/session"
	"github.com/BruksfildServices01/coach-platform/internal/dto"
	"github.com/BruksfildServices01/coach-platform/internal/httperr"
	"github.com/BruksfildServices01/coach-platform/internal/identity"
)

type CalendarQuery struct {
	Start *time.Time
	End   *time.Time
	Limit int
}

type ListCalendar struct {
	repo     domain.Repository
	maxLimit int
}

func NewListCalendar(
	repo domain.Repository,
	maxLimit int,
) *ListCalendar {
	if maxLimit <= 0 || maxLimit > domain.DefaultCalendarLimit {
		maxLimit = domain.DefaultCalendarLimit
	}
	return &ListCalendar{
		repo:     repo,
		maxLimit: maxLimit,
	}
}

func (uc *ListCalendar) Execute(
	ctx context.Context,
	actor identity.Actor,
	q CalendarQuery,
) ([]dto.SessionListDTO, error) {

	if q.Start != nil && q.End != nil && !q.Start.Before(*q.End) {
		return nil, httperr.Validation("invalid_window", "start must be before end.", map[string]string{
			"end": "must be after start",
		})
	}

	limit := q.Limit
	if limit <= 0 || limit > uc.maxLimit {
		limit = uc.maxLimit
	}

	sessions, err := uc.repo.ListSessions(ctx, domain.CalendarFilter{
		Scope: domain.Scope{ActorID: actor.ID, All: actor.IsAdmin()},
		Start: q.Start,
		End:   q.End,
		Limit: limit,
	})
	if err != nil {
		return nil, err
	}

	// The store already scopes by participant; this keeps the guarantee
	// even if a filter is misconfigured.
	if !actor.IsAdmin() {
		visible := sessions[:0]
		for _, s := range sessions {
			if s.CoachID == actor.ID || s.ClientID == actor.ID {
				visible = append(visible, s)
			}
		}
		sessions = visible
	}

	return dto.SessionList(sessions, actor.ID), nil
}
