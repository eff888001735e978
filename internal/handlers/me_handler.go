package handlers

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/BruksfildServices01/coach-platform/internal/httperr"
	"github.com/BruksfildServices01/coach-platform/internal/httpresp"
	"github.com/BruksfildServices01/coach-platform/internal/models"
)

type userReader interface {
	GetUser(ctx context.Context, id uuid.UUID) (*models.User, error)
}

type MeHandler struct {
	users userReader
}

func NewMeHandler(users userReader) *MeHandler {
	return &MeHandler{users: users}
}

type meResponse struct {
	User *models.User `json:"user"`
	Role string       `json:"role"`

	// HasCalendarFeed tells the UI whether a feed token was issued.
	HasCalendarFeed bool `json:"has_calendar_feed"`
}

func (h *MeHandler) GetMe(c *gin.Context) {
	actor, ok := actorOf(c)
	if !ok {
		return
	}

	user, err := h.users.GetUser(c.Request.Context(), actor.ID)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, meResponse{
		User:            user,
		Role:            string(actor.Role),
		HasCalendarFeed: user.CalendarFeedTokenHash != "",
	})
}
