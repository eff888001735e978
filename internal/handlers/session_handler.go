package handlers

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/BruksfildServices01/coach-platform/internal/httperr"
	"github.com/BruksfildServices01/coach-platform/internal/httpresp"
	ucSession "github.com/BruksfildServices01/coach-platform/internal/usecase/session"
	"github.com/BruksfildServices01/coach-platform/internal/validators"
)

// ======================================================
// HANDLER
// ======================================================

type SessionHandler struct {
	listCalendar  *ucSession.ListCalendar
	listRequests  *ucSession.ListRequests
	createRequest *ucSession.CreateRequest
	updateSession *ucSession.UpdateSession
	approve       *ucSession.ApproveRequest
	decline       *ucSession.DeclineRequest
	issueFeed     *ucSession.IssueFeedToken
	renderFeed    *ucSession.RenderFeed
}

func NewSessionHandler(
	listCalendar *ucSession.ListCalendar,
	listRequests *ucSession.ListRequests,
	createRequest *ucSession.CreateRequest,
	updateSession *ucSession.UpdateSession,
	approve *ucSession.ApproveRequest,
	decline *ucSession.DeclineRequest,
	issueFeed *ucSession.IssueFeedToken,
	renderFeed *ucSession.RenderFeed,
) *SessionHandler {
	return &SessionHandler{
		listCalendar:  listCalendar,
		listRequests:  listRequests,
		createRequest: createRequest,
		updateSession: updateSession,
		approve:       approve,
		decline:       decline,
		issueFeed:     issueFeed,
		renderFeed:    renderFeed,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateSessionRequest struct {
	CoachID         uuid.UUID `json:"coach_id"`
	ClientID        uuid.UUID `json:"client_id"`
	RequestedAt     time.Time `json:"requested_at" binding:"required"`
	DurationMinutes int       `json:"duration_minutes" binding:"required,gt=0,lte=480"`
	Message         string    `json:"message" binding:"max=2000"`

	Title      string `json:"title" binding:"max=150"`
	MeetingURL string `json:"meeting_url" binding:"omitempty,url,max=500"`
	Timezone   string `json:"timezone" binding:"omitempty,timezone"`
	Notes      string `json:"notes"`
}

type UpdateSessionRequest struct {
	Status          *string    `json:"status" binding:"omitempty,session_status"`
	ScheduledAt     *time.Time `json:"scheduled_at"`
	DurationMinutes *int       `json:"duration_minutes" binding:"omitempty,gt=0,lte=480"`
	MeetingURL      *string    `json:"meeting_url" binding:"omitempty,optional_url,max=500"`
	Timezone        *string    `json:"timezone" binding:"omitempty,timezone"`
	Notes           *string    `json:"notes"`

	RequestID        *uuid.UUID `json:"request_id"`
	RescheduleReason string     `json:"reschedule_reason" binding:"max=1000"`
}

type ApproveSessionRequest struct {
	Title      string `json:"title" binding:"max=150"`
	MeetingURL string `json:"meeting_url" binding:"omitempty,url,max=500"`
	Timezone   string `json:"timezone" binding:"omitempty,timezone"`
	Notes      string `json:"notes"`
}

type DeclineSessionRequest struct {
	Reason string `json:"reason" binding:"required,notblank,max=1000"`
}

// ======================================================
// CALENDAR
// ======================================================

func (h *SessionHandler) ListCalendar(c *gin.Context) {
	actor, ok := actorOf(c)
	if !ok {
		return
	}

	start, err := timeQuery(c, "start", false)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	end, err := timeQuery(c, "end", true)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	sessions, err := h.listCalendar.Execute(c.Request.Context(), actor, ucSession.CalendarQuery{
		Start: start,
		End:   end,
		Limit: intQuery(c, "limit", 0),
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.List(c, sessions)
}

// ======================================================
// UPDATE
// ======================================================

func (h *SessionHandler) Update(c *gin.Context) {
	actor, ok := actorOf(c)
	if !ok {
		return
	}

	// clients are rejected before the body is looked at
	if !actor.IsStaff() {
		httperr.Respond(c, httperr.Forbidden("forbidden"))
		return
	}

	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var req UpdateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Respond(c, validators.BindError(err))
		return
	}

	s, err := h.updateSession.Execute(c.Request.Context(), actor, id, ucSession.UpdateSessionInput{
		Status:           req.Status,
		ScheduledAt:      req.ScheduledAt,
		DurationMinutes:  req.DurationMinutes,
		MeetingURL:       req.MeetingURL,
		Timezone:         req.Timezone,
		Notes:            req.Notes,
		RequestID:        req.RequestID,
		RescheduleReason: req.RescheduleReason,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, s)
}

// ======================================================
// REQUESTS
// ======================================================

func (h *SessionHandler) ListRequests(c *gin.Context) {
	actor, ok := actorOf(c)
	if !ok {
		return
	}

	reqs, err := h.listRequests.Execute(c.Request.Context(), actor)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.List(c, reqs)
}

func (h *SessionHandler) CreateRequest(c *gin.Context) {
	actor, ok := actorOf(c)
	if !ok {
		return
	}

	var req CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Respond(c, validators.BindError(err))
		return
	}

	out, err := h.createRequest.Execute(c.Request.Context(), actor, ucSession.CreateRequestInput{
		CoachID:         req.CoachID,
		ClientID:        req.ClientID,
		RequestedAt:     req.RequestedAt,
		DurationMinutes: req.DurationMinutes,
		Message:         req.Message,
		Title:           req.Title,
		MeetingURL:      req.MeetingURL,
		Timezone:        req.Timezone,
		Notes:           req.Notes,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Created(c, out)
}

func (h *SessionHandler) Approve(c *gin.Context) {
	actor, ok := actorOf(c)
	if !ok {
		return
	}
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	// the body is optional; chunked requests report no length, so an
	// empty body only shows up as EOF from the decoder
	var req ApproveSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		httperr.Respond(c, validators.BindError(err))
		return
	}

	out, err := h.approve.Execute(c.Request.Context(), actor, id, ucSession.ApproveRequestInput{
		Title:      req.Title,
		MeetingURL: req.MeetingURL,
		Timezone:   req.Timezone,
		Notes:      req.Notes,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, out)
}

func (h *SessionHandler) Decline(c *gin.Context) {
	actor, ok := actorOf(c)
	if !ok {
		return
	}
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var req DeclineSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Respond(c, validators.BindError(err))
		return
	}

	out, err := h.decline.Execute(c.Request.Context(), actor, id, req.Reason)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, out)
}

// ======================================================
// CALENDAR FEED
// ======================================================

func (h *SessionHandler) IssueFeedToken(c *gin.Context) {
	actor, ok := actorOf(c)
	if !ok {
		return
	}

	token, err := h.issueFeed.Execute(c.Request.Context(), actor)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Created(c, gin.H{"token": token})
}

// Feed is public; the token in the query string identifies the user.
func (h *SessionHandler) Feed(c *gin.Context) {
	body, err := h.renderFeed.Execute(c.Request.Context(), c.Query("token"))
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.Header("Cache-Control", "private, max-age=300")
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", []byte(body))
}
