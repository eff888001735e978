package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/coach-platform/internal/httperr"
	"github.com/BruksfildServices01/coach-platform/internal/httpresp"
	ucNotification "github.com/BruksfildServices01/coach-platform/internal/usecase/notification"
)

type NotificationHandler struct {
	list     *ucNotification.ListNotifications
	markRead *ucNotification.MarkRead
}

func NewNotificationHandler(list *ucNotification.ListNotifications, markRead *ucNotification.MarkRead) *NotificationHandler {
	return &NotificationHandler{list: list, markRead: markRead}
}

// List returns the actor's notifications; ?unread=true keeps unread only.
func (h *NotificationHandler) List(c *gin.Context) {
	actor, ok := actorOf(c)
	if !ok {
		return
	}

	out, err := h.list.Execute(c.Request.Context(), actor, boolQuery(c, "unread"))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.List(c, out)
}

func (h *NotificationHandler) MarkRead(c *gin.Context) {
	actor, ok := actorOf(c)
	if !ok {
		return
	}
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	out, err := h.markRead.Execute(c.Request.Context(), actor, id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, out)
}
