package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/coach-platform/internal/httperr"
	"github.com/BruksfildServices01/coach-platform/internal/httpresp"
	ucAnalytics "github.com/BruksfildServices01/coach-platform/internal/usecase/analytics"
)

type AnalyticsHandler struct {
	overview *ucAnalytics.Overview
}

func NewAnalyticsHandler(overview *ucAnalytics.Overview) *AnalyticsHandler {
	return &AnalyticsHandler{overview: overview}
}

func (h *AnalyticsHandler) Overview(c *gin.Context) {
	actor, ok := actorOf(c)
	if !ok {
		return
	}

	out, err := h.overview.Execute(c.Request.Context(), actor)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, out)
}
