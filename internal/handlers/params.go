package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/BruksfildServices01/coach-platform/internal/httperr"
	"github.com/BruksfildServices01/coach-platform/internal/identity"
	"github.com/BruksfildServices01/coach-platform/internal/middleware"
)

// actorOf returns the authenticated actor or writes a 401.
func actorOf(c *gin.Context) (identity.Actor, bool) {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		httperr.Respond(c, httperr.New(httperr.KindUnauthorized, "unauthorized", "Authentication required."))
		return identity.Actor{}, false
	}
	return actor, true
}

// uuidParam parses a path parameter, writing a 400 when it is malformed.
func uuidParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		httperr.Respond(c, httperr.Validation("invalid_id", "Invalid id.", map[string]string{
			name: "must be a UUID",
		}))
		return uuid.Nil, false
	}
	return id, true
}

// intQuery reads an optional integer query value; malformed values fall
// back to def.
func intQuery(c *gin.Context, name string, def int) int {
	raw := c.Query(name)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return n
}

func boolQuery(c *gin.Context, name string) bool {
	b, _ := strconv.ParseBool(c.Query(name))
	return b
}

// uuidQuery reads an optional UUID query value; uuid.Nil when absent.
func uuidQuery(c *gin.Context, name string) (uuid.UUID, error) {
	raw := c.Query(name)
	if raw == "" {
		return uuid.Nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, httperr.Validation("invalid_id", "Invalid id.", map[string]string{
			name: "must be a UUID",
		})
	}
	return id, nil
}
