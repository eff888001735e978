package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/BruksfildServices01/coach-platform/internal/config"
	"github.com/BruksfildServices01/coach-platform/internal/httperr"
	"github.com/BruksfildServices01/coach-platform/internal/identity"
)

const ContextActor = "actor"

// AuthMiddleware verifies the HS256 bearer token issued by the auth
// provider. The token carries the user id in "sub" and the role in "role".
func AuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			httperr.Abort(c, http.StatusUnauthorized, "missing_authorization_header", "Authentication required.")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			httperr.Abort(c, http.StatusUnauthorized, "invalid_authorization_header", "Authentication required.")
			return
		}

		token, err := jwt.Parse(
			parts[1],
			func(token *jwt.Token) (any, error) {
				return []byte(cfg.JWTSecret), nil
			},
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		)
		if err != nil || !token.Valid {
			httperr.Abort(c, http.StatusUnauthorized, "invalid_token", "Authentication required.")
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			httperr.Abort(c, http.StatusUnauthorized, "invalid_token_claims", "Authentication required.")
			return
		}

		sub, _ := claims.GetSubject()
		userID, err := uuid.Parse(sub)
		role, _ := claims["role"].(string)
		if err != nil || !identity.Role(role).Valid() {
			httperr.Abort(c, http.StatusUnauthorized, "invalid_token_payload", "Authentication required.")
			return
		}

		c.Set(ContextActor, identity.Actor{ID: userID, Role: identity.Role(role)})

		c.Next()
	}
}

// ActorFrom returns the authenticated actor. ok is false outside the auth
// group.
func ActorFrom(c *gin.Context) (identity.Actor, bool) {
	v, exists := c.Get(ContextActor)
	if !exists {
		return identity.Actor{}, false
	}
	actor, ok := v.(identity.Actor)
	return actor, ok
}
