package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/careerboost/internal/domain/entity"
	"github.com/oksasatya/careerboost/pkg/helpers"
	"github.com/oksasatya/careerboost/pkg/response"
)

// Context keys set by Auth.
const (
	CtxUserID    = "userID"
	CtxRole      = "role"
	CtxSessionID = "sid"
)

// SessionValidator confirms that the session referenced by a token is still live.
type SessionValidator interface {
	ValidateSession(ctx context.Context, userID, sid string) error
}

// Auth accepts a Bearer header first and falls back to the access_token cookie.
// The session id in the token must match the one stored for the user.
func Auth(jwt *helpers.JWTManager, sessions SessionValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			if ck, err := c.Cookie(helpers.AccessTokenCookie); err == nil {
				token = ck
			}
		}
		if token == "" {
			response.Abort(c, http.StatusUnauthorized, "missing access token", nil)
			return
		}
		claims, err := jwt.ParseAccessToken(token)
		if err != nil {
			response.Abort(c, http.StatusUnauthorized, "invalid access token", nil)
			return
		}
		if sessions != nil {
			if err := sessions.ValidateSession(c.Request.Context(), claims.UserID, claims.SessionID); err != nil {
				response.Abort(c, http.StatusUnauthorized, "session expired", nil)
				return
			}
		}

		c.Set(CtxUserID, claims.UserID)
		c.Set(CtxRole, claims.Role)
		c.Set(CtxSessionID, claims.SessionID)
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	h := strings.TrimSpace(c.GetHeader("Authorization"))
	if len(h) > 7 && strings.EqualFold(h[:7], "bearer ") {
		return strings.TrimSpace(h[7:])
	}
	return ""
}

// RequireRole must run after Auth.
func RequireRole(roles ...entity.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := entity.Role(c.GetString(CtxRole))
		for _, r := range roles {
			if r == role {
				c.Next()
				return
			}
		}
		response.Abort(c, http.StatusForbidden, "insufficient role", nil)
	}
}
