package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/lsbmorph-backend/internal/http/response"
	"github.com/yungbote/lsbmorph-backend/internal/platform/ctxutil"
	"github.com/yungbote/lsbmorph-backend/internal/platform/logger"
	"github.com/yungbote/lsbmorph-backend/internal/services"
)

// SessionCookie carries the token for browser clients.
const SessionCookie = "lsbmorph_token"

var errMissingToken = errors.New("missing or invalid token")

type AuthMiddleware struct {
	log   *logger.Logger
	users services.UserService
}

func NewAuthMiddleware(log *logger.Logger, users services.UserService) *AuthMiddleware {
	return &AuthMiddleware{log: log.With("middleware", "AuthMiddleware"), users: users}
}

// RequireAuth attaches ctxutil.RequestData for a valid bearer token and
// aborts with 401 otherwise.
func (am *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			response.RespondError(c, http.StatusUnauthorized, "unauthorized", errMissingToken)
			c.Abort()
			return
		}
		userID, username, err := am.users.ParseToken(token)
		if err != nil {
			am.log.Debug("token rejected", "error", err)
			response.RespondError(c, http.StatusUnauthorized, "unauthorized", err)
			c.Abort()
			return
		}
		ctx := ctxutil.WithRequestData(c.Request.Context(), &ctxutil.RequestData{
			UserID:   userID,
			Username: username,
		})
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

func extractToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if len(authHeader) > 7 && strings.EqualFold(authHeader[:7], "Bearer ") {
		return strings.TrimSpace(authHeader[7:])
	}
	if cookie, err := c.Cookie(SessionCookie); err == nil && cookie != "" {
		return cookie
	}
	return c.Query("token")
}
