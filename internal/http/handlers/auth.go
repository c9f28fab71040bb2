package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/lsbmorph-backend/internal/http/middleware"
	"github.com/yungbote/lsbmorph-backend/internal/http/response"
	"github.com/yungbote/lsbmorph-backend/internal/services"
)

type AuthHandler struct {
	users services.UserService
}

func NewAuthHandler(users services.UserService) *AuthHandler {
	return &AuthHandler{users: users}
}

// POST /api/login
// body: { "username": "..." }
func (ah *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Username string `json:"username"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	user, token, err := ah.users.Login(requestDBC(c), req.Username)
	if err != nil {
		respondErr(c, err)
		return
	}
	expiresIn := int(ah.users.AccessTTL().Seconds())
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookie, token, expiresIn, "/", "", false, true)
	response.RespondOK(c, gin.H{
		"token":      token,
		"expires_in": expiresIn,
		"user":       user,
	})
}

// POST /api/logout
// Tokens are stateless; logout only clears the browser cookie.
func (ah *AuthHandler) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookie, "", -1, "/", "", false, true)
	response.RespondOK(c, gin.H{"ok": true})
}

// GET /api/me
func (ah *AuthHandler) Me(c *gin.Context) {
	uid, ok := requireUser(c)
	if !ok {
		return
	}
	me, err := ah.users.GetByID(requestDBC(c), uid)
	if err != nil {
		respondErr(c, err)
		return
	}
	response.RespondOK(c, gin.H{"me": me})
}
