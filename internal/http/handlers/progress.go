package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/lsbmorph-backend/internal/http/response"
	"github.com/yungbote/lsbmorph-backend/internal/services"
)

type ProgressHandler struct {
	progress    services.ProgressService
	recentLimit int
}

func NewProgressHandler(progress services.ProgressService, recentLimit int) *ProgressHandler {
	return &ProgressHandler{progress: progress, recentLimit: services.ClampRecent(recentLimit)}
}

// GET /api/progress
func (h *ProgressHandler) Progress(c *gin.Context) {
	uid, ok := requireUser(c)
	if !ok {
		return
	}
	p, err := h.progress.Progress(requestDBC(c), uid)
	if err != nil {
		respondErr(c, err)
		return
	}
	response.RespondOK(c, p)
}

// GET /api/results?recent= (capped at services.MaxRecentLimit)
func (h *ProgressHandler) Results(c *gin.Context) {
	uid, ok := requireUser(c)
	if !ok {
		return
	}
	recent, err := optionalInt(c.Query("recent"), "recent")
	if err != nil {
		respondErr(c, err)
		return
	}
	n := h.recentLimit
	if recent != nil && *recent > 0 {
		n = services.ClampRecent(*recent)
	}
	stats, err := h.progress.Stats(requestDBC(c), uid, n)
	if err != nil {
		respondErr(c, err)
		return
	}
	response.RespondOK(c, stats)
}
