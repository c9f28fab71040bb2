package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/lsbmorph-backend/internal/http/response"
	"github.com/yungbote/lsbmorph-backend/internal/platform/ctxutil"
	"github.com/yungbote/lsbmorph-backend/internal/platform/dbctx"
	"github.com/yungbote/lsbmorph-backend/internal/platform/errs"
	"github.com/yungbote/lsbmorph-backend/internal/services"
)

func requestDBC(c *gin.Context) dbctx.Context {
	return dbctx.Context{Ctx: c.Request.Context()}
}

// requestUserID returns the authenticated user, or 0 when the auth
// middleware did not run.
func requestUserID(c *gin.Context) uint {
	if rd := ctxutil.GetRequestData(c.Request.Context()); rd != nil {
		return rd.UserID
	}
	return 0
}

func requireUser(c *gin.Context) (uint, bool) {
	uid := requestUserID(c)
	if uid == 0 {
		response.RespondError(c, http.StatusUnauthorized, "unauthorized", errs.ErrUnauthorized)
		return 0, false
	}
	return uid, true
}

func respondErr(c *gin.Context, err error) {
	var ve *services.ValidationError
	if errors.As(err, &ve) {
		response.RespondErrorFields(c, http.StatusBadRequest, "validation_failed", err, ve.Fields)
		return
	}
	response.RespondAPIError(c, err)
}

// optionalInt parses an integer query value. Empty means unset.
func optionalInt(raw, name string) (*int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s must be an integer", errs.ErrInvalidArgument, name)
	}
	return &n, nil
}
