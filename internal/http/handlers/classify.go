package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yungbote/lsbmorph-backend/internal/http/params"
	"github.com/yungbote/lsbmorph-backend/internal/http/response"
	"github.com/yungbote/lsbmorph-backend/internal/platform/dbctx"
	"github.com/yungbote/lsbmorph-backend/internal/platform/logger"
	"github.com/yungbote/lsbmorph-backend/internal/services"
)

// ClassifyHandler serves the classify page and records labels and skips.
type ClassifyHandler struct {
	db       *gorm.DB
	log      *logger.Logger
	galaxies services.GalaxyService
	labels   services.LabelService
}

func NewClassifyHandler(db *gorm.DB, log *logger.Logger, galaxies services.GalaxyService, labels services.LabelService) *ClassifyHandler {
	return &ClassifyHandler{
		db:       db,
		log:      log.With("handler", "ClassifyHandler"),
		galaxies: galaxies,
		labels:   labels,
	}
}

// advanceResponse tells the client where to go after a write. Params is the
// mode query string to carry forward.
type advanceResponse struct {
	NextID *string `json:"next_id"`
	Params string  `json:"params"`
}

// GET /api/classify?id=&with_redshift=&classified=&skipped=&valid_redshift=
func (h *ClassifyHandler) Classify(c *gin.Context) {
	uid, ok := requireUser(c)
	if !ok {
		return
	}
	mode := params.FromValues(c.Request.URL.Query())
	view, err := h.galaxies.View(requestDBC(c), uid, c.Query("id"), mode)
	if err != nil {
		respondErr(c, err)
		return
	}
	response.RespondOK(c, view)
}

// POST /api/classifications
// body: { "galaxy_id", "lsb_class", "morphology", "comments", "awesome_flag", "valid_redshift" }
func (h *ClassifyHandler) SubmitClassification(c *gin.Context) {
	uid, ok := requireUser(c)
	if !ok {
		return
	}
	var req struct {
		GalaxyID      string `json:"galaxy_id"`
		LSBClass      *int   `json:"lsb_class"`
		Morphology    *int   `json:"morphology"`
		Comments      string `json:"comments"`
		AwesomeFlag   bool   `json:"awesome_flag"`
		ValidRedshift bool   `json:"valid_redshift"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	var missing []string
	if req.LSBClass == nil {
		missing = append(missing, "lsb_class")
	}
	if req.Morphology == nil {
		missing = append(missing, "morphology")
	}
	if len(missing) > 0 {
		respondErr(c, &services.ValidationError{Fields: missing})
		return
	}

	mode := params.FromValues(c.Request.URL.Query())
	galaxyID := services.NormalizeGalaxyID(req.GalaxyID)
	in := services.ClassificationInput{
		UserID:        uid,
		GalaxyID:      galaxyID,
		LSBClass:      *req.LSBClass,
		Morphology:    *req.Morphology,
		Comments:      req.Comments,
		AwesomeFlag:   req.AwesomeFlag,
		ValidRedshift: req.ValidRedshift,
	}

	var next *string
	err := services.WithTx(requestDBC(c), h.db, func(dbc dbctx.Context) error {
		if _, err := h.labels.UpsertClassification(dbc, in); err != nil {
			return err
		}
		var err error
		next, err = h.galaxies.AdvanceAfter(dbc, uid, galaxyID, mode)
		return err
	})
	if err != nil {
		respondErr(c, err)
		return
	}
	h.log.Debug("classification saved", "user_id", uid, "galaxy_id", galaxyID)
	response.RespondOK(c, advanceResponse{NextID: next, Params: params.ToValues(mode).Encode()})
}

// POST /api/skips
// body: { "galaxy_id", "comments" }
func (h *ClassifyHandler) Skip(c *gin.Context) {
	uid, ok := requireUser(c)
	if !ok {
		return
	}
	var req struct {
		GalaxyID string `json:"galaxy_id"`
		Comments string `json:"comments"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	mode := params.FromValues(c.Request.URL.Query())
	galaxyID := services.NormalizeGalaxyID(req.GalaxyID)

	var next *string
	err := services.WithTx(requestDBC(c), h.db, func(dbc dbctx.Context) error {
		if _, err := h.labels.UpsertSkip(dbc, uid, galaxyID, req.Comments); err != nil {
			return err
		}
		var err error
		next, err = h.galaxies.AdvanceAfter(dbc, uid, galaxyID, mode)
		return err
	})
	if err != nil {
		respondErr(c, err)
		return
	}
	response.RespondOK(c, advanceResponse{NextID: next, Params: params.ToValues(mode).Encode()})
}

// DELETE /api/skips/:galaxy_id
func (h *ClassifyHandler) Unskip(c *gin.Context) {
	uid, ok := requireUser(c)
	if !ok {
		return
	}
	galaxyID := services.NormalizeGalaxyID(c.Param("galaxy_id"))
	var removed bool
	err := services.WithTx(requestDBC(c), h.db, func(dbc dbctx.Context) error {
		var err error
		removed, err = h.labels.DeleteSkip(dbc, uid, galaxyID)
		return err
	})
	if err != nil {
		respondErr(c, err)
		return
	}
	response.RespondOK(c, gin.H{"galaxy_id": galaxyID, "removed": removed})
}

// GET /api/skips
func (h *ClassifyHandler) ListSkips(c *gin.Context) {
	uid, ok := requireUser(c)
	if !ok {
		return
	}
	rows, err := h.labels.ListSkipped(requestDBC(c), uid)
	if err != nil {
		respondErr(c, err)
		return
	}
	response.RespondOK(c, gin.H{"skipped": rows})
}
