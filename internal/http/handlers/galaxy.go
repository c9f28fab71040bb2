package handlers

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/lsbmorph-backend/internal/http/params"
	"github.com/yungbote/lsbmorph-backend/internal/http/response"
	"github.com/yungbote/lsbmorph-backend/internal/navigation"
	"github.com/yungbote/lsbmorph-backend/internal/platform/errs"
	"github.com/yungbote/lsbmorph-backend/internal/services"
)

type GalaxyHandler struct {
	galaxies services.GalaxyService
}

func NewGalaxyHandler(galaxies services.GalaxyService) *GalaxyHandler {
	return &GalaxyHandler{galaxies: galaxies}
}

// GET /api/galaxies/:id/neighbors?direction=&skipped=&classified=&with_redshift=&valid_redshift=&lsb_class=&morphology=
//
// Unlike the classify page, omitted tri-state filters mean "any".
func (h *GalaxyHandler) Neighbors(c *gin.Context) {
	uid, ok := requireUser(c)
	if !ok {
		return
	}
	dir, ok := navigation.ParseDirection(c.Query("direction"))
	if !ok {
		respondErr(c, fmt.Errorf("%w: direction must be next or previous", errs.ErrInvalidArgument))
		return
	}
	f, err := neighborFilter(c)
	if err != nil {
		respondErr(c, err)
		return
	}
	g, err := h.galaxies.Neighbor(requestDBC(c), uid, c.Param("id"), dir, f)
	if err != nil {
		respondErr(c, err)
		return
	}
	var id *string
	if g != nil {
		id = &g.ID
	}
	response.RespondOK(c, gin.H{"id": id, "galaxy": g, "direction": dir.String()})
}

func neighborFilter(c *gin.Context) (navigation.Filter, error) {
	f := params.Filter(c.Request.URL.Query())
	var err error
	if f.LSBClass, err = optionalInt(c.Query("lsb_class"), "lsb_class"); err != nil {
		return f, err
	}
	if f.Morphology, err = optionalInt(c.Query("morphology"), "morphology"); err != nil {
		return f, err
	}
	return f, nil
}

// GET /static/galaxy_images/:galaxy_id/:file
func (h *GalaxyHandler) Image(c *gin.Context) {
	path, err := h.galaxies.ImagePath(requestDBC(c), c.Param("galaxy_id"), c.Param("file"))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.Header("Cache-Control", "public, max-age=3600")
	c.File(path)
}
