package services

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/yungbote/lsbmorph-backend/internal/data/repos"
	types "github.com/yungbote/lsbmorph-backend/internal/domain"
	"github.com/yungbote/lsbmorph-backend/internal/images"
	"github.com/yungbote/lsbmorph-backend/internal/navigation"
	"github.com/yungbote/lsbmorph-backend/internal/platform/dbctx"
	"github.com/yungbote/lsbmorph-backend/internal/platform/errs"
	"github.com/yungbote/lsbmorph-backend/internal/platform/logger"
)

// GalaxyView is everything the classify page shows for one galaxy.
type GalaxyView struct {
	Galaxy         *types.Galaxy         `json:"galaxy"`
	Classification *types.Classification `json:"current_classification"`
	NextID         *string               `json:"next_id"`
	PreviousID     *string               `json:"previous_id"`
	Images         []images.Image        `json:"images"`
	Progress       *Progress             `json:"progress"`
	Mode           navigation.Mode           `json:"mode"`
}

type GalaxyService interface {
	View(dbc dbctx.Context, userID uint, galaxyID string, mode navigation.Mode) (*GalaxyView, error)
	AdvanceAfter(dbc dbctx.Context, userID uint, galaxyID string, mode navigation.Mode) (*string, error)
	Neighbor(dbc dbctx.Context, userID uint, galaxyID string, dir navigation.Direction, f navigation.Filter) (*types.Galaxy, error)
	ImagePath(dbc dbctx.Context, galaxyID, filename string) (string, error)
}

type galaxyService struct {
	log        *logger.Logger
	galaxyRepo repos.GalaxyRepo
	labels     LabelService
	progress   ProgressService
	engine     *navigation.Engine
	images     *images.Resolver
}

func NewGalaxyService(
	log *logger.Logger,
	galaxyRepo repos.GalaxyRepo,
	labels LabelService,
	progress ProgressService,
	engine *navigation.Engine,
	resolver *images.Resolver,
) GalaxyService {
	return &galaxyService{
		log:        log.With("service", "GalaxyService"),
		galaxyRepo: galaxyRepo,
		labels:     labels,
		progress:   progress,
		engine:     engine,
		images:     resolver,
	}
}

// plusInURL matches KiDS IDs whose "+" arrived as "p" through a URL.
var plusInURL = regexp.MustCompile(`^(KiDSDR4_J\d{6}\.\d{3})p(\d{6}\.\d{2})$`)

// NormalizeGalaxyID restores the "+" in KiDS catalog IDs.
func NormalizeGalaxyID(id string) string {
	id = strings.TrimSpace(id)
	if m := plusInURL.FindStringSubmatch(id); m != nil {
		return m[1] + "+" + m[2]
	}
	return id
}

func (s *galaxyService) View(dbc dbctx.Context, userID uint, galaxyID string, mode navigation.Mode) (*GalaxyView, error) {
	var (
		g   *types.Galaxy
		err error
	)
	galaxyID = NormalizeGalaxyID(galaxyID)
	if galaxyID == "" {
		g, err = s.engine.First(dbc, userID, mode.Filter())
	} else {
		g, err = s.galaxyRepo.GetByID(dbc, galaxyID)
	}
	if err != nil {
		return nil, fmt.Errorf("load galaxy: %w", err)
	}
	if g == nil {
		return nil, errs.ErrNotFound
	}

	view := &GalaxyView{Galaxy: g, Mode: mode}

	if view.Classification, err = s.labels.GetClassification(dbc, userID, g.ID); err != nil {
		return nil, fmt.Errorf("load classification: %w", err)
	}

	neighbors := mode.NeighborFilter()
	next, err := s.engine.Next(dbc, userID, g.ID, neighbors)
	if err != nil {
		return nil, err
	}
	prev, err := s.engine.Previous(dbc, userID, g.ID, neighbors)
	if err != nil {
		return nil, err
	}
	view.NextID = idPtr(next)
	view.PreviousID = idPtr(prev)

	if s.images != nil {
		imgs, err := s.images.Resolve(dbc.Context(), g.ID, g.DisplayParams(), s.images.Defaults())
		if err != nil {
			s.log.Warn("image resolve failed", "galaxy_id", g.ID, "error", err)
		}
		view.Images = imgs
	}

	if view.Progress, err = s.progress.Progress(dbc, userID); err != nil {
		return nil, err
	}
	return view, nil
}

// AdvanceAfter returns the next galaxy after galaxyID that still matches
// mode, or nil at the end of the chain.
func (s *galaxyService) AdvanceAfter(dbc dbctx.Context, userID uint, galaxyID string, mode navigation.Mode) (*string, error) {
	next, err := s.engine.Next(dbc, userID, NormalizeGalaxyID(galaxyID), mode.Filter())
	if err != nil {
		return nil, err
	}
	return idPtr(next), nil
}

func (s *galaxyService) Neighbor(dbc dbctx.Context, userID uint, galaxyID string, dir navigation.Direction, f navigation.Filter) (*types.Galaxy, error) {
	return s.engine.FindAdjacent(dbc, userID, NormalizeGalaxyID(galaxyID), dir, f)
}

// ImagePath resolves a single image file, rendering the galaxy on demand.
func (s *galaxyService) ImagePath(dbc dbctx.Context, galaxyID, filename string) (string, error) {
	if s.images == nil {
		return "", errs.ErrNotFound
	}
	galaxyID = NormalizeGalaxyID(galaxyID)
	g, err := s.galaxyRepo.GetByID(dbc, galaxyID)
	if err != nil {
		return "", fmt.Errorf("load galaxy: %w", err)
	}
	if g == nil {
		return "", errs.ErrNotFound
	}
	return s.images.Path(dbc.Context(), g.ID, filename, g.DisplayParams())
}

func idPtr(g *types.Galaxy) *string {
	if g == nil {
		return nil
	}
	id := g.ID
	return &id
}
