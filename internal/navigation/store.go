package navigation

import (
	"github.com/yungbote/lsbmorph-backend/internal/data/repos/catalog"
	"github.com/yungbote/lsbmorph-backend/internal/data/repos/labels"
	types "github.com/yungbote/lsbmorph-backend/internal/domain"
	"github.com/yungbote/lsbmorph-backend/internal/platform/dbctx"
)

// Store is the read side the engine needs. GetGalaxy returns nil, nil for an
// unknown ID.
type Store interface {
	GetGalaxy(dbc dbctx.Context, id string) (*types.Galaxy, error)
	IsSkipped(dbc dbctx.Context, userID uint, galaxyID string) (bool, error)
	GetClassification(dbc dbctx.Context, userID uint, galaxyID string) (*types.Classification, error)
	FirstMatching(dbc dbctx.Context, q catalog.Query) (*types.Galaxy, error)
}

type repoStore struct {
	galaxies        catalog.GalaxyRepo
	classifications labels.ClassificationRepo
	skips           labels.SkippedGalaxyRepo
}

func NewRepoStore(galaxies catalog.GalaxyRepo, classifications labels.ClassificationRepo, skips labels.SkippedGalaxyRepo) Store {
	return &repoStore{galaxies: galaxies, classifications: classifications, skips: skips}
}

func (s *repoStore) GetGalaxy(dbc dbctx.Context, id string) (*types.Galaxy, error) {
	return s.galaxies.GetByID(dbc, id)
}

func (s *repoStore) IsSkipped(dbc dbctx.Context, userID uint, galaxyID string) (bool, error) {
	return s.skips.Exists(dbc, userID, galaxyID)
}

func (s *repoStore) GetClassification(dbc dbctx.Context, userID uint, galaxyID string) (*types.Classification, error) {
	return s.classifications.GetByUserAndGalaxy(dbc, userID, galaxyID)
}

func (s *repoStore) FirstMatching(dbc dbctx.Context, q catalog.Query) (*types.Galaxy, error) {
	return s.galaxies.FirstMatching(dbc, q)
}
