package repos

import (
	"gorm.io/gorm"

	"github.com/yungbote/lsbmorph-backend/internal/data/repos/catalog"
	"github.com/yungbote/lsbmorph-backend/internal/data/repos/labels"
	"github.com/yungbote/lsbmorph-backend/internal/data/repos/user"
	"github.com/yungbote/lsbmorph-backend/internal/platform/logger"
)

type UserRepo = user.UserRepo

type GalaxyRepo = catalog.GalaxyRepo
type GalaxyQuery = catalog.Query

type ClassificationRepo = labels.ClassificationRepo
type SkippedGalaxyRepo = labels.SkippedGalaxyRepo

func NewUserRepo(db *gorm.DB, baseLog *logger.Logger) UserRepo { return user.NewUserRepo(db, baseLog) }

func NewGalaxyRepo(db *gorm.DB, baseLog *logger.Logger) GalaxyRepo {
	return catalog.NewGalaxyRepo(db, baseLog)
}

func NewClassificationRepo(db *gorm.DB, baseLog *logger.Logger) ClassificationRepo {
	return labels.NewClassificationRepo(db, baseLog)
}
func NewSkippedGalaxyRepo(db *gorm.DB, baseLog *logger.Logger) SkippedGalaxyRepo {
	return labels.NewSkippedGalaxyRepo(db, baseLog)
}

// Set bundles every repo over one connection pool.
type Set struct {
	Users           UserRepo
	Galaxies        GalaxyRepo
	Classifications ClassificationRepo
	Skips           SkippedGalaxyRepo
}

func NewSet(db *gorm.DB, baseLog *logger.Logger) Set {
	return Set{
		Users:           NewUserRepo(db, baseLog),
		Galaxies:        NewGalaxyRepo(db, baseLog),
		Classifications: NewClassificationRepo(db, baseLog),
		Skips:           NewSkippedGalaxyRepo(db, baseLog),
	}
}
