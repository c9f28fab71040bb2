package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/lsbmorph-backend/internal/data/repos"
	"github.com/yungbote/lsbmorph-backend/internal/images"
	"github.com/yungbote/lsbmorph-backend/internal/navigation"
	"github.com/yungbote/lsbmorph-backend/internal/platform/logger"
	"github.com/yungbote/lsbmorph-backend/internal/services"
)

type Services struct {
	Users    services.UserService
	Labels   services.LabelService
	Progress services.ProgressService
	Galaxies services.GalaxyService
	Engine   *navigation.Engine
	Images   *images.Resolver
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, r repos.Set, clients Clients) Services {
	log.Info("Wiring services...")

	var engineOpts []navigation.Option
	if cfg.NavigationMaxSteps > 0 {
		engineOpts = append(engineOpts, navigation.WithMaxSteps(cfg.NavigationMaxSteps))
	}
	engine := navigation.NewEngine(log, navigation.NewRepoStore(r.Galaxies, r.Classifications, r.Skips), engineOpts...)

	resolverOpts := []images.ResolverOption{
		images.WithDefaults(images.VMax{Percentile: cfg.VMaxPercentile, Raw: cfg.VMaxPercentileRaw}),
	}
	if clients.Mirror != nil {
		resolverOpts = append(resolverOpts, images.WithMirror(clients.Mirror))
	}
	resolver := images.NewResolver(log, cfg.ImagesFolder, resolverOpts...)

	users := services.NewUserService(db, log, r.Users, cfg.JWTSecretKey, cfg.AccessTokenTTL)
	labels := services.NewLabelService(db, log, r.Classifications, r.Skips)
	progress := services.NewProgressService(log, r.Galaxies, r.Classifications, r.Skips, clients.CountCache)
	galaxies := services.NewGalaxyService(log, r.Galaxies, labels, progress, engine, resolver)

	return Services{
		Users:    users,
		Labels:   labels,
		Progress: progress,
		Galaxies: galaxies,
		Engine:   engine,
		Images:   resolver,
	}
}
