package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/lsbmorph-backend/internal/http"
	httpH "github.com/yungbote/lsbmorph-backend/internal/http/handlers"
	httpMW "github.com/yungbote/lsbmorph-backend/internal/http/middleware"
	"github.com/yungbote/lsbmorph-backend/internal/observability"
	"github.com/yungbote/lsbmorph-backend/internal/platform/logger"
)

const serviceName = "lsbmorph"

type Middleware struct {
	Auth *httpMW.AuthMiddleware
}

type Handlers struct {
	Health   *httpH.HealthHandler
	Auth     *httpH.AuthHandler
	Classify *httpH.ClassifyHandler
	Progress *httpH.ProgressHandler
	Galaxy   *httpH.GalaxyHandler
}

func wireHandlers(db *gorm.DB, log *logger.Logger, cfg Config, services Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Health:   httpH.NewHealthHandler(db),
		Auth:     httpH.NewAuthHandler(services.Users),
		Classify: httpH.NewClassifyHandler(db, log, services.Galaxies, services.Labels),
		Progress: httpH.NewProgressHandler(services.Progress, cfg.RecentLimit),
		Galaxy:   httpH.NewGalaxyHandler(services.Galaxies),
	}
}

func wireMiddleware(log *logger.Logger, services Services) Middleware {
	log.Info("Wiring middleware...")
	return Middleware{
		Auth: httpMW.NewAuthMiddleware(log, services.Users),
	}
}

func wireServer(log *logger.Logger, cfg Config, metrics *observability.Metrics, handlers Handlers, middleware Middleware) *http.Server {
	otelName := ""
	if cfg.OtelEnabled {
		otelName = serviceName
	}
	return http.NewServer(http.RouterConfig{
		Log:             log,
		ServiceName:     otelName,
		CORSOrigins:     cfg.CORSOrigins,
		Metrics:         metrics,
		AuthMiddleware:  middleware.Auth,
		HealthHandler:   handlers.Health,
		AuthHandler:     handlers.Auth,
		ClassifyHandler: handlers.Classify,
		ProgressHandler: handlers.Progress,
		GalaxyHandler:   handlers.Galaxy,
	})
}
