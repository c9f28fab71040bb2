package http

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/yungbote/lsbmorph-backend/internal/http/handlers"
	httpMW "github.com/yungbote/lsbmorph-backend/internal/http/middleware"
	"github.com/yungbote/lsbmorph-backend/internal/images"
	"github.com/yungbote/lsbmorph-backend/internal/observability"
	"github.com/yungbote/lsbmorph-backend/internal/platform/logger"
)

type RouterConfig struct {
	Log         *logger.Logger
	ServiceName string
	CORSOrigins []string
	Metrics     *observability.Metrics

	AuthMiddleware *httpMW.AuthMiddleware

	HealthHandler   *httpH.HealthHandler
	AuthHandler     *httpH.AuthHandler
	ClassifyHandler *httpH.ClassifyHandler
	ProgressHandler *httpH.ProgressHandler
	GalaxyHandler   *httpH.GalaxyHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if cfg.ServiceName != "" {
		r.Use(otelgin.Middleware(cfg.ServiceName))
	}
	r.Use(httpMW.AttachRequestContext())
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.Metrics(cfg.Metrics))
	r.Use(httpMW.CORS(cfg.CORSOrigins))

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}
	if cfg.Metrics != nil {
		r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}

	// Images are public so <img> tags work without a bearer header.
	if cfg.GalaxyHandler != nil {
		r.GET("/static/"+images.URLPrefix+"/:galaxy_id/:file", cfg.GalaxyHandler.Image)
	}

	api := r.Group("/api")
	{
		// Auth (public)
		if cfg.AuthHandler != nil {
			api.POST("/login", cfg.AuthHandler.Login)
			api.POST("/logout", cfg.AuthHandler.Logout)
		}
	}

	protected := api.Group("/")
	{
		if cfg.AuthMiddleware != nil {
			protected.Use(cfg.AuthMiddleware.RequireAuth())
		}

		if cfg.AuthHandler != nil {
			protected.GET("/me", cfg.AuthHandler.Me)
		}

		// Classify page and labels
		if cfg.ClassifyHandler != nil {
			protected.GET("/classify", cfg.ClassifyHandler.Classify)
			protected.POST("/classifications", cfg.ClassifyHandler.SubmitClassification)
			protected.POST("/skips", cfg.ClassifyHandler.Skip)
			protected.GET("/skips", cfg.ClassifyHandler.ListSkips)
			protected.DELETE("/skips/:galaxy_id", cfg.ClassifyHandler.Unskip)
		}

		// Progress
		if cfg.ProgressHandler != nil {
			protected.GET("/progress", cfg.ProgressHandler.Progress)
			protected.GET("/results", cfg.ProgressHandler.Results)
		}

		// Navigation
		if cfg.GalaxyHandler != nil {
			protected.GET("/galaxies/:id/neighbors", cfg.GalaxyHandler.Neighbors)
		}
	}

	return r
}
