package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/yungbote/analogyai-backend/internal/http/handlers"
	httpMW "github.com/yungbote/analogyai-backend/internal/http/middleware"
	"github.com/yungbote/analogyai-backend/internal/observability"
	"github.com/yungbote/analogyai-backend/internal/platform/logger"
)

type RouterConfig struct {
	Log            *logger.Logger
	ServiceName    string
	AllowedOrigins []string
	Metrics        *observability.Metrics

	AuthMiddleware *httpMW.AuthMiddleware

	AuthHandler    *httpH.AuthHandler
	UserHandler    *httpH.UserHandler
	AnalogyHandler *httpH.AnalogyHandler
	HealthHandler  *httpH.HealthHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if cfg.ServiceName != "" {
		r.Use(otelgin.Middleware(cfg.ServiceName))
	}
	r.Use(httpMW.AttachTraceContext())
	r.Use(httpMW.Metrics(cfg.Metrics))
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.CORS(cfg.AllowedOrigins))

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
		if cfg.Metrics != nil {
			r.GET("/metrics", cfg.HealthHandler.Metrics)
		}
	}

	api := r.Group("/api")

	// Auth (public or optional)
	if cfg.AuthHandler != nil {
		api.POST("/auth/google", cfg.AuthHandler.GoogleLogin)
		if cfg.AuthMiddleware != nil {
			api.GET("/auth/user", cfg.AuthMiddleware.OptionalAuth(), cfg.AuthHandler.CurrentUser)
			api.POST("/logout", cfg.AuthMiddleware.OptionalAuth(), cfg.AuthHandler.Logout)
		}
	}

	protected := api.Group("")
	if cfg.AuthMiddleware != nil {
		protected.Use(cfg.AuthMiddleware.RequireAuth())
	}
	{
		// Analogies
		if cfg.AnalogyHandler != nil {
			protected.POST("/analogy", cfg.AnalogyHandler.Generate)
			protected.POST("/analogy/regenerate", cfg.AnalogyHandler.Regenerate)
			protected.GET("/analogy/:id", cfg.AnalogyHandler.Get)
			protected.POST("/analogy/:id/feedback", cfg.AnalogyHandler.Feedback)
			protected.PUT("/analogy/:id/favorite", cfg.AnalogyHandler.SetFavorite)
			protected.DELETE("/analogy/:id", cfg.AnalogyHandler.Delete)
			protected.GET("/history", cfg.AnalogyHandler.History)
		}

		// Profile
		if cfg.UserHandler != nil {
			protected.GET("/profile", cfg.UserHandler.GetProfile)
			protected.PUT("/profile", cfg.UserHandler.UpdateProfile)
		}
	}

	return r
}
