package app

import (
	apphttp "github.com/yungbote/analogyai-backend/internal/http"
	"github.com/yungbote/analogyai-backend/internal/observability"
	"github.com/yungbote/analogyai-backend/internal/platform/logger"
)

func wireServer(log *logger.Logger, cfg Config, handlers Handlers, middleware Middleware, metrics *observability.Metrics) *apphttp.Server {
	return apphttp.NewServer(apphttp.RouterConfig{
		Log:            log.With("middleware", "RequestLogger"),
		ServiceName:    cfg.ServiceName,
		AllowedOrigins: cfg.AllowedOrigins,
		Metrics:        metrics,
		AuthMiddleware: middleware.Auth,
		AuthHandler:    handlers.Auth,
		UserHandler:    handlers.User,
		AnalogyHandler: handlers.Analogy,
		HealthHandler:  handlers.Health,
	})
}
