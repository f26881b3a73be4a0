package app

import (
	httpH "github.com/yungbote/analogyai-backend/internal/http/handlers"
	"github.com/yungbote/analogyai-backend/internal/observability"
	"github.com/yungbote/analogyai-backend/internal/platform/logger"
)

type Handlers struct {
	Health  *httpH.HealthHandler
	Auth    *httpH.AuthHandler
	User    *httpH.UserHandler
	Analogy *httpH.AnalogyHandler
}

func wireHandlers(log *logger.Logger, cfg Config, services Services, metrics *observability.Metrics) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Health: httpH.NewHealthHandler(metrics),
		Auth:   httpH.NewAuthHandler(log, services.Auth, services.User, cfg.CookieSecure),
		User:   httpH.NewUserHandler(log, services.User),
		Analogy: httpH.NewAnalogyHandlerWithDeps(httpH.AnalogyHandlerDeps{
			Log:       log,
			Analogies: services.Analogy,
		}),
	}
}
