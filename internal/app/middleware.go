package app

import (
	httpMW "github.com/yungbote/analogyai-backend/internal/http/middleware"
	"github.com/yungbote/analogyai-backend/internal/platform/logger"
)

type Middleware struct {
	Auth *httpMW.AuthMiddleware
}

func wireMiddleware(log *logger.Logger, services Services) Middleware {
	log.Info("Wiring middleware...")
	return Middleware{
		Auth: httpMW.NewAuthMiddleware(log, services.Identity, services.User),
	}
}
