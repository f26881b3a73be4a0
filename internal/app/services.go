package app

import (
	"fmt"

	"github.com/yungbote/analogyai-backend/internal/learning/prompts"
	"github.com/yungbote/analogyai-backend/internal/platform/ctxutil"
	"github.com/yungbote/analogyai-backend/internal/platform/logger"
	"github.com/yungbote/analogyai-backend/internal/services"
	"github.com/yungbote/analogyai-backend/internal/services/identity"
)

type Services struct {
	User     services.UserService
	Analogy  services.AnalogyService
	Auth     services.AuthService
	Identity identity.Resolver
}

func wireServices(log *logger.Logger, cfg Config, r Repos, c Clients) (Services, error) {
	log.Info("Wiring services...")

	prompts.RegisterAll()
	if names, err := prompts.LoadOverrides(cfg.PromptOverridesPath); err != nil {
		return Services{}, fmt.Errorf("load prompt overrides: %w", err)
	} else if len(names) > 0 {
		log.Info("prompt overrides applied", "path", cfg.PromptOverridesPath, "prompts", names)
	}

	userService := services.NewUserService(log, r.User)
	authService := services.NewAuthService(log, userService, r.Session, c.Google, cfg.JWTSecretKey, cfg.AccessTokenTTL, cfg.SessionTTL)
	analogyService := services.NewAnalogyService(log, r.User, r.Analogy, c.Generator, cfg.Generation)

	resolver, err := buildResolver(cfg, authService, r)
	if err != nil {
		return Services{}, err
	}
	return Services{
		User:     userService,
		Analogy:  analogyService,
		Auth:     authService,
		Identity: resolver,
	}, nil
}

// buildResolver turns AUTH_STRATEGIES into an ordered identity chain.
func buildResolver(cfg Config, auth services.AuthService, r Repos) (identity.Chain, error) {
	chain := make(identity.Chain, 0, len(cfg.AuthStrategies))
	for _, name := range cfg.AuthStrategies {
		switch name {
		case identity.StrategyJWT:
			chain = append(chain, identity.JWTResolver{Parser: auth})
		case identity.StrategySession:
			chain = append(chain, identity.SessionResolver{Sessions: r.Session})
		case identity.StrategyHeader:
			chain = append(chain, identity.HeaderResolver{})
		case identity.StrategyStatic:
			chain = append(chain, identity.StaticResolver{Identity: staticIdentity(cfg)})
		default:
			return nil, fmt.Errorf("unknown auth strategy %q", name)
		}
	}
	if len(chain) == 0 {
		return nil, fmt.Errorf("AUTH_STRATEGIES is empty")
	}
	return chain, nil
}

func staticIdentity(cfg Config) ctxutil.Identity {
	switch cfg.StaticUserID {
	case "", identity.DevIdentity.UserID:
		return identity.DevIdentity
	case identity.GuestIdentity.UserID:
		return identity.GuestIdentity
	}
	return ctxutil.Identity{UserID: cfg.StaticUserID, Email: cfg.StaticUserEmail}
}
