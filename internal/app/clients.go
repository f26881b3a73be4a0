package app

import (
	"context"
	"fmt"

	goredis "github.com/redis/go-redis/v9"

	"github.com/yungbote/analogyai-backend/internal/platform/anthropic"
	"github.com/yungbote/analogyai-backend/internal/platform/gemini"
	"github.com/yungbote/analogyai-backend/internal/platform/httpx"
	"github.com/yungbote/analogyai-backend/internal/platform/llm"
	"github.com/yungbote/analogyai-backend/internal/platform/logger"
	"github.com/yungbote/analogyai-backend/internal/platform/openai"
	"github.com/yungbote/analogyai-backend/internal/platform/redis"
	"github.com/yungbote/analogyai-backend/internal/services"
)

type Clients struct {
	Generator llm.Generator
	Redis     *goredis.Client
	Google    services.GoogleVerifier
}

func wireClients(ctx context.Context, log *logger.Logger, cfg Config) (Clients, error) {
	log.Info("Wiring clients...")

	gen, err := newGenerator(ctx, log, cfg)
	if err != nil {
		return Clients{}, err
	}

	// Redis
	var rdb *goredis.Client
	if cfg.RedisAddr != "" {
		rdb, err = redis.NewClient(log, redis.Config{Addr: cfg.RedisAddr, Password: cfg.RedisPassword, DB: cfg.RedisDB})
		if err != nil {
			return Clients{}, fmt.Errorf("init redis: %w", err)
		}
	}

	// Google sign-in
	var google services.GoogleVerifier
	if cfg.GoogleClientID != "" {
		google, err = services.NewGoogleVerifier(ctx, httpx.NewClient(cfg.LLMTimeout), cfg.GoogleClientID)
		if err != nil {
			if rdb != nil {
				_ = rdb.Close()
			}
			return Clients{}, fmt.Errorf("init google verifier: %w", err)
		}
	} else {
		log.Warn("GOOGLE_OIDC_CLIENT_ID not set; google sign-in disabled")
	}

	return Clients{
		Generator: llm.Instrument(gen, log),
		Redis:     rdb,
		Google:    google,
	}, nil
}

func newGenerator(ctx context.Context, log *logger.Logger, cfg Config) (llm.Generator, error) {
	switch cfg.LLMProvider {
	case ProviderOpenAI, "":
		c, err := openai.NewClient(log, openai.Config{
			APIKey:  cfg.OpenAIAPIKey,
			BaseURL: cfg.OpenAIBaseURL,
			Model:   cfg.OpenAIModel,
			Timeout: cfg.LLMTimeout,
		})
		if err != nil {
			return nil, fmt.Errorf("init openai client: %w", err)
		}
		return c, nil
	case ProviderAnthropic:
		c, err := anthropic.NewClient(log, anthropic.Config{
			APIKey:  cfg.AnthropicAPIKey,
			Model:   cfg.AnthropicModel,
			Timeout: cfg.LLMTimeout,
		})
		if err != nil {
			return nil, fmt.Errorf("init anthropic client: %w", err)
		}
		return c, nil
	case ProviderGemini:
		c, err := gemini.NewClient(ctx, log, gemini.Config{
			APIKey:  cfg.GeminiAPIKey,
			Model:   cfg.GeminiModel,
			Timeout: cfg.LLMTimeout,
		})
		if err != nil {
			return nil, fmt.Errorf("init gemini client: %w", err)
		}
		return c, nil
	default:
		return nil, fmt.Errorf("unsupported LLM_PROVIDER %q", cfg.LLMProvider)
	}
}

func (c *Clients) Close() {
	if c == nil {
		return
	}
	if c.Redis != nil {
		_ = c.Redis.Close()
	}
}
