package app

import (
	"strings"
	"time"

	"github.com/yungbote/analogyai-backend/internal/data/db"
	"github.com/yungbote/analogyai-backend/internal/platform/envutil"
	"github.com/yungbote/analogyai-backend/internal/platform/logger"
	"github.com/yungbote/analogyai-backend/internal/services"
	"github.com/yungbote/analogyai-backend/internal/services/identity"
)

const (
	DriverMemory = "memory"

	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
	ProviderGemini    = "gemini"

	defaultJWTSecret = "defaultsecret"
)

type Config struct {
	ServiceName string
	Environment string

	HTTPAddr        string
	ShutdownTimeout time.Duration
	AllowedOrigins  []string

	DB db.Config

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	AuthStrategies  []string
	JWTSecretKey    string
	AccessTokenTTL  time.Duration
	SessionTTL      time.Duration
	CookieSecure    bool
	GoogleClientID  string
	StaticUserID    string
	StaticUserEmail string

	LLMProvider     string
	OpenAIAPIKey    string
	OpenAIBaseURL   string
	OpenAIModel     string
	AnthropicAPIKey string
	AnthropicModel  string
	GeminiAPIKey    string
	GeminiModel     string
	LLMTimeout      time.Duration
	Generation      services.GenerationConfig

	PromptOverridesPath string
}

func LoadConfig(log *logger.Logger) Config {
	cfg := Config{
		ServiceName: envutil.String("SERVICE_NAME", "analogyai-backend"),
		Environment: envutil.String("APP_ENV", "development"),

		HTTPAddr:        envutil.String("HTTP_ADDR", ":8080"),
		ShutdownTimeout: envutil.Seconds("SHUTDOWN_TIMEOUT_SECONDS", 15*time.Second),
		AllowedOrigins:  envutil.List("CORS_ALLOWED_ORIGINS", nil),

		DB: db.Config{
			Driver:           strings.ToLower(envutil.String("DB_DRIVER", db.DriverPostgres)),
			PostgresHost:     envutil.String("POSTGRES_HOST", "localhost"),
			PostgresPort:     envutil.String("POSTGRES_PORT", "5432"),
			PostgresUser:     envutil.String("POSTGRES_USER", "postgres"),
			PostgresPassword: envutil.String("POSTGRES_PASSWORD", ""),
			PostgresName:     envutil.String("POSTGRES_NAME", "analogyai"),
			PostgresSSLMode:  envutil.String("POSTGRES_SSLMODE", "disable"),
			SQLitePath:       envutil.String("SQLITE_PATH", "analogyai.db"),
		},

		RedisAddr:     envutil.String("REDIS_ADDR", ""),
		RedisPassword: envutil.String("REDIS_PASSWORD", ""),
		RedisDB:       envutil.Int("REDIS_DB", 0),

		AuthStrategies:  envutil.List("AUTH_STRATEGIES", []string{identity.StrategyJWT, identity.StrategySession}),
		JWTSecretKey:    envutil.String("JWT_SECRET_KEY", defaultJWTSecret),
		AccessTokenTTL:  envutil.Seconds("ACCESS_TOKEN_TTL", time.Hour),
		SessionTTL:      envutil.Seconds("SESSION_TTL", 30*24*time.Hour),
		CookieSecure:    envutil.Bool("COOKIE_SECURE", false),
		GoogleClientID:  envutil.String("GOOGLE_OIDC_CLIENT_ID", ""),
		StaticUserID:    envutil.String("STATIC_USER_ID", ""),
		StaticUserEmail: envutil.String("STATIC_USER_EMAIL", ""),

		LLMProvider:     strings.ToLower(envutil.String("LLM_PROVIDER", ProviderOpenAI)),
		OpenAIAPIKey:    envutil.String("OPENAI_API_KEY", ""),
		OpenAIBaseURL:   envutil.String("OPENAI_BASE_URL", ""),
		OpenAIModel:     envutil.String("OPENAI_MODEL", ""),
		AnthropicAPIKey: envutil.String("ANTHROPIC_API_KEY", ""),
		AnthropicModel:  envutil.String("ANTHROPIC_MODEL", ""),
		GeminiAPIKey:    envutil.String("GEMINI_API_KEY", ""),
		GeminiModel:     envutil.String("GEMINI_MODEL", ""),
		LLMTimeout:      envutil.Seconds("LLM_TIMEOUT_SECONDS", 60*time.Second),
		Generation: services.GenerationConfig{
			Temperature:           envutil.Float("LLM_TEMPERATURE", 0.8),
			RegenerateTemperature: envutil.Float("LLM_REGENERATE_TEMPERATURE", 0.9),
			MaxTokens:             envutil.Int("LLM_MAX_TOKENS", 1500),
		},

		PromptOverridesPath: envutil.String("PROMPT_OVERRIDES_PATH", ""),
	}
	for i, s := range cfg.AuthStrategies {
		cfg.AuthStrategies[i] = strings.ToLower(s)
	}
	if cfg.JWTSecretKey == defaultJWTSecret && log != nil {
		log.Warn("JWT_SECRET_KEY not set; using the insecure default")
	}
	return cfg
}
