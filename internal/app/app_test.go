package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/analogyai-backend/internal/data/repos/memory"
	"github.com/yungbote/analogyai-backend/internal/platform/logger"
	"github.com/yungbote/analogyai-backend/internal/services/identity"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("AUTH_STRATEGIES", "")
	t.Setenv("SESSION_TTL", "")
	t.Setenv("LLM_PROVIDER", "")
	t.Setenv("LLM_MAX_TOKENS", "")

	cfg := LoadConfig(logger.Nop())
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, []string{"jwt", "session"}, cfg.AuthStrategies)
	assert.Equal(t, 30*24*time.Hour, cfg.SessionTTL)
	assert.Equal(t, ProviderOpenAI, cfg.LLMProvider)
	assert.Equal(t, 1500, cfg.Generation.MaxTokens)
	assert.Equal(t, 0.8, cfg.Generation.Temperature)
	assert.Equal(t, 0.9, cfg.Generation.RegenerateTemperature)
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("AUTH_STRATEGIES", "Header, static")
	t.Setenv("DB_DRIVER", "MEMORY")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example,https://b.example")

	cfg := LoadConfig(logger.Nop())
	assert.Equal(t, []string{"header", "static"}, cfg.AuthStrategies)
	assert.Equal(t, DriverMemory, cfg.DB.Driver)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins)
}

func TestBuildResolver(t *testing.T) {
	r := Repos{User: memory.NewUserRepo(), Analogy: memory.NewAnalogyRepo(), Session: memory.NewSessionRepo()}

	chain, err := buildResolver(Config{AuthStrategies: []string{"jwt", "session", "header", "static"}}, nil, r)
	require.NoError(t, err)
	require.Len(t, chain, 4)
	assert.Equal(t, identity.StrategyStatic, chain[3].Name())

	_, err = buildResolver(Config{AuthStrategies: []string{"magic"}}, nil, r)
	assert.Error(t, err)
	_, err = buildResolver(Config{}, nil, r)
	assert.Error(t, err)
}

func TestStaticIdentity(t *testing.T) {
	assert.Equal(t, identity.DevIdentity, staticIdentity(Config{}))
	assert.Equal(t, identity.GuestIdentity, staticIdentity(Config{StaticUserID: "public-guest-user"}))
	got := staticIdentity(Config{StaticUserID: "kiosk", StaticUserEmail: "kiosk@example.com"})
	assert.Equal(t, "kiosk", got.UserID)
	assert.Equal(t, "kiosk@example.com", got.Email)
}

func TestNewGeneratorRejectsUnknownProvider(t *testing.T) {
	_, err := newGenerator(t.Context(), logger.Nop(), Config{LLMProvider: "llama"})
	assert.ErrorContains(t, err, "unsupported LLM_PROVIDER")

	_, err = newGenerator(t.Context(), logger.Nop(), Config{LLMProvider: ProviderOpenAI})
	assert.ErrorContains(t, err, "OPENAI_API_KEY")
}
