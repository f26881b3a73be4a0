package services

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yungbote/analogyai-backend/internal/data/repos"
	"github.com/yungbote/analogyai-backend/internal/data/repos/memory"
	types "github.com/yungbote/analogyai-backend/internal/domain"
	"github.com/yungbote/analogyai-backend/internal/pkg/dbctx"
	"github.com/yungbote/analogyai-backend/internal/platform/llm"
	"github.com/yungbote/analogyai-backend/internal/platform/logger"
)

type fakeGenerator struct {
	mu    sync.Mutex
	reply llm.Reply
	err   error
	calls []llm.Request
}

func (f *fakeGenerator) Provider() string { return "fake" }
func (f *fakeGenerator) Model() string    { return "fake-model" }

func (f *fakeGenerator) Generate(_ context.Context, req llm.Request) (llm.Reply, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, req)
	if f.err != nil {
		return llm.Reply{}, f.err
	}
	return f.reply, nil
}

func (f *fakeGenerator) last(t *testing.T) llm.Request {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	require.NotEmpty(t, f.calls)
	return f.calls[len(f.calls)-1]
}

type fixture struct {
	users     repos.UserRepo
	analogies repos.AnalogyRepo
	gen       *fakeGenerator
	svc       AnalogyService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		users:     memory.NewUserRepo(),
		analogies: memory.NewAnalogyRepo(),
		gen:       &fakeGenerator{reply: llm.Reply{Analogy: "A", Example: "E"}},
	}
	f.svc = NewAnalogyService(logger.Nop(), f.users, f.analogies, f.gen, GenerationConfig{})
	return f
}

func (f *fixture) seedUser(t *testing.T, id string, saveHistory bool) *types.User {
	t.Helper()
	u := types.NewUser(id, id+"@example.com")
	u.SaveHistory = saveHistory
	saved, err := f.users.Create(dbctx.New(context.Background()), u)
	require.NoError(t, err)
	return saved
}

func topicOnly(topic string) GenerateRequest {
	return GenerateRequest{Topic: topic, Personalization: &Personalization{}}
}
