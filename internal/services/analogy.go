package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/yungbote/analogyai-backend/internal/data/repos"
	types "github.com/yungbote/analogyai-backend/internal/domain"
	"github.com/yungbote/analogyai-backend/internal/learning/prompts"
	"github.com/yungbote/analogyai-backend/internal/observability"
	"github.com/yungbote/analogyai-backend/internal/pkg/dbctx"
	"github.com/yungbote/analogyai-backend/internal/platform/llm"
	"github.com/yungbote/analogyai-backend/internal/platform/logger"
)

const (
	DefaultHistoryLimit = 20
	MaxHistoryLimit     = 100
)

const (
	feedbackHelpfulMessage    = "Thanks! Glad this analogy helped."
	feedbackNotHelpfulMessage = "Thanks for the feedback. Try regenerating for a different take."
)

type Personalization struct {
	Interests      []string `json:"interests"`
	KnowledgeLevel string   `json:"knowledgeLevel" validate:"omitempty,oneof=beginner intermediate advanced"`
}

type GenerateRequest struct {
	Topic           string           `json:"topic" validate:"required,notblank"`
	Context         *string          `json:"context"`
	Personalization *Personalization `json:"personalization" validate:"required"`
}

type RegenerateRequest struct {
	PreviousAnalogyID string `json:"previousAnalogyId" validate:"required,notblank"`
	Feedback          string `json:"feedback"`
}

// AnalogyView is the response to generate and regenerate. ID is nil when the
// result was not saved.
type AnalogyView struct {
	ID        *uuid.UUID `json:"id"`
	Topic     string     `json:"topic"`
	Analogy   string     `json:"analogy"`
	Example   string     `json:"example"`
	CreatedAt time.Time  `json:"createdAt"`
}

type HistoryItem struct {
	ID         uuid.UUID `json:"id"`
	Topic      string    `json:"topic"`
	Analogy    string    `json:"analogy"`
	Example    string    `json:"example"`
	CreatedAt  time.Time `json:"createdAt"`
	IsFavorite bool      `json:"isFavorite"`
}

type HistoryPage struct {
	Analogies []HistoryItem `json:"analogies"`
	HasMore   bool          `json:"hasMore"`
}

type GenerationConfig struct {
	Temperature           float64
	RegenerateTemperature float64
	MaxTokens             int
}

func DefaultGenerationConfig() GenerationConfig {
	return GenerationConfig{Temperature: 0.8, RegenerateTemperature: 0.9, MaxTokens: 1500}
}

type AnalogyService interface {
	Generate(ctx context.Context, userID string, req GenerateRequest) (*AnalogyView, error)
	Regenerate(ctx context.Context, userID string, req RegenerateRequest) (*AnalogyView, error)
	History(ctx context.Context, userID string, limit, offset int) (*HistoryPage, error)
	Get(ctx context.Context, userID, id string) (*types.Analogy, error)
	SetFavorite(ctx context.Context, userID, id string, favorite bool) (bool, error)
	SubmitFeedback(ctx context.Context, userID, id string, helpful bool) (string, error)
	Delete(ctx context.Context, userID, id string) error
}

type analogyService struct {
	log         *logger.Logger
	userRepo    repos.UserRepo
	analogyRepo repos.AnalogyRepo
	generator   llm.Generator
	cfg         GenerationConfig
	now         func() time.Time
}

func NewAnalogyService(log *logger.Logger, userRepo repos.UserRepo, analogyRepo repos.AnalogyRepo, generator llm.Generator, cfg GenerationConfig) AnalogyService {
	prompts.RegisterAll()
	def := DefaultGenerationConfig()
	if cfg.Temperature <= 0 {
		cfg.Temperature = def.Temperature
	}
	if cfg.RegenerateTemperature <= 0 {
		cfg.RegenerateTemperature = def.RegenerateTemperature
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = def.MaxTokens
	}
	return &analogyService{
		log:         log.With("service", "AnalogyService"),
		userRepo:    userRepo,
		analogyRepo: analogyRepo,
		generator:   generator,
		cfg:         cfg,
		now:         time.Now,
	}
}

func (s *analogyService) Generate(ctx context.Context, userID string, req GenerateRequest) (*AnalogyView, error) {
	if userID == "" {
		return nil, ErrUnauthorized
	}
	if err := validateStruct(req); err != nil {
		return nil, err
	}
	level := types.KnowledgeLevel(req.Personalization.KnowledgeLevel)
	if level == "" {
		level = types.KnowledgeIntermediate
	}
	interests := req.Personalization.Interests
	if interests == nil {
		interests = []string{}
	}
	var extra string
	if req.Context != nil {
		extra = strings.TrimSpace(*req.Context)
	}

	dbc := dbctx.New(ctx)
	u, err := s.userRepo.GetByID(dbc, userID)
	if err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}
	if u == nil {
		return nil, ErrUnauthorized
	}

	reply, err := s.generate(ctx, prompts.PromptAnalogyGenerate, prompts.Input{
		Topic:          req.Topic,
		Context:        extra,
		KnowledgeLevel: string(level),
		Interests:      interests,
	}, s.cfg.Temperature)
	if err != nil {
		return nil, err
	}

	if !u.SaveHistory {
		observability.Current().IncAnalogy("generate", false)
		return &AnalogyView{
			Topic:     req.Topic,
			Analogy:   reply.Analogy,
			Example:   reply.Example,
			CreatedAt: s.now().UTC(),
		}, nil
	}

	rec, err := s.analogyRepo.Create(dbc, &types.Analogy{
		UserID:                   userID,
		Topic:                    req.Topic,
		UserInputContext:         nonEmpty(req.Context),
		PersonalizationInterests: datatypes.JSONSlice[string](append([]string{}, interests...)),
		KnowledgeLevel:           level,
		GeneratedAnalogy:         reply.Analogy,
		GeneratedExample:         reply.Example,
		ModelUsed:                s.modelUsed(reply),
	})
	if err != nil {
		return nil, fmt.Errorf("save analogy: %w", err)
	}
	observability.Current().IncAnalogy("generate", true)
	return viewOf(rec), nil
}

func (s *analogyService) Regenerate(ctx context.Context, userID string, req RegenerateRequest) (*AnalogyView, error) {
	if userID == "" {
		return nil, ErrUnauthorized
	}
	if err := validateStruct(req); err != nil {
		return nil, err
	}
	dbc := dbctx.New(ctx)
	prior, err := s.owned(dbc, userID, req.PreviousAnalogyID)
	if err != nil {
		return nil, err
	}

	// The prior record's snapshot is authoritative; the live profile is not consulted.
	reply, err := s.generate(ctx, prompts.PromptAnalogyRegenerate, prompts.Input{
		Topic:          prior.Topic,
		Context:        prior.Context(),
		KnowledgeLevel: string(prior.KnowledgeLevel),
		Interests:      prior.Interests(),
		Feedback:       req.Feedback,
	}, s.cfg.RegenerateTemperature)
	if err != nil {
		return nil, err
	}

	// Regeneration persists regardless of saveHistory.
	rec, err := s.analogyRepo.Create(dbc, &types.Analogy{
		UserID:                   userID,
		Topic:                    prior.Topic,
		UserInputContext:         prior.UserInputContext,
		PersonalizationInterests: datatypes.JSONSlice[string](prior.Interests()),
		KnowledgeLevel:           prior.KnowledgeLevel,
		GeneratedAnalogy:         reply.Analogy,
		GeneratedExample:         reply.Example,
		ModelUsed:                s.modelUsed(reply),
	})
	if err != nil {
		return nil, fmt.Errorf("save regenerated analogy: %w", err)
	}
	observability.Current().IncAnalogy("regenerate", true)
	return viewOf(rec), nil
}

func (s *analogyService) History(ctx context.Context, userID string, limit, offset int) (*HistoryPage, error) {
	if userID == "" {
		return nil, ErrUnauthorized
	}
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	if limit > MaxHistoryLimit {
		limit = MaxHistoryLimit
	}
	if offset < 0 {
		offset = 0
	}
	rows, err := s.analogyRepo.ListByUser(dbctx.New(ctx), userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list analogies: %w", err)
	}
	items := make([]HistoryItem, 0, len(rows))
	for _, a := range rows {
		items = append(items, HistoryItem{
			ID:         a.ID,
			Topic:      a.Topic,
			Analogy:    a.GeneratedAnalogy,
			Example:    a.GeneratedExample,
			CreatedAt:  a.CreatedAt,
			IsFavorite: a.IsFavorite,
		})
	}
	return &HistoryPage{Analogies: items, HasMore: len(items) == limit}, nil
}

func (s *analogyService) Get(ctx context.Context, userID, id string) (*types.Analogy, error) {
	if userID == "" {
		return nil, ErrUnauthorized
	}
	return s.owned(dbctx.New(ctx), userID, id)
}

func (s *analogyService) SetFavorite(ctx context.Context, userID, id string, favorite bool) (bool, error) {
	if userID == "" {
		return false, ErrUnauthorized
	}
	dbc := dbctx.New(ctx)
	a, err := s.owned(dbc, userID, id)
	if err != nil {
		return false, err
	}
	updated, err := s.analogyRepo.Update(dbc, a.ID, map[string]interface{}{"is_favorite": favorite})
	if err != nil {
		return false, fmt.Errorf("update favorite: %w", err)
	}
	if updated == nil {
		// Deleted between the ownership check and the write.
		return false, notFound("analogy")
	}
	return updated.IsFavorite, nil
}

// SubmitFeedback acknowledges a helpful/not-helpful signal. The signal is
// logged, not stored.
func (s *analogyService) SubmitFeedback(ctx context.Context, userID, id string, helpful bool) (string, error) {
	if userID == "" {
		return "", ErrUnauthorized
	}
	a, err := s.owned(dbctx.New(ctx), userID, id)
	if err != nil {
		return "", err
	}
	s.log.Info("analogy feedback", "analogy_id", a.ID.String(), "user_id", userID, "helpful", helpful)
	if helpful {
		return feedbackHelpfulMessage, nil
	}
	return feedbackNotHelpfulMessage, nil
}

func (s *analogyService) Delete(ctx context.Context, userID, id string) error {
	if userID == "" {
		return ErrUnauthorized
	}
	aid, err := uuid.Parse(strings.TrimSpace(id))
	if err != nil {
		return notFound("analogy")
	}
	ok, err := s.analogyRepo.Delete(dbctx.New(ctx), userID, aid)
	if err != nil {
		return fmt.Errorf("delete analogy: %w", err)
	}
	if !ok {
		return notFound("analogy")
	}
	return nil
}

// owned loads an analogy and enforces ownership. Missing, malformed and
// foreign ids all yield the same NotFoundError.
func (s *analogyService) owned(dbc dbctx.Context, userID, id string) (*types.Analogy, error) {
	aid, err := uuid.Parse(strings.TrimSpace(id))
	if err != nil {
		return nil, notFound("analogy")
	}
	a, err := s.analogyRepo.GetByID(dbc, aid)
	if err != nil {
		return nil, fmt.Errorf("load analogy: %w", err)
	}
	if a == nil || a.UserID != userID {
		return nil, notFound("analogy")
	}
	return a, nil
}

func (s *analogyService) generate(ctx context.Context, name prompts.PromptName, in prompts.Input, temperature float64) (llm.Reply, error) {
	p, err := prompts.Build(name, in)
	if err != nil {
		return llm.Reply{}, fmt.Errorf("build prompt: %w", err)
	}
	reply, err := s.generator.Generate(ctx, llm.Request{
		Prompt:      p.Name,
		Fingerprint: p.Fingerprint(),
		System:      p.System,
		User:        p.User,
		SchemaName:  p.SchemaName,
		Schema:      p.Schema,
		Temperature: temperature,
		MaxTokens:   s.cfg.MaxTokens,
	})
	if err == nil {
		return reply, nil
	}
	var fe *llm.FormatError
	if errors.As(err, &fe) {
		return llm.Reply{}, &GenerationFormatError{Reason: fe.Reason}
	}
	return llm.Reply{}, &GenerationProviderError{Provider: s.generator.Provider(), Cause: err}
}

func (s *analogyService) modelUsed(r llm.Reply) string {
	if r.Model != "" {
		return r.Model
	}
	return s.generator.Model()
}

func viewOf(a *types.Analogy) *AnalogyView {
	id := a.ID
	return &AnalogyView{
		ID:        &id,
		Topic:     a.Topic,
		Analogy:   a.GeneratedAnalogy,
		Example:   a.GeneratedExample,
		CreatedAt: a.CreatedAt,
	}
}

func nonEmpty(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	v := *s
	return &v
}
