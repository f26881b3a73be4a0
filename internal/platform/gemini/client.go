package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/yungbote/analogyai-backend/internal/platform/llm"
	"github.com/yungbote/analogyai-backend/internal/platform/logger"
)

const (
	ProviderName = "gemini"
	DefaultModel = "gemini-2.5-flash"
)

type Config struct {
	APIKey     string
	BaseURL    string
	Model      string
	Timeout    time.Duration
	HTTPClient *http.Client
}

// Client generates analogies through the Gemini API with a JSON response schema.
type Client struct {
	log   *logger.Logger
	genai *genai.Client
	model string
}

func NewClient(ctx context.Context, log *logger.Logger, cfg Config) (*Client, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return nil, fmt.Errorf("missing GEMINI_API_KEY")
	}
	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = DefaultModel
	}
	cc := &genai.ClientConfig{
		APIKey:     apiKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: cfg.HTTPClient,
	}
	if base := strings.TrimSpace(cfg.BaseURL); base != "" {
		cc.HTTPOptions.BaseURL = base
	}
	if cfg.Timeout > 0 {
		timeout := cfg.Timeout
		cc.HTTPOptions.Timeout = &timeout
	}
	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("genai client: %w", err)
	}
	return &Client{
		log:   log.With("service", "GeminiClient"),
		genai: client,
		model: model,
	}, nil
}

func (c *Client) Provider() string { return ProviderName }
func (c *Client) Model() string    { return c.model }

func (c *Client) Generate(ctx context.Context, req llm.Request) (llm.Reply, error) {
	cfg := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(req.System, genai.RoleUser),
		ResponseMIMEType:  "application/json",
		ResponseSchema:    toSchema(req.Schema),
	}
	if req.MaxTokens > 0 {
		cfg.MaxOutputTokens = int32(req.MaxTokens)
	}
	if req.Temperature > 0 {
		t := float32(req.Temperature)
		cfg.Temperature = &t
	}

	resp, err := c.genai.Models.GenerateContent(ctx, c.model, genai.Text(req.User), cfg)
	if err != nil {
		pe := &llm.ProviderError{Provider: ProviderName, Err: err}
		var apiErr genai.APIError
		if errors.As(err, &apiErr) {
			pe.Status = apiErr.Code
		}
		c.log.Warn("generate content failed", "status", pe.Status, "error", err)
		return llm.Reply{}, pe
	}
	if len(resp.Candidates) > 0 && resp.Candidates[0].FinishReason == genai.FinishReasonMaxTokens {
		c.log.Warn("candidate truncated at max tokens", "model", c.model, "prompt", req.Prompt, "max_tokens", req.MaxTokens)
	}

	reply, err := llm.ParseReply(ProviderName, resp.Text())
	if err != nil {
		return llm.Reply{}, err
	}
	reply.Model = resp.ModelVersion
	if reply.Model == "" {
		reply.Model = c.model
	}
	if u := resp.UsageMetadata; u != nil {
		reply.InputTokens = int(u.PromptTokenCount)
		reply.OutputTokens = int(u.CandidatesTokenCount)
	}
	return reply, nil
}
