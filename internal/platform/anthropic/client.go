package anthropic

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	sdk "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/yungbote/analogyai-backend/internal/platform/llm"
	"github.com/yungbote/analogyai-backend/internal/platform/logger"
)

const (
	ProviderName     = "anthropic"
	DefaultModel     = string(sdk.ModelClaudeSonnet4_5)
	defaultMaxTokens = 1500
)

type Config struct {
	APIKey     string
	BaseURL    string
	Model      string
	Timeout    time.Duration
	HTTPClient *http.Client
}

// Client generates analogies through the Messages API. The Messages API has no
// JSON response mode here, so the request schema is appended to the system
// prompt and the reply is validated by llm.ParseReply.
type Client struct {
	log   *logger.Logger
	api   sdk.Client
	model sdk.Model
}

func NewClient(log *logger.Logger, cfg Config) (*Client, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return nil, fmt.Errorf("missing ANTHROPIC_API_KEY")
	}
	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = DefaultModel
	}
	opts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
	}
	if base := strings.TrimSpace(cfg.BaseURL); base != "" {
		opts = append(opts, option.WithBaseURL(base))
	}
	if cfg.HTTPClient != nil {
		opts = append(opts, option.WithHTTPClient(cfg.HTTPClient))
	}
	if cfg.Timeout > 0 {
		opts = append(opts, option.WithRequestTimeout(cfg.Timeout))
	}
	return &Client{
		log:   log.With("service", "AnthropicClient"),
		api:   sdk.NewClient(opts...),
		model: sdk.Model(model),
	}, nil
}

func (c *Client) Provider() string { return ProviderName }
func (c *Client) Model() string    { return string(c.model) }

func (c *Client) Generate(ctx context.Context, req llm.Request) (llm.Reply, error) {
	maxTokens := int64(req.MaxTokens)
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}
	params := sdk.MessageNewParams{
		Model:     c.model,
		MaxTokens: maxTokens,
		System: []sdk.TextBlockParam{
			{Text: systemPrompt(req)},
		},
		Messages: []sdk.MessageParam{
			sdk.NewUserMessage(sdk.NewTextBlock(req.User)),
		},
	}
	if req.Temperature > 0 {
		params.Temperature = sdk.Float(req.Temperature)
	}

	message, err := c.api.Messages.New(ctx, params)
	if err != nil {
		pe := &llm.ProviderError{Provider: ProviderName, Err: err}
		var apiErr *sdk.Error
		if errors.As(err, &apiErr) {
			pe.Status = apiErr.StatusCode
		}
		c.log.Warn("messages call failed", "status", pe.Status, "error", err)
		return llm.Reply{}, pe
	}

	var text strings.Builder
	for _, block := range message.Content {
		if block.Type == "text" {
			text.WriteString(block.Text)
		}
	}
	if message.StopReason == sdk.StopReasonMaxTokens {
		c.log.Warn("message truncated at max tokens", "model", message.Model, "prompt", req.Prompt, "max_tokens", maxTokens)
	}
	if text.Len() == 0 {
		c.log.Warn("message has no text content", "model", message.Model, "stop_reason", message.StopReason)
		return llm.Reply{}, llm.MalformedReply(ProviderName, "no text content in response")
	}
	reply, err := llm.ParseReply(ProviderName, text.String())
	if err != nil {
		return llm.Reply{}, err
	}
	reply.Model = string(message.Model)
	if reply.Model == "" {
		reply.Model = string(c.model)
	}
	reply.InputTokens = int(message.Usage.InputTokens)
	reply.OutputTokens = int(message.Usage.OutputTokens)
	return reply, nil
}

func systemPrompt(req llm.Request) string {
	if req.Schema == nil {
		return req.System
	}
	b, err := json.Marshal(req.Schema)
	if err != nil {
		return req.System
	}
	return req.System + "\n\nReply with a single JSON object matching this JSON Schema:\n" + string(b)
}
