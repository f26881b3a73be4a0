package openai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	oai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"

	"github.com/yungbote/analogyai-backend/internal/platform/llm"
	"github.com/yungbote/analogyai-backend/internal/platform/logger"
)

const (
	ProviderName = "openai"
	DefaultModel = oai.ChatModelGPT4o
)

type Config struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
	// HTTPClient overrides the transport; tests point it at a fake server.
	HTTPClient *http.Client
}

// Client generates analogies through the Chat Completions API with structured outputs.
type Client struct {
	log   *logger.Logger
	sdk   oai.Client
	model string
}

func NewClient(log *logger.Logger, cfg Config) (*Client, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return nil, fmt.Errorf("missing OPENAI_API_KEY")
	}
	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = DefaultModel
	}
	opts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		// One upstream call per request; retry is the caller's decision.
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
		log:   log.With("service", "OpenAIClient"),
		sdk:   oai.NewClient(opts...),
		model: model,
	}, nil
}

func (c *Client) Provider() string { return ProviderName }
func (c *Client) Model() string    { return c.model }

func (c *Client) Generate(ctx context.Context, req llm.Request) (llm.Reply, error) {
	params := oai.ChatCompletionNewParams{
		Model: shared.ChatModel(c.model),
		Messages: []oai.ChatCompletionMessageParamUnion{
			oai.SystemMessage(req.System),
			oai.UserMessage(req.User),
		},
		ResponseFormat: responseFormat(req),
	}
	if req.MaxTokens > 0 {
		params.MaxTokens = oai.Int(int64(req.MaxTokens))
	}
	if req.Temperature > 0 {
		params.Temperature = oai.Float(req.Temperature)
	}

	resp, err := c.sdk.Chat.Completions.New(ctx, params)
	if err != nil {
		return llm.Reply{}, c.providerError(err)
	}
	if len(resp.Choices) == 0 {
		c.log.Warn("completion has no choices", "model", resp.Model, "prompt", req.Prompt)
		return llm.Reply{}, llm.MalformedReply(ProviderName, "no choices in completion")
	}
	choice := resp.Choices[0]
	if choice.Message.Refusal != "" {
		c.log.Warn("model refused", "model", resp.Model, "prompt", req.Prompt, "refusal", choice.Message.Refusal)
		return llm.Reply{}, llm.MalformedReply(ProviderName, "model refused: "+choice.Message.Refusal)
	}
	if choice.FinishReason == "length" {
		c.log.Warn("completion truncated at max tokens", "model", resp.Model, "prompt", req.Prompt, "max_tokens", req.MaxTokens)
	}
	reply, err := llm.ParseReply(ProviderName, choice.Message.Content)
	if err != nil {
		return llm.Reply{}, err
	}
	reply.Model = resp.Model
	if reply.Model == "" {
		reply.Model = c.model
	}
	reply.InputTokens = int(resp.Usage.PromptTokens)
	reply.OutputTokens = int(resp.Usage.CompletionTokens)
	return reply, nil
}

// responseFormat asks for strict structured output when the prompt carries a
// schema, and plain JSON mode otherwise.
func responseFormat(req llm.Request) oai.ChatCompletionNewParamsResponseFormatUnion {
	if req.Schema == nil {
		return oai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &shared.ResponseFormatJSONObjectParam{},
		}
	}
	name := strings.TrimSpace(req.SchemaName)
	if name == "" {
		name = "reply"
	}
	return oai.ChatCompletionNewParamsResponseFormatUnion{
		OfJSONSchema: &shared.ResponseFormatJSONSchemaParam{
			JSONSchema: shared.ResponseFormatJSONSchemaJSONSchemaParam{
				Name:   name,
				Schema: req.Schema,
				Strict: oai.Bool(true),
			},
		},
	}
}

func (c *Client) providerError(err error) error {
	pe := &llm.ProviderError{Provider: ProviderName, Err: err}
	var apiErr *oai.Error
	if errors.As(err, &apiErr) {
		pe.Status = apiErr.StatusCode
	}
	c.log.Warn("chat completion failed", "status", pe.Status, "error", err)
	return pe
}
