package llm

import (
	"context"
	"errors"
	"strconv"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/yungbote/analogyai-backend/internal/observability"
	"github.com/yungbote/analogyai-backend/internal/platform/ctxutil"
	"github.com/yungbote/analogyai-backend/internal/platform/logger"
)

type instrumented struct {
	next Generator
	log  *logger.Logger
}

// Instrument wraps g with an llm.generate span, provider metrics and logging.
func Instrument(g Generator, log *logger.Logger) Generator {
	if g == nil {
		return nil
	}
	if log == nil {
		log = logger.Nop()
	}
	return &instrumented{next: g, log: log.With("service", "LLMGenerator", "provider", g.Provider())}
}

func (i *instrumented) Provider() string { return i.next.Provider() }
func (i *instrumented) Model() string    { return i.next.Model() }

func (i *instrumented) Generate(ctx context.Context, req Request) (Reply, error) {
	ctx, span := observability.Tracer().Start(ctx, "llm.generate")
	defer span.End()
	span.SetAttributes(
		attribute.String("llm.provider", i.next.Provider()),
		attribute.String("llm.model", i.next.Model()),
		attribute.String("llm.prompt", req.Prompt),
		attribute.String("llm.prompt_fingerprint", req.Fingerprint),
		attribute.String("llm.schema", req.SchemaName),
		attribute.Float64("llm.temperature", req.Temperature),
		attribute.Int("llm.max_tokens", req.MaxTokens),
	)

	start := time.Now()
	reply, err := i.next.Generate(ctx, req)
	dur := time.Since(start)

	status := "ok"
	if err != nil {
		status = statusOf(err)
		span.RecordError(err)
		span.SetStatus(codes.Error, status)
	}
	model := reply.Model
	if model == "" {
		model = i.next.Model()
	}
	observability.Current().ObserveLLMRequest(i.next.Provider(), model, status, dur, reply.InputTokens, reply.OutputTokens)

	fields := append(ctxutil.TraceFields(ctx),
		"prompt", req.Prompt,
		"prompt_fingerprint", req.Fingerprint,
		"model", model,
		"status", status,
		"duration_ms", dur.Milliseconds(),
	)
	if err != nil {
		i.log.Error("generation failed", append(fields, "error", err)...)
		return Reply{}, err
	}
	span.SetAttributes(
		attribute.Int("llm.input_tokens", reply.InputTokens),
		attribute.Int("llm.output_tokens", reply.OutputTokens),
	)
	i.log.Debug("generation ok", append(fields, "input_tokens", reply.InputTokens, "output_tokens", reply.OutputTokens)...)
	return reply, nil
}

func statusOf(err error) string {
	var pe *ProviderError
	if errors.As(err, &pe) {
		if pe.Status > 0 {
			return strconv.Itoa(pe.Status)
		}
		if errors.Is(err, context.DeadlineExceeded) {
			return "timeout"
		}
		if errors.Is(err, context.Canceled) {
			return "canceled"
		}
		if pe.Err == nil && pe.Reason != "" {
			return "malformed"
		}
		return "error"
	}
	if IsFormatError(err) {
		return "format_error"
	}
	return "error"
}
