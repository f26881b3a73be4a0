package llm

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/yungbote/analogyai-backend/internal/platform/httpx"
)

func TestParseReply(t *testing.T) {
	r, err := ParseReply("openai", `{"analogy":"### A\n\nlike a library","example":"### E\n\nbooks"}`)
	require.NoError(t, err)
	assert.Equal(t, "### A\n\nlike a library", r.Analogy)
	assert.Equal(t, "### E\n\nbooks", r.Example)

	r, err = ParseReply("openai", "```json\n{\"analogy\":\"a\",\"example\":\"b\"}\n```")
	require.NoError(t, err)
	assert.Equal(t, "a", r.Analogy)
}

func TestParseReplyUndecodableIsProviderError(t *testing.T) {
	bad := map[string]string{
		"empty":     "",
		"blank":     "  \n ",
		"not json":  "Here is your analogy: ...",
		"array":     `["a","b"]`,
		"null":      "null",
		"truncated": `{"analogy": "### A`,
	}
	for name, text := range bad {
		_, err := ParseReply("anthropic", text)
		require.Error(t, err, name)
		var pe *ProviderError
		require.ErrorAs(t, err, &pe, name)
		assert.Equal(t, "anthropic", pe.Provider, name)
		assert.Contains(t, pe.Reason, "malformed reply", name)
		assert.False(t, IsFormatError(err), name)
		assert.Equal(t, "malformed", statusOf(err), name)
	}
}

func TestParseReplyBadFieldsIsFormatError(t *testing.T) {
	bad := map[string]string{
		"missing example": `{"analogy":"a"}`,
		"null analogy":    `{"analogy":null,"example":"b"}`,
		"numeric example": `{"analogy":"a","example":3}`,
		"blank analogy":   `{"analogy":"   ","example":"b"}`,
	}
	for name, text := range bad {
		_, err := ParseReply("openai", text)
		require.Error(t, err, name)
		assert.True(t, IsFormatError(err), name)
		assert.False(t, IsProviderError(err), name)
	}
}

func TestProviderErrorStatus(t *testing.T) {
	err := error(&ProviderError{Provider: "openai", Status: 429, Err: errors.New("rate limited")})
	assert.True(t, IsProviderError(err))
	assert.Equal(t, 429, httpx.StatusCode(err))
	assert.True(t, httpx.IsRetryableError(err))
	assert.Contains(t, err.Error(), "http 429")
	assert.Contains(t, err.Error(), "rate limited")

	malformed := MalformedReply("gemini", "empty reply")
	assert.Equal(t, "gemini provider error: malformed reply: empty reply", malformed.Error())
	assert.False(t, httpx.IsRetryableError(malformed))

	auth := &ProviderError{Provider: "openai", Status: 401, Err: errors.New("bad key")}
	assert.False(t, httpx.IsRetryableError(auth))
}

type stubGenerator struct {
	calls int
	reply Reply
	err   error
}

func (s *stubGenerator) Provider() string { return "stub" }
func (s *stubGenerator) Model() string    { return "stub-1" }
func (s *stubGenerator) Generate(ctx context.Context, req Request) (Reply, error) {
	s.calls++
	return s.reply, s.err
}

func TestInstrumentPassesThrough(t *testing.T) {
	stub := &stubGenerator{reply: Reply{Analogy: "a", Example: "b", Model: "stub-1"}}
	g := Instrument(stub, nil)
	assert.Equal(t, "stub", g.Provider())
	assert.Equal(t, "stub-1", g.Model())

	r, err := g.Generate(context.Background(), Request{Prompt: "analogy_generate", Temperature: 0.8, MaxTokens: 1500})
	require.NoError(t, err)
	assert.Equal(t, "a", r.Analogy)
	assert.Equal(t, 1, stub.calls)

	stub.err = &FormatError{Reason: "missing field example"}
	_, err = g.Generate(context.Background(), Request{})
	require.Error(t, err)
	assert.True(t, IsFormatError(err))
	assert.Equal(t, 2, stub.calls)
	assert.Equal(t, "format_error", statusOf(err))
}

func TestInstrumentRecordsPromptOnSpan(t *testing.T) {
	rec := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(rec))
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() { otel.SetTracerProvider(prev) })

	g := Instrument(&stubGenerator{reply: Reply{Analogy: "a", Example: "b"}}, nil)
	_, err := g.Generate(context.Background(), Request{
		Prompt:      "analogy_generate",
		Fingerprint: "abc123",
		SchemaName:  "analogy_reply",
	})
	require.NoError(t, err)

	spans := rec.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "llm.generate", spans[0].Name())
	attrs := map[attribute.Key]string{}
	for _, kv := range spans[0].Attributes() {
		attrs[kv.Key] = kv.Value.Emit()
	}
	assert.Equal(t, "abc123", attrs["llm.prompt_fingerprint"])
	assert.Equal(t, "analogy_reply", attrs["llm.schema"])
	assert.Equal(t, "stub", attrs["llm.provider"])
}
