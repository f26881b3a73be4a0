package observability

import (
	"context"
	"testing"
)

func TestParseHeaders(t *testing.T) {
	got := parseHeaders("api-key=abc, bad, x-team = core ,empty=")
	if len(got) != 2 {
		t.Fatalf("expected 2 headers, got %v", got)
	}
	if got["api-key"] != "abc" || got["x-team"] != "core" {
		t.Fatalf("unexpected headers: %v", got)
	}
	if parseHeaders("") != nil {
		t.Fatalf("expected nil for empty input")
	}
}

func TestOtelConfigFromEnvClampsRatio(t *testing.T) {
	t.Setenv("OTEL_SAMPLER_RATIO", "7")
	t.Setenv("OTEL_ENABLED", "true")
	cfg := OtelConfigFromEnv("analogyai", "test", "dev")
	if cfg.SampleRatio != 1 {
		t.Fatalf("expected ratio clamped to 1, got %v", cfg.SampleRatio)
	}
	if !cfg.Enabled {
		t.Fatalf("expected enabled")
	}
}

func TestInitOTelDisabledIsNoop(t *testing.T) {
	shutdown := InitOTel(context.Background(), nil, OtelConfig{Enabled: false})
	if shutdown == nil {
		t.Fatalf("expected non-nil shutdown func")
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown: %v", err)
	}
}
