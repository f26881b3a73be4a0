package logger

import (
	"strings"
	"testing"
)

func TestSanitizeKVsRedactsAndHashes(t *testing.T) {
	out := sanitizeKVs([]interface{}{
		"email", "dev@analogy.ai",
		"api_key", "sk-123",
		"user_id", "local-dev-user",
		"topic", "quantum entanglement",
	})
	if len(out) != 8 {
		t.Fatalf("unexpected kv length: %d", len(out))
	}
	if out[1] != "[REDACTED]" {
		t.Fatalf("email not redacted: %v", out[1])
	}
	if out[3] != "[REDACTED]" {
		t.Fatalf("api_key not redacted: %v", out[3])
	}
	hashed, ok := out[5].(string)
	if !ok || !strings.HasPrefix(hashed, "hash:") || len(hashed) != len("hash:")+12 {
		t.Fatalf("user_id not hashed: %v", out[5])
	}
	if out[7] != "quantum entanglement" {
		t.Fatalf("topic should pass through: %v", out[7])
	}
}

func TestSanitizeKVsOddLength(t *testing.T) {
	out := sanitizeKVs([]interface{}{"topic", "x", "dangling"})
	if len(out) != 3 || out[2] != "dangling" {
		t.Fatalf("unexpected output: %v", out)
	}
}

func TestLooksLikeJWT(t *testing.T) {
	if !looksLikeJWT("eyJhbGciOiJIUzI1NiJ9.eyJzdWIiOiJ1c2VyIn0.sig") {
		t.Fatalf("expected jwt-shaped string to be detected")
	}
	if looksLikeJWT("gpt-4o") {
		t.Fatalf("model name misdetected as jwt")
	}
}
