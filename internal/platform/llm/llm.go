package llm

import (
	"context"
	"errors"
	"fmt"
)

// Request is one structured generation call.
type Request struct {
	// Prompt and Fingerprint identify the rendered prompt in traces and logs.
	Prompt      string
	Fingerprint string
	System      string
	User        string
	// SchemaName and Schema describe the JSON object the reply must be.
	// Providers with structured output enforce it upstream.
	SchemaName  string
	Schema      map[string]any
	Temperature float64
	MaxTokens   int
}

// Reply is a validated analogy/example pair.
type Reply struct {
	Analogy      string
	Example      string
	Model        string
	InputTokens  int
	OutputTokens int
}

// Generator produces an analogy reply from a rendered prompt.
// Implementations make exactly one upstream call per Generate.
type Generator interface {
	Generate(ctx context.Context, req Request) (Reply, error)
	Provider() string
	Model() string
}

// FormatError means the reply decoded as a JSON object but a required field is
// missing, not a string, or empty.
type FormatError struct {
	Reason string
	Raw    string
}

func (e *FormatError) Error() string {
	return "malformed generation reply: " + e.Reason
}

// ProviderError wraps a transport, auth, quota or upstream failure. A reply
// that cannot be decoded at all (empty, truncated, refused, not JSON) is also
// a ProviderError, with Reason set.
type ProviderError struct {
	Provider string
	Status   int
	Reason   string
	Err      error
}

// MalformedReply reports an upstream answer that carried no decodable reply.
func MalformedReply(provider, reason string) *ProviderError {
	return &ProviderError{Provider: provider, Reason: "malformed reply: " + reason}
}

func (e *ProviderError) Error() string {
	msg := e.Reason
	if e.Err != nil {
		if msg != "" {
			msg += ": "
		}
		msg += e.Err.Error()
	}
	if e.Status > 0 {
		return fmt.Sprintf("%s provider error (http %d): %s", e.Provider, e.Status, msg)
	}
	return fmt.Sprintf("%s provider error: %s", e.Provider, msg)
}

func (e *ProviderError) Unwrap() error { return e.Err }

func (e *ProviderError) HTTPStatusCode() int {
	if e == nil {
		return 0
	}
	return e.Status
}

func IsFormatError(err error) bool {
	var fe *FormatError
	return errors.As(err, &fe)
}

func IsProviderError(err error) bool {
	var pe *ProviderError
	return errors.As(err, &pe)
}
