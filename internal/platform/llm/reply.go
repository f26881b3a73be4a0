package llm

import (
	"encoding/json"
	"strings"
)

// ParseReply decodes a provider's text output into a Reply. A surrounding
// markdown code fence is tolerated.
//
// Text that is empty or does not decode as a JSON object (including output cut
// off at the token limit) is a *ProviderError. An object whose "analogy" or
// "example" field is missing, not a string, or blank is a *FormatError.
func ParseReply(provider, text string) (Reply, error) {
	raw := stripFence(strings.TrimSpace(text))
	if raw == "" {
		return Reply{}, MalformedReply(provider, "empty reply")
	}
	var obj map[string]any
	if err := json.Unmarshal([]byte(raw), &obj); err != nil {
		return Reply{}, MalformedReply(provider, "reply is not a JSON object: "+err.Error())
	}
	if obj == nil {
		return Reply{}, MalformedReply(provider, "reply is JSON null")
	}
	analogy, err := requireString(obj, "analogy", text)
	if err != nil {
		return Reply{}, err
	}
	example, err := requireString(obj, "example", text)
	if err != nil {
		return Reply{}, err
	}
	return Reply{Analogy: analogy, Example: example}, nil
}

func requireString(obj map[string]any, key, raw string) (string, error) {
	v, ok := obj[key]
	if !ok || v == nil {
		return "", &FormatError{Reason: "missing field " + key, Raw: raw}
	}
	s, ok := v.(string)
	if !ok {
		return "", &FormatError{Reason: "field " + key + " is not a string", Raw: raw}
	}
	if strings.TrimSpace(s) == "" {
		return "", &FormatError{Reason: "field " + key + " is empty", Raw: raw}
	}
	return s, nil
}

func stripFence(s string) string {
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[i+1:]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
