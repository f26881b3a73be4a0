package gemini

import (
	"strings"

	"google.golang.org/genai"
)

// toSchema converts a JSON Schema document into the OpenAPI subset Gemini
// accepts. Keywords Gemini does not support (additionalProperties, $schema)
// are dropped. A nil document yields a nil schema.
func toSchema(doc map[string]any) *genai.Schema {
	if doc == nil {
		return nil
	}
	out := &genai.Schema{}
	if t, ok := doc["type"].(string); ok {
		out.Type = genai.Type(strings.ToUpper(t))
	}
	if d, ok := doc["description"].(string); ok {
		out.Description = d
	}
	if props, ok := doc["properties"].(map[string]any); ok {
		out.Properties = make(map[string]*genai.Schema, len(props))
		for name, raw := range props {
			if sub, ok := raw.(map[string]any); ok {
				out.Properties[name] = toSchema(sub)
			}
		}
	}
	if items, ok := doc["items"].(map[string]any); ok {
		out.Items = toSchema(items)
	}
	out.Enum = stringList(doc["enum"])
	out.Required = stringList(doc["required"])
	if len(out.Required) > 0 {
		out.PropertyOrdering = out.Required
	}
	return out
}

func stringList(v any) []string {
	switch vs := v.(type) {
	case []string:
		return append([]string(nil), vs...)
	case []any:
		out := make([]string, 0, len(vs))
		for _, x := range vs {
			if s, ok := x.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}
