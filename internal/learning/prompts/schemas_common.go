package prompts

func StringSchema() map[string]any {
	return map[string]any{"type": "string"}
}

// AnalogyReplySchema is the two-field reply every analogy prompt asks for.
func AnalogyReplySchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"analogy": StringSchema(),
			"example": StringSchema(),
		},
		"required":             []string{"analogy", "example"},
		"additionalProperties": false,
	}
}
