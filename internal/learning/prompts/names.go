package prompts

type PromptName string

const (
	PromptAnalogyGenerate   PromptName = "analogy_generate"
	PromptAnalogyRegenerate PromptName = "analogy_regenerate"
)
