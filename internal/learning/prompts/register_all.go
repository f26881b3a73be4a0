package prompts

import "sync"

// SystemInstruction is shared by every analogy prompt and never depends on input.
const SystemInstruction = "You are an expert educator who creates personalized analogies. Always respond with valid JSON containing 'analogy' and 'example' fields."

const intro = `You are an expert educator who creates personalized analogies to explain complex concepts. Your goal is to make difficult topics intuitive and memorable with excellent formatting for learning.`

const formatting = `CRITICAL FORMATTING REQUIREMENTS:
- Use ### for subheadings to organize sections
- Use **bold** for important concepts, key terms, and crucial points
- Break content into multiple short paragraphs for better readability
- Structure content with clear sections for easy scanning
- Highlight key terminology with **bold** formatting
- Make it visually scannable for optimal learning`

const replyShape = `Provide your response in JSON format with:
- "analogy": A well-formatted analogy with ### subheadings, **bold** key terms, and multiple paragraphs
- "example": A concrete, real-world example with ### subheadings, **bold** key terms, and multiple paragraphs

Example format:
"analogy": "### Main Concept\n\nThink of [concept] as **key analogy**.\n\n### How It Works\n\nThe **important process** works like this: first paragraph.\n\nSecond paragraph with **highlighted terms**.\n\n### Key Points\n\n**Point 1**: Explanation.\n\n**Point 2**: Another explanation."`

const requestHeader = `TOPIC TO EXPLAIN: {{.Topic}}
{{if .Context}}Additional context: {{.Context}}
{{end}}KNOWLEDGE LEVEL: {{.KnowledgeLevel}}
PERSONALIZATION: {{interests .Interests}}`

var registerOnce sync.Once

// RegisterAll registers the built-in prompts. Safe to call more than once.
func RegisterAll() {
	registerOnce.Do(registerBuiltins)
}

func registerBuiltins() {
	knowledgeLevels := []string{"beginner", "intermediate", "advanced"}

	RegisterSpec(Spec{
		Name:       PromptAnalogyGenerate,
		Version:    1,
		SchemaName: "analogy_reply",
		Schema:     AnalogyReplySchema,
		System:     SystemInstruction,
		User: intro + `

` + requestHeader + `

` + formatting + `

Create a clear, engaging analogy that:
1. Uses familiar concepts the user can relate to
2. Accurately represents the core principles of the topic
3. Is appropriate for their knowledge level
4. Incorporates their interests when possible
5. Uses proper formatting with headers, subheadings, and bold text

` + replyShape + `

Ensure the analogy is accurate, helpful, memorable, and properly formatted.`,
		Validators: []Validator{
			RequireNonEmpty("Topic", func(in Input) string { return in.Topic }),
			RequireOneOf("KnowledgeLevel", func(in Input) string { return in.KnowledgeLevel }, knowledgeLevels...),
		},
	})

	RegisterSpec(Spec{
		Name:       PromptAnalogyRegenerate,
		Version:    1,
		SchemaName: "analogy_reply",
		Schema:     AnalogyReplySchema,
		System:     SystemInstruction,
		User: intro + `

` + requestHeader + `
FEEDBACK: {{feedback .Feedback}}

` + formatting + `

Create a NEW analogy that:
1. Addresses the feedback provided
2. Uses different examples than before
3. Maintains accuracy while being engaging
4. Is appropriate for their knowledge level
5. Uses proper formatting with headers, subheadings, and bold text

` + replyShape + `

Make sure this analogy is distinctly different from any previous attempts and properly formatted.`,
		Validators: []Validator{
			RequireNonEmpty("Topic", func(in Input) string { return in.Topic }),
			RequireOneOf("KnowledgeLevel", func(in Input) string { return in.KnowledgeLevel }, knowledgeLevels...),
		},
	})
}
