package prompts

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildGenerateIncludesInputs(t *testing.T) {
	RegisterAll()

	p, err := Build(PromptAnalogyGenerate, Input{
		Topic:          "recursion",
		Context:        "for a CS101 exam",
		KnowledgeLevel: "beginner",
		Interests:      []string{"cooking", "soccer"},
	})
	require.NoError(t, err)

	assert.Equal(t, SystemInstruction, p.System)
	assert.Contains(t, p.User, "TOPIC TO EXPLAIN: recursion")
	assert.Contains(t, p.User, "Additional context: for a CS101 exam")
	assert.Contains(t, p.User, "KNOWLEDGE LEVEL: beginner")
	assert.Contains(t, p.User, "The user is interested in: cooking, soccer.")
	assert.Contains(t, p.User, "Create a clear, engaging analogy that:")
	assert.NotContains(t, p.User, "FEEDBACK:")
	assert.Equal(t, "analogy_reply", p.SchemaName)
}

func TestBuildGenerateWithoutContextOrInterests(t *testing.T) {
	RegisterAll()

	p, err := Build(PromptAnalogyGenerate, Input{Topic: "entropy", KnowledgeLevel: "advanced"})
	require.NoError(t, err)

	assert.NotContains(t, p.User, "Additional context")
	assert.Contains(t, p.User, "TOPIC TO EXPLAIN: entropy\nKNOWLEDGE LEVEL: advanced")
	assert.Contains(t, p.User, "Create a general analogy that most people can understand.")
}

func TestBuildRegenerateFeedbackDirectives(t *testing.T) {
	RegisterAll()

	cases := map[string]string{
		"too_simple":      "more sophisticated",
		"too-simple":      "more sophisticated",
		"too_advanced":    "simpler and more accessible",
		"too-complex":     "simpler and more accessible",
		"different_style": "completely different analogy approach",
		"different-angle": "completely different analogy approach",
		"whatever":        "fresh perspective",
		"":                "fresh perspective",
	}
	for code, want := range cases {
		p, err := Build(PromptAnalogyRegenerate, Input{Topic: "tcp", KnowledgeLevel: "intermediate", Feedback: code})
		require.NoError(t, err, code)
		assert.Contains(t, p.User, "FEEDBACK: ", code)
		assert.Contains(t, p.User, want, code)
		assert.Contains(t, p.User, "Create a NEW analogy that:", code)
	}
}

func TestBuildValidation(t *testing.T) {
	RegisterAll()

	_, err := Build(PromptAnalogyGenerate, Input{Topic: "  ", KnowledgeLevel: "beginner"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Topic required")

	_, err = Build(PromptAnalogyGenerate, Input{Topic: "x", KnowledgeLevel: "expert"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "KnowledgeLevel")

	_, err = Build(PromptName("nope"), Input{})
	require.Error(t, err)
}

func TestFingerprintStable(t *testing.T) {
	RegisterAll()

	in := Input{Topic: "gravity", KnowledgeLevel: "beginner"}
	a, err := Build(PromptAnalogyGenerate, in)
	require.NoError(t, err)
	b, err := Build(PromptAnalogyGenerate, in)
	require.NoError(t, err)
	assert.Equal(t, a.Fingerprint(), b.Fingerprint())

	in.Topic = "magnetism"
	c, err := Build(PromptAnalogyGenerate, in)
	require.NoError(t, err)
	assert.NotEqual(t, a.Fingerprint(), c.Fingerprint())
}

func TestApplyOverrides(t *testing.T) {
	name := PromptName("test_override_target")
	RegisterSpec(Spec{
		Name:       name,
		Version:    1,
		SchemaName: "analogy_reply",
		Schema:     AnalogyReplySchema,
		System:     "sys",
		User:       "explain {{.Topic}}",
		Validators: []Validator{RequireNonEmpty("Topic", func(in Input) string { return in.Topic })},
	})

	names, err := ApplyOverrides([]byte(`
prompts:
  - name: test_override_target
    user: "Teach {{.Topic}} at {{.KnowledgeLevel}} level"
`))
	require.NoError(t, err)
	assert.Equal(t, []PromptName{name}, names)

	p, err := Build(name, Input{Topic: "ohm's law", KnowledgeLevel: "beginner"})
	require.NoError(t, err)
	assert.Equal(t, "sys", p.System)
	assert.Equal(t, "Teach ohm's law at beginner level", p.User)
	assert.Equal(t, 2, p.Version)

	_, err = Build(name, Input{})
	assert.Error(t, err, "validators survive overrides")
}

func TestApplyOverridesRejectsUnknownAndBadTemplates(t *testing.T) {
	_, err := ApplyOverrides([]byte("prompts:\n  - name: missing_prompt\n    user: hi\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown prompt")

	RegisterAll()
	before, err := Build(PromptAnalogyGenerate, Input{Topic: "t", KnowledgeLevel: "beginner"})
	require.NoError(t, err)

	_, err = ApplyOverrides([]byte("prompts:\n  - name: analogy_generate\n    user: \"{{.Topic\"\n"))
	require.Error(t, err)

	after, err := Build(PromptAnalogyGenerate, Input{Topic: "t", KnowledgeLevel: "beginner"})
	require.NoError(t, err)
	assert.Equal(t, before.Fingerprint(), after.Fingerprint())
}

func TestLoadOverridesEmptyPath(t *testing.T) {
	names, err := LoadOverrides("  ")
	require.NoError(t, err)
	assert.Empty(t, names)
	assert.True(t, strings.HasPrefix(InterestsClause(nil), "Create a general"))
}
