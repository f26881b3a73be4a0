package prompts

import "strings"

const (
	FeedbackTooSimple      = "too_simple"
	FeedbackTooAdvanced    = "too_advanced"
	FeedbackDifferentStyle = "different_style"
)

const (
	directiveTooSimple      = "The previous analogy was too simple. Make this one more sophisticated and detailed with advanced concepts and terminology."
	directiveTooAdvanced    = "The previous analogy was too advanced. Make this one simpler and more accessible for beginners."
	directiveDifferentStyle = "The user wants a different perspective. Use a completely different analogy approach and style."
	directiveFresh          = "Create a new analogy with a fresh perspective."
)

// FeedbackDirective maps a regeneration feedback code to its instruction.
// Unknown codes fall back to a fresh-perspective directive.
func FeedbackDirective(code string) string {
	switch strings.TrimSpace(code) {
	case FeedbackTooSimple, "too-simple":
		return directiveTooSimple
	case FeedbackTooAdvanced, "too-complex":
		return directiveTooAdvanced
	case FeedbackDifferentStyle, "different-angle":
		return directiveDifferentStyle
	default:
		return directiveFresh
	}
}

// InterestsClause renders the personalization sentence.
func InterestsClause(interests []string) string {
	if len(interests) == 0 {
		return "Create a general analogy that most people can understand."
	}
	return "The user is interested in: " + strings.Join(interests, ", ") + ". Use these interests to create relatable analogies."
}
