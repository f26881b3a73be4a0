package prompts

// Input carries every field the analogy prompts reference.
// Missing fields render empty strings (templates use missingkey=zero).
type Input struct {
	Topic          string
	Context        string
	KnowledgeLevel string
	Interests      []string
	// Feedback is the raw regeneration code; see FeedbackDirective.
	Feedback string
}
