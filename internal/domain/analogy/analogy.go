package analogy

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/yungbote/analogyai-backend/internal/domain/user"
)

// Analogy is one generated artifact. The personalization columns are a
// snapshot of the request, never a reference to the live profile.
type Analogy struct {
	ID                       uuid.UUID                   `gorm:"type:uuid;primaryKey;column:id" json:"id"`
	UserID                   string                      `gorm:"index;not null;column:user_id" json:"userId"`
	Topic                    string                      `gorm:"not null;column:topic" json:"topic"`
	UserInputContext         *string                     `gorm:"column:user_input_context" json:"userInputContext"`
	PersonalizationInterests datatypes.JSONSlice[string] `gorm:"column:personalization_interests" json:"personalizationInterests"`
	KnowledgeLevel           user.KnowledgeLevel         `gorm:"not null;column:knowledge_level" json:"knowledgeLevel"`
	GeneratedAnalogy         string                      `gorm:"not null;column:generated_analogy" json:"generatedAnalogy"`
	GeneratedExample         string                      `gorm:"not null;column:generated_example" json:"generatedExample"`
	ModelUsed                string                      `gorm:"not null;column:model_used" json:"modelUsed"`
	CreatedAt                time.Time                   `gorm:"index;not null;column:created_at" json:"createdAt"`
	IsFavorite               bool                        `gorm:"not null;column:is_favorite" json:"isFavorite"`
}

func (Analogy) TableName() string { return "analogy" }

// Interests returns the snapshot as a plain non-nil slice.
func (a *Analogy) Interests() []string {
	if a == nil || len(a.PersonalizationInterests) == 0 {
		return []string{}
	}
	out := make([]string, len(a.PersonalizationInterests))
	copy(out, a.PersonalizationInterests)
	return out
}

// Context returns the optional context or "".
func (a *Analogy) Context() string {
	if a == nil || a.UserInputContext == nil {
		return ""
	}
	return *a.UserInputContext
}
