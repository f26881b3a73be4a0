package user

import (
	"time"

	"gorm.io/datatypes"
)

type KnowledgeLevel string

const (
	KnowledgeBeginner     KnowledgeLevel = "beginner"
	KnowledgeIntermediate KnowledgeLevel = "intermediate"
	KnowledgeAdvanced     KnowledgeLevel = "advanced"
)

func (k KnowledgeLevel) Valid() bool {
	switch k {
	case KnowledgeBeginner, KnowledgeIntermediate, KnowledgeAdvanced:
		return true
	}
	return false
}

type AnalogyStyle string

const (
	StyleConversational AnalogyStyle = "conversational"
	StyleTechnical      AnalogyStyle = "technical"
	StyleCreative       AnalogyStyle = "creative"
)

func (s AnalogyStyle) Valid() bool {
	switch s {
	case StyleConversational, StyleTechnical, StyleCreative:
		return true
	}
	return false
}

// User is keyed by the external identity id (Google subject, proxy header
// value, or a configured static id), not a generated uuid.
type User struct {
	ID                       string                      `gorm:"primaryKey;column:id" json:"id"`
	Email                    string                      `gorm:"index;column:email" json:"email"`
	FirstName                string                      `gorm:"column:first_name" json:"firstName"`
	LastName                 string                      `gorm:"column:last_name" json:"lastName"`
	DisplayName              string                      `gorm:"column:display_name" json:"displayName"`
	ProfileImageURL          string                      `gorm:"column:profile_image_url" json:"profileImageUrl"`
	PersonalizationInterests datatypes.JSONSlice[string] `gorm:"column:personalization_interests" json:"personalizationInterests"`
	DefaultKnowledgeLevel    KnowledgeLevel              `gorm:"not null;column:default_knowledge_level" json:"defaultKnowledgeLevel"`
	AnalogyStyle             AnalogyStyle                `gorm:"not null;column:analogy_style" json:"analogyStyle"`
	SaveHistory              bool                        `gorm:"not null;column:save_history" json:"saveHistory"`
	CreatedAt                time.Time                   `gorm:"not null;autoCreateTime" json:"createdAt"`
	UpdatedAt                time.Time                   `gorm:"not null;autoUpdateTime" json:"updatedAt"`
}

func (User) TableName() string { return "user" }

// New returns a user with the product defaults applied.
func New(id, email string) *User {
	return &User{
		ID:                       id,
		Email:                    email,
		PersonalizationInterests: datatypes.JSONSlice[string]{},
		DefaultKnowledgeLevel:    KnowledgeIntermediate,
		AnalogyStyle:             StyleConversational,
		SaveHistory:              true,
	}
}
