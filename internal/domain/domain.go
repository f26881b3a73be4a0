package domain

import (
	"github.com/yungbote/analogyai-backend/internal/domain/analogy"
	"github.com/yungbote/analogyai-backend/internal/domain/auth"
	"github.com/yungbote/analogyai-backend/internal/domain/user"
)

type User = user.User
type KnowledgeLevel = user.KnowledgeLevel
type AnalogyStyle = user.AnalogyStyle

type Analogy = analogy.Analogy

type Session = auth.Session

const (
	KnowledgeBeginner     = user.KnowledgeBeginner
	KnowledgeIntermediate = user.KnowledgeIntermediate
	KnowledgeAdvanced     = user.KnowledgeAdvanced

	StyleConversational = user.StyleConversational
	StyleTechnical      = user.StyleTechnical
	StyleCreative       = user.StyleCreative
)

var NewUser = user.New

// AllModels lists every persisted model, in migration order.
func AllModels() []any {
	return []any{
		&user.User{},
		&analogy.Analogy{},
		&auth.Session{},
	}
}
