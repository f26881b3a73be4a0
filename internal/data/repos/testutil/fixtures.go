package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/analogyai-backend/internal/domain"
)

func SeedUser(tb testing.TB, ctx context.Context, tx *gorm.DB, id, email string) *types.User {
	tb.Helper()
	u := types.NewUser(id, email)
	u.FirstName = "A"
	u.LastName = "B"
	if err := tx.WithContext(ctx).Create(u).Error; err != nil {
		tb.Fatalf("seed user: %v", err)
	}
	return u
}

func SeedAnalogy(tb testing.TB, ctx context.Context, tx *gorm.DB, userID, topic string, createdAt time.Time) *types.Analogy {
	tb.Helper()
	a := &types.Analogy{
		ID:                       uuid.New(),
		UserID:                   userID,
		Topic:                    topic,
		PersonalizationInterests: []string{"basketball"},
		KnowledgeLevel:           types.KnowledgeBeginner,
		GeneratedAnalogy:         "### " + topic + "\n\nThink of it as **a pass**.",
		GeneratedExample:         "### Example\n\n**Court** example.",
		ModelUsed:                "gpt-4o",
		CreatedAt:                createdAt,
	}
	if err := tx.WithContext(ctx).Create(a).Error; err != nil {
		tb.Fatalf("seed analogy: %v", err)
	}
	return a
}
