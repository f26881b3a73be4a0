package user

import (
	"context"
	"testing"

	"gorm.io/datatypes"

	"github.com/yungbote/analogyai-backend/internal/data/repos/testutil"
	types "github.com/yungbote/analogyai-backend/internal/domain"
	"github.com/yungbote/analogyai-backend/internal/pkg/dbctx"
)

func TestUserRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	dbc := dbctx.New(context.Background()).WithTx(tx)

	repo := NewUserRepo(db, testutil.Logger(t))

	u := types.NewUser("google-123", "userrepo@example.com")
	u.FirstName = "Ada"
	created, err := repo.Create(dbc, u)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := repo.GetByID(dbc, created.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got == nil || got.Email != "userrepo@example.com" || !got.SaveHistory {
		t.Fatalf("GetByID: unexpected result: %+v", got)
	}
	if got.DefaultKnowledgeLevel != types.KnowledgeIntermediate || got.AnalogyStyle != types.StyleConversational {
		t.Fatalf("GetByID: defaults not applied: %+v", got)
	}

	byEmail, err := repo.GetByEmail(dbc, "userrepo@example.com")
	if err != nil || byEmail == nil || byEmail.ID != created.ID {
		t.Fatalf("GetByEmail: err=%v got=%+v", err, byEmail)
	}

	missing, err := repo.GetByID(dbc, "does-not-exist")
	if err != nil || missing != nil {
		t.Fatalf("GetByID (missing): err=%v got=%+v", err, missing)
	}

	updated, err := repo.Update(dbc, created.ID, map[string]interface{}{
		"display_name":              "Ada L.",
		"personalization_interests": datatypes.JSONSlice[string]{"chess", "sailing"},
		"save_history":              false,
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.DisplayName != "Ada L." || updated.SaveHistory {
		t.Fatalf("Update: unexpected result: %+v", updated)
	}
	if len(updated.PersonalizationInterests) != 2 || updated.PersonalizationInterests[0] != "chess" {
		t.Fatalf("Update: interests not stored: %v", updated.PersonalizationInterests)
	}
}

func TestUserRepoUpsertKeepsPreferences(t *testing.T) {
	db := testutil.DB(t)
	dbc := dbctx.New(context.Background())
	repo := NewUserRepo(db, testutil.Logger(t))

	first, err := repo.Upsert(dbc, types.NewUser("sub-1", "old@example.com"))
	if err != nil {
		t.Fatalf("Upsert (insert): %v", err)
	}
	if first == nil || first.Email != "old@example.com" {
		t.Fatalf("Upsert (insert): unexpected %+v", first)
	}

	if _, err := repo.Update(dbc, "sub-1", map[string]interface{}{"save_history": false}); err != nil {
		t.Fatalf("Update: %v", err)
	}

	again := types.NewUser("sub-1", "new@example.com")
	again.FirstName = "New"
	second, err := repo.Upsert(dbc, again)
	if err != nil {
		t.Fatalf("Upsert (update): %v", err)
	}
	if second.Email != "new@example.com" || second.FirstName != "New" {
		t.Fatalf("Upsert (update): identity not refreshed: %+v", second)
	}
	if second.SaveHistory {
		t.Fatalf("Upsert (update): preferences must not be reset")
	}

	// no identity columns supplied: existing row is untouched
	third, err := repo.Upsert(dbc, types.NewUser("sub-1", ""))
	if err != nil {
		t.Fatalf("Upsert (noop): %v", err)
	}
	if third.Email != "new@example.com" {
		t.Fatalf("Upsert (noop): email overwritten: %+v", third)
	}
}
