package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	types "github.com/yungbote/analogyai-backend/internal/domain"
	"github.com/yungbote/analogyai-backend/internal/pkg/dbctx"
)

func TestAnalogyRepoPagination(t *testing.T) {
	repo := NewAnalogyRepo()
	dbc := dbctx.New(context.Background())

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		_, err := repo.Create(dbc, &types.Analogy{
			UserID:    "owner",
			Topic:     string(rune('a' + i)),
			CreatedAt: base.Add(time.Duration(i) * time.Second),
		})
		require.NoError(t, err)
	}

	page, err := repo.ListByUser(dbc, "owner", 2, 0)
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, "e", page[0].Topic)
	assert.Equal(t, "d", page[1].Topic)

	tail, err := repo.ListByUser(dbc, "owner", 2, 4)
	require.NoError(t, err)
	require.Len(t, tail, 1)
	assert.Equal(t, "a", tail[0].Topic)

	beyond, err := repo.ListByUser(dbc, "owner", 2, 10)
	require.NoError(t, err)
	assert.Empty(t, beyond)
}

func TestAnalogyRepoReturnsCopies(t *testing.T) {
	repo := NewAnalogyRepo()
	dbc := dbctx.New(context.Background())

	created, err := repo.Create(dbc, &types.Analogy{UserID: "owner", Topic: "x", PersonalizationInterests: []string{"a"}})
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, created.ID)

	got, err := repo.GetByID(dbc, created.ID)
	require.NoError(t, err)
	got.PersonalizationInterests[0] = "mutated"
	got.Topic = "mutated"

	again, err := repo.GetByID(dbc, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "x", again.Topic)
	assert.Equal(t, []string{"a"}, again.Interests())
}

func TestAnalogyRepoDeleteOwnership(t *testing.T) {
	repo := NewAnalogyRepo()
	dbc := dbctx.New(context.Background())

	created, err := repo.Create(dbc, &types.Analogy{UserID: "owner", Topic: "x"})
	require.NoError(t, err)

	ok, err := repo.Delete(dbc, "intruder", created.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = repo.Delete(dbc, "owner", created.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.Delete(dbc, "owner", created.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestUserRepoUpsertAndUpdate(t *testing.T) {
	repo := NewUserRepo()
	dbc := dbctx.New(context.Background())

	u, err := repo.Upsert(dbc, types.NewUser("local-dev-user", "dev@analogy.ai"))
	require.NoError(t, err)
	assert.True(t, u.SaveHistory)

	_, err = repo.Update(dbc, "local-dev-user", map[string]interface{}{
		"save_history":            false,
		"default_knowledge_level": types.KnowledgeAdvanced,
	})
	require.NoError(t, err)

	again, err := repo.Upsert(dbc, types.NewUser("local-dev-user", "dev2@analogy.ai"))
	require.NoError(t, err)
	assert.Equal(t, "dev2@analogy.ai", again.Email)
	assert.False(t, again.SaveHistory)
	assert.Equal(t, types.KnowledgeAdvanced, again.DefaultKnowledgeLevel)

	_, err = repo.Update(dbc, "local-dev-user", map[string]interface{}{"password": "x"})
	assert.Error(t, err)

	missing, err := repo.Update(dbc, "nobody", map[string]interface{}{"save_history": true})
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestSessionRepoExpiry(t *testing.T) {
	repo := NewSessionRepo().(*sessionRepo)
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	repo.now = func() time.Time { return now }
	dbc := dbctx.New(context.Background())

	require.NoError(t, repo.Create(dbc, &types.Session{ID: "s1", UserID: "u", ExpiresAt: now.Add(time.Minute)}))
	got, err := repo.Get(dbc, "s1")
	require.NoError(t, err)
	require.NotNil(t, got)

	now = now.Add(2 * time.Minute)
	got, err = repo.Get(dbc, "s1")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestAnalogyRepoConcurrentListAndUpdate(t *testing.T) {
	repo := NewAnalogyRepo()
	dbc := dbctx.New(context.Background())

	var ids []uuid.UUID
	for i := 0; i < 8; i++ {
		a, err := repo.Create(dbc, &types.Analogy{UserID: "owner", Topic: "t", PersonalizationInterests: []string{"x"}})
		require.NoError(t, err)
		ids = append(ids, a.ID)
	}

	var wg sync.WaitGroup
	for w := 0; w < 4; w++ {
		wg.Add(2)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				_, err := repo.Update(dbc, ids[(i+w)%len(ids)], map[string]interface{}{"is_favorite": i%2 == 0})
				assert.NoError(t, err)
			}
		}(w)
		go func() {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				page, err := repo.ListByUser(dbc, "owner", 20, 0)
				assert.NoError(t, err)
				assert.Len(t, page, len(ids))
				for _, a := range page {
					a.IsFavorite = !a.IsFavorite
				}
			}
		}()
	}
	wg.Wait()

	page, err := repo.ListByUser(dbc, "owner", 20, 0)
	require.NoError(t, err)
	assert.Len(t, page, len(ids))
}

func TestFailedUpdateLeavesRecordUntouched(t *testing.T) {
	dbc := dbctx.New(context.Background())

	analogies := NewAnalogyRepo()
	a, err := analogies.Create(dbc, &types.Analogy{UserID: "owner", Topic: "t", GeneratedAnalogy: "before"})
	require.NoError(t, err)
	_, err = analogies.Update(dbc, a.ID, map[string]interface{}{
		"generated_analogy": "after",
		"topic":             "rewritten",
	})
	require.Error(t, err)
	got, err := analogies.GetByID(dbc, a.ID)
	require.NoError(t, err)
	assert.Equal(t, "before", got.GeneratedAnalogy)
	assert.Equal(t, "t", got.Topic)

	users := NewUserRepo()
	_, err = users.Upsert(dbc, types.NewUser("u1", "u1@analogy.ai"))
	require.NoError(t, err)
	_, err = users.Update(dbc, "u1", map[string]interface{}{
		"first_name": "Ada",
		"password":   "x",
	})
	require.Error(t, err)
	u, err := users.GetByID(dbc, "u1")
	require.NoError(t, err)
	assert.Empty(t, u.FirstName)
}
