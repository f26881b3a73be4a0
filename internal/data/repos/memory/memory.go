// Package memory holds map-backed implementations of the repo interfaces,
// used by DB_DRIVER=memory and by service tests.
package memory

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/yungbote/analogyai-backend/internal/data/repos"
	analogyrepo "github.com/yungbote/analogyai-backend/internal/data/repos/analogy"
	types "github.com/yungbote/analogyai-backend/internal/domain"
	"github.com/yungbote/analogyai-backend/internal/pkg/dbctx"
)

// ---- users ----

type userRepo struct {
	mu    sync.RWMutex
	users map[string]*types.User
	now   func() time.Time
}

func NewUserRepo() repos.UserRepo {
	return &userRepo{users: map[string]*types.User{}, now: time.Now}
}

func cloneUser(u *types.User) *types.User {
	if u == nil {
		return nil
	}
	cp := *u
	cp.PersonalizationInterests = append(datatypes.JSONSlice[string]{}, u.PersonalizationInterests...)
	return &cp
}

func (r *userRepo) GetByID(_ dbctx.Context, id string) (*types.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return cloneUser(r.users[id]), nil
}

func (r *userRepo) GetByEmail(_ dbctx.Context, email string) (*types.User, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	var found *types.User
	for _, u := range r.users {
		if u.Email == email && (found == nil || u.CreatedAt.Before(found.CreatedAt)) {
			found = u
		}
	}
	return cloneUser(found), nil
}

func (r *userRepo) Create(_ dbctx.Context, u *types.User) (*types.User, error) {
	if u == nil || u.ID == "" {
		return nil, errMissingID
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.users[u.ID]; exists {
		return nil, errDuplicateID
	}
	now := r.now().UTC()
	if u.CreatedAt.IsZero() {
		u.CreatedAt = now
	}
	u.UpdatedAt = now
	if u.PersonalizationInterests == nil {
		u.PersonalizationInterests = []string{}
	}
	r.users[u.ID] = cloneUser(u)
	return u, nil
}

func (r *userRepo) Upsert(dbc dbctx.Context, u *types.User) (*types.User, error) {
	if u == nil || u.ID == "" {
		return nil, errMissingID
	}
	r.mu.Lock()
	existing, ok := r.users[u.ID]
	if !ok {
		r.mu.Unlock()
		return r.Create(dbc, u)
	}
	changed := false
	if u.Email != "" {
		existing.Email, changed = u.Email, true
	}
	if u.FirstName != "" {
		existing.FirstName, changed = u.FirstName, true
	}
	if u.LastName != "" {
		existing.LastName, changed = u.LastName, true
	}
	if u.ProfileImageURL != "" {
		existing.ProfileImageURL, changed = u.ProfileImageURL, true
	}
	if changed {
		existing.UpdatedAt = r.now().UTC()
	}
	out := cloneUser(existing)
	r.mu.Unlock()
	return out, nil
}

func (r *userRepo) Update(_ dbctx.Context, id string, updates map[string]interface{}) (*types.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	u := cloneUser(stored)
	for col, val := range updates {
		if err := applyUserColumn(u, col, val); err != nil {
			return nil, err
		}
	}
	u.UpdatedAt = r.now().UTC()
	r.users[id] = u
	return cloneUser(u), nil
}

func applyUserColumn(u *types.User, col string, val interface{}) error {
	switch col {
	case "email":
		return assign(&u.Email, col, val)
	case "first_name":
		return assign(&u.FirstName, col, val)
	case "last_name":
		return assign(&u.LastName, col, val)
	case "display_name":
		return assign(&u.DisplayName, col, val)
	case "profile_image_url":
		return assign(&u.ProfileImageURL, col, val)
	case "personalization_interests":
		switch v := val.(type) {
		case datatypes.JSONSlice[string]:
			u.PersonalizationInterests = append(datatypes.JSONSlice[string]{}, v...)
		case []string:
			u.PersonalizationInterests = append(datatypes.JSONSlice[string]{}, v...)
		default:
			return unsupported(col, val)
		}
	case "default_knowledge_level":
		switch v := val.(type) {
		case types.KnowledgeLevel:
			u.DefaultKnowledgeLevel = v
		case string:
			u.DefaultKnowledgeLevel = types.KnowledgeLevel(v)
		default:
			return unsupported(col, val)
		}
	case "analogy_style":
		switch v := val.(type) {
		case types.AnalogyStyle:
			u.AnalogyStyle = v
		case string:
			u.AnalogyStyle = types.AnalogyStyle(v)
		default:
			return unsupported(col, val)
		}
	case "save_history":
		b, ok := val.(bool)
		if !ok {
			return unsupported(col, val)
		}
		u.SaveHistory = b
	default:
		return unsupported(col, val)
	}
	return nil
}

func assign(dst *string, col string, val interface{}) error {
	s, ok := val.(string)
	if !ok {
		return unsupported(col, val)
	}
	*dst = s
	return nil
}

// ---- analogies ----

type analogyRepo struct {
	mu    sync.RWMutex
	items map[uuid.UUID]*types.Analogy
	now   func() time.Time
}

func NewAnalogyRepo() repos.AnalogyRepo {
	return &analogyRepo{items: map[uuid.UUID]*types.Analogy{}, now: time.Now}
}

func cloneAnalogy(a *types.Analogy) *types.Analogy {
	if a == nil {
		return nil
	}
	cp := *a
	cp.PersonalizationInterests = append(datatypes.JSONSlice[string]{}, a.PersonalizationInterests...)
	if a.UserInputContext != nil {
		ctx := *a.UserInputContext
		cp.UserInputContext = &ctx
	}
	return &cp
}

func (r *analogyRepo) GetByID(_ dbctx.Context, id uuid.UUID) (*types.Analogy, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return cloneAnalogy(r.items[id]), nil
}

func (r *analogyRepo) Create(_ dbctx.Context, a *types.Analogy) (*types.Analogy, error) {
	if a == nil {
		return nil, errMissingID
	}
	analogyrepo.Prepare(a, r.now)
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.items[a.ID]; exists {
		return nil, errDuplicateID
	}
	r.items[a.ID] = cloneAnalogy(a)
	return a, nil
}

func (r *analogyRepo) ListByUser(_ dbctx.Context, userID string, limit, offset int) ([]*types.Analogy, error) {
	out := []*types.Analogy{}
	if userID == "" || limit <= 0 {
		return out, nil
	}
	if offset < 0 {
		offset = 0
	}
	r.mu.RLock()
	owned := make([]*types.Analogy, 0, len(r.items))
	for _, a := range r.items {
		if a.UserID == userID {
			owned = append(owned, cloneAnalogy(a))
		}
	}
	r.mu.RUnlock()

	sort.Slice(owned, func(i, j int) bool {
		if owned[i].CreatedAt.Equal(owned[j].CreatedAt) {
			return owned[i].ID.String() > owned[j].ID.String()
		}
		return owned[i].CreatedAt.After(owned[j].CreatedAt)
	})
	if offset >= len(owned) {
		return out, nil
	}
	end := offset + limit
	if end > len(owned) {
		end = len(owned)
	}
	return append(out, owned[offset:end]...), nil
}

func (r *analogyRepo) Update(_ dbctx.Context, id uuid.UUID, updates map[string]interface{}) (*types.Analogy, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	// Stored records are never mutated in place; a failed update leaves them untouched.
	a := cloneAnalogy(stored)
	for col, val := range updates {
		switch col {
		case "is_favorite":
			b, ok := val.(bool)
			if !ok {
				return nil, unsupported(col, val)
			}
			a.IsFavorite = b
		case "generated_analogy":
			if err := assign(&a.GeneratedAnalogy, col, val); err != nil {
				return nil, err
			}
		case "generated_example":
			if err := assign(&a.GeneratedExample, col, val); err != nil {
				return nil, err
			}
		case "model_used":
			if err := assign(&a.ModelUsed, col, val); err != nil {
				return nil, err
			}
		default:
			return nil, unsupported(col, val)
		}
	}
	r.items[id] = a
	return cloneAnalogy(a), nil
}

func (r *analogyRepo) Delete(_ dbctx.Context, userID string, id uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.items[id]
	if !ok || a.UserID != userID {
		return false, nil
	}
	delete(r.items, id)
	return true, nil
}

// ---- sessions ----

type sessionRepo struct {
	mu       sync.Mutex
	sessions map[string]*types.Session
	now      func() time.Time
}

func NewSessionRepo() repos.SessionRepo {
	return &sessionRepo{sessions: map[string]*types.Session{}, now: time.Now}
}

func (r *sessionRepo) Create(_ dbctx.Context, s *types.Session) error {
	if s == nil || s.ID == "" {
		return errMissingID
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if s.CreatedAt.IsZero() {
		s.CreatedAt = r.now().UTC()
	}
	cp := *s
	r.sessions[s.ID] = &cp
	return nil
}

func (r *sessionRepo) Get(_ dbctx.Context, id string) (*types.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[id]
	if !ok {
		return nil, nil
	}
	if s.Expired(r.now()) {
		delete(r.sessions, id)
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (r *sessionRepo) Delete(_ dbctx.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
	return nil
}
