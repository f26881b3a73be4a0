package analogy

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/analogyai-backend/internal/domain"
	"github.com/yungbote/analogyai-backend/internal/pkg/dbctx"
	"github.com/yungbote/analogyai-backend/internal/platform/logger"
)

// AnalogyRepo returns (nil, nil) for lookups that match nothing. Ownership is
// enforced by callers except for Delete, which matches on both ids.
type AnalogyRepo interface {
	GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Analogy, error)
	Create(dbc dbctx.Context, a *types.Analogy) (*types.Analogy, error)
	// ListByUser returns the user's records newest first.
	ListByUser(dbc dbctx.Context, userID string, limit, offset int) ([]*types.Analogy, error)
	Update(dbc dbctx.Context, id uuid.UUID, updates map[string]interface{}) (*types.Analogy, error)
	// Delete reports false when no record with id is owned by userID.
	Delete(dbc dbctx.Context, userID string, id uuid.UUID) (bool, error)
}

type analogyRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAnalogyRepo(db *gorm.DB, baseLog *logger.Logger) AnalogyRepo {
	return &analogyRepo{db: db, log: baseLog.With("repo", "AnalogyRepo")}
}

func (r *analogyRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Analogy, error) {
	if id == uuid.Nil {
		return nil, nil
	}
	var a types.Analogy
	err := dbc.Conn(r.db).Where("id = ?", id).First(&a).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *analogyRepo) Create(dbc dbctx.Context, a *types.Analogy) (*types.Analogy, error) {
	if a == nil {
		return nil, errors.New("nil analogy")
	}
	Prepare(a, time.Now)
	if err := dbc.Conn(r.db).Create(a).Error; err != nil {
		return nil, err
	}
	return a, nil
}

// Prepare fills the id, timestamp and snapshot defaults of a new record.
func Prepare(a *types.Analogy, now func() time.Time) {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = now().UTC()
	}
	if a.PersonalizationInterests == nil {
		a.PersonalizationInterests = []string{}
	}
}

func (r *analogyRepo) ListByUser(dbc dbctx.Context, userID string, limit, offset int) ([]*types.Analogy, error) {
	out := []*types.Analogy{}
	if userID == "" || limit <= 0 {
		return out, nil
	}
	if offset < 0 {
		offset = 0
	}
	if err := dbc.Conn(r.db).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Order("id DESC").
		Limit(limit).
		Offset(offset).
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *analogyRepo) Update(dbc dbctx.Context, id uuid.UUID, updates map[string]interface{}) (*types.Analogy, error) {
	if len(updates) > 0 {
		if err := dbc.Conn(r.db).
			Model(&types.Analogy{}).
			Where("id = ?", id).
			Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	return r.GetByID(dbc, id)
}

func (r *analogyRepo) Delete(dbc dbctx.Context, userID string, id uuid.UUID) (bool, error) {
	res := dbc.Conn(r.db).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&types.Analogy{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
