package auth

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	types "github.com/yungbote/analogyai-backend/internal/domain"
	"github.com/yungbote/analogyai-backend/internal/pkg/dbctx"
	"github.com/yungbote/analogyai-backend/internal/platform/logger"
)

// SessionRepo stores login sessions. Get returns (nil, nil) for unknown or
// expired ids.
type SessionRepo interface {
	Create(dbc dbctx.Context, s *types.Session) error
	Get(dbc dbctx.Context, id string) (*types.Session, error)
	Delete(dbc dbctx.Context, id string) error
}

type sessionRepo struct {
	db  *gorm.DB
	log *logger.Logger
	now nowFunc
}

func NewSessionRepo(db *gorm.DB, baseLog *logger.Logger) SessionRepo {
	return &sessionRepo{db: db, log: baseLog.With("repo", "SessionRepo"), now: systemNow}
}

func (r *sessionRepo) Create(dbc dbctx.Context, s *types.Session) error {
	if s == nil || strings.TrimSpace(s.ID) == "" {
		return errors.New("session id required")
	}
	return dbc.Conn(r.db).Create(s).Error
}

func (r *sessionRepo) Get(dbc dbctx.Context, id string) (*types.Session, error) {
	if strings.TrimSpace(id) == "" {
		return nil, nil
	}
	var s types.Session
	err := dbc.Conn(r.db).Where("id = ?", id).First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if s.Expired(r.now()) {
		if delErr := r.Delete(dbc, id); delErr != nil {
			r.log.Warn("failed to drop expired session", "session_id", id, "error", delErr)
		}
		return nil, nil
	}
	return &s, nil
}

func (r *sessionRepo) Delete(dbc dbctx.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return nil
	}
	return dbc.Conn(r.db).Where("id = ?", id).Delete(&types.Session{}).Error
}
