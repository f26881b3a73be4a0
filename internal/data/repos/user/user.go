package user

import (
	"errors"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/yungbote/analogyai-backend/internal/domain"
	"github.com/yungbote/analogyai-backend/internal/pkg/dbctx"
	"github.com/yungbote/analogyai-backend/internal/platform/logger"
)

// UserRepo returns (nil, nil) for lookups that match nothing.
type UserRepo interface {
	GetByID(dbc dbctx.Context, id string) (*types.User, error)
	GetByEmail(dbc dbctx.Context, email string) (*types.User, error)
	Create(dbc dbctx.Context, u *types.User) (*types.User, error)
	// Upsert inserts u, or on an id conflict refreshes the identity columns
	// (email, names, picture) that are non-empty on u. Preferences are never
	// overwritten by an upsert.
	Upsert(dbc dbctx.Context, u *types.User) (*types.User, error)
	Update(dbc dbctx.Context, id string, updates map[string]interface{}) (*types.User, error)
}

type userRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewUserRepo(db *gorm.DB, baseLog *logger.Logger) UserRepo {
	return &userRepo{db: db, log: baseLog.With("repo", "UserRepo")}
}

func (r *userRepo) GetByID(dbc dbctx.Context, id string) (*types.User, error) {
	if strings.TrimSpace(id) == "" {
		return nil, nil
	}
	var u types.User
	err := dbc.Conn(r.db).Where("id = ?", id).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *userRepo) GetByEmail(dbc dbctx.Context, email string) (*types.User, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, nil
	}
	var u types.User
	err := dbc.Conn(r.db).Where("email = ?", email).Order("created_at ASC").First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *userRepo) Create(dbc dbctx.Context, u *types.User) (*types.User, error) {
	if u == nil {
		return nil, errors.New("nil user")
	}
	if u.PersonalizationInterests == nil {
		u.PersonalizationInterests = []string{}
	}
	if err := dbc.Conn(r.db).Create(u).Error; err != nil {
		return nil, err
	}
	return u, nil
}

func (r *userRepo) Upsert(dbc dbctx.Context, u *types.User) (*types.User, error) {
	if u == nil || strings.TrimSpace(u.ID) == "" {
		return nil, errors.New("upsert requires a user id")
	}
	if u.PersonalizationInterests == nil {
		u.PersonalizationInterests = []string{}
	}
	onConflict := clause.OnConflict{Columns: []clause.Column{{Name: "id"}}}
	if cols := identityColumns(u); len(cols) > 0 {
		onConflict.DoUpdates = clause.AssignmentColumns(append(cols, "updated_at"))
	} else {
		onConflict.DoNothing = true
	}
	conn := dbc.Conn(r.db)
	if err := conn.Clauses(onConflict).Create(u).Error; err != nil {
		return nil, err
	}
	return r.GetByID(dbc, u.ID)
}

func identityColumns(u *types.User) []string {
	cols := make([]string, 0, 4)
	if u.Email != "" {
		cols = append(cols, "email")
	}
	if u.FirstName != "" {
		cols = append(cols, "first_name")
	}
	if u.LastName != "" {
		cols = append(cols, "last_name")
	}
	if u.ProfileImageURL != "" {
		cols = append(cols, "profile_image_url")
	}
	return cols
}

func (r *userRepo) Update(dbc dbctx.Context, id string, updates map[string]interface{}) (*types.User, error) {
	if len(updates) > 0 {
		res := dbc.Conn(r.db).Model(&types.User{}).Where("id = ?", id).Updates(updates)
		if res.Error != nil {
			return nil, res.Error
		}
	}
	return r.GetByID(dbc, id)
}
