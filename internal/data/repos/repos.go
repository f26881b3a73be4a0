package repos

import (
	goredis "github.com/redis/go-redis/v9"
	"github.com/yungbote/analogyai-backend/internal/data/repos/analogy"
	"github.com/yungbote/analogyai-backend/internal/data/repos/auth"
	"github.com/yungbote/analogyai-backend/internal/data/repos/user"
	"github.com/yungbote/analogyai-backend/internal/platform/logger"
	"gorm.io/gorm"
)

type UserRepo = user.UserRepo
type AnalogyRepo = analogy.AnalogyRepo
type SessionRepo = auth.SessionRepo

func NewUserRepo(db *gorm.DB, log *logger.Logger) UserRepo {
	return user.NewUserRepo(db, log)
}

func NewAnalogyRepo(db *gorm.DB, log *logger.Logger) AnalogyRepo {
	return analogy.NewAnalogyRepo(db, log)
}

func NewSessionRepo(db *gorm.DB, log *logger.Logger) SessionRepo {
	return auth.NewSessionRepo(db, log)
}

func NewRedisSessionRepo(rdb *goredis.Client, log *logger.Logger) SessionRepo {
	return auth.NewRedisSessionRepo(rdb, log)
}
