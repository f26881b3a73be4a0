package app

import (
	goredis "github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/yungbote/analogyai-backend/internal/data/repos"
	"github.com/yungbote/analogyai-backend/internal/data/repos/memory"
	"github.com/yungbote/analogyai-backend/internal/platform/logger"
)

type Repos struct {
	User    repos.UserRepo
	Analogy repos.AnalogyRepo
	Session repos.SessionRepo
}

// wireRepos builds gorm-backed repos, or in-memory ones when db is nil.
// Sessions live in redis whenever a client is available.
func wireRepos(db *gorm.DB, rdb *goredis.Client, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	var r Repos
	if db == nil {
		r = Repos{
			User:    memory.NewUserRepo(),
			Analogy: memory.NewAnalogyRepo(),
			Session: memory.NewSessionRepo(),
		}
	} else {
		r = Repos{
			User:    repos.NewUserRepo(db, log),
			Analogy: repos.NewAnalogyRepo(db, log),
			Session: repos.NewSessionRepo(db, log),
		}
	}
	if rdb != nil {
		r.Session = repos.NewRedisSessionRepo(rdb, log)
	}
	return r
}
