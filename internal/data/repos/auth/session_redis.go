package auth

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	types "github.com/yungbote/analogyai-backend/internal/domain"
	"github.com/yungbote/analogyai-backend/internal/pkg/dbctx"
	"github.com/yungbote/analogyai-backend/internal/platform/logger"
)

type nowFunc func() time.Time

func systemNow() time.Time { return time.Now() }

const sessionKeyPrefix = "analogyai:session:"

type redisSessionRepo struct {
	rdb *goredis.Client
	log *logger.Logger
	now nowFunc
}

// NewRedisSessionRepo keeps sessions in redis with a TTL matching ExpiresAt.
func NewRedisSessionRepo(rdb *goredis.Client, baseLog *logger.Logger) SessionRepo {
	return &redisSessionRepo{rdb: rdb, log: baseLog.With("repo", "RedisSessionRepo"), now: systemNow}
}

func sessionKey(id string) string { return sessionKeyPrefix + id }

func (r *redisSessionRepo) Create(dbc dbctx.Context, s *types.Session) error {
	if s == nil || strings.TrimSpace(s.ID) == "" {
		return errors.New("session id required")
	}
	now := r.now()
	if s.CreatedAt.IsZero() {
		s.CreatedAt = now
	}
	ttl := s.ExpiresAt.Sub(now)
	if ttl <= 0 {
		return fmt.Errorf("session %s already expired", s.ID)
	}
	raw, err := json.Marshal(s)
	if err != nil {
		return err
	}
	return r.rdb.Set(dbc.Context(), sessionKey(s.ID), raw, ttl).Err()
}

func (r *redisSessionRepo) Get(dbc dbctx.Context, id string) (*types.Session, error) {
	if strings.TrimSpace(id) == "" {
		return nil, nil
	}
	raw, err := r.rdb.Get(dbc.Context(), sessionKey(id)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var s types.Session
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	if s.Expired(r.now()) {
		return nil, nil
	}
	return &s, nil
}

func (r *redisSessionRepo) Delete(dbc dbctx.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return nil
	}
	return r.rdb.Del(dbc.Context(), sessionKey(id)).Err()
}
