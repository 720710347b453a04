package redisstore

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/oksasatya/opus-favorites/internal/domain/repository"
)

func sessionKey(sid string) string { return "session:" + sid }

func userSessionsKey(uid int64) string { return "user:sessions:" + strconv.FormatInt(uid, 10) }

// SessionRepository keeps sessions as Redis hashes with a TTL, plus a
// per-user index so every session of an account can be revoked at once.
type SessionRepository struct {
	rdb *redis.Client
}

func NewSessionRepository(rdb *redis.Client) *SessionRepository {
	return &SessionRepository{rdb: rdb}
}

func (r *SessionRepository) Create(ctx context.Context, sid string, userID int64, ttl time.Duration) error {
	key := sessionKey(sid)
	idx := userSessionsKey(userID)
	pipe := r.rdb.TxPipeline()
	pipe.HSet(ctx, key, map[string]any{
		"user_id":    userID,
		"created_at": time.Now().UTC().Format(time.RFC3339Nano),
	})
	pipe.Expire(ctx, key, ttl)
	pipe.SAdd(ctx, idx, sid)
	pipe.Expire(ctx, idx, ttl)
	_, err := pipe.Exec(ctx)
	return err
}

func (r *SessionRepository) Get(ctx context.Context, sid string) (int64, error) {
	v, err := r.rdb.HGet(ctx, sessionKey(sid), "user_id").Result()
	if errors.Is(err, redis.Nil) {
		return 0, repository.ErrNotFound
	}
	if err != nil {
		return 0, err
	}
	uid, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, repository.ErrNotFound
	}
	return uid, nil
}

// Delete is a no-op for unknown sessions.
func (r *SessionRepository) Delete(ctx context.Context, sid string) error {
	key := sessionKey(sid)
	uid, err := r.Get(ctx, sid)
	if errors.Is(err, repository.ErrNotFound) {
		return r.rdb.Del(ctx, key).Err()
	}
	if err != nil {
		return err
	}
	pipe := r.rdb.TxPipeline()
	pipe.Del(ctx, key)
	pipe.SRem(ctx, userSessionsKey(uid), sid)
	_, err = pipe.Exec(ctx)
	return err
}

func (r *SessionRepository) DeleteAllForUser(ctx context.Context, userID int64) error {
	idx := userSessionsKey(userID)
	sids, err := r.rdb.SMembers(ctx, idx).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return err
	}
	keys := make([]string, 0, len(sids)+1)
	for _, sid := range sids {
		keys = append(keys, sessionKey(sid))
	}
	keys = append(keys, idx)
	return r.rdb.Del(ctx, keys...).Err()
}

var _ repository.SessionRepository = (*SessionRepository)(nil)
