package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/theafricanengineer/mozillians/internal/domain/session"
	"github.com/theafricanengineer/mozillians/pkg/apperror"
)

const (
	sessionKeyPrefix = "session:"
	flashKeyPrefix   = "flash:"
)

type redisSessionStore struct {
	rdb *redis.Client
}

func NewRedisSessionStore(rdb *redis.Client) session.Store {
	return &redisSessionStore{rdb: rdb}
}

func sessionKey(id uuid.UUID) string { return sessionKeyPrefix + id.String() }
func flashKey(id uuid.UUID) string   { return flashKeyPrefix + id.String() }

func (s *redisSessionStore) Create(ctx context.Context, userID uuid.UUID, ttl time.Duration) (*session.Session, error) {
	sess := &session.Session{
		ID:        uuid.New(),
		UserID:    userID,
		CreatedAt: time.Now().UTC(),
	}

	blob, err := json.Marshal(sess)
	if err != nil {
		return nil, apperror.NewInternal("failed to encode session", err)
	}

	if err := s.rdb.Set(ctx, sessionKey(sess.ID), blob, ttl).Err(); err != nil {
		return nil, apperror.NewInternal("failed to store session", err)
	}
	return sess, nil
}

func (s *redisSessionStore) Get(ctx context.Context, id uuid.UUID) (*session.Session, error) {
	blob, err := s.rdb.Get(ctx, sessionKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, session.ErrNotFound
		}
		return nil, apperror.NewInternal("failed to read session", err)
	}

	sess := &session.Session{}
	if err := json.Unmarshal(blob, sess); err != nil {
		return nil, apperror.NewInternal("failed to decode session", err)
	}
	return sess, nil
}

func (s *redisSessionStore) Delete(ctx context.Context, id uuid.UUID) error {
	// Deleting an unknown session is not an error; logout must be
	// idempotent.
	if err := s.rdb.Del(ctx, sessionKey(id), flashKey(id)).Err(); err != nil {
		return apperror.NewInternal("failed to delete session", err)
	}
	return nil
}

func (s *redisSessionStore) AddFlash(ctx context.Context, sessionID uuid.UUID, msg string) error {
	pipe := s.rdb.TxPipeline()
	pipe.RPush(ctx, flashKey(sessionID), msg)
	pipe.Expire(ctx, flashKey(sessionID), time.Hour)
	if _, err := pipe.Exec(ctx); err != nil {
		return apperror.NewInternal("failed to store flash message", err)
	}
	return nil
}

func (s *redisSessionStore) PopFlashes(ctx context.Context, sessionID uuid.UUID) ([]string, error) {
	pipe := s.rdb.TxPipeline()
	get := pipe.LRange(ctx, flashKey(sessionID), 0, -1)
	pipe.Del(ctx, flashKey(sessionID))
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, apperror.NewInternal("failed to pop flash messages", err)
	}
	return get.Val(), nil
}
