package pending

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"calorie-tracker-bot/internal/features/diary/models"
	rplatform "calorie-tracker-bot/internal/platform/redis"
)

// RedisStore keeps pending candidates in Redis so they survive restarts.
// A non-zero ttl expires unconfirmed candidates instead of holding them
// forever.
type RedisStore struct {
	client *rplatform.Client
	ttl    time.Duration
}

func NewRedisStore(client *rplatform.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func (s *RedisStore) key(userID int64) string {
	return fmt.Sprintf("pending:meal:%d", userID)
}

func (s *RedisStore) Set(ctx context.Context, userID int64, candidate *models.PendingCandidate) error {
	b, err := json.Marshal(candidate)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, s.key(userID), b, s.ttl).Err()
}

func (s *RedisStore) Get(ctx context.Context, userID int64) (*models.PendingCandidate, error) {
	v, err := s.client.Get(ctx, s.key(userID)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrNotFound
		}
		return nil, err
	}
	var candidate models.PendingCandidate
	if err := json.Unmarshal(v, &candidate); err != nil {
		return nil, err
	}
	return &candidate, nil
}

func (s *RedisStore) Delete(ctx context.Context, userID int64) error {
	return s.client.Del(ctx, s.key(userID)).Err()
}
