package session

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// redisKeyPrefix namespaces session keys in a shared redis database.
const redisKeyPrefix = "session:"

// RedisStorage keeps sessions in redis.
type RedisStorage struct {
	client  *redis.Client
	timeout time.Duration
}

// NewRedisStorage wraps client. Each call is bounded by timeout.
func NewRedisStorage(client *redis.Client, timeout time.Duration) *RedisStorage {
	return &RedisStorage{client: client, timeout: timeout}
}

func (s *RedisStorage) ctx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), s.timeout)
}

// Get implements Storage.
func (s *RedisStorage) Get(key string) ([]byte, error) {
	ctx, cancel := s.ctx()
	defer cancel()

	val, err := s.client.Get(ctx, redisKeyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}

	return val, err
}

// Set implements Storage.
func (s *RedisStorage) Set(key string, val []byte, exp time.Duration) error {
	ctx, cancel := s.ctx()
	defer cancel()

	return s.client.Set(ctx, redisKeyPrefix+key, val, exp).Err()
}

// Delete implements Storage.
func (s *RedisStorage) Delete(key string) error {
	ctx, cancel := s.ctx()
	defer cancel()

	return s.client.Del(ctx, redisKeyPrefix+key).Err()
}

// Close closes the redis client.
func (s *RedisStorage) Close() error {
	return s.client.Close()
}
