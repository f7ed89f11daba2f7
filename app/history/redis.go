package history

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

const prefixHistory = "history:"

// RedisStorage keeps every session history in a redis list
type RedisStorage struct {
	db  *redis.Client
	ttl time.Duration
}

// Append pushes word to session list and refreshes list expiration
func (s *RedisStorage) Append(session string, word string) error {
	key := prefixHistory + session
	if err := s.db.RPush(context.Background(), key, word).Err(); err != nil {
		return fmt.Errorf("saving word: %w", err)
	}
	if s.ttl > 0 {
		if err := s.db.Expire(context.Background(), key, s.ttl).Err(); err != nil {
			return fmt.Errorf("setting expiration: %w", err)
		}
	}
	return nil
}

// List returns session list
func (s *RedisStorage) List(session string) ([]string, error) {
	words, err := s.db.LRange(context.Background(), prefixHistory+session, 0, -1).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("fetching history: %w", err)
	}
	return words, nil
}

// Forget removes session list
func (s *RedisStorage) Forget(session string) {
	s.db.Del(context.Background(), prefixHistory+session)
}

// Close closes redis client
func (s *RedisStorage) Close() error {
	return s.db.Close()
}

// NewRedisStorage creates RedisStorage with given url, histories expire after ttl of inactivity
func NewRedisStorage(url string, ttl time.Duration) (*RedisStorage, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return &RedisStorage{db: rdb, ttl: ttl}, nil
}
