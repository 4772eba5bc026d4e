package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"trendmindAPI/internal/types/post"
)

// RedisStore keeps each slot as a JSON string at trendmind_posts:{owner}.
// Appends use WATCH/MULTI so a concurrent writer makes the transaction
// fail instead of silently losing a post.
type RedisStore struct {
	client *redis.Client
	logger *zap.Logger
}

func NewRedisStore(client *redis.Client, logger *zap.Logger) *RedisStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RedisStore{client: client, logger: logger.Named("redis_store")}
}

// OpenRedis parses a redis:// URL and pings the server.
func OpenRedis(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return client, nil
}

func (s *RedisStore) Load(ctx context.Context, owner string) ([]*post.ScheduledPost, error) {
	key := slotKey(owner)

	data, err := s.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		if err := s.client.SetNX(ctx, key, "[]", 0).Err(); err != nil {
			return nil, fmt.Errorf("failed to initialize slot: %w", err)
		}
		return []*post.ScheduledPost{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get slot: %w", err)
	}

	return decodeSlot(data, s.logger, owner)
}

func (s *RedisStore) Append(ctx context.Context, owner string, p *post.ScheduledPost) error {
	key := slotKey(owner)

	err := s.client.Watch(ctx, func(tx *redis.Tx) error {
		data, err := tx.Get(ctx, key).Bytes()
		if err != nil && err != redis.Nil {
			return fmt.Errorf("failed to get slot: %w", err)
		}

		next, err := appendToSlot(data, p)
		if err != nil {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, next, 0)
			return nil
		})
		return err
	}, key)

	if errors.Is(err, redis.TxFailedErr) {
		conflictsTotal.WithLabelValues("redis").Inc()
		return ErrConflict
	}
	return err
}

func (s *RedisStore) Clear(ctx context.Context, owner string) error {
	if err := s.client.Del(ctx, slotKey(owner)).Err(); err != nil {
		return fmt.Errorf("failed to clear slot: %w", err)
	}
	return nil
}

func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
