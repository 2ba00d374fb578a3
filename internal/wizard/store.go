package wizard

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Store keeps drafts in Redis so a session can resume from any instance.
type Store struct {
	client *redis.Client
	ttl    time.Duration
}

func NewStore(client *redis.Client, ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Store{client: client, ttl: ttl}
}

func draftKey(id string) string {
	return "booking_draft:" + id
}

// Get returns (nil, nil) for an unknown or expired draft.
func (s *Store) Get(ctx context.Context, id string) (*Draft, error) {
	if s.client == nil {
		return nil, fmt.Errorf("redis client is nil")
	}
	val, err := s.client.Get(ctx, draftKey(id)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get draft from redis: %w", err)
	}

	var d Draft
	if err := json.Unmarshal([]byte(val), &d); err != nil {
		return nil, fmt.Errorf("failed to unmarshal draft: %w", err)
	}
	return &d, nil
}

func (s *Store) Set(ctx context.Context, d *Draft) error {
	if s.client == nil {
		return fmt.Errorf("redis client is nil")
	}
	d.UpdatedAt = time.Now()
	data, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("failed to marshal draft: %w", err)
	}
	if err := s.client.Set(ctx, draftKey(d.ID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set draft in redis: %w", err)
	}
	return nil
}

func (s *Store) Clear(ctx context.Context, id string) error {
	if s.client == nil {
		return fmt.Errorf("redis client is nil")
	}
	return s.client.Del(ctx, draftKey(id)).Err()
}
