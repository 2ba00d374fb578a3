package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// IdempotencyStore remembers the response produced for a client-generated
// key so a retried submission replays the original result instead of
// creating a second booking.
type IdempotencyStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewIdempotencyStore(client *redis.Client, ttl time.Duration) *IdempotencyStore {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &IdempotencyStore{client: client, ttl: ttl}
}

// StoredBooking is the replayable submission outcome.
type StoredBooking struct {
	BookingReference  string `json:"bookingReference"`
	ConsignmentNumber int64  `json:"consignmentNumber"`
}

func idemKey(userID int64, key string) string {
	return fmt.Sprintf("booking_idem:%d:%s", userID, key)
}

func (s *IdempotencyStore) Get(ctx context.Context, userID int64, key string) (*StoredBooking, error) {
	if s == nil || s.client == nil || key == "" {
		return nil, nil
	}
	val, err := s.client.Get(ctx, idemKey(userID, key)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read idempotency key: %w", err)
	}
	var out StoredBooking
	if err := json.Unmarshal([]byte(val), &out); err != nil {
		return nil, fmt.Errorf("failed to unmarshal stored booking: %w", err)
	}
	return &out, nil
}

func (s *IdempotencyStore) Set(ctx context.Context, userID int64, key string, b StoredBooking) error {
	if s == nil || s.client == nil || key == "" {
		return nil
	}
	data, err := json.Marshal(b)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, idemKey(userID, key), data, s.ttl).Err()
}
