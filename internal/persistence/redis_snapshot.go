package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/spec-kit/civicpulse-service/internal/domain"
)

// RedisSnapshotBackend stores the complaint collection as one JSON blob
// under a fixed key, the direct analog of the original flat key-value slot.
type RedisSnapshotBackend struct {
	client *redis.Client
	key    string
}

// NewRedisSnapshotBackend wraps an existing Redis connection.
func NewRedisSnapshotBackend(r *Redis, key string) (*RedisSnapshotBackend, error) {
	if r == nil || r.Client == nil {
		return nil, ErrNotConfigured
	}
	return &RedisSnapshotBackend{client: r.Client, key: key}, nil
}

func (b *RedisSnapshotBackend) Load(ctx context.Context) ([]domain.Complaint, bool, error) {
	blob, err := b.client.Get(ctx, b.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("load snapshot %q: %w", b.key, err)
	}
	var complaints []domain.Complaint
	if err := json.Unmarshal(blob, &complaints); err != nil {
		return nil, false, fmt.Errorf("decode snapshot %q: %w", b.key, err)
	}
	return complaints, true, nil
}

func (b *RedisSnapshotBackend) Save(ctx context.Context, complaints []domain.Complaint) error {
	blob, err := json.Marshal(complaints)
	if err != nil {
		return fmt.Errorf("encode snapshot %q: %w", b.key, err)
	}
	if err := b.client.Set(ctx, b.key, blob, 0).Err(); err != nil {
		return fmt.Errorf("save snapshot %q: %w", b.key, err)
	}
	return nil
}
