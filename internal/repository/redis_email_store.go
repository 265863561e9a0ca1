package repository

import (
	"context"
	"fmt"

	"emailform/internal/domain"

	"github.com/redis/go-redis/v9"
)

type redisEmailStore struct {
	client *redis.Client
	key    string
}

// NewRedisEmailStore keeps addresses in a single Redis set, so like the
// table backend it rejects duplicates.
func NewRedisEmailStore(client *redis.Client, key string) EmailStore {
	return &redisEmailStore{client: client, key: key}
}

func (r *redisEmailStore) Append(ctx context.Context, email domain.EmailAddress) error {
	added, err := r.client.SAdd(ctx, r.key, email.String()).Result()
	if err != nil {
		return fmt.Errorf("failed to store email: %w", err)
	}

	if added == 0 {
		return domain.ErrDuplicateEntry
	}

	return nil
}
