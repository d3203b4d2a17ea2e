package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// TokenStore is the allow-list of live refresh-token ids. A jti missing from
// the store (revoked, rotated away or simply expired) is dead.
// Key format: session:refresh:<jti>
type TokenStore struct {
	client *redis.Client
}

func NewTokenStore(client *redis.Client) *TokenStore {
	return &TokenStore{client: client}
}

func (s *TokenStore) Allow(ctx context.Context, jti string, ttl time.Duration) error {
	return s.client.Set(ctx, s.key(jti), "1", ttl).Err()
}

func (s *TokenStore) IsAllowed(ctx context.Context, jti string) (bool, error) {
	n, err := s.client.Exists(ctx, s.key(jti)).Result()
	if err != nil {
		return false, fmt.Errorf("token check: %w", err)
	}
	return n > 0, nil
}

func (s *TokenStore) Revoke(ctx context.Context, jti string) error {
	return s.client.Del(ctx, s.key(jti)).Err()
}

func (s *TokenStore) key(jti string) string {
	return "session:refresh:" + jti
}
