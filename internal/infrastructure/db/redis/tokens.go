package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RefreshTokenStore tracks outstanding refresh-token ids in Redis.
// Keys:
//
//	refresh:<jti>       → user id, expires with the token
//	userrefresh:<uid>   → set of the user's live jtis, for bulk revocation
type RefreshTokenStore struct {
	client *redis.Client
}

// NewRefreshTokenStore creates a RefreshTokenStore wrapping the given client.
func NewRefreshTokenStore(client *redis.Client) *RefreshTokenStore {
	return &RefreshTokenStore{client: client}
}

// Save records a refresh-token id for a user, expiring after ttl.
func (s *RefreshTokenStore) Save(ctx context.Context, jti, userID string, ttl time.Duration) error {
	pipe := s.client.TxPipeline()
	pipe.Set(ctx, s.tokenKey(jti), userID, ttl)
	pipe.SAdd(ctx, s.userKey(userID), jti)
	pipe.Expire(ctx, s.userKey(userID), ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("save refresh token: %w", err)
	}
	return nil
}

// Consume removes jti and returns the user it belonged to. Refresh tokens
// are single use: a second Consume of the same jti reports ok=false.
func (s *RefreshTokenStore) Consume(ctx context.Context, jti string) (string, bool, error) {
	userID, err := s.client.GetDel(ctx, s.tokenKey(jti)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("consume refresh token: %w", err)
	}

	s.client.SRem(ctx, s.userKey(userID), jti)
	return userID, true, nil
}

// RevokeUser drops every outstanding refresh token of the user.
func (s *RefreshTokenStore) RevokeUser(ctx context.Context, userID string) error {
	jtis, err := s.client.SMembers(ctx, s.userKey(userID)).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("revoke refresh tokens: %w", err)
	}

	keys := make([]string, 0, len(jtis)+1)
	for _, jti := range jtis {
		keys = append(keys, s.tokenKey(jti))
	}
	keys = append(keys, s.userKey(userID))

	if err := s.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("revoke refresh tokens: %w", err)
	}
	return nil
}

func (s *RefreshTokenStore) tokenKey(jti string) string {
	return "refresh:" + jti
}

func (s *RefreshTokenStore) userKey(userID string) string {
	return "userrefresh:" + userID
}
