package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const revokedKeyPrefix = "auth:revoked:"

// TokenStore keeps a redis denylist of revoked token ids. Entries
// expire together with the token they block, so the set stays small.
// Without redis revocation degrades to a no-op: tokens then stay valid
// until they expire.
type TokenStore struct {
	client *redis.Client
}

func NewTokenStore(client *redis.Client) *TokenStore {
	return &TokenStore{client: client}
}

// Revoke marks a token id as revoked until its natural expiry
func (s *TokenStore) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if s.client == nil {
		return nil
	}
	if ttl <= 0 {
		return nil // already expired, nothing to block
	}
	if err := s.client.Set(ctx, revokedKeyPrefix+tokenID, "1", ttl).Err(); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	return nil
}

// IsRevoked reports whether a token id is on the denylist
func (s *TokenStore) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	if s.client == nil {
		return false, nil
	}
	count, err := s.client.Exists(ctx, revokedKeyPrefix+tokenID).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check token revocation: %w", err)
	}
	return count > 0, nil
}
