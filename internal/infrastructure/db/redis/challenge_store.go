package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/softtronics/msw-portal/internal/infrastructure/otp"
)

const defaultChallengeTTL = 5 * time.Minute

// consumeScript deletes the pending code only when it matches the submission,
// so two concurrent verifies with the correct code cannot both succeed.
var consumeScript = redis.NewScript(`
if redis.call('GET', KEYS[1]) == ARGV[1] then
  redis.call('DEL', KEYS[1])
  return 1
end
return 0
`)

// ChallengeStore keeps pending one-time codes in Redis with a per-entry TTL.
// Key format: otp:<username>. Unlike the in-memory store this validates codes
// issued by any instance of the service.
type ChallengeStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewChallengeStore creates a ChallengeStore wrapping the given Redis client.
func NewChallengeStore(client *redis.Client, ttl time.Duration) *ChallengeStore {
	if ttl <= 0 {
		ttl = defaultChallengeTTL
	}
	return &ChallengeStore{client: client, ttl: ttl}
}

// Issue stores a fresh code under the username's key, overwriting any pending
// one and resetting the TTL.
func (s *ChallengeStore) Issue(ctx context.Context, username string) (string, error) {
	code, err := otp.RandomCode()
	if err != nil {
		return "", err
	}
	if err := s.client.Set(ctx, s.key(username), code, s.ttl).Err(); err != nil {
		return "", fmt.Errorf("store otp: %w", err)
	}
	return code, nil
}

// Verify atomically consumes the pending code on match. Expiry is enforced by
// the key TTL; a lapsed or mismatched code reports false.
func (s *ChallengeStore) Verify(ctx context.Context, username, code string) (bool, error) {
	n, err := consumeScript.Run(ctx, s.client, []string{s.key(username)}, code).Int()
	if err != nil {
		return false, fmt.Errorf("verify otp: %w", err)
	}
	return n == 1, nil
}

func (s *ChallengeStore) key(username string) string {
	return "otp:" + username
}
