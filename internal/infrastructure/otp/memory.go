// Package otp provides the in-memory one-time-password challenge store.
//
// The store is process-wide mutable state guarded by a mutex: concurrent
// logins for different usernames do not interfere, and concurrent issues for
// the same username race with last-issue-wins semantics. For horizontally
// scaled deployments use the Redis-backed store instead.
package otp

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"sync"
	"time"
)

const defaultTTL = 5 * time.Minute

type entry struct {
	code      string
	expiresAt time.Time
}

// MemoryStore holds pending codes keyed by username, each with its own expiry.
// Expired entries are checked lazily on Verify and overwritten on Issue; there
// is no background sweep.
type MemoryStore struct {
	mu      sync.Mutex
	pending map[string]entry
	ttl     time.Duration

	now func() time.Time
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &MemoryStore{
		pending: make(map[string]entry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// Issue generates a fresh 6-digit code for the username, replacing any pending
// one. Earlier unconsumed codes become unusable.
func (s *MemoryStore) Issue(_ context.Context, username string) (string, error) {
	code, err := RandomCode()
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	s.pending[username] = entry{code: code, expiresAt: s.now().Add(s.ttl)}
	s.mu.Unlock()

	return code, nil
}

// Verify consumes the pending code on match. Missing, expired, or mismatched
// codes report false without error.
func (s *MemoryStore) Verify(_ context.Context, username, code string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.pending[username]
	if !ok {
		return false, nil
	}
	if s.now().After(e.expiresAt) {
		delete(s.pending, username)
		return false, nil
	}
	if e.code != code {
		return false, nil
	}

	delete(s.pending, username)
	return true, nil
}

// RandomCode returns a uniformly random numeric code in [100000, 999999].
func RandomCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", fmt.Errorf("generate otp: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}
