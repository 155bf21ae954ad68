package ports

import "context"

// ChallengeStore holds pending one-time login codes keyed by username.
// At most one code is pending per username; issuing a new one overwrites any
// prior unconsumed code. Entries expire after the configured TTL.
type ChallengeStore interface {
	// Issue generates a uniformly random 6-digit code (100000-999999),
	// replaces any pending code for the username, and returns it for dispatch.
	Issue(ctx context.Context, username string) (string, error)
	// Verify reports whether a pending, unexpired code exists for the username
	// and equals the submission. A match consumes the code (single use).
	// A missing or mismatched code is a false return, never an error.
	Verify(ctx context.Context, username, code string) (bool, error)
}
