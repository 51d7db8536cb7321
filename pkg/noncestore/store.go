// Package noncestore persists single-use sign-in challenges.
//
// A challenge is valid for exactly one (nonce, address) pair, exactly once,
// and only before its expiry. Claiming is the one operation in the
// authentication core that needs cross-request atomicity: it must be a single
// conditional delete so that concurrent replays of the same nonce produce at
// most one winner.
package noncestore

import (
	"context"
	"time"
)

// Store defines the interface for challenge persistence
type Store interface {
	// Insert persists a freshly issued challenge.
	Insert(ctx context.Context, nonce, address string, expiresAt time.Time) error

	// Claim atomically deletes the row matching (nonce, address) with
	// expires_at > now and reports whether a row was deleted. A false return
	// means the nonce is absent, expired, already claimed, or was issued for
	// a different address; callers treat all of these identically.
	Claim(ctx context.Context, nonce, address string, now time.Time) (bool, error)

	// PurgeExpired removes challenges whose expiry has passed. Storage
	// hygiene only: expiry is enforced at claim time, so correctness never
	// depends on this running.
	PurgeExpired(ctx context.Context, now time.Time) (int64, error)
}
