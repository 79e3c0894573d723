// Package otpstore holds pending one-time passcodes keyed by email.
// Two backends implement the same contract: an in-process map for
// single-instance deployments and Redis for multi-instance ones.
package otpstore

import "context"

// Store keeps at most one pending code per email.
//
// Verify never evicts on a successful match; consumption is an explicit
// Clear by the caller once the rest of the flow has succeeded, so a
// failed account check leaves the code usable for a retry.
type Store interface {
	// Store inserts or replaces the pending entry for email. Any prior
	// entry for that email is discarded.
	Store(ctx context.Context, email, code string) error
	// Verify reports whether candidate matches the live pending code.
	// An absent or expired entry yields false; expired entries are
	// evicted on the way out.
	Verify(ctx context.Context, email, candidate string) (bool, error)
	// Clear removes any pending entry for email. No-op when absent.
	Clear(ctx context.Context, email string) error
}
