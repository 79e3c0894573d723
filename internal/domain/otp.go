package domain

import "time"

// PendingOTP is an outstanding verification challenge. At most one live
// entry exists per email; a new request replaces any prior entry, which
// permanently invalidates the old code even before it expires.
type PendingOTP struct {
	Email     string
	Code      string
	ExpiresAt time.Time
}

// Expired reports whether the entry is past its expiry at the given time.
func (p PendingOTP) Expired(now time.Time) bool {
	return now.After(p.ExpiresAt)
}
