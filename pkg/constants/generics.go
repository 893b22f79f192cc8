package constants

import "time"

// RFC3339DateTimeFormat is the canonical timestamp layout for API responses
// and anything persisted for external consumers.
const RFC3339DateTimeFormat = "2006-01-02T15:04:05Z07:00"

// Rate limiting defaults, applied when the env vars are unset.
const (
	// DefaultRateLimitRequests is the number of requests allowed per window.
	DefaultRateLimitRequests = 100
	// DefaultRateLimitWindowMinutes is the window length in minutes.
	DefaultRateLimitWindowMinutes = 1
)

// DefaultRateLimitWindow returns the default window as a duration.
func DefaultRateLimitWindow() time.Duration {
	return time.Duration(DefaultRateLimitWindowMinutes) * time.Minute
}
