package waitlist

import (
	"context"
	"strings"

	"github.com/jammapp/waitlist-api/internal/models"
)

//go:generate mockgen -source=store.go -destination=store_mock.go -package=waitlist

// EntryStore persists waitlist entries. Two interchangeable backends exist:
// a database store (production) and a whole-file JSON store (local-dev
// fallback); callers must not assume anything about listing order.
type EntryStore interface {
	// Upsert records a subscription for the normalized email. An active entry
	// conflicts; an inactive one is reactivated in place with a refreshed
	// subscription timestamp; otherwise a new entry is created.
	Upsert(ctx context.Context, email, school string) (*models.WaitlistEntry, error)

	// ListActive returns every entry with IsActive=true, in backend-native order.
	ListActive(ctx context.Context) ([]*models.WaitlistEntry, error)

	// Deactivate soft-deletes the entry for the normalized email. An email
	// with no entry at all is a not-found failure; deactivating an already
	// inactive entry succeeds silently.
	Deactivate(ctx context.Context, email string) error
}

// NormalizeEmail lowercases and trims an address so lookups are
// case-insensitive: Foo@Bar.com and foo@bar.com address the same entry.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
