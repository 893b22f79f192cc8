package waitlist

import (
	"context"
	"errors"
	"time"

	"github.com/jammapp/waitlist-api/internal/log"
	"github.com/jammapp/waitlist-api/internal/models"
	apperrors "github.com/jammapp/waitlist-api/pkg/errors"
	"gorm.io/gorm"
)

// dbEntryStore keeps one row per normalized email behind a unique index and
// uses keyed point reads/writes; ListActive filters server-side. The row ID
// is the normalized email itself.
type dbEntryStore struct {
	db     *gorm.DB
	logger *log.Logger
}

func NewDBEntryStore(db *gorm.DB, logger *log.Logger) EntryStore {
	return &dbEntryStore{db: db, logger: logger}
}

func (s *dbEntryStore) Upsert(ctx context.Context, email, school string) (*models.WaitlistEntry, error) {
	email = NormalizeEmail(email)

	var entry models.WaitlistEntry
	err := s.db.WithContext(ctx).Where("email = ?", email).First(&entry).Error

	switch {
	case err == nil:
		if entry.IsActive {
			return nil, apperrors.NewConflictError("Email is already on the waitlist", nil)
		}

		now := time.Now().UTC()
		updates := map[string]interface{}{
			"is_active":     true,
			"subscribed_at": now,
			"school":        school,
		}
		if err := s.db.WithContext(ctx).
			Model(&models.WaitlistEntry{}).
			Where("email = ?", email).
			Updates(updates).Error; err != nil {
			return nil, s.failure("Failed to add to waitlist. Please try again.", "reactivate entry", err)
		}

		entry.IsActive = true
		entry.SubscribedAt = now
		entry.School = school
		return &entry, nil

	case errors.Is(err, gorm.ErrRecordNotFound):
		entry = models.WaitlistEntry{
			ID:           email,
			Email:        email,
			School:       school,
			SubscribedAt: time.Now().UTC(),
			IsActive:     true,
		}
		if err := s.db.WithContext(ctx).Create(&entry).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) || apperrors.IsDuplicateKeyError(err) {
				return nil, apperrors.NewConflictError("Email is already on the waitlist", err)
			}
			return nil, s.failure("Failed to add to waitlist. Please try again.", "create entry", err)
		}
		return &entry, nil

	default:
		return nil, s.failure("Failed to add to waitlist. Please try again.", "lookup entry", err)
	}
}

func (s *dbEntryStore) ListActive(ctx context.Context) ([]*models.WaitlistEntry, error) {
	var entries []*models.WaitlistEntry

	if err := s.db.WithContext(ctx).Where("is_active = ?", true).Find(&entries).Error; err != nil {
		return nil, s.failure("Failed to fetch waitlist", "list active entries", err)
	}

	return entries, nil
}

func (s *dbEntryStore) Deactivate(ctx context.Context, email string) error {
	email = NormalizeEmail(email)

	result := s.db.WithContext(ctx).
		Model(&models.WaitlistEntry{}).
		Where("email = ?", email).
		Update("is_active", false)

	if result.Error != nil {
		return s.failure("Failed to unsubscribe. Please try again.", "deactivate entry", result.Error)
	}

	if result.RowsAffected == 0 {
		// Distinguish "no such entry" from "already inactive": the latter
		// also matches zero rows on some drivers only when the value is
		// unchanged, so check existence explicitly.
		var count int64
		if err := s.db.WithContext(ctx).
			Model(&models.WaitlistEntry{}).
			Where("email = ?", email).
			Count(&count).Error; err != nil {
			return s.failure("Failed to unsubscribe. Please try again.", "confirm entry", err)
		}
		if count == 0 {
			return apperrors.NewNotFoundError("Email not found on waitlist", nil)
		}
	}

	return nil
}

func (s *dbEntryStore) failure(message, op string, err error) error {
	s.logger.Error("Waitlist store operation failed", "op", op, "error", err)
	return apperrors.NewDatabaseError(message, err)
}
