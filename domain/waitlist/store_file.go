package waitlist

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/jammapp/waitlist-api/internal/log"
	"github.com/jammapp/waitlist-api/internal/models"
	apperrors "github.com/jammapp/waitlist-api/pkg/errors"
)

// DefaultDataFile is where the file store keeps the whole entry collection
// when WAITLIST_DATA_FILE is not set.
const DefaultDataFile = "data/waitlist.json"

// fileEntryStore serializes the entire entry set as one JSON blob and does a
// full read-modify-write per operation. It is the local-development fallback
// used when no database is configured. The mutex serializes writers within
// this process; concurrent processes sharing the file can still lose updates.
type fileEntryStore struct {
	path   string
	logger *log.Logger

	mu sync.Mutex
}

func NewFileEntryStore(path string, logger *log.Logger) EntryStore {
	if path == "" {
		path = DefaultDataFile
	}
	return &fileEntryStore{path: path, logger: logger}
}

func (s *fileEntryStore) Upsert(ctx context.Context, email, school string) (*models.WaitlistEntry, error) {
	email = NormalizeEmail(email)

	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.readAll()
	if err != nil {
		return nil, s.failure("Failed to add to waitlist. Please try again.", "read entries", err)
	}

	for i := range entries {
		if NormalizeEmail(entries[i].Email) != email {
			continue
		}

		if entries[i].IsActive {
			return nil, apperrors.NewConflictError("Email is already on the waitlist", nil)
		}

		entries[i].IsActive = true
		entries[i].SubscribedAt = time.Now().UTC()
		entries[i].School = school

		if err := s.writeAll(entries); err != nil {
			return nil, s.failure("Failed to add to waitlist. Please try again.", "write entries", err)
		}
		return &entries[i], nil
	}

	entry := models.WaitlistEntry{
		ID:           strconv.FormatInt(time.Now().UnixMilli(), 10),
		Email:        email,
		School:       school,
		SubscribedAt: time.Now().UTC(),
		IsActive:     true,
	}
	entries = append(entries, entry)

	if err := s.writeAll(entries); err != nil {
		return nil, s.failure("Failed to add to waitlist. Please try again.", "write entries", err)
	}

	return &entry, nil
}

func (s *fileEntryStore) ListActive(ctx context.Context) ([]*models.WaitlistEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.readAll()
	if err != nil {
		return nil, s.failure("Failed to fetch waitlist", "read entries", err)
	}

	active := make([]*models.WaitlistEntry, 0, len(entries))
	for i := range entries {
		if entries[i].IsActive {
			entry := entries[i]
			active = append(active, &entry)
		}
	}

	return active, nil
}

func (s *fileEntryStore) Deactivate(ctx context.Context, email string) error {
	email = NormalizeEmail(email)

	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.readAll()
	if err != nil {
		return s.failure("Failed to unsubscribe. Please try again.", "read entries", err)
	}

	for i := range entries {
		if NormalizeEmail(entries[i].Email) != email {
			continue
		}

		entries[i].IsActive = false
		if err := s.writeAll(entries); err != nil {
			return s.failure("Failed to unsubscribe. Please try again.", "write entries", err)
		}
		return nil
	}

	return apperrors.NewNotFoundError("Email not found on waitlist", nil)
}

// readAll treats a missing file as an empty collection; the file is created
// on first write.
func (s *fileEntryStore) readAll() ([]models.WaitlistEntry, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	if len(data) == 0 {
		return nil, nil
	}

	var entries []models.WaitlistEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, err
	}

	return entries, nil
}

func (s *fileEntryStore) writeAll(entries []models.WaitlistEntry) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(s.path, data, 0o644)
}

func (s *fileEntryStore) failure(message, op string, err error) error {
	s.logger.Error("Waitlist file store operation failed", "op", op, "path", s.path, "error", err)
	return apperrors.NewDatabaseError(message, err)
}
