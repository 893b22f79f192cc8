package config

import (
	"github.com/jammapp/waitlist-api/domain/waitlist"
	"github.com/jammapp/waitlist-api/internal/log"
	"github.com/jammapp/waitlist-api/pkg/utils"
	"gorm.io/gorm"
)

// NewEntryStore selects the persistence backend once at startup: the
// database store when Postgres is configured, otherwise the local JSON file
// store. Both honor the same EntryStore contract, so nothing downstream
// needs to know which one is active.
func NewEntryStore(logger *log.Logger, db *gorm.DB) waitlist.EntryStore {
	if db != nil {
		logger.Info("Waitlist entries stored in database")
		return waitlist.NewDBEntryStore(db, logger)
	}

	path := utils.GetEnvTrimmedOrDefault("WAITLIST_DATA_FILE", waitlist.DefaultDataFile)
	logger.Warn("Database not configured; falling back to file-backed waitlist store (local development only)", "path", path)
	return waitlist.NewFileEntryStore(path, logger)
}
