package models

import "time"

// WaitlistEntry is one subscriber record, keyed by normalized (lowercase)
// email. Unsubscribing soft-deletes via IsActive; records are never removed.
type WaitlistEntry struct {
	ID           string    `gorm:"type:text;primaryKey" json:"id"`
	Email        string    `gorm:"not null;uniqueIndex" json:"email"`
	School       string    `json:"school,omitempty"`
	SubscribedAt time.Time `gorm:"not null" json:"subscribedAt"`
	IsActive     bool      `gorm:"not null;default:true" json:"isActive"`
}

// ModelRegistry lists every model subject to schema auto-migration.
var ModelRegistry = []interface{}{
	&WaitlistEntry{},
}
