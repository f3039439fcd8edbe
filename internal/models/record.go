package models

import (
	"time"

	"github.com/google/uuid"
)

// Record is the base for every persisted entity: an immutable UUID
// primary key, a last-modified timestamp and a soft-delete flag.
// Trashed rows stay in the store; default reads exclude them.
type Record struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Timestamp time.Time `gorm:"index" json:"timestamp"`
	Trashed   bool      `gorm:"index;not null;default:false" json:"-"`
}

// EnsureID assigns a fresh UUID when the record has none yet.
func (r *Record) EnsureID() {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
}

// Touch sets the timestamp if unset; force always resets it to now.
func (r *Record) Touch(force bool) {
	if force || r.Timestamp.IsZero() {
		r.Timestamp = time.Now().UTC()
	}
}

// RecordRef exposes the embedded record to generic persistence helpers.
func (r *Record) RecordRef() *Record {
	return r
}

// Owned is implemented by entities that participate in ownership
// checks. The second return value reports whether an owner is present.
type Owned interface {
	OwnerID() (uint, bool)
}
