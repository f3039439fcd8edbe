package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// JSON stores an opaque structured payload as a JSON column.
type JSON map[string]interface{}

// Value implements driver.Valuer.
func (j JSON) Value() (driver.Value, error) {
	if j == nil {
		return nil, nil
	}
	return json.Marshal(j)
}

// Scan implements sql.Scanner.
func (j *JSON) Scan(value interface{}) error {
	if value == nil {
		*j = make(JSON)
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		if s, sok := value.(string); sok {
			bytes = []byte(s)
		} else {
			return nil
		}
	}
	return json.Unmarshal(bytes, j)
}

// Revision is one row of the append-only change history ledger: a full
// snapshot of an entity at the moment of a mutation. Rows are never
// updated after being written and are ordered by (entity, seq).
type Revision struct {
	ID         uint      `gorm:"primarykey" json:"id"`
	EntityType string    `gorm:"index:idx_revisions_entity;not null" json:"entity_type"`
	EntityID   uuid.UUID `gorm:"type:uuid;index:idx_revisions_entity;not null" json:"entity_id"`
	Seq        uint      `gorm:"not null" json:"seq"`
	Action     string    `gorm:"not null" json:"action"` // create / update / delete
	Snapshot   JSON      `gorm:"type:json" json:"snapshot"`
	ActorID    uint      `gorm:"index" json:"actor_id"`
	RecordedAt time.Time `gorm:"index;not null" json:"recorded_at"`
}

// TableName sets the table name.
func (Revision) TableName() string {
	return "revisions"
}
