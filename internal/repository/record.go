package repository

import (
	"encoding/json"
	"time"

	"github.com/millerserhii/shipment-tracking-api/internal/constants"
	"github.com/millerserhii/shipment-tracking-api/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Entity is any persisted type embedding models.Record.
type Entity interface {
	RecordRef() *models.Record
	TableName() string
}

// Scope is the single query-construction function for record reads.
// Every listing and lookup goes through it; trashed rows are excluded
// unless the caller explicitly opts in.
func Scope(includeTrashed bool) func(*gorm.DB) *gorm.DB {
	return func(query *gorm.DB) *gorm.DB {
		if includeTrashed {
			return query
		}
		return query.Where("trashed = ?", false)
	}
}

// SaveRecord persists an entity. A missing ID and timestamp are filled
// in on first save; updateTimestamp forces the timestamp to now.
func SaveRecord(db *gorm.DB, entity Entity, updateTimestamp bool) error {
	record := entity.RecordRef()
	record.EnsureID()
	record.Touch(updateTimestamp)
	return db.Save(entity).Error
}

// DeleteRecord removes an entity. The default path is a soft delete:
// the trashed flag is set, the timestamp bumped and the row kept.
// Forced deletion removes the row and reports the store's native
// count. Both variants return (count, per-table count).
func DeleteRecord(db *gorm.DB, entity Entity, forced bool) (int64, map[string]int64, error) {
	if forced {
		result := db.Delete(entity)
		if result.Error != nil {
			return 0, nil, result.Error
		}
		return result.RowsAffected, map[string]int64{entity.TableName(): result.RowsAffected}, nil
	}

	record := entity.RecordRef()
	record.Trashed = true
	if err := SaveRecord(db, entity, true); err != nil {
		return 0, nil, err
	}
	return 1, map[string]int64{entity.TableName(): 1}, nil
}

// saveWithRevision persists a historied entity and appends one ledger
// snapshot inside the same transaction. No partial writes: either both
// the row and its revision land, or neither does.
func saveWithRevision(db *gorm.DB, entity Entity, actorID uint, updateTimestamp bool) error {
	created := entity.RecordRef().ID == uuid.Nil || entity.RecordRef().Timestamp.IsZero()
	return db.Transaction(func(tx *gorm.DB) error {
		if err := SaveRecord(tx, entity, updateTimestamp); err != nil {
			return err
		}
		action := constants.RevisionActionUpdate
		if created {
			action = constants.RevisionActionCreate
		}
		return appendRevision(tx, entity, action, actorID)
	})
}

// deleteWithRevision deletes a historied entity (soft by default) and
// appends a delete snapshot inside the same transaction.
func deleteWithRevision(db *gorm.DB, entity Entity, actorID uint, forced bool) (int64, map[string]int64, error) {
	var count int64
	var detail map[string]int64
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := appendRevision(tx, entity, constants.RevisionActionDelete, actorID); err != nil {
			return err
		}
		var deleteErr error
		count, detail, deleteErr = DeleteRecord(tx, entity, forced)
		return deleteErr
	})
	if err != nil {
		return 0, nil, err
	}
	return count, detail, nil
}

func appendRevision(tx *gorm.DB, entity Entity, action string, actorID uint) error {
	snapshot, err := snapshotOf(entity)
	if err != nil {
		return err
	}

	var lastSeq uint
	err = tx.Model(&models.Revision{}).
		Where("entity_type = ? AND entity_id = ?", entity.TableName(), entity.RecordRef().ID).
		Select("COALESCE(MAX(seq), 0)").
		Scan(&lastSeq).Error
	if err != nil {
		return err
	}

	revision := models.Revision{
		EntityType: entity.TableName(),
		EntityID:   entity.RecordRef().ID,
		Seq:        lastSeq + 1,
		Action:     action,
		Snapshot:   snapshot,
		ActorID:    actorID,
		RecordedAt: time.Now().UTC(),
	}
	return tx.Create(&revision).Error
}

func snapshotOf(entity Entity) (models.JSON, error) {
	raw, err := json.Marshal(entity)
	if err != nil {
		return nil, err
	}
	var snapshot models.JSON
	if err := json.Unmarshal(raw, &snapshot); err != nil {
		return nil, err
	}
	return snapshot, nil
}
