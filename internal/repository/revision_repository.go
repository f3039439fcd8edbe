package repository

import (
	"strings"

	"github.com/millerserhii/shipment-tracking-api/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RevisionRepository reads the append-only history ledger. There are
// no write methods here on purpose: revisions are only ever written
// through the transactional save/delete helpers.
type RevisionRepository interface {
	List(filter RevisionListFilter) ([]models.Revision, int64, error)
	ListForEntity(entityType string, entityID uuid.UUID) ([]models.Revision, error)
}

// GormRevisionRepository is the GORM implementation.
type GormRevisionRepository struct {
	db *gorm.DB
}

// NewRevisionRepository creates a revision repository.
func NewRevisionRepository(db *gorm.DB) *GormRevisionRepository {
	return &GormRevisionRepository{db: db}
}

// List returns ledger rows matching the filter plus the total count.
func (r *GormRevisionRepository) List(filter RevisionListFilter) ([]models.Revision, int64, error) {
	var revisions []models.Revision
	query := r.db.Model(&models.Revision{})

	if entityType := strings.TrimSpace(filter.EntityType); entityType != "" {
		query = query.Where("entity_type = ?", entityType)
	}
	if filter.EntityID != uuid.Nil {
		query = query.Where("entity_id = ?", filter.EntityID)
	}
	if filter.ActorID != 0 {
		query = query.Where("actor_id = ?", filter.ActorID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)
	if err := query.Order("recorded_at DESC, seq DESC").Find(&revisions).Error; err != nil {
		return nil, 0, err
	}
	return revisions, total, nil
}

// ListForEntity returns the full history of one entity in write order.
func (r *GormRevisionRepository) ListForEntity(entityType string, entityID uuid.UUID) ([]models.Revision, error) {
	var revisions []models.Revision
	err := r.db.Model(&models.Revision{}).
		Where("entity_type = ? AND entity_id = ?", entityType, entityID).
		Order("seq ASC").
		Find(&revisions).Error
	if err != nil {
		return nil, err
	}
	return revisions, nil
}
