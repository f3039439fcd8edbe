package repository

import (
	"errors"
	"strings"

	"github.com/millerserhii/shipment-tracking-api/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ShipmentRepository is the shipment data access interface.
type ShipmentRepository interface {
	List(filter ShipmentListFilter) ([]models.UserShipment, int64, error)
	GetByID(id uuid.UUID, includeTrashed bool) (*models.UserShipment, error)
	Save(shipment *models.UserShipment, actorID uint, updateTimestamp bool) error
	Mutate(id uuid.UUID, actorID uint, fn func(*models.UserShipment) error) (*models.UserShipment, error)
	Delete(shipment *models.UserShipment, actorID uint, forced bool) (int64, map[string]int64, error)
}

// GormShipmentRepository is the GORM implementation.
type GormShipmentRepository struct {
	db *gorm.DB
}

// NewShipmentRepository creates a shipment repository.
func NewShipmentRepository(db *gorm.DB) *GormShipmentRepository {
	return &GormShipmentRepository{db: db}
}

// List returns shipments matching the filter plus the total count.
// Related article and address rows are preloaded for serialization.
func (r *GormShipmentRepository) List(filter ShipmentListFilter) ([]models.UserShipment, int64, error) {
	var shipments []models.UserShipment
	query := r.db.Model(&models.UserShipment{}).Scopes(Scope(filter.IncludeTrashed))

	if filter.UserID != 0 {
		query = query.Where("user_id = ?", filter.UserID)
	}
	if filter.ArticleID != uuid.Nil {
		query = query.Where("article_id = ?", filter.ArticleID)
	}
	if carrier := strings.TrimSpace(filter.Carrier); carrier != "" {
		query = query.Where("carrier = ?", carrier)
	}
	if status := strings.TrimSpace(filter.Status); status != "" {
		query = query.Where("status = ?", status)
	}
	if trackingNumber := strings.TrimSpace(filter.TrackingNumber); trackingNumber != "" {
		query = query.Where("tracking_number = ?", trackingNumber)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)
	err := query.
		Preload("Article").
		Preload("SenderAddress").
		Preload("ReceiverAddress").
		Order("timestamp DESC").
		Find(&shipments).Error
	if err != nil {
		return nil, 0, err
	}
	return shipments, total, nil
}

// GetByID looks a shipment up by its identifier.
func (r *GormShipmentRepository) GetByID(id uuid.UUID, includeTrashed bool) (*models.UserShipment, error) {
	var shipment models.UserShipment
	err := r.db.Scopes(Scope(includeTrashed)).
		Preload("Article").
		Preload("SenderAddress").
		Preload("ReceiverAddress").
		Where("id = ?", id).
		First(&shipment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &shipment, nil
}

// Save persists the shipment with a history snapshot.
func (r *GormShipmentRepository) Save(shipment *models.UserShipment, actorID uint, updateTimestamp bool) error {
	return saveWithRevision(r.db, shipment, actorID, updateTimestamp)
}

// Mutate reloads the current persisted state, applies fn and persists
// the result with a history snapshot. When fn returns an error nothing
// is written.
func (r *GormShipmentRepository) Mutate(id uuid.UUID, actorID uint, fn func(*models.UserShipment) error) (*models.UserShipment, error) {
	shipment, err := r.GetByID(id, false)
	if err != nil {
		return nil, err
	}
	if shipment == nil {
		return nil, gorm.ErrRecordNotFound
	}
	if err := fn(shipment); err != nil {
		return nil, err
	}
	if err := r.Save(shipment, actorID, true); err != nil {
		return nil, err
	}
	return shipment, nil
}

// Delete trashes (or with forced, removes) the shipment with a history
// snapshot.
func (r *GormShipmentRepository) Delete(shipment *models.UserShipment, actorID uint, forced bool) (int64, map[string]int64, error) {
	return deleteWithRevision(r.db, shipment, actorID, forced)
}
