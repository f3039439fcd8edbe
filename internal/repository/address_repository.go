package repository

import (
	"errors"
	"strings"

	"github.com/millerserhii/shipment-tracking-api/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AddressRepository is the address data access interface.
type AddressRepository interface {
	List(filter AddressListFilter) ([]models.Address, int64, error)
	GetByID(id uuid.UUID, includeTrashed bool) (*models.Address, error)
	GetOrCreate(address *models.Address, actorID uint) (*models.Address, error)
	Save(address *models.Address, actorID uint, updateTimestamp bool) error
	Delete(address *models.Address, actorID uint, forced bool) (int64, map[string]int64, error)
	ReferenceCount(id uuid.UUID) (int64, error)
}

// GormAddressRepository is the GORM implementation.
type GormAddressRepository struct {
	db *gorm.DB
}

// NewAddressRepository creates an address repository.
func NewAddressRepository(db *gorm.DB) *GormAddressRepository {
	return &GormAddressRepository{db: db}
}

// List returns addresses matching the filter plus the total count.
func (r *GormAddressRepository) List(filter AddressListFilter) ([]models.Address, int64, error) {
	var addresses []models.Address
	query := r.db.Model(&models.Address{}).Scopes(Scope(filter.IncludeTrashed))

	if street := strings.TrimSpace(filter.Street); street != "" {
		query = query.Where("street = ?", street)
	}
	if city := strings.TrimSpace(filter.City); city != "" {
		query = query.Where("city = ?", city)
	}
	if country := strings.TrimSpace(filter.Country); country != "" {
		query = query.Where("country = ?", country)
	}
	if postalCode := strings.TrimSpace(filter.PostalCode); postalCode != "" {
		query = query.Where("postal_code = ?", postalCode)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)
	if err := query.Order("timestamp DESC").Find(&addresses).Error; err != nil {
		return nil, 0, err
	}
	return addresses, total, nil
}

// GetByID looks an address up by its identifier.
func (r *GormAddressRepository) GetByID(id uuid.UUID, includeTrashed bool) (*models.Address, error) {
	var address models.Address
	err := r.db.Scopes(Scope(includeTrashed)).Where("id = ?", id).First(&address).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &address, nil
}

// GetOrCreate finds an address with identical fields or persists the
// given one.
func (r *GormAddressRepository) GetOrCreate(address *models.Address, actorID uint) (*models.Address, error) {
	var existing models.Address
	err := r.db.Scopes(Scope(false)).
		Where("street = ? AND city = ? AND country = ? AND postal_code = ?",
			address.Street, address.City, address.Country, address.PostalCode).
		First(&existing).Error
	if err == nil {
		return &existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if err := r.Save(address, actorID, false); err != nil {
		return nil, err
	}
	return address, nil
}

// Save persists the address with a history snapshot.
func (r *GormAddressRepository) Save(address *models.Address, actorID uint, updateTimestamp bool) error {
	return saveWithRevision(r.db, address, actorID, updateTimestamp)
}

// Delete trashes (or with forced, removes) the address with a history
// snapshot.
func (r *GormAddressRepository) Delete(address *models.Address, actorID uint, forced bool) (int64, map[string]int64, error) {
	return deleteWithRevision(r.db, address, actorID, forced)
}

// ReferenceCount counts shipments still pointing at the address,
// trashed ones included. Protected references keep trashed rows alive.
func (r *GormAddressRepository) ReferenceCount(id uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Model(&models.UserShipment{}).
		Where("sender_address_id = ? OR receiver_address_id = ?", id, id).
		Count(&count).Error
	return count, err
}
