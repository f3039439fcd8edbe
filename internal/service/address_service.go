package service

import (
	"strings"

	"github.com/millerserhii/shipment-tracking-api/internal/models"
	"github.com/millerserhii/shipment-tracking-api/internal/repository"

	"github.com/google/uuid"
)

// AddressService handles address reads for the public API plus the
// mutations reserved for the admin surface.
type AddressService struct {
	repo repository.AddressRepository
}

// NewAddressService creates the address service.
func NewAddressService(repo repository.AddressRepository) *AddressService {
	return &AddressService{repo: repo}
}

// AddressInput carries address fields for create and update.
type AddressInput struct {
	Street     string
	City       string
	Country    string
	PostalCode string
}

// List returns addresses matching the filter.
func (s *AddressService) List(filter repository.AddressListFilter) ([]models.Address, int64, error) {
	return s.repo.List(filter)
}

// GetByID returns one address, or ErrNotFound.
func (s *AddressService) GetByID(id uuid.UUID, includeTrashed bool) (*models.Address, error) {
	address, err := s.repo.GetByID(id, includeTrashed)
	if err != nil {
		return nil, err
	}
	if address == nil {
		return nil, ErrNotFound
	}
	return address, nil
}

// Create stores a new address.
func (s *AddressService) Create(input AddressInput, actorID uint) (*models.Address, error) {
	address, err := buildAddressEntity(input, nil)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Save(address, actorID, false); err != nil {
		return nil, err
	}
	return address, nil
}

// Update applies input to an existing address.
func (s *AddressService) Update(id uuid.UUID, input AddressInput, actorID uint) (*models.Address, error) {
	existing, err := s.GetByID(id, false)
	if err != nil {
		return nil, err
	}
	address, err := buildAddressEntity(input, existing)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Save(address, actorID, true); err != nil {
		return nil, err
	}
	return address, nil
}

// Delete trashes an address, or removes it permanently when forced.
// An address still referenced by a shipment is protected either way.
func (s *AddressService) Delete(id uuid.UUID, actorID uint, forced bool) (int64, map[string]int64, error) {
	address, err := s.repo.GetByID(id, forced)
	if err != nil {
		return 0, nil, err
	}
	if address == nil {
		return 0, nil, ErrNotFound
	}

	refs, err := s.repo.ReferenceCount(id)
	if err != nil {
		return 0, nil, err
	}
	if refs > 0 {
		return 0, nil, ErrProtected
	}
	return s.repo.Delete(address, actorID, forced)
}

// Restore brings a trashed address back.
func (s *AddressService) Restore(id uuid.UUID, actorID uint) (*models.Address, error) {
	address, err := s.repo.GetByID(id, true)
	if err != nil {
		return nil, err
	}
	if address == nil {
		return nil, ErrNotFound
	}
	if !address.Trashed {
		return nil, ErrNotTrashed
	}

	address.Trashed = false
	if err := s.repo.Save(address, actorID, true); err != nil {
		return nil, err
	}
	return address, nil
}

func buildAddressEntity(input AddressInput, existing *models.Address) (*models.Address, error) {
	street := strings.TrimSpace(input.Street)
	city := strings.TrimSpace(input.City)
	country := strings.TrimSpace(input.Country)
	postal := strings.TrimSpace(input.PostalCode)
	if street == "" || city == "" || country == "" || postal == "" {
		return nil, ErrInvalidAddress
	}

	if existing == nil {
		return &models.Address{
			Street:     street,
			City:       city,
			Country:    country,
			PostalCode: postal,
		}, nil
	}
	existing.Street = street
	existing.City = city
	existing.Country = country
	existing.PostalCode = postal
	return existing, nil
}
