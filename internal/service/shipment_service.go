package service

import (
	"strings"

	"github.com/millerserhii/shipment-tracking-api/internal/constants"
	"github.com/millerserhii/shipment-tracking-api/internal/models"
	"github.com/millerserhii/shipment-tracking-api/internal/repository"

	"github.com/google/uuid"
)

// ShipmentService handles the shipment CRUD surface. Ownership
// decisions stay in the handlers; the service validates payloads and
// keeps referential rules intact.
type ShipmentService struct {
	repo        repository.ShipmentRepository
	articleRepo repository.ArticleRepository
	addressRepo repository.AddressRepository
}

// NewShipmentService creates the shipment service.
func NewShipmentService(repo repository.ShipmentRepository, articleRepo repository.ArticleRepository, addressRepo repository.AddressRepository) *ShipmentService {
	return &ShipmentService{repo: repo, articleRepo: articleRepo, addressRepo: addressRepo}
}

// ShipmentInput carries shipment fields for create and update.
type ShipmentInput struct {
	ArticleID         uuid.UUID
	ArticleQuantity   *int
	TrackingNumber    string
	Carrier           string
	Status            string
	SenderAddressID   uuid.UUID
	ReceiverAddressID uuid.UUID
}

// List returns shipments matching the filter. Callers scope the
// filter to one owner unless the principal may view everything.
func (s *ShipmentService) List(filter repository.ShipmentListFilter) ([]models.UserShipment, int64, error) {
	return s.repo.List(filter)
}

// GetByID returns one shipment, or ErrNotFound.
func (s *ShipmentService) GetByID(id uuid.UUID, includeTrashed bool) (*models.UserShipment, error) {
	shipment, err := s.repo.GetByID(id, includeTrashed)
	if err != nil {
		return nil, err
	}
	if shipment == nil {
		return nil, ErrNotFound
	}
	return shipment, nil
}

// Create stores a new shipment owned by ownerID.
func (s *ShipmentService) Create(input ShipmentInput, ownerID uint) (*models.UserShipment, error) {
	if ownerID == 0 {
		return nil, ErrInvalidShipment
	}

	shipment := &models.UserShipment{UserID: ownerID}
	if err := s.applyInput(shipment, input); err != nil {
		return nil, err
	}
	if err := s.repo.Save(shipment, ownerID, false); err != nil {
		return nil, err
	}
	return s.GetByID(shipment.ID, false)
}

// Update applies input to an existing shipment inside one
// write-through mutation.
func (s *ShipmentService) Update(id uuid.UUID, input ShipmentInput, actorID uint) (*models.UserShipment, error) {
	shipment, err := s.repo.Mutate(id, actorID, func(current *models.UserShipment) error {
		return s.applyInput(current, input)
	})
	if err != nil {
		return nil, mapRecordNotFound(err)
	}
	return shipment, nil
}

// UpdateStatus changes just the status field.
func (s *ShipmentService) UpdateStatus(id uuid.UUID, status string, actorID uint) (*models.UserShipment, error) {
	normalized := strings.TrimSpace(status)
	if !constants.IsValidShipmentStatus(normalized) {
		return nil, ErrInvalidShipment
	}
	shipment, err := s.repo.Mutate(id, actorID, func(current *models.UserShipment) error {
		current.Status = normalized
		return nil
	})
	if err != nil {
		return nil, mapRecordNotFound(err)
	}
	return shipment, nil
}

// Delete trashes a shipment, or removes it permanently when forced.
func (s *ShipmentService) Delete(id uuid.UUID, actorID uint, forced bool) (int64, map[string]int64, error) {
	shipment, err := s.repo.GetByID(id, forced)
	if err != nil {
		return 0, nil, err
	}
	if shipment == nil {
		return 0, nil, ErrNotFound
	}
	return s.repo.Delete(shipment, actorID, forced)
}

// Restore brings a trashed shipment back.
func (s *ShipmentService) Restore(id uuid.UUID, actorID uint) (*models.UserShipment, error) {
	shipment, err := s.repo.GetByID(id, true)
	if err != nil {
		return nil, err
	}
	if shipment == nil {
		return nil, ErrNotFound
	}
	if !shipment.Trashed {
		return nil, ErrNotTrashed
	}

	shipment.Trashed = false
	if err := s.repo.Save(shipment, actorID, true); err != nil {
		return nil, err
	}
	return shipment, nil
}

func (s *ShipmentService) applyInput(shipment *models.UserShipment, input ShipmentInput) error {
	trackingNumber := strings.TrimSpace(input.TrackingNumber)
	carrier := strings.TrimSpace(input.Carrier)
	if trackingNumber == "" || carrier == "" {
		return ErrInvalidShipment
	}

	status := strings.TrimSpace(input.Status)
	if status == "" {
		status = constants.ShipmentStatusInTransit
	}
	if !constants.IsValidShipmentStatus(status) {
		return ErrInvalidShipment
	}

	quantity := 1
	if input.ArticleQuantity != nil {
		quantity = *input.ArticleQuantity
	}
	if quantity < 1 {
		return ErrInvalidShipment
	}

	if input.ArticleID == uuid.Nil || input.SenderAddressID == uuid.Nil || input.ReceiverAddressID == uuid.Nil {
		return ErrInvalidShipment
	}
	article, err := s.articleRepo.GetByID(input.ArticleID, false)
	if err != nil {
		return err
	}
	if article == nil {
		return ErrInvalidShipment
	}
	for _, addressID := range []uuid.UUID{input.SenderAddressID, input.ReceiverAddressID} {
		address, err := s.addressRepo.GetByID(addressID, false)
		if err != nil {
			return err
		}
		if address == nil {
			return ErrInvalidShipment
		}
	}

	shipment.ArticleID = input.ArticleID
	shipment.ArticleQuantity = quantity
	shipment.TrackingNumber = trackingNumber
	shipment.Carrier = carrier
	shipment.Status = status
	shipment.SenderAddressID = input.SenderAddressID
	shipment.ReceiverAddressID = input.ReceiverAddressID
	return nil
}
