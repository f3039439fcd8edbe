package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/millerserhii/shipment-tracking-api/internal/constants"
	"github.com/millerserhii/shipment-tracking-api/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type shipmentRepoEnv struct {
	db       *gorm.DB
	repo     *GormShipmentRepository
	article  *models.Article
	sender   *models.Address
	receiver *models.Address
}

func setupShipmentRepoTest(t *testing.T) *shipmentRepoEnv {
	t.Helper()
	db := setupRepositoryTest(t)

	articleRepo := NewArticleRepository(db)
	addressRepo := NewAddressRepository(db)

	price, err := models.NewPriceFromString("59.90")
	if err != nil {
		t.Fatalf("parse price failed: %v", err)
	}
	article := &models.Article{Name: "Mechanical Keyboard", Price: price, SKU: "KB-100"}
	if err := articleRepo.Save(article, 1, false); err != nil {
		t.Fatalf("seed article failed: %v", err)
	}
	sender := seedAddress(t, addressRepo, "Sonnenstr. 1")
	receiver := seedAddress(t, addressRepo, "Main St 5")

	return &shipmentRepoEnv{
		db:       db,
		repo:     NewShipmentRepository(db),
		article:  article,
		sender:   sender,
		receiver: receiver,
	}
}

func (env *shipmentRepoEnv) seedShipment(t *testing.T, userID uint, trackingNumber string) *models.UserShipment {
	t.Helper()
	shipment := &models.UserShipment{
		UserID:            userID,
		ArticleID:         env.article.ID,
		ArticleQuantity:   1,
		TrackingNumber:    trackingNumber,
		Carrier:           "dhl",
		Status:            constants.ShipmentStatusInTransit,
		SenderAddressID:   env.sender.ID,
		ReceiverAddressID: env.receiver.ID,
	}
	if err := env.repo.Save(shipment, userID, false); err != nil {
		t.Fatalf("seed shipment failed: %v", err)
	}
	return shipment
}

func TestShipmentListOwnerFilter(t *testing.T) {
	env := setupShipmentRepoTest(t)
	for i := 0; i < 3; i++ {
		env.seedShipment(t, 10, fmt.Sprintf("A-%d", i))
	}
	for i := 0; i < 2; i++ {
		env.seedShipment(t, 20, fmt.Sprintf("B-%d", i))
	}

	owned, total, err := env.repo.List(ShipmentListFilter{UserID: 10})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 3 || len(owned) != 3 {
		t.Fatalf("expected 3 shipments for user 10, got total=%d rows=%d", total, len(owned))
	}
	for _, shipment := range owned {
		if shipment.UserID != 10 {
			t.Fatalf("expected only user 10 rows, got user %d", shipment.UserID)
		}
	}

	all, total, err := env.repo.List(ShipmentListFilter{})
	if err != nil {
		t.Fatalf("unscoped list failed: %v", err)
	}
	if total != 5 || len(all) != 5 {
		t.Fatalf("expected 5 shipments unscoped, got total=%d rows=%d", total, len(all))
	}
}

func TestShipmentGetByIDPreloadsRelations(t *testing.T) {
	env := setupShipmentRepoTest(t)
	seeded := env.seedShipment(t, 10, "TRACK-1")

	shipment, err := env.repo.GetByID(seeded.ID, false)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if shipment == nil {
		t.Fatalf("expected shipment")
	}
	if shipment.Article == nil || shipment.Article.SKU != "KB-100" {
		t.Fatalf("expected article preload, got %+v", shipment.Article)
	}
	if shipment.SenderAddress == nil || shipment.SenderAddress.Street != "Sonnenstr. 1" {
		t.Fatalf("expected sender preload, got %+v", shipment.SenderAddress)
	}
	if shipment.ReceiverAddress == nil || shipment.ReceiverAddress.Street != "Main St 5" {
		t.Fatalf("expected receiver preload, got %+v", shipment.ReceiverAddress)
	}
}

func TestShipmentMutatePersistsResult(t *testing.T) {
	env := setupShipmentRepoTest(t)
	seeded := env.seedShipment(t, 10, "TRACK-1")

	// A stale in-memory copy must not leak into the write: Mutate
	// reloads the persisted state first.
	seeded.Carrier = "stale"

	updated, err := env.repo.Mutate(seeded.ID, 10, func(s *models.UserShipment) error {
		if s.Carrier != "dhl" {
			t.Fatalf("expected reloaded carrier dhl, got %q", s.Carrier)
		}
		s.Status = constants.ShipmentStatusDelivery
		return nil
	})
	if err != nil {
		t.Fatalf("mutate failed: %v", err)
	}
	if updated.Status != constants.ShipmentStatusDelivery {
		t.Fatalf("expected status %q, got %q", constants.ShipmentStatusDelivery, updated.Status)
	}

	reloaded, err := env.repo.GetByID(seeded.ID, false)
	if err != nil || reloaded == nil {
		t.Fatalf("reload failed: %v", err)
	}
	if reloaded.Status != constants.ShipmentStatusDelivery {
		t.Fatalf("expected persisted status %q, got %q", constants.ShipmentStatusDelivery, reloaded.Status)
	}
	if reloaded.Carrier != "dhl" {
		t.Fatalf("expected carrier dhl to survive, got %q", reloaded.Carrier)
	}
}

func TestShipmentMutateNotFound(t *testing.T) {
	env := setupShipmentRepoTest(t)

	_, err := env.repo.Mutate(uuid.New(), 10, func(s *models.UserShipment) error {
		t.Fatalf("mutate callback must not run for a missing shipment")
		return nil
	})
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound, got %v", err)
	}
}

func TestShipmentMutateErrorSkipsWrite(t *testing.T) {
	env := setupShipmentRepoTest(t)
	seeded := env.seedShipment(t, 10, "TRACK-1")

	boom := errors.New("boom")
	_, err := env.repo.Mutate(seeded.ID, 10, func(s *models.UserShipment) error {
		s.Status = constants.ShipmentStatusDelivery
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected callback error, got %v", err)
	}

	reloaded, err := env.repo.GetByID(seeded.ID, false)
	if err != nil || reloaded == nil {
		t.Fatalf("reload failed: %v", err)
	}
	if reloaded.Status != constants.ShipmentStatusInTransit {
		t.Fatalf("expected status to stay %q, got %q", constants.ShipmentStatusInTransit, reloaded.Status)
	}
}
