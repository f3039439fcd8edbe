package service

import (
	"errors"
	"testing"

	"github.com/millerserhii/shipment-tracking-api/internal/repository"

	"github.com/google/uuid"
)

func TestArticleDeleteProtectedWhileReferenced(t *testing.T) {
	env := setupShipmentServiceTest(t)
	articleSvc := NewArticleService(repository.NewArticleRepository(env.db))

	if _, err := env.svc.Create(env.input("TRACK-P"), 10); err != nil {
		t.Fatalf("create shipment failed: %v", err)
	}

	if _, _, err := articleSvc.Delete(env.article.ID, 1, false); !errors.Is(err, ErrProtected) {
		t.Fatalf("want ErrProtected for referenced article, got=%v", err)
	}
	if _, _, err := articleSvc.Delete(env.article.ID, 1, true); !errors.Is(err, ErrProtected) {
		t.Fatalf("want ErrProtected for forced delete of referenced article, got=%v", err)
	}

	if _, _, err := env.svc.Delete(firstShipmentID(t, env), 10, true); err != nil {
		t.Fatalf("remove shipment failed: %v", err)
	}
	affected, detail, err := articleSvc.Delete(env.article.ID, 1, false)
	if err != nil {
		t.Fatalf("delete unreferenced article failed: %v", err)
	}
	if affected != 1 || detail["articles"] != 1 {
		t.Fatalf("delete want (1, map[articles:1]), got=(%d, %v)", affected, detail)
	}
}

func TestAddressDeleteProtectedWhileReferenced(t *testing.T) {
	env := setupShipmentServiceTest(t)
	addressSvc := NewAddressService(repository.NewAddressRepository(env.db))

	if _, err := env.svc.Create(env.input("TRACK-Q"), 10); err != nil {
		t.Fatalf("create shipment failed: %v", err)
	}

	if _, _, err := addressSvc.Delete(env.sender.ID, 1, false); !errors.Is(err, ErrProtected) {
		t.Fatalf("want ErrProtected for referenced sender address, got=%v", err)
	}
	if _, _, err := addressSvc.Delete(env.receiver.ID, 1, false); !errors.Is(err, ErrProtected) {
		t.Fatalf("want ErrProtected for referenced receiver address, got=%v", err)
	}
}

func firstShipmentID(t *testing.T, env *shipmentTestEnv) uuid.UUID {
	t.Helper()
	items, _, err := env.svc.List(repository.ShipmentListFilter{UserID: 10})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(items) == 0 {
		t.Fatalf("no shipments seeded")
	}
	return items[0].ID
}
