package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/millerserhii/shipment-tracking-api/internal/authz"
	"github.com/millerserhii/shipment-tracking-api/internal/constants"
	handlershared "github.com/millerserhii/shipment-tracking-api/internal/http/handlers/shared"
	"github.com/millerserhii/shipment-tracking-api/internal/models"
	"github.com/millerserhii/shipment-tracking-api/internal/provider"
	"github.com/millerserhii/shipment-tracking-api/internal/repository"
	"github.com/millerserhii/shipment-tracking-api/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

type stubShipmentChecker struct {
	grants map[string]bool
}

func (s *stubShipmentChecker) HasPermission(userID uint, object, action string) bool {
	return s.grants[fmt.Sprintf("%d:%s:%s", userID, object, action)]
}

func (s *stubShipmentChecker) grant(userID uint, object, action string) {
	s.grants[fmt.Sprintf("%d:%s:%s", userID, object, action)] = true
}

type shipmentHandlerEnv struct {
	handler  *Handler
	checker  *stubShipmentChecker
	article  *models.Article
	sender   *models.Address
	receiver *models.Address
}

func setupShipmentHandlerTest(t *testing.T) *shipmentHandlerEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Address{}, &models.Article{}, &models.UserShipment{}, &models.Revision{}); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}

	articleRepo := repository.NewArticleRepository(db)
	addressRepo := repository.NewAddressRepository(db)
	shipmentRepo := repository.NewShipmentRepository(db)
	svc := service.NewShipmentService(shipmentRepo, articleRepo, addressRepo)

	price, err := models.NewPriceFromString("12.50")
	if err != nil {
		t.Fatalf("parse price failed: %v", err)
	}
	article := &models.Article{Name: "Desk Lamp", Price: price, SKU: "DL-200"}
	if err := articleRepo.Save(article, 1, false); err != nil {
		t.Fatalf("seed article failed: %v", err)
	}
	sender := &models.Address{Street: "Sonnenstr. 1", City: "Fuerth", Country: "DE", PostalCode: "90766"}
	if err := addressRepo.Save(sender, 1, false); err != nil {
		t.Fatalf("seed sender failed: %v", err)
	}
	receiver := &models.Address{Street: "Main St 5", City: "Springfield", Country: "US", PostalCode: "12345"}
	if err := addressRepo.Save(receiver, 1, false); err != nil {
		t.Fatalf("seed receiver failed: %v", err)
	}

	checker := &stubShipmentChecker{grants: map[string]bool{}}
	handler := &Handler{Container: &provider.Container{
		ShipmentService: svc,
		ShipmentPolicy:  authz.NewReadOnlyOwnerPolicy(checker, constants.ObjectShipment),
	}}
	return &shipmentHandlerEnv{
		handler:  handler,
		checker:  checker,
		article:  article,
		sender:   sender,
		receiver: receiver,
	}
}

func (env *shipmentHandlerEnv) createBody(owner uint) string {
	ownerField := ""
	if owner != 0 {
		ownerField = fmt.Sprintf(`"user":%d,`, owner)
	}
	return fmt.Sprintf(`{%s"article_id":%q,"tracking_number":"TRACK-1","carrier":"dhl","sender_address_id":%q,"receiver_address_id":%q}`,
		ownerField, env.article.ID.String(), env.sender.ID.String(), env.receiver.ID.String())
}

func (env *shipmentHandlerEnv) postShipment(t *testing.T, principal authz.Principal, body string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/v1/parcel/user-shipments", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	handlershared.SetPrincipal(c, principal)
	env.handler.CreateShipment(c)
	return w
}

func TestCreateShipmentDeclaredSelf(t *testing.T) {
	env := setupShipmentHandlerTest(t)

	w := env.postShipment(t, authz.Principal{ID: 10}, env.createBody(10))
	if w.Code != http.StatusCreated {
		t.Fatalf("expected status %d, got %d body=%s", http.StatusCreated, w.Code, w.Body.String())
	}
	var envelope struct {
		Data struct {
			User uint `json:"user"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode body failed: %v", err)
	}
	if envelope.Data.User != 10 {
		t.Fatalf("owner want 10, got=%d", envelope.Data.User)
	}
}

func TestCreateShipmentWithoutOwnerDenied(t *testing.T) {
	env := setupShipmentHandlerTest(t)

	w := env.postShipment(t, authz.Principal{ID: 10}, env.createBody(0))
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected status %d for payload without owner, got %d", http.StatusForbidden, w.Code)
	}

	w = env.postShipment(t, authz.Principal{ID: 10}, "")
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected status %d for empty body, got %d", http.StatusForbidden, w.Code)
	}
}

func TestCreateShipmentForOtherUserNeedsPermission(t *testing.T) {
	env := setupShipmentHandlerTest(t)

	w := env.postShipment(t, authz.Principal{ID: 10}, env.createBody(20))
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected status %d without add permission, got %d", http.StatusForbidden, w.Code)
	}

	env.checker.grant(10, constants.ObjectShipment, constants.ActionAdd)
	w = env.postShipment(t, authz.Principal{ID: 10}, env.createBody(20))
	if w.Code != http.StatusCreated {
		t.Fatalf("expected status %d with add permission, got %d body=%s", http.StatusCreated, w.Code, w.Body.String())
	}

	w = env.postShipment(t, authz.Principal{ID: 10}, env.createBody(0))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d for granted caller omitting owner, got %d", http.StatusBadRequest, w.Code)
	}
}

func TestUpdateOwnShipmentWithoutPermissionDenied(t *testing.T) {
	env := setupShipmentHandlerTest(t)

	created := env.postShipment(t, authz.Principal{ID: 10}, env.createBody(10))
	if created.Code != http.StatusCreated {
		t.Fatalf("seed create failed: %d %s", created.Code, created.Body.String())
	}
	var envelope struct {
		Data struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	if err := json.Unmarshal(created.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode body failed: %v", err)
	}

	run := func(method string, handle gin.HandlerFunc, body string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(method, "/api/v1/parcel/user-shipments/"+envelope.Data.ID, strings.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")
		c.Params = gin.Params{{Key: "id", Value: envelope.Data.ID}}
		handlershared.SetPrincipal(c, authz.Principal{ID: 10})
		handle(c)
		return w
	}

	if w := run(http.MethodGet, env.handler.GetShipment, ""); w.Code != http.StatusOK {
		t.Fatalf("expected owner read allowed, got %d", w.Code)
	}
	if w := run(http.MethodPut, env.handler.UpdateShipment, env.createBody(10)); w.Code != http.StatusForbidden {
		t.Fatalf("expected owner update denied without change permission, got %d", w.Code)
	}
	if w := run(http.MethodPatch, env.handler.UpdateShipmentStatus, `{"status":"delivery"}`); w.Code != http.StatusForbidden {
		t.Fatalf("expected owner status change denied without change permission, got %d", w.Code)
	}
	if w := run(http.MethodDelete, env.handler.DeleteShipment, ""); w.Code != http.StatusForbidden {
		t.Fatalf("expected owner delete denied without delete permission, got %d", w.Code)
	}
}
