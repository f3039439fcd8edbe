package api

import (
	"bytes"
	"encoding/json"
	"io"
	"strings"

	handlershared "github.com/millerserhii/shipment-tracking-api/internal/http/handlers/shared"
	"github.com/millerserhii/shipment-tracking-api/internal/http/response"
	"github.com/millerserhii/shipment-tracking-api/internal/repository"
	"github.com/millerserhii/shipment-tracking-api/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ShipmentRequest is the create/update payload for shipments. Creation
// requires User; a payload declaring another user as owner needs the
// add permission on shipments.
type ShipmentRequest struct {
	User              uint   `json:"user"`
	ArticleID         string `json:"article_id" binding:"required"`
	ArticleQuantity   *int   `json:"article_quantity"`
	TrackingNumber    string `json:"tracking_number" binding:"required"`
	Carrier           string `json:"carrier" binding:"required"`
	Status            string `json:"status"`
	SenderAddressID   string `json:"sender_address_id" binding:"required"`
	ReceiverAddressID string `json:"receiver_address_id" binding:"required"`
}

func (r ShipmentRequest) toInput() (service.ShipmentInput, error) {
	articleID, err := uuid.Parse(strings.TrimSpace(r.ArticleID))
	if err != nil {
		return service.ShipmentInput{}, err
	}
	senderID, err := uuid.Parse(strings.TrimSpace(r.SenderAddressID))
	if err != nil {
		return service.ShipmentInput{}, err
	}
	receiverID, err := uuid.Parse(strings.TrimSpace(r.ReceiverAddressID))
	if err != nil {
		return service.ShipmentInput{}, err
	}
	return service.ShipmentInput{
		ArticleID:         articleID,
		ArticleQuantity:   r.ArticleQuantity,
		TrackingNumber:    r.TrackingNumber,
		Carrier:           r.Carrier,
		Status:            r.Status,
		SenderAddressID:   senderID,
		ReceiverAddressID: receiverID,
	}, nil
}

// ListShipments returns the caller's shipments. Callers holding the
// blanket view permission see every user's shipments.
func (h *Handler) ListShipments(c *gin.Context) {
	principal := getPrincipal(c)
	if !h.ShipmentPolicy.AllowRequest(principal, c.Request.Method, 0) {
		response.Forbidden(c)
		return
	}

	page, pageSize := handlershared.NormalizePagination(parsePagination(c))
	filter := repository.ShipmentListFilter{
		Carrier:        strings.TrimSpace(c.Query("carrier")),
		Status:         strings.TrimSpace(c.Query("status")),
		TrackingNumber: strings.TrimSpace(c.Query("tracking_number")),
		Page:           page,
		PageSize:       pageSize,
	}
	if !h.ShipmentPolicy.CanViewAll(principal) {
		filter.UserID = principal.ID
	}

	items, total, err := h.ShipmentService.List(filter)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.SuccessWithPage(c, items, handlershared.BuildPagination(page, pageSize, total))
}

// GetShipment returns one shipment. Missing objects surface as 404
// before any permission verdict.
func (h *Handler) GetShipment(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		response.BadRequest(c, "invalid id")
		return
	}

	shipment, err := h.ShipmentService.GetByID(id, false)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if !h.ShipmentPolicy.AllowObject(getPrincipal(c), c.Request.Method, shipment) {
		response.Forbidden(c)
		return
	}
	response.Success(c, shipment)
}

// CreateShipment stores a new shipment for the user the payload
// declares. The permission verdict lands before payload validation, so
// a caller without the add grant sees 403 even for a malformed body.
func (h *Handler) CreateShipment(c *gin.Context) {
	principal := getPrincipal(c)
	if !h.ShipmentPolicy.AllowRequest(principal, c.Request.Method, payloadOwner(c)) {
		response.Forbidden(c)
		return
	}

	var req ShipmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request payload")
		return
	}
	if req.User == 0 {
		response.BadRequest(c, "invalid request payload")
		return
	}

	input, err := req.toInput()
	if err != nil {
		response.BadRequest(c, "invalid request payload")
		return
	}

	shipment, err := h.ShipmentService.Create(input, req.User)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Created(c, shipment)
}

// payloadOwner reads the declared owner out of the raw request body
// and puts the body back for binding. Absent or unreadable payloads
// report owner zero.
func payloadOwner(c *gin.Context) uint {
	if c.Request == nil || c.Request.Body == nil {
		return 0
	}
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		return 0
	}
	c.Request.Body = io.NopCloser(bytes.NewBuffer(body))
	var probe struct {
		User uint `json:"user"`
	}
	if err := json.Unmarshal(body, &probe); err != nil {
		return 0
	}
	return probe.User
}

// UpdateShipment replaces the mutable fields of a shipment.
func (h *Handler) UpdateShipment(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		response.BadRequest(c, "invalid id")
		return
	}
	principal := getPrincipal(c)

	shipment, err := h.ShipmentService.GetByID(id, false)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if !h.ShipmentPolicy.AllowObject(principal, c.Request.Method, shipment) {
		response.Forbidden(c)
		return
	}

	var req ShipmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request payload")
		return
	}
	input, err := req.toInput()
	if err != nil {
		response.BadRequest(c, "invalid request payload")
		return
	}

	updated, err := h.ShipmentService.Update(id, input, principal.ID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, updated)
}

// UpdateShipmentStatus changes only the status field.
func (h *Handler) UpdateShipmentStatus(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		response.BadRequest(c, "invalid id")
		return
	}
	principal := getPrincipal(c)

	shipment, err := h.ShipmentService.GetByID(id, false)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if !h.ShipmentPolicy.AllowObject(principal, c.Request.Method, shipment) {
		response.Forbidden(c)
		return
	}

	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request payload")
		return
	}

	updated, err := h.ShipmentService.UpdateStatus(id, req.Status, principal.ID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, updated)
}

// DeleteShipment trashes a shipment.
func (h *Handler) DeleteShipment(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		response.BadRequest(c, "invalid id")
		return
	}
	principal := getPrincipal(c)

	shipment, err := h.ShipmentService.GetByID(id, false)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if !h.ShipmentPolicy.AllowObject(principal, c.Request.Method, shipment) {
		response.Forbidden(c)
		return
	}

	affected, detail, err := h.ShipmentService.Delete(id, principal.ID, false)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, gin.H{"deleted": affected, "detail": detail})
}
