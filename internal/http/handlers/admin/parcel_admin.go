package admin

import (
	"strings"

	handlershared "github.com/millerserhii/shipment-tracking-api/internal/http/handlers/shared"
	"github.com/millerserhii/shipment-tracking-api/internal/http/response"
	"github.com/millerserhii/shipment-tracking-api/internal/repository"
	"github.com/millerserhii/shipment-tracking-api/internal/service"

	"github.com/gin-gonic/gin"
)

// ListAddresses lists addresses, optionally including trashed rows.
func (h *Handler) ListAddresses(c *gin.Context) {
	page, pageSize := parsePagination(c)
	filter := repository.AddressListFilter{
		Street:         strings.TrimSpace(c.Query("street")),
		City:           strings.TrimSpace(c.Query("city")),
		Country:        strings.TrimSpace(c.Query("country")),
		PostalCode:     strings.TrimSpace(c.Query("postal_code")),
		IncludeTrashed: parseBoolQuery(c, "include_trashed"),
		Page:           page,
		PageSize:       pageSize,
	}

	items, total, err := h.AddressService.List(filter)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.SuccessWithPage(c, items, handlershared.BuildPagination(page, pageSize, total))
}

// CreateAddress stores a new address.
func (h *Handler) CreateAddress(c *gin.Context) {
	var req struct {
		Street     string `json:"street" binding:"required"`
		City       string `json:"city" binding:"required"`
		Country    string `json:"country" binding:"required"`
		PostalCode string `json:"postal_code" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request payload")
		return
	}

	address, err := h.AddressService.Create(service.AddressInput{
		Street:     req.Street,
		City:       req.City,
		Country:    req.Country,
		PostalCode: req.PostalCode,
	}, getPrincipal(c).ID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Created(c, address)
}

// DeleteAddress removes an address, permanently when forced=true.
func (h *Handler) DeleteAddress(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		response.BadRequest(c, "invalid id")
		return
	}

	affected, detail, err := h.AddressService.Delete(id, getPrincipal(c).ID, parseBoolQuery(c, "forced"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, gin.H{"deleted": affected, "detail": detail})
}

// RestoreAddress brings a trashed address back.
func (h *Handler) RestoreAddress(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		response.BadRequest(c, "invalid id")
		return
	}

	address, err := h.AddressService.Restore(id, getPrincipal(c).ID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, address)
}

// ListArticles lists articles, optionally including trashed rows.
func (h *Handler) ListArticles(c *gin.Context) {
	page, pageSize := parsePagination(c)
	filter := repository.ArticleListFilter{
		Name:           strings.TrimSpace(c.Query("name")),
		SKU:            strings.TrimSpace(c.Query("sku")),
		IncludeTrashed: parseBoolQuery(c, "include_trashed"),
		Page:           page,
		PageSize:       pageSize,
	}

	items, total, err := h.ArticleService.List(filter)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.SuccessWithPage(c, items, handlershared.BuildPagination(page, pageSize, total))
}

// CreateArticle stores a new article.
func (h *Handler) CreateArticle(c *gin.Context) {
	var req struct {
		Name  string `json:"name" binding:"required"`
		Price string `json:"price" binding:"required"`
		SKU   string `json:"sku" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request payload")
		return
	}

	article, err := h.ArticleService.Create(service.ArticleInput{
		Name:  req.Name,
		Price: req.Price,
		SKU:   req.SKU,
	}, getPrincipal(c).ID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Created(c, article)
}

// DeleteArticle removes an article, permanently when forced=true.
func (h *Handler) DeleteArticle(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		response.BadRequest(c, "invalid id")
		return
	}

	affected, detail, err := h.ArticleService.Delete(id, getPrincipal(c).ID, parseBoolQuery(c, "forced"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, gin.H{"deleted": affected, "detail": detail})
}

// RestoreArticle brings a trashed article back.
func (h *Handler) RestoreArticle(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		response.BadRequest(c, "invalid id")
		return
	}

	article, err := h.ArticleService.Restore(id, getPrincipal(c).ID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, article)
}

// ListShipments lists every user's shipments, optionally including
// trashed rows.
func (h *Handler) ListShipments(c *gin.Context) {
	page, pageSize := parsePagination(c)
	filter := repository.ShipmentListFilter{
		Carrier:        strings.TrimSpace(c.Query("carrier")),
		Status:         strings.TrimSpace(c.Query("status")),
		TrackingNumber: strings.TrimSpace(c.Query("tracking_number")),
		IncludeTrashed: parseBoolQuery(c, "include_trashed"),
		Page:           page,
		PageSize:       pageSize,
	}

	items, total, err := h.ShipmentService.List(filter)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.SuccessWithPage(c, items, handlershared.BuildPagination(page, pageSize, total))
}

// DeleteShipment removes a shipment, permanently when forced=true.
func (h *Handler) DeleteShipment(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		response.BadRequest(c, "invalid id")
		return
	}

	affected, detail, err := h.ShipmentService.Delete(id, getPrincipal(c).ID, parseBoolQuery(c, "forced"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, gin.H{"deleted": affected, "detail": detail})
}

// RestoreShipment brings a trashed shipment back.
func (h *Handler) RestoreShipment(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		response.BadRequest(c, "invalid id")
		return
	}

	shipment, err := h.ShipmentService.Restore(id, getPrincipal(c).ID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, shipment)
}
