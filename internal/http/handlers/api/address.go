package api

import (
	"strings"

	handlershared "github.com/millerserhii/shipment-tracking-api/internal/http/handlers/shared"
	"github.com/millerserhii/shipment-tracking-api/internal/http/response"
	"github.com/millerserhii/shipment-tracking-api/internal/repository"

	"github.com/gin-gonic/gin"
)

// ListAddresses returns the address catalogue. The endpoint is open
// for reading.
func (h *Handler) ListAddresses(c *gin.Context) {
	if !h.AddressPolicy.AllowRequest(getPrincipal(c), c.Request.Method, 0) {
		response.Forbidden(c)
		return
	}

	page, pageSize := handlershared.NormalizePagination(parsePagination(c))
	filter := repository.AddressListFilter{
		Street:     strings.TrimSpace(c.Query("street")),
		City:       strings.TrimSpace(c.Query("city")),
		Country:    strings.TrimSpace(c.Query("country")),
		PostalCode: strings.TrimSpace(c.Query("postal_code")),
		Page:       page,
		PageSize:   pageSize,
	}

	items, total, err := h.AddressService.List(filter)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.SuccessWithPage(c, items, handlershared.BuildPagination(page, pageSize, total))
}

// GetAddress returns one address by id.
func (h *Handler) GetAddress(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		response.BadRequest(c, "invalid id")
		return
	}

	address, err := h.AddressService.GetByID(id, false)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if !h.AddressPolicy.AllowObject(getPrincipal(c), c.Request.Method, address) {
		response.Forbidden(c)
		return
	}
	response.Success(c, address)
}
