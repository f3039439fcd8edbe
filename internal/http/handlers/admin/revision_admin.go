package admin

import (
	"strconv"
	"strings"

	handlershared "github.com/millerserhii/shipment-tracking-api/internal/http/handlers/shared"
	"github.com/millerserhii/shipment-tracking-api/internal/http/response"
	"github.com/millerserhii/shipment-tracking-api/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ListRevisions lists history ledger entries with optional filters.
func (h *Handler) ListRevisions(c *gin.Context) {
	page, pageSize := parsePagination(c)
	filter := repository.RevisionListFilter{
		EntityType: strings.TrimSpace(c.Query("entity_type")),
		Page:       page,
		PageSize:   pageSize,
	}
	if raw := strings.TrimSpace(c.Query("entity_id")); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			response.BadRequest(c, "invalid entity_id")
			return
		}
		filter.EntityID = id
	}
	if raw := strings.TrimSpace(c.Query("actor_id")); raw != "" {
		actorID, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			response.BadRequest(c, "invalid actor_id")
			return
		}
		filter.ActorID = uint(actorID)
	}

	items, total, err := h.RevisionRepo.List(filter)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.SuccessWithPage(c, items, handlershared.BuildPagination(page, pageSize, total))
}

// GetEntityRevisions returns the full history of one entity in write
// order.
func (h *Handler) GetEntityRevisions(c *gin.Context) {
	entityType := strings.TrimSpace(c.Param("entity_type"))
	if entityType == "" {
		response.BadRequest(c, "invalid entity_type")
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		response.BadRequest(c, "invalid id")
		return
	}

	items, err := h.RevisionRepo.ListForEntity(entityType, id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, items)
}
