package admin

import (
	"strconv"

	"github.com/millerserhii/shipment-tracking-api/internal/authz"
	handlershared "github.com/millerserhii/shipment-tracking-api/internal/http/handlers/shared"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func getPrincipal(c *gin.Context) authz.Principal {
	return handlershared.GetPrincipal(c)
}

func parseIDParam(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

func parsePagination(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	return handlershared.NormalizePagination(page, pageSize)
}

func parseBoolQuery(c *gin.Context, key string) bool {
	value, err := strconv.ParseBool(c.DefaultQuery(key, "false"))
	if err != nil {
		return false
	}
	return value
}
