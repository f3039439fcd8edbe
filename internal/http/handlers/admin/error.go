package admin

import (
	"errors"
	"net/http"

	handlershared "github.com/millerserhii/shipment-tracking-api/internal/http/handlers/shared"
	"github.com/millerserhii/shipment-tracking-api/internal/service"

	"github.com/gin-gonic/gin"
)

func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		handlershared.RespondError(c, http.StatusNotFound, "resource not found", nil)
	case errors.Is(err, service.ErrNotTrashed):
		handlershared.RespondError(c, http.StatusBadRequest, "resource is not trashed", nil)
	case errors.Is(err, service.ErrProtected):
		handlershared.RespondError(c, http.StatusBadRequest, "resource is still referenced", nil)
	case errors.Is(err, service.ErrInvalidAddress), errors.Is(err, service.ErrInvalidArticle), errors.Is(err, service.ErrInvalidShipment):
		handlershared.RespondError(c, http.StatusBadRequest, "payload invalid", nil)
	default:
		handlershared.RespondError(c, http.StatusInternalServerError, "internal error", err)
	}
}
