package api

import (
	"errors"
	"net/http"

	handlershared "github.com/millerserhii/shipment-tracking-api/internal/http/handlers/shared"
	"github.com/millerserhii/shipment-tracking-api/internal/service"

	"github.com/gin-gonic/gin"
)

type mappedHandlerError struct {
	target error
	code   int
	msg    string
}

var commonErrorRules = []mappedHandlerError{
	{target: service.ErrNotFound, code: http.StatusNotFound, msg: "resource not found"},
	{target: service.ErrInvalidShipment, code: http.StatusBadRequest, msg: "shipment payload invalid"},
	{target: service.ErrInvalidAddress, code: http.StatusBadRequest, msg: "address payload invalid"},
	{target: service.ErrInvalidArticle, code: http.StatusBadRequest, msg: "article payload invalid"},
	{target: service.ErrProtected, code: http.StatusBadRequest, msg: "resource is still referenced"},
	{target: service.ErrNotTrashed, code: http.StatusBadRequest, msg: "resource is not trashed"},
	{target: service.ErrEmailExists, code: http.StatusBadRequest, msg: "email already registered"},
	{target: service.ErrWeakPassword, code: http.StatusBadRequest, msg: "password too short"},
	{target: service.ErrInvalidCredentials, code: http.StatusBadRequest, msg: "invalid email or password"},
}

func respondServiceError(c *gin.Context, err error) {
	for _, rule := range commonErrorRules {
		if errors.Is(err, rule.target) {
			handlershared.RespondError(c, rule.code, rule.msg, nil)
			return
		}
	}
	handlershared.RespondError(c, http.StatusInternalServerError, "internal error", err)
}
