package admin

import (
	"net/http"
	"strconv"

	handlershared "github.com/millerserhii/shipment-tracking-api/internal/http/handlers/shared"
	"github.com/millerserhii/shipment-tracking-api/internal/http/response"

	"github.com/gin-gonic/gin"
)

// PermissionRequest names one model-level permission rule.
type PermissionRequest struct {
	UserID uint   `json:"user_id" binding:"required"`
	Object string `json:"object" binding:"required"`
	Action string `json:"action" binding:"required"`
}

func (h *Handler) requireUser(c *gin.Context, userID uint) bool {
	user, err := h.UserRepo.GetByID(userID)
	if err != nil {
		handlershared.RespondError(c, http.StatusInternalServerError, "internal error", err)
		return false
	}
	if user == nil {
		response.NotFound(c, "user not found")
		return false
	}
	return true
}

// GrantPermission gives a user a model-level permission.
func (h *Handler) GrantPermission(c *gin.Context) {
	var req PermissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request payload")
		return
	}
	if !h.requireUser(c, req.UserID) {
		return
	}

	if err := h.AuthzService.GrantPermission(req.UserID, req.Object, req.Action); err != nil {
		handlershared.RespondError(c, http.StatusBadRequest, "grant failed", err)
		return
	}
	handlershared.RequestLog(c).Infow("permission_granted",
		"user_id", req.UserID,
		"object", req.Object,
		"action", req.Action,
		"granted_by", getPrincipal(c).ID,
	)
	response.Success(c, nil)
}

// RevokePermission removes a user's model-level permission.
func (h *Handler) RevokePermission(c *gin.Context) {
	var req PermissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request payload")
		return
	}
	if !h.requireUser(c, req.UserID) {
		return
	}

	if err := h.AuthzService.RevokePermission(req.UserID, req.Object, req.Action); err != nil {
		handlershared.RespondError(c, http.StatusBadRequest, "revoke failed", err)
		return
	}
	handlershared.RequestLog(c).Infow("permission_revoked",
		"user_id", req.UserID,
		"object", req.Object,
		"action", req.Action,
		"revoked_by", getPrincipal(c).ID,
	)
	response.Success(c, nil)
}

// ListUserPermissions lists every permission rule a user holds.
func (h *Handler) ListUserPermissions(c *gin.Context) {
	userID, err := strconv.ParseUint(c.Param("user_id"), 10, 64)
	if err != nil || userID == 0 {
		response.BadRequest(c, "invalid user_id")
		return
	}
	if !h.requireUser(c, uint(userID)) {
		return
	}

	grants, err := h.AuthzService.ListForUser(uint(userID))
	if err != nil {
		handlershared.RespondError(c, http.StatusInternalServerError, "internal error", err)
		return
	}
	response.Success(c, grants)
}
