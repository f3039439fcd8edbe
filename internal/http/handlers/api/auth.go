package api

import (
	"github.com/millerserhii/shipment-tracking-api/internal/http/response"
	"github.com/millerserhii/shipment-tracking-api/internal/models"

	"github.com/gin-gonic/gin"
)

// RegisterRequest is the registration payload.
type RegisterRequest struct {
	Email       string `json:"email" binding:"required"`
	Password    string `json:"password" binding:"required"`
	DisplayName string `json:"display_name"`
}

// LoginRequest is the login payload.
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UserView is the caller-safe user representation.
type UserView struct {
	ID          uint   `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
	IsSuperuser bool   `json:"is_superuser"`
}

func newUserView(user *models.User) UserView {
	return UserView{
		ID:          user.ID,
		Email:       user.Email,
		DisplayName: user.DisplayName,
		IsSuperuser: user.IsSuperuser,
	}
}

// Register creates a new user account.
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request payload")
		return
	}

	user, err := h.AuthService.Register(req.Email, req.Password, req.DisplayName)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Created(c, newUserView(user))
}

// Login validates credentials and returns an access token.
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request payload")
		return
	}

	user, token, expiresAt, err := h.AuthService.Login(req.Email, req.Password)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, gin.H{
		"token":      token,
		"expires_at": expiresAt,
		"user":       newUserView(user),
	})
}

// Me returns the authenticated caller's profile.
func (h *Handler) Me(c *gin.Context) {
	principal := getPrincipal(c)
	if !principal.Authenticated() {
		response.Unauthorized(c, "authentication required")
		return
	}
	user, err := h.UserRepo.GetByID(principal.ID)
	if err != nil || user == nil {
		response.Unauthorized(c, "authentication required")
		return
	}
	response.Success(c, newUserView(user))
}
