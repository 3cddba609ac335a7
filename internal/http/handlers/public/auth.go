package public

import (
	"github.com/cargomart/internal/http/response"

	"github.com/gin-gonic/gin"
)

// RegisterRequest account registration payload.
type RegisterRequest struct {
	Phone    string `json:"phone" binding:"required"`
	Name     string `json:"name" binding:"required"`
	Surname  string `json:"surname"`
	Password string `json:"password" binding:"required"`
}

// Register creates a customer account.
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	user, err := h.AuthService.Register(req.Phone, req.Name, req.Surname, req.Password)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, user)
}

// LoginRequest login payload.
type LoginRequest struct {
	Phone    string `json:"phone" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login authenticates and returns a JWT.
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	user, token, expiresAt, err := h.AuthService.Login(req.Phone, req.Password)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, gin.H{
		"token":      token,
		"expires_at": expiresAt,
		"user":       user,
	})
}
