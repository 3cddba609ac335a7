package public

import (
	"strings"

	"github.com/cargomart/internal/http/response"
	"github.com/cargomart/internal/models"

	"github.com/gin-gonic/gin"
)

// CreateAddressRequest saved-address payload.
type CreateAddressRequest struct {
	ContactName    string `json:"contact_name" binding:"required"`
	ContactSurname string `json:"contact_surname"`
	Phone          string `json:"phone" binding:"required"`
	Line           string `json:"line" binding:"required"`
	City           string `json:"city"`
	Country        string `json:"country"`
}

// CreateAddress saves an address for the caller.
func (h *Handler) CreateAddress(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		response.Unauthorized(c, "unauthorized")
		return
	}
	var req CreateAddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	address := &models.UserAddress{
		UserID:         userID,
		ContactName:    strings.TrimSpace(req.ContactName),
		ContactSurname: strings.TrimSpace(req.ContactSurname),
		Phone:          strings.TrimSpace(req.Phone),
		Line:           strings.TrimSpace(req.Line),
		City:           strings.TrimSpace(req.City),
		Country:        strings.TrimSpace(req.Country),
	}
	if err := h.AddressRepo.Create(address); err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, address)
}

// ListAddresses lists the caller's saved addresses.
func (h *Handler) ListAddresses(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		response.Unauthorized(c, "unauthorized")
		return
	}
	addresses, err := h.AddressRepo.ListByUser(userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, addresses)
}
