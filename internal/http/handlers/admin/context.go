package admin

import (
	"github.com/cargomart/internal/constants"

	"github.com/gin-gonic/gin"
)

// actorSupplierID returns the caller's supplier scope. Zero means the caller
// is an admin and sees everything.
func actorSupplierID(c *gin.Context) uint {
	if role, ok := c.Get("user_role"); ok {
		if r, _ := role.(string); r == constants.RoleAdmin {
			return 0
		}
	}
	value, ok := c.Get("supplier_id")
	if !ok {
		return 0
	}
	id, _ := value.(uint)
	return id
}
