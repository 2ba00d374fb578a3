package handlers

import (
	"net/http"

	"courierdesk/internal/services"

	"github.com/gin-gonic/gin"
)

// GET /api/pincode/:code
// Unknown pincodes come back as 200 with serviceable=false; only malformed
// codes are rejected.
func ResolvePincode(c *gin.Context) {
	res, err := services.PincodeService{}.Resolve(c.Param("code"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}
