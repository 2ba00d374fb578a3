package handlers

import (
	"net/http"

	"courierdesk/internal/domain/models"
	"courierdesk/internal/http/middleware"
	"courierdesk/internal/repositories"
	"courierdesk/internal/utils"

	"github.com/gin-gonic/gin"
)

// GET /api/pincodes?q=&page=&pageSize=
func GetPincodes(c *gin.Context) {
	page, size := pageParams(c)
	entries, total, err := repositories.PincodeRepo{}.List(c.Query("q"), page, size)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"data":     entries,
		"page":     page,
		"pageSize": size,
		"total":    total,
	})
}

// POST /api/pincodes
func CreatePincode(c *gin.Context) {
	var e models.PincodeEntry
	if !BindJSONOrError(c, &e) {
		return
	}
	if err := validatePincodeEntry(e); err != nil {
		RespondDomainError(c, err)
		return
	}
	created, err := repositories.PincodeRepo{}.Create(e)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	utils.LogEvent(middleware.GetRequestID(c), "pincodes", "create", "pincode="+created.Pincode)
	c.JSON(http.StatusCreated, gin.H{"data": created})
}

// PUT /api/pincodes/:id
func UpdatePincode(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var e models.PincodeEntry
	if !BindJSONOrError(c, &e) {
		return
	}
	if err := validatePincodeEntry(e); err != nil {
		RespondDomainError(c, err)
		return
	}
	if err := (repositories.PincodeRepo{}).Update(id, e); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// DELETE /api/pincodes/:id
func DeletePincode(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := (repositories.PincodeRepo{}).Delete(id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func validatePincodeEntry(e models.PincodeEntry) error {
	if !utils.IsDigits(e.Pincode, 6) {
		return validationErr("pincode", "must be exactly 6 digits")
	}
	for _, f := range []struct{ name, v string }{
		{"state", e.State}, {"city", e.City}, {"district", e.District}, {"area", e.Area},
	} {
		if utils.TrimOrEmpty(f.v) == "" {
			return validationErr(f.name, "required")
		}
	}
	return nil
}
