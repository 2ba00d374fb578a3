package handlers

import (
	"net/http"

	"courierdesk/internal/domain/models"
	"courierdesk/internal/repositories"
	"courierdesk/internal/utils"

	"github.com/gin-gonic/gin"
)

// GET /api/pricing/corporate?q=
func GetCorporatePricing(c *gin.Context) {
	list, err := repositories.PricingRepo{}.ListCorporate(c.Query("q"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": list})
}

// POST /api/pricing/corporate
func CreateCorporatePricing(c *gin.Context) {
	var p models.CorporatePricing
	if !BindJSONOrError(c, &p) {
		return
	}
	if err := validateLane(p.FromState, p.ToState, p.PerKgRate); err != nil {
		RespondDomainError(c, err)
		return
	}
	created, err := repositories.PricingRepo{}.CreateCorporate(p)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": created})
}

// PUT /api/pricing/corporate/:id
func UpdateCorporatePricing(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var p models.CorporatePricing
	if !BindJSONOrError(c, &p) {
		return
	}
	if err := validateLane(p.FromState, p.ToState, p.PerKgRate); err != nil {
		RespondDomainError(c, err)
		return
	}
	if err := (repositories.PricingRepo{}).UpdateCorporate(id, p); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// DELETE /api/pricing/corporate/:id
func DeleteCorporatePricing(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := (repositories.PricingRepo{}).DeleteCorporate(id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// GET /api/pricing/customer
func GetCustomerPricing(c *gin.Context) {
	list, err := repositories.PricingRepo{}.ListCustomer()
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": list})
}

// POST /api/pricing/customer
func CreateCustomerPricing(c *gin.Context) {
	var p models.CustomerPricing
	if !BindJSONOrError(c, &p) {
		return
	}
	if err := validateLane(p.FromState, p.ToState, p.PerKgRate); err != nil {
		RespondDomainError(c, err)
		return
	}
	created, err := repositories.PricingRepo{}.CreateCustomer(p)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": created})
}

// PUT /api/pricing/customer/:id
func UpdateCustomerPricing(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var p models.CustomerPricing
	if !BindJSONOrError(c, &p) {
		return
	}
	if err := validateLane(p.FromState, p.ToState, p.PerKgRate); err != nil {
		RespondDomainError(c, err)
		return
	}
	if err := (repositories.PricingRepo{}).UpdateCustomer(id, p); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// DELETE /api/pricing/customer/:id
func DeleteCustomerPricing(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := (repositories.PricingRepo{}).DeleteCustomer(id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// GET /api/pricing/rate?gst=&from=&to=&mode=
// Used by the wizard to prefill perKgRate; corporate cards win over the
// customer card.
func GetLaneRate(c *gin.Context) {
	rate, found := repositories.PricingRepo{}.RateForLane(
		c.Query("gst"), c.Query("from"), c.Query("to"), c.Query("mode"))
	c.JSON(http.StatusOK, gin.H{"found": found, "perKgRate": rate})
}

func validateLane(from, to string, rate utils.Money) error {
	if utils.TrimOrEmpty(from) == "" || utils.TrimOrEmpty(to) == "" {
		return validationErr("lane", "fromState and toState are required")
	}
	if rate <= 0 {
		return validationErr("perKgRate", "must be greater than zero")
	}
	return nil
}
