package handlers

import (
	"net/http"

	"courierdesk/internal/domain/models"
	"courierdesk/internal/repositories"
	"courierdesk/internal/utils"

	"github.com/gin-gonic/gin"
)

// GET /api/coloaders?q=
func GetColoaders(c *gin.Context) {
	list, err := repositories.ColoaderRepo{}.List(c.Query("q"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": list})
}

// GET /api/coloaders/:id
func GetColoaderByID(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	co, err := repositories.ColoaderRepo{}.GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": co})
}

// POST /api/coloaders
func CreateColoader(c *gin.Context) {
	var co models.Coloader
	if !BindJSONOrError(c, &co) {
		return
	}
	if err := validateColoader(co); err != nil {
		RespondDomainError(c, err)
		return
	}
	created, err := repositories.ColoaderRepo{}.Create(co)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": created})
}

// PUT /api/coloaders/:id
func UpdateColoader(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var co models.Coloader
	if !BindJSONOrError(c, &co) {
		return
	}
	if err := validateColoader(co); err != nil {
		RespondDomainError(c, err)
		return
	}
	if err := (repositories.ColoaderRepo{}).Update(id, co); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// DELETE /api/coloaders/:id
func DeleteColoader(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := (repositories.ColoaderRepo{}).Delete(id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func validateColoader(co models.Coloader) error {
	if utils.TrimOrEmpty(co.Name) == "" {
		return validationErr("name", "required")
	}
	if !utils.IsDigits(co.Phone, 10) {
		return validationErr("phone", "must be exactly 10 digits")
	}
	return nil
}
