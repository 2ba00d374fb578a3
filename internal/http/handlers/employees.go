package handlers

import (
	"net/http"
	"strings"

	"courierdesk/internal/domain"
	"courierdesk/internal/domain/models"
	"courierdesk/internal/http/middleware"
	"courierdesk/internal/repositories"
	"courierdesk/internal/utils"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

// GET /api/employees?q=
func GetEmployees(c *gin.Context) {
	list, err := repositories.EmployeeRepo{}.List(c.Query("q"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": list})
}

type createEmployeeRequest struct {
	models.Employee
	Username string `json:"username"`
	Password string `json:"password"`
}

// POST /api/employees
// Creates the staff record and its login user in one go; the login gets
// the employee's role (office or admin).
func CreateEmployee(c *gin.Context) {
	var req createEmployeeRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	if err := validateEmployee(req.Employee); err != nil {
		RespondDomainError(c, err)
		return
	}
	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" {
		respondError(c, http.StatusBadRequest, "validation_error", "username is required", nil)
		return
	}
	if len(req.Password) < 8 {
		respondError(c, http.StatusBadRequest, "validation_error", "password must be at least 8 characters", nil)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		RespondDomainError(c, domain.InternalError{Err: err})
		return
	}

	if _, err := (repositories.UserRepo{}).Create(models.AppUser{
		Name:     req.Name,
		Username: req.Username,
		Email:    req.Email,
		Phone:    req.Phone,
		Role:     req.Role,
	}, string(hash)); err != nil {
		RespondDomainError(c, err)
		return
	}

	created, err := repositories.EmployeeRepo{}.Create(req.Employee)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	utils.LogEvent(middleware.GetRequestID(c), "employees", "create", "username="+req.Username)
	c.JSON(http.StatusCreated, gin.H{"data": created})
}

// PUT /api/employees/:id
func UpdateEmployee(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var e models.Employee
	if !BindJSONOrError(c, &e) {
		return
	}
	if err := validateEmployee(e); err != nil {
		RespondDomainError(c, err)
		return
	}
	if err := (repositories.EmployeeRepo{}).Update(id, e); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// DELETE /api/employees/:id
func DeleteEmployee(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := (repositories.EmployeeRepo{}).Delete(id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func validateEmployee(e models.Employee) error {
	if utils.TrimOrEmpty(e.Name) == "" {
		return validationErr("name", "required")
	}
	if !utils.IsDigits(e.Phone, 10) {
		return validationErr("phone", "must be exactly 10 digits")
	}
	if e.Role != "office" && e.Role != "admin" {
		return validationErr("role", "must be office or admin")
	}
	return nil
}
