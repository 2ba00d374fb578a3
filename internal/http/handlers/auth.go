package handlers

import (
	"net/http"
	"strings"
	"time"

	"courierdesk/internal/domain"
	"courierdesk/internal/domain/models"
	"courierdesk/internal/http/middleware"
	"courierdesk/internal/repositories"
	"courierdesk/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

type loginRequest struct {
	Login    string `json:"login"`
	Email    string `json:"email"` // legacy clients send email
	Password string `json:"password"`
}

type registerRequest struct {
	Name     string `json:"name"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

// POST /api/auth/login
func Login(c *gin.Context) {
	var req loginRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	login := strings.TrimSpace(req.Login)
	if login == "" {
		login = strings.TrimSpace(req.Email)
	}
	if login == "" || req.Password == "" {
		respondError(c, http.StatusBadRequest, "validation_error", "login and password are required", nil)
		return
	}

	user, hash, err := repositories.UserRepo{}.GetByLogin(login)
	if err != nil {
		if domain.IsNotFound(err) {
			respondError(c, http.StatusUnauthorized, "unauthorized", "wrong login or password", nil)
			return
		}
		RespondDomainError(c, err)
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(req.Password)); err != nil {
		respondError(c, http.StatusUnauthorized, "unauthorized", "wrong login or password", nil)
		return
	}
	if user.Status != "active" {
		respondError(c, http.StatusUnauthorized, "unauthorized", "account is disabled", nil)
		return
	}

	token, err := issueToken(user)
	if err != nil {
		RespondDomainError(c, domain.InternalError{Err: err})
		return
	}

	utils.LogEvent(middleware.GetRequestID(c), "auth", "login", "user_id="+user.Username)
	c.JSON(http.StatusOK, gin.H{"token": token, "user": user})
}

// POST /api/auth/register
func Register(c *gin.Context) {
	var req registerRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	if req.Name == "" || req.Username == "" || !strings.Contains(req.Email, "@") {
		respondError(c, http.StatusBadRequest, "validation_error", "name, username and a valid email are required", nil)
		return
	}
	if len(req.Password) < 8 {
		respondError(c, http.StatusBadRequest, "validation_error", "password must be at least 8 characters", nil)
		return
	}

	repo := repositories.UserRepo{}
	exists, err := repo.Exists(req.Email, req.Username)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if exists {
		respondError(c, http.StatusConflict, "conflict", "email or username already registered", nil)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		RespondDomainError(c, domain.InternalError{Err: err})
		return
	}

	user, err := repo.Create(models.AppUser{
		Name:     req.Name,
		Username: req.Username,
		Email:    req.Email,
		Phone:    strings.TrimSpace(req.Phone),
	}, string(hash))
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	token, err := issueToken(user)
	if err != nil {
		RespondDomainError(c, domain.InternalError{Err: err})
		return
	}

	utils.LogEvent(middleware.GetRequestID(c), "auth", "register", "user_id="+user.Username)
	c.JSON(http.StatusCreated, gin.H{"token": token, "user": user})
}

func issueToken(user models.AppUser) (string, error) {
	claims := jwt.MapClaims{
		"user_id": int64(user.ID),
		"role":    user.Role,
		"exp":     time.Now().Add(24 * time.Hour).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(jwtSecret)
}
