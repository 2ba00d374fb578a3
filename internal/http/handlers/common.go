package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"courierdesk/internal/domain"
	"courierdesk/internal/http/middleware"
	"courierdesk/internal/utils"

	"github.com/gin-gonic/gin"
)

// BindJSONOrError ensures body is present and parsable.
func BindJSONOrError[T any](c *gin.Context, dst *T) bool {
	if c.Request.Body == nil {
		respondError(c, http.StatusBadRequest, "validation_error", "empty body", nil)
		return false
	}
	if err := c.ShouldBindJSON(dst); err != nil {
		respondError(c, http.StatusBadRequest, "validation_error", "invalid payload", err.Error())
		return false
	}
	return true
}

func validationErr(field, msg string) error {
	return domain.ValidationError{Field: field, Msg: msg}
}

func idParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		respondError(c, http.StatusBadRequest, "validation_error", "invalid id", nil)
		return 0, false
	}
	return id, true
}

// dateQuery validates an optional YYYY-MM-DD query parameter and hands back
// the normalized value. Malformed dates abort with a validation error.
func dateQuery(c *gin.Context, name string) (string, bool) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return "", true
	}
	t, err := utils.ParseDate(raw)
	if err != nil {
		respondError(c, http.StatusBadRequest, "validation_error", name+" must be YYYY-MM-DD", nil)
		return "", false
	}
	return utils.FormatDate(t), true
}

func pageParams(c *gin.Context) (page, size int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	size, _ = strconv.Atoi(c.DefaultQuery("pageSize", "20"))
	if page < 1 {
		page = 1
	}
	if size < 1 || size > 200 {
		size = 20
	}
	return page, size
}

// currentUser aborts with 401 when the auth middleware put nothing in the
// context; routes behind RequireAuth never hit that branch.
func currentUser(c *gin.Context) (*domain.RequestContext, bool) {
	rc := middleware.GetAuth(c)
	if rc == nil {
		respondError(c, http.StatusUnauthorized, "unauthorized", "login required", nil)
		return nil, false
	}
	return rc, true
}
