package middleware

import (
	"net/http"
	"strings"

	"courierdesk/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const authContextKey = "auth_context"

// RequireAuth validates the bearer token and stores the caller identity in
// the gin context.
func RequireAuth(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		rc, err := parseBearer(c, secret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": err.Error(),
				"code":  "unauthorized",
			})
			return
		}
		c.Set(authContextKey, rc)
		c.Next()
	}
}

// RequireRoles runs after RequireAuth and rejects callers outside the
// allowed roles.
func RequireRoles(roles ...string) gin.HandlerFunc {
	allowed := map[string]bool{}
	for _, r := range roles {
		allowed[r] = true
	}
	return func(c *gin.Context) {
		rc := GetAuth(c)
		if rc == nil || !allowed[rc.Role] {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": "insufficient permissions",
				"code":  "forbidden",
			})
			return
		}
		c.Next()
	}
}

// GetAuth returns the authenticated caller, or nil on public routes.
func GetAuth(c *gin.Context) *domain.RequestContext {
	if v, ok := c.Get(authContextKey); ok {
		if rc, ok := v.(*domain.RequestContext); ok {
			return rc
		}
	}
	return nil
}

func parseBearer(c *gin.Context, secret []byte) (*domain.RequestContext, error) {
	header := c.GetHeader("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return nil, domain.UnauthorizedError{Msg: "missing bearer token"}
	}
	raw := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))

	token, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return secret, nil
	})
	if err != nil || !token.Valid {
		return nil, domain.UnauthorizedError{Msg: "invalid or expired token"}
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, domain.UnauthorizedError{Msg: "invalid token claims"}
	}
	uid, ok := claims["user_id"].(float64)
	if !ok {
		return nil, domain.UnauthorizedError{Msg: "invalid token claims"}
	}
	role, _ := claims["role"].(string)
	return &domain.RequestContext{UserID: domain.ID(int64(uid)), Role: role}, nil
}
