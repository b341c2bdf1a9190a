package auth

import (
	"net/http"
	"strings"

	"github.com/VuMinhQuang-34/G6-SWP391-sub001/internal/model"
	"github.com/gin-gonic/gin"
)

const (
	ctxUserUUID = "user_uuid"
	ctxUserRole = "user_role"
)

type Middleware struct {
	jwtService *JWTService
}

func NewMiddleware(jwtService *JWTService) *Middleware {
	return &Middleware{jwtService: jwtService}
}

// RequireAuth rejects requests without a valid access token and stores
// the caller's identity on the gin context.
func (m *Middleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "authorization token required"})
			c.Abort()
			return
		}

		claims, err := m.jwtService.ValidateToken(token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "invalid token"})
			c.Abort()
			return
		}
		if claims.Type != TokenTypeAccess {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "invalid token type"})
			c.Abort()
			return
		}

		c.Set(ctxUserUUID, claims.UserUUID)
		c.Set(ctxUserRole, claims.Role)
		c.Next()
	}
}

// RequireRole allows only the named roles through. Must run after
// RequireAuth.
func (m *Middleware) RequireRole(allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := GetUserRole(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "user role not found"})
			c.Abort()
			return
		}

		for _, allowed := range allowedRoles {
			if role == allowed {
				c.Next()
				return
			}
		}

		c.JSON(http.StatusForbidden, gin.H{"message": "insufficient permissions"})
		c.Abort()
	}
}

// RequireManager gates order approval endpoints to Manager and Admin.
func (m *Middleware) RequireManager() gin.HandlerFunc {
	return m.RequireRole(model.RoleManager, model.RoleAdmin)
}

func extractToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	return parts[1]
}

func GetUserUUID(c *gin.Context) (string, bool) {
	v, exists := c.Get(ctxUserUUID)
	if !exists {
		return "", false
	}
	uuid, ok := v.(string)
	return uuid, ok
}

func GetUserRole(c *gin.Context) (string, bool) {
	v, exists := c.Get(ctxUserRole)
	if !exists {
		return "", false
	}
	role, ok := v.(string)
	return role, ok
}
