// internal/middleware/auth.go
package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/bantconfirm/backend/internal/models"
	"github.com/bantconfirm/backend/internal/utils"
)

func bearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", false
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", false
	}
	return parts[1], true
}

func setIdentity(c *gin.Context, claims *utils.JWTClaims) {
	c.Set("user_id", claims.UserID)
	c.Set("name", claims.Name)
	c.Set("role", claims.Role)
}

// AuthRequired rejects unauthenticated requests. The 401 body carries the
// original destination (path + query) so the client can send the user back
// after login.
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			utils.UnauthorizedRedirectResponse(c, c.Request.URL.RequestURI())
			c.Abort()
			return
		}

		claims, err := utils.ValidateJWT(token)
		if err != nil {
			utils.UnauthorizedRedirectResponse(c, c.Request.URL.RequestURI())
			c.Abort()
			return
		}

		setIdentity(c, claims)
		c.Next()
	}
}

// AdminRequired gates the dashboard routes on the role claim issued at
// login. There is no credential shortcut around it.
func AdminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := utils.GetRoleFromContext(c)
		if !ok || role != string(models.UserRoleAdmin) {
			utils.ForbiddenResponse(c, "Admin access required")
			c.Abort()
			return
		}
		c.Next()
	}
}

// OptionalAuth attaches identity when a valid token is present and stays
// silent otherwise.
func OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			c.Next()
			return
		}

		claims, err := utils.ValidateJWT(token)
		if err != nil {
			c.Next()
			return
		}

		setIdentity(c, claims)
		c.Next()
	}
}
