package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/kamande/caredesk-api/internal/presentation/http/dto/response"
	"github.com/kamande/caredesk-api/pkg/utils"
)

// AuthMiddleware verifies the session token minted by the hospital's auth
// service and exposes the operator identity plus the raw token on the
// context. The raw token is kept because the billing service is called
// with the operator's own credentials.
func AuthMiddleware(verifier *utils.JWTVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, "Authorization header is required")
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			response.Unauthorized(c, "Invalid authorization header format")
			c.Abort()
			return
		}

		tokenString := parts[1]
		claims, err := verifier.Verify(tokenString)
		if err != nil {
			response.Unauthorized(c, "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set("operator_id", claims.UserID)
		c.Set("operator_name", claims.Name)
		c.Set("operator_roles", claims.Roles)
		c.Set("session_token", tokenString)

		c.Next()
	}
}
