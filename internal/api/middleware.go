package api

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/subhamroy/case-registry/internal/auth"
)

// requireRoles gates a route behind a valid bearer token whose role is
// in the allowed list. The verified claims are stored on the context for
// downstream handlers.
func requireRoles(tokens *auth.Manager, roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if len(header) < 8 || !strings.EqualFold(header[:7], "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Not authorized, no token"})
			return
		}

		claims, err := tokens.ParseToken(header[7:])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Not authorized, token failed"})
			return
		}

		for _, role := range roles {
			if claims.Role == role {
				c.Set("userID", claims.UserID)
				c.Set("userRole", claims.Role)
				c.Next()
				return
			}
		}

		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"message": fmt.Sprintf("Role '%s' is not authorized to access this route", claims.Role),
		})
	}
}
