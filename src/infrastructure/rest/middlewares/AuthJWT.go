package middlewares

import (
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
)

// AuthJWTMiddleware verifies the access token on protected routes and stores
// the caller's identity in the context
func AuthJWTMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := c.GetHeader("Authorization")
		if tokenString == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Token not provided"})
			c.Abort()
			return
		}

		accessSecret := os.Getenv("JWT_ACCESS_SECRET_KEY")
		if accessSecret == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "JWT_ACCESS_SECRET_KEY not configured"})
			c.Abort()
			return
		}

		tokenString = strings.TrimPrefix(tokenString, "Bearer ")
		claims := jwt.MapClaims{}
		_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
			return []byte(accessSecret), nil
		})
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			c.Abort()
			return
		}

		if exp, ok := claims["exp"].(float64); !ok || int64(exp) < jwt.TimeFunc().Unix() {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Token expired"})
			c.Abort()
			return
		}
		if t, ok := claims["type"].(string); !ok || t != "access" {
			c.JSON(http.StatusForbidden, gin.H{"error": "Token type mismatch"})
			c.Abort()
			return
		}

		userID, ok := claims["id"].(float64)
		if !ok {
			c.JSON(http.StatusForbidden, gin.H{"error": "Invalid user ID in token"})
			c.Abort()
			return
		}

		c.Set("userID", int(userID))
		if role, ok := claims["role"].(string); ok {
			c.Set("userRole", role)
		}
		c.Next()
	}
}
