package middlewares

import (
	"net/http"
	"os"
	"strings"

	logger "diet-challenge-api/src/infrastructure/logger"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"go.uber.org/zap"
)

// RequiresRoleMiddleware verifies the access token and requires the given
// role. An admin token also passes member-level checks.
func RequiresRoleMiddleware(requiredRole string, loggerInstance *logger.Logger) gin.HandlerFunc {
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

		exp, ok := claims["exp"].(float64)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token claims"})
			c.Abort()
			return
		}
		if int64(exp) < jwt.TimeFunc().Unix() {
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

		userRole, ok := claims["role"].(string)
		if !ok {
			loggerInstance.Error("Role claim missing from token", zap.Float64("userID", userID))
			c.JSON(http.StatusForbidden, gin.H{"error": "Invalid token: missing role claim"})
			c.Abort()
			return
		}

		if userRole != requiredRole && !(requiredRole == "member" && userRole == "admin") {
			loggerInstance.Warn("User does not have required role",
				zap.String("requiredRole", requiredRole),
				zap.String("userRole", userRole),
				zap.Float64("userID", userID))
			c.JSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
			c.Abort()
			return
		}

		c.Set("userID", int(userID))
		c.Set("userRole", userRole)
		c.Next()
	}
}
