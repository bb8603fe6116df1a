package middlewares

import (
	"errors"
	"net/http"

	domainErrors "diet-challenge-api/src/domain/errors"

	"github.com/gin-gonic/gin"
)

// ErrorHandler maps application errors pushed with ctx.Error onto HTTP
// status codes. It runs after the handler chain.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}
		err := c.Errors.Last().Err

		var appErr *domainErrors.AppError
		if errors.As(err, &appErr) {
			c.JSON(statusFor(appErr.Type), gin.H{"error": appErr.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
	}
}

func statusFor(errType domainErrors.ErrorType) int {
	switch errType {
	case domainErrors.NotFound:
		return http.StatusNotFound
	case domainErrors.ValidationError:
		return http.StatusBadRequest
	case domainErrors.ResourceAlreadyExists:
		return http.StatusConflict
	case domainErrors.NotAuthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}
