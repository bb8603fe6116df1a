package helper

import (
	"fmt"

	logger "diet-challenge-api/src/infrastructure/logger"

	"github.com/go-playground/validator/v10"
)

// Validator translates validator.v10 field errors into user-facing messages
type Validator struct {
	Logger *logger.Logger
}

func NewValidator(loggerInstance *logger.Logger) Validator {
	return Validator{Logger: loggerInstance}
}

// GetErrorMsg returns a readable message for one field error
func (v Validator) GetErrorMsg(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required"
	case "email":
		return "Invalid email address"
	case "min":
		return fmt.Sprintf("Should be at least %s characters long", fe.Param())
	case "max":
		return fmt.Sprintf("Should be at most %s characters long", fe.Param())
	case "len":
		return fmt.Sprintf("Should be exactly %s characters long", fe.Param())
	case "numeric":
		return "Should contain only digits"
	case "oneof":
		return fmt.Sprintf("Should be one of: %s", fe.Param())
	}
	return "Invalid value"
}
