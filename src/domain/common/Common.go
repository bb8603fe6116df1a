package common

import (
	"math/rand"
	"net/http"
	"reflect"
	"strconv"

	"diet-challenge-api/src/infrastructure/helper"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type CommonService interface {
	GenerateOTP() string
	AppendValidationErrors(ctx *gin.Context, ve validator.ValidationErrors, intr interface{})
}

type commonService struct {
	validator helper.Validator
}

func NewCommonService(validator helper.Validator) CommonService {
	return &commonService{
		validator: validator,
	}
}

const (
	otpMin = 1000
	otpMax = 9999
)

// GenerateOTP returns a 4-digit one-time password
func (service *commonService) GenerateOTP() string {
	otp := rand.Intn(otpMax-otpMin+1) + otpMin
	return strconv.Itoa(otp)
}

func (service *commonService) AppendValidationErrors(ctx *gin.Context, ve validator.ValidationErrors, intr interface{}) {
	type ErrorMsg struct {
		Field   string `json:"field"`
		Message string `json:"message"`
	}
	out := make([]ErrorMsg, len(ve))

	for i, fe := range ve {
		name, _ := jsonTag(intr, fe.Field())
		out[i] = ErrorMsg{name, service.validator.GetErrorMsg(fe)}
	}
	ctx.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"errors": out})
}

func jsonTag(v interface{}, fieldName string) (string, bool) {
	t := reflect.TypeOf(v)
	sf, ok := t.FieldByName(fieldName)
	if !ok {
		return "", false
	}
	return sf.Tag.Lookup("json")
}
