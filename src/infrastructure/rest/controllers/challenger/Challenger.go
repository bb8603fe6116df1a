package challenger

import (
	"errors"
	"net/http"
	"strconv"

	useCaseChallenger "diet-challenge-api/src/application/usecases/challenger"
	"diet-challenge-api/src/domain/common"
	domainErrors "diet-challenge-api/src/domain/errors"
	logger "diet-challenge-api/src/infrastructure/logger"
	"diet-challenge-api/src/infrastructure/rest/controllers"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

type IChallengerController interface {
	Register(ctx *gin.Context)
	VerifyOTP(ctx *gin.Context)
	ResendOTP(ctx *gin.Context)
	Submit(ctx *gin.Context)
	GetByID(ctx *gin.Context)
	List(ctx *gin.Context)
	Meta(ctx *gin.Context)
}

type ChallengerController struct {
	commonService     common.CommonService
	challengerUseCase useCaseChallenger.IChallengerUseCase
	Logger            *logger.Logger
}

func NewChallengerController(
	commonService common.CommonService,
	challengerUseCase useCaseChallenger.IChallengerUseCase,
	loggerInstance *logger.Logger,
) IChallengerController {
	return &ChallengerController{
		commonService:     commonService,
		challengerUseCase: challengerUseCase,
		Logger:            loggerInstance,
	}
}

func (c *ChallengerController) Register(ctx *gin.Context) {
	var request RegisterRequest
	if err := controllers.BindJSON(ctx, &request); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			c.commonService.AppendValidationErrors(ctx, ve, request)
			return
		}
		_ = ctx.Error(domainErrors.NewAppError(err, domainErrors.ValidationError))
		return
	}

	created, err := c.challengerUseCase.Register(&useCaseChallenger.RegisterInput{
		Name:        request.Name,
		Mobile:      request.Mobile,
		CountryCode: request.CountryCode,
		IP:          ctx.ClientIP(),
		Referer:     ctx.GetHeader("Referer"),
	})
	if err != nil {
		c.Logger.Error("Error registering challenger", zap.Error(err), zap.String("mobile", request.Mobile))
		_ = ctx.Error(err)
		return
	}

	ctx.JSON(http.StatusCreated, toResponse(created))
}

func (c *ChallengerController) VerifyOTP(ctx *gin.Context) {
	id, err := challengerID(ctx)
	if err != nil {
		_ = ctx.Error(err)
		return
	}

	var request VerifyOTPRequest
	if err := controllers.BindJSON(ctx, &request); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			c.commonService.AppendValidationErrors(ctx, ve, request)
			return
		}
		_ = ctx.Error(domainErrors.NewAppError(err, domainErrors.ValidationError))
		return
	}

	verified, err := c.challengerUseCase.VerifyOTP(id, request.OTP)
	if err != nil {
		_ = ctx.Error(err)
		return
	}

	ctx.JSON(http.StatusOK, toResponse(verified))
}

func (c *ChallengerController) ResendOTP(ctx *gin.Context) {
	id, err := challengerID(ctx)
	if err != nil {
		_ = ctx.Error(err)
		return
	}

	if err := c.challengerUseCase.ResendOTP(id); err != nil {
		_ = ctx.Error(err)
		return
	}

	ctx.JSON(http.StatusOK, controllers.MessageResponse{Message: "OTP sent"})
}

func (c *ChallengerController) Submit(ctx *gin.Context) {
	id, err := challengerID(ctx)
	if err != nil {
		_ = ctx.Error(err)
		return
	}

	var request SubmitRequest
	if err := controllers.BindJSON(ctx, &request); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			c.commonService.AppendValidationErrors(ctx, ve, request)
			return
		}
		_ = ctx.Error(domainErrors.NewAppError(err, domainErrors.ValidationError))
		return
	}

	result, err := c.challengerUseCase.Submit(&useCaseChallenger.SubmitInput{
		ChallengerID: id,
		Duration:     request.Duration,
		Category:     request.Category,
		Subcategory:  request.Subcategory,
		Type:         request.Type,
	})
	if err != nil {
		_ = ctx.Error(err)
		return
	}

	ctx.JSON(http.StatusOK, SubmitResponse{
		Data:   toResponse(result.Challenger),
		PDFURL: result.PDFURL,
	})
}

func (c *ChallengerController) GetByID(ctx *gin.Context) {
	id, err := challengerID(ctx)
	if err != nil {
		_ = ctx.Error(err)
		return
	}

	challenger, err := c.challengerUseCase.GetByID(id)
	if err != nil {
		_ = ctx.Error(err)
		return
	}

	ctx.JSON(http.StatusOK, toResponse(challenger))
}

// List returns a page of challengers for the admin dashboard. Optional
// filters: mobile, duration, otpVerified, reminderSent.
func (c *ChallengerController) List(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))

	filters := map[string]interface{}{}
	if mobile := ctx.Query("mobile"); mobile != "" {
		filters["mobile"] = mobile
	}
	if duration := ctx.Query("duration"); duration != "" {
		filters["duration"] = duration
	}
	if verified := ctx.Query("otpVerified"); verified != "" {
		filters["otp_verified"] = verified == "true"
	}
	if sent := ctx.Query("reminderSent"); sent != "" {
		filters["reminder_sent"] = sent == "true"
	}

	challengers, total, err := c.challengerUseCase.List(page, limit, filters)
	if err != nil {
		_ = ctx.Error(err)
		return
	}

	responses := make([]ChallengerResponse, len(*challengers))
	for i := range *challengers {
		responses[i] = toResponse(&(*challengers)[i])
	}

	numPages := (total + int64(limit) - 1) / int64(limit)
	ctx.JSON(http.StatusOK, controllers.PaginationResultDTO{
		Data:     responses,
		Total:    total,
		Page:     page,
		Limit:    limit,
		NumPages: numPages,
	})
}

// Meta returns the dropdown option sets for the registration form
func (c *ChallengerController) Meta(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, MetaResponse{
		Durations:     []string{"7 days", "14 days", "21 days", "30 days"},
		Categories:    []string{"Weight Loss", "Weight Gain", "Maintain Weight"},
		Subcategories: []string{"Veg", "Non-Veg", "Eggetarian"},
		Types:         []string{"Regular", "Diabetic", "PCOS"},
	})
}

func challengerID(ctx *gin.Context) (int, error) {
	var request ChallengerIDRequest
	if err := ctx.ShouldBindUri(&request); err != nil {
		return 0, domainErrors.NewAppError(errors.New("invalid challenger id"), domainErrors.ValidationError)
	}
	return request.ID, nil
}
