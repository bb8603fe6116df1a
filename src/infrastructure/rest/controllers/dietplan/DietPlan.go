package dietplan

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	useCaseDietPlan "diet-challenge-api/src/application/usecases/dietplan"
	"diet-challenge-api/src/domain/common"
	domainDietPlan "diet-challenge-api/src/domain/dietplan"
	domainErrors "diet-challenge-api/src/domain/errors"
	logger "diet-challenge-api/src/infrastructure/logger"
	"diet-challenge-api/src/infrastructure/rest/controllers"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

type IDietPlanController interface {
	Upload(ctx *gin.Context)
	GetByID(ctx *gin.Context)
	List(ctx *gin.Context)
	Update(ctx *gin.Context)
	Delete(ctx *gin.Context)
	DownloadURL(ctx *gin.Context)
	Download(ctx *gin.Context)
}

type DietPlanController struct {
	commonService   common.CommonService
	dietPlanUseCase useCaseDietPlan.IDietPlanUseCase
	Logger          *logger.Logger
}

func NewDietPlanController(
	commonService common.CommonService,
	dietPlanUseCase useCaseDietPlan.IDietPlanUseCase,
	loggerInstance *logger.Logger,
) IDietPlanController {
	return &DietPlanController{
		commonService:   commonService,
		dietPlanUseCase: dietPlanUseCase,
		Logger:          loggerInstance,
	}
}

// Upload accepts a multipart form with the plan attributes and the PDF under
// the "pdf" field
func (c *DietPlanController) Upload(ctx *gin.Context) {
	var request UploadRequest
	if err := ctx.ShouldBind(&request); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			c.commonService.AppendValidationErrors(ctx, ve, request)
			return
		}
		_ = ctx.Error(domainErrors.NewAppError(err, domainErrors.ValidationError))
		return
	}

	fileHeader, err := ctx.FormFile("pdf")
	if err != nil {
		_ = ctx.Error(domainErrors.NewAppError(errors.New("pdf file is required"), domainErrors.ValidationError))
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		_ = ctx.Error(domainErrors.NewAppError(err, domainErrors.UnknownError))
		return
	}
	defer file.Close()
	fileData, err := io.ReadAll(file)
	if err != nil {
		_ = ctx.Error(domainErrors.NewAppError(err, domainErrors.UnknownError))
		return
	}

	created, err := c.dietPlanUseCase.Upload(&useCaseDietPlan.UploadInput{
		Name:        request.Name,
		Duration:    request.Duration,
		Type:        request.Type,
		Category:    request.Category,
		Subcategory: request.Subcategory,
		Description: request.Description,
		FileName:    fileHeader.Filename,
		FileData:    fileData,
		CreatedBy:   ctx.GetInt("userID"),
	})
	if err != nil {
		c.Logger.Error("Error uploading diet plan", zap.Error(err), zap.String("name", request.Name))
		_ = ctx.Error(err)
		return
	}

	ctx.JSON(http.StatusCreated, toResponse(created))
}

func (c *DietPlanController) GetByID(ctx *gin.Context) {
	id, err := planID(ctx)
	if err != nil {
		_ = ctx.Error(err)
		return
	}

	plan, err := c.dietPlanUseCase.GetByID(id)
	if err != nil {
		_ = ctx.Error(err)
		return
	}

	ctx.JSON(http.StatusOK, toResponse(plan))
}

func (c *DietPlanController) List(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))

	filter := domainDietPlan.Filter{
		Type:        ctx.Query("type"),
		Category:    ctx.Query("category"),
		Subcategory: ctx.Query("subcategory"),
		Duration:    ctx.Query("duration"),
	}
	if active := ctx.Query("isActive"); active != "" {
		isActive := active == "true"
		filter.IsActive = &isActive
	}

	plans, total, err := c.dietPlanUseCase.List(filter, page, limit)
	if err != nil {
		_ = ctx.Error(err)
		return
	}

	responses := make([]DietPlanResponse, len(*plans))
	for i := range *plans {
		responses[i] = toResponse(&(*plans)[i])
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

// Update applies a partial update from a JSON map with camelCase keys
func (c *DietPlanController) Update(ctx *gin.Context) {
	id, err := planID(ctx)
	if err != nil {
		_ = ctx.Error(err)
		return
	}

	var planMap map[string]interface{}
	if err := controllers.BindJSONMap(ctx, &planMap); err != nil {
		_ = ctx.Error(domainErrors.NewAppError(err, domainErrors.ValidationError))
		return
	}

	updated, err := c.dietPlanUseCase.Update(id, planMap)
	if err != nil {
		_ = ctx.Error(err)
		return
	}

	ctx.JSON(http.StatusOK, toResponse(updated))
}

func (c *DietPlanController) Delete(ctx *gin.Context) {
	id, err := planID(ctx)
	if err != nil {
		_ = ctx.Error(err)
		return
	}

	if err := c.dietPlanUseCase.Delete(id); err != nil {
		_ = ctx.Error(err)
		return
	}

	ctx.JSON(http.StatusOK, controllers.MessageResponse{Message: "resource deleted successfully"})
}

// DownloadURL issues a temporary download link for the plan PDF
func (c *DietPlanController) DownloadURL(ctx *gin.Context) {
	id, err := planID(ctx)
	if err != nil {
		_ = ctx.Error(err)
		return
	}

	url, err := c.dietPlanUseCase.DownloadURL(id)
	if err != nil {
		_ = ctx.Error(err)
		return
	}

	ctx.JSON(http.StatusOK, DownloadURLResponse{URL: url})
}

// Download proxies the plan PDF body without buffering it
func (c *DietPlanController) Download(ctx *gin.Context) {
	id, err := planID(ctx)
	if err != nil {
		_ = ctx.Error(err)
		return
	}

	stream, err := c.dietPlanUseCase.Download(id)
	if err != nil {
		_ = ctx.Error(err)
		return
	}
	defer func() { _ = stream.Body.Close() }()

	headers := map[string]string{
		"Content-Disposition": fmt.Sprintf("attachment; filename=%q", stream.FileName),
	}
	ctx.DataFromReader(http.StatusOK, stream.Size, "application/pdf", stream.Body, headers)
}

func planID(ctx *gin.Context) (int, error) {
	var request PlanIDRequest
	if err := ctx.ShouldBindUri(&request); err != nil {
		return 0, domainErrors.NewAppError(errors.New("invalid plan id"), domainErrors.ValidationError)
	}
	return request.ID, nil
}
