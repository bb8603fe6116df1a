package story

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	useCaseStory "diet-challenge-api/src/application/usecases/story"
	"diet-challenge-api/src/domain/common"
	domainErrors "diet-challenge-api/src/domain/errors"
	domainStory "diet-challenge-api/src/domain/story"
	logger "diet-challenge-api/src/infrastructure/logger"
	"diet-challenge-api/src/infrastructure/rest/controllers"
	"diet-challenge-api/src/infrastructure/storage/s3"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

const (
	imageKeyPrefix = "stories"
	imageURLExpiry = 6 * time.Hour
)

type IStoryController interface {
	Create(ctx *gin.Context)
	GetByID(ctx *gin.Context)
	List(ctx *gin.Context)
	Update(ctx *gin.Context)
	Delete(ctx *gin.Context)
}

type StoryController struct {
	commonService common.CommonService
	storyUseCase  useCaseStory.IStoryUseCase
	objectStore   s3.ObjectStoreInterface
	Logger        *logger.Logger
}

func NewStoryController(
	commonService common.CommonService,
	storyUseCase useCaseStory.IStoryUseCase,
	objectStore s3.ObjectStoreInterface,
	loggerInstance *logger.Logger,
) IStoryController {
	return &StoryController{
		commonService: commonService,
		storyUseCase:  storyUseCase,
		objectStore:   objectStore,
		Logger:        loggerInstance,
	}
}

// Create accepts a multipart form with the story fields and the image under
// the "image" field
func (c *StoryController) Create(ctx *gin.Context) {
	var request CreateStoryRequest
	if err := ctx.ShouldBind(&request); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			c.commonService.AppendValidationErrors(ctx, ve, request)
			return
		}
		_ = ctx.Error(domainErrors.NewAppError(err, domainErrors.ValidationError))
		return
	}

	imageKey := ""
	imageName := ""
	if fileHeader, err := ctx.FormFile("image"); err == nil {
		file, err := fileHeader.Open()
		if err != nil {
			_ = ctx.Error(domainErrors.NewAppError(err, domainErrors.UnknownError))
			return
		}
		defer file.Close()
		imageData, err := io.ReadAll(file)
		if err != nil {
			_ = ctx.Error(domainErrors.NewAppError(err, domainErrors.UnknownError))
			return
		}

		detected := mimetype.Detect(imageData)
		if !detected.Is("image/jpeg") && !detected.Is("image/png") && !detected.Is("image/webp") {
			_ = ctx.Error(domainErrors.NewAppError(errors.New("image must be JPEG, PNG or WebP"), domainErrors.ValidationError))
			return
		}

		imageKey = c.objectStore.NewKey(imageKeyPrefix, fileHeader.Filename)
		if err := c.objectStore.Put(imageKey, imageData, detected.String()); err != nil {
			_ = ctx.Error(domainErrors.NewAppError(err, domainErrors.UnknownError))
			return
		}
		imageName = fileHeader.Filename
	}

	created, err := c.storyUseCase.Create(&domainStory.Story{
		Title:     request.Title,
		Body:      request.Body,
		ImageKey:  imageKey,
		ImageName: imageName,
		IsActive:  true,
		CreatedBy: ctx.GetInt("userID"),
	})
	if err != nil {
		c.Logger.Error("Error creating story", zap.Error(err), zap.String("title", request.Title))
		_ = ctx.Error(err)
		return
	}

	ctx.JSON(http.StatusCreated, toResponse(created, c.imageURL(created)))
}

func (c *StoryController) GetByID(ctx *gin.Context) {
	id, err := storyID(ctx)
	if err != nil {
		_ = ctx.Error(err)
		return
	}

	story, err := c.storyUseCase.GetByID(id)
	if err != nil {
		_ = ctx.Error(err)
		return
	}

	ctx.JSON(http.StatusOK, toResponse(story, c.imageURL(story)))
}

// List returns stories; public callers get active stories only, the admin
// dashboard passes all=true
func (c *StoryController) List(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))
	activeOnly := ctx.Query("all") != "true"

	stories, total, err := c.storyUseCase.List(activeOnly, page, limit)
	if err != nil {
		_ = ctx.Error(err)
		return
	}

	responses := make([]StoryResponse, len(*stories))
	for i := range *stories {
		responses[i] = toResponse(&(*stories)[i], c.imageURL(&(*stories)[i]))
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

func (c *StoryController) Update(ctx *gin.Context) {
	id, err := storyID(ctx)
	if err != nil {
		_ = ctx.Error(err)
		return
	}

	var storyMap map[string]interface{}
	if err := controllers.BindJSONMap(ctx, &storyMap); err != nil {
		_ = ctx.Error(domainErrors.NewAppError(err, domainErrors.ValidationError))
		return
	}

	updated, err := c.storyUseCase.Update(id, storyMap)
	if err != nil {
		_ = ctx.Error(err)
		return
	}

	ctx.JSON(http.StatusOK, toResponse(updated, c.imageURL(updated)))
}

func (c *StoryController) Delete(ctx *gin.Context) {
	id, err := storyID(ctx)
	if err != nil {
		_ = ctx.Error(err)
		return
	}

	story, err := c.storyUseCase.GetByID(id)
	if err != nil {
		_ = ctx.Error(err)
		return
	}

	if err := c.storyUseCase.Delete(id); err != nil {
		_ = ctx.Error(err)
		return
	}
	if story.ImageKey != "" {
		if err := c.objectStore.Delete(story.ImageKey); err != nil {
			c.Logger.Error("Error deleting story image", zap.Error(err), zap.String("key", story.ImageKey))
		}
	}

	ctx.JSON(http.StatusOK, controllers.MessageResponse{Message: "resource deleted successfully"})
}

func (c *StoryController) imageURL(st *domainStory.Story) string {
	if st.ImageKey == "" {
		return ""
	}
	url, err := c.objectStore.PresignedURL(st.ImageKey, imageURLExpiry)
	if err != nil {
		c.Logger.Error("Error presigning story image", zap.Error(err), zap.String("key", st.ImageKey))
		return ""
	}
	return url
}

func storyID(ctx *gin.Context) (int, error) {
	var request StoryIDRequest
	if err := ctx.ShouldBindUri(&request); err != nil {
		return 0, domainErrors.NewAppError(errors.New("invalid story id"), domainErrors.ValidationError)
	}
	return request.ID, nil
}
