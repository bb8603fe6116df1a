package story

import (
	"time"

	domainErrors "diet-challenge-api/src/domain/errors"
	domainStory "diet-challenge-api/src/domain/story"
	logger "diet-challenge-api/src/infrastructure/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Story is the database model for marketing stories
type Story struct {
	ID        int       `gorm:"primaryKey"`
	Title     string    `gorm:"column:title"`
	Body      string    `gorm:"column:body;type:text"`
	ImageKey  string    `gorm:"column:image_key"`
	ImageName string    `gorm:"column:image_name"`
	IsActive  bool      `gorm:"column:is_active;default:true"`
	CreatedBy int       `gorm:"column:created_by"`
	CreatedAt time.Time `gorm:"autoCreateTime:mili"`
	UpdatedAt time.Time `gorm:"autoUpdateTime:mili"`
}

func (Story) TableName() string {
	return "stories"
}

// StoryRepositoryInterface defines the interface for story repository operations
type StoryRepositoryInterface interface {
	Create(storyDomain *domainStory.Story) (*domainStory.Story, error)
	GetByID(id int) (*domainStory.Story, error)
	List(activeOnly bool, page, limit int) (*[]domainStory.Story, int64, error)
	Update(id int, storyMap map[string]interface{}) (*domainStory.Story, error)
	Delete(id int) error
}

type StoryRepository struct {
	DB     *gorm.DB
	Logger *logger.Logger
}

func NewStoryRepository(db *gorm.DB, loggerInstance *logger.Logger) StoryRepositoryInterface {
	return &StoryRepository{DB: db, Logger: loggerInstance}
}

func (r *StoryRepository) Create(storyDomain *domainStory.Story) (*domainStory.Story, error) {
	storyModel := storyFromDomainMapper(storyDomain)
	if err := r.DB.Create(storyModel).Error; err != nil {
		r.Logger.Error("Error creating story", zap.Error(err), zap.String("title", storyDomain.Title))
		return &domainStory.Story{}, domainErrors.NewAppErrorWithType(domainErrors.UnknownError)
	}
	return storyModel.toDomainMapper(), nil
}

func (r *StoryRepository) GetByID(id int) (*domainStory.Story, error) {
	var storyModel Story
	err := r.DB.Where("id = ?", id).First(&storyModel).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			err = domainErrors.NewAppErrorWithType(domainErrors.NotFound)
		} else {
			r.Logger.Error("Error getting story by ID", zap.Error(err), zap.Int("id", id))
			err = domainErrors.NewAppErrorWithType(domainErrors.UnknownError)
		}
		return &domainStory.Story{}, err
	}
	return storyModel.toDomainMapper(), nil
}

func (r *StoryRepository) List(activeOnly bool, page, limit int) (*[]domainStory.Story, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	query := r.DB.Model(&Story{})
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		r.Logger.Error("Error counting stories", zap.Error(err))
		return nil, 0, domainErrors.NewAppErrorWithType(domainErrors.UnknownError)
	}

	var storyModels []Story
	err := query.Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&storyModels).Error
	if err != nil {
		r.Logger.Error("Error listing stories", zap.Error(err))
		return nil, 0, domainErrors.NewAppErrorWithType(domainErrors.UnknownError)
	}

	storiesDomain := make([]domainStory.Story, len(storyModels))
	for i, storyModel := range storyModels {
		storiesDomain[i] = *storyModel.toDomainMapper()
	}
	return &storiesDomain, total, nil
}

func (r *StoryRepository) Update(id int, storyMap map[string]interface{}) (*domainStory.Story, error) {
	var storyModel Story
	storyModel.ID = id
	if err := r.DB.Model(&storyModel).Updates(storyMap).Error; err != nil {
		r.Logger.Error("Error updating story", zap.Error(err), zap.Int("id", id))
		return &domainStory.Story{}, domainErrors.NewAppErrorWithType(domainErrors.UnknownError)
	}
	if err := r.DB.Where("id = ?", id).First(&storyModel).Error; err != nil {
		r.Logger.Error("Error retrieving updated story", zap.Error(err), zap.Int("id", id))
		return &domainStory.Story{}, domainErrors.NewAppErrorWithType(domainErrors.UnknownError)
	}
	return storyModel.toDomainMapper(), nil
}

func (r *StoryRepository) Delete(id int) error {
	result := r.DB.Delete(&Story{}, id)
	if result.Error != nil {
		r.Logger.Error("Error deleting story", zap.Error(result.Error), zap.Int("id", id))
		return domainErrors.NewAppErrorWithType(domainErrors.UnknownError)
	}
	if result.RowsAffected == 0 {
		return domainErrors.NewAppErrorWithType(domainErrors.NotFound)
	}
	return nil
}

// Mappers
func (s *Story) toDomainMapper() *domainStory.Story {
	return &domainStory.Story{
		ID:        s.ID,
		Title:     s.Title,
		Body:      s.Body,
		ImageKey:  s.ImageKey,
		ImageName: s.ImageName,
		IsActive:  s.IsActive,
		CreatedBy: s.CreatedBy,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

func storyFromDomainMapper(s *domainStory.Story) *Story {
	return &Story{
		ID:        s.ID,
		Title:     s.Title,
		Body:      s.Body,
		ImageKey:  s.ImageKey,
		ImageName: s.ImageName,
		IsActive:  s.IsActive,
		CreatedBy: s.CreatedBy,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}
