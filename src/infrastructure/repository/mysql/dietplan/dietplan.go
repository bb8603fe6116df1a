package dietplan

import (
	"time"

	domainDietPlan "diet-challenge-api/src/domain/dietplan"
	domainErrors "diet-challenge-api/src/domain/errors"
	logger "diet-challenge-api/src/infrastructure/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DietPlan is the database model for plan PDFs
type DietPlan struct {
	ID          int       `gorm:"primaryKey"`
	Name        string    `gorm:"column:name"`
	Duration    string    `gorm:"column:duration;index"`
	Type        string    `gorm:"column:type;index"`
	Category    string    `gorm:"column:category;index"`
	Subcategory string    `gorm:"column:subcategory"`
	Description string    `gorm:"column:description;type:text"`
	PDFKey      string    `gorm:"column:pdf_key"`
	PDFName     string    `gorm:"column:pdf_name"`
	PDFSize     int64     `gorm:"column:pdf_size"`
	CreatedBy   int       `gorm:"column:created_by"`
	IsActive    bool      `gorm:"column:is_active;default:true"`
	CreatedAt   time.Time `gorm:"autoCreateTime:mili"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime:mili"`
}

func (DietPlan) TableName() string {
	return "diet_plans"
}

// DietPlanRepositoryInterface defines the interface for diet plan repository operations
type DietPlanRepositoryInterface interface {
	Create(planDomain *domainDietPlan.DietPlan) (*domainDietPlan.DietPlan, error)
	GetByID(id int) (*domainDietPlan.DietPlan, error)
	List(filter domainDietPlan.Filter, page, limit int) (*[]domainDietPlan.DietPlan, int64, error)
	Update(id int, planMap map[string]interface{}) (*domainDietPlan.DietPlan, error)
	Delete(id int) error
	FindMatch(duration, category, subcategory, planType string) (*domainDietPlan.DietPlan, error)
}

type DietPlanRepository struct {
	DB     *gorm.DB
	Logger *logger.Logger
}

func NewDietPlanRepository(db *gorm.DB, loggerInstance *logger.Logger) DietPlanRepositoryInterface {
	return &DietPlanRepository{DB: db, Logger: loggerInstance}
}

func (r *DietPlanRepository) Create(planDomain *domainDietPlan.DietPlan) (*domainDietPlan.DietPlan, error) {
	planModel := dietPlanFromDomainMapper(planDomain)
	if err := r.DB.Create(planModel).Error; err != nil {
		r.Logger.Error("Error creating diet plan", zap.Error(err), zap.String("name", planDomain.Name))
		return &domainDietPlan.DietPlan{}, domainErrors.NewAppErrorWithType(domainErrors.UnknownError)
	}
	return planModel.toDomainMapper(), nil
}

func (r *DietPlanRepository) GetByID(id int) (*domainDietPlan.DietPlan, error) {
	var planModel DietPlan
	err := r.DB.Where("id = ?", id).First(&planModel).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			err = domainErrors.NewAppErrorWithType(domainErrors.NotFound)
		} else {
			r.Logger.Error("Error getting diet plan by ID", zap.Error(err), zap.Int("id", id))
			err = domainErrors.NewAppErrorWithType(domainErrors.UnknownError)
		}
		return &domainDietPlan.DietPlan{}, err
	}
	return planModel.toDomainMapper(), nil
}

func (r *DietPlanRepository) List(filter domainDietPlan.Filter, page, limit int) (*[]domainDietPlan.DietPlan, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	query := r.DB.Model(&DietPlan{})
	if filter.Type != "" {
		query = query.Where("type = ?", filter.Type)
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Subcategory != "" {
		query = query.Where("subcategory = ?", filter.Subcategory)
	}
	if filter.Duration != "" {
		query = query.Where("duration = ?", filter.Duration)
	}
	if filter.IsActive != nil {
		query = query.Where("is_active = ?", *filter.IsActive)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		r.Logger.Error("Error counting diet plans", zap.Error(err))
		return nil, 0, domainErrors.NewAppErrorWithType(domainErrors.UnknownError)
	}

	var planModels []DietPlan
	err := query.Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&planModels).Error
	if err != nil {
		r.Logger.Error("Error listing diet plans", zap.Error(err))
		return nil, 0, domainErrors.NewAppErrorWithType(domainErrors.UnknownError)
	}

	return dietPlanArrayToDomainMapper(&planModels), total, nil
}

func (r *DietPlanRepository) Update(id int, planMap map[string]interface{}) (*domainDietPlan.DietPlan, error) {
	var planModel DietPlan
	planModel.ID = id
	if err := r.DB.Model(&planModel).Updates(planMap).Error; err != nil {
		r.Logger.Error("Error updating diet plan", zap.Error(err), zap.Int("id", id))
		return &domainDietPlan.DietPlan{}, domainErrors.NewAppErrorWithType(domainErrors.UnknownError)
	}
	if err := r.DB.Where("id = ?", id).First(&planModel).Error; err != nil {
		r.Logger.Error("Error retrieving updated diet plan", zap.Error(err), zap.Int("id", id))
		return &domainDietPlan.DietPlan{}, domainErrors.NewAppErrorWithType(domainErrors.UnknownError)
	}
	return planModel.toDomainMapper(), nil
}

func (r *DietPlanRepository) Delete(id int) error {
	result := r.DB.Delete(&DietPlan{}, id)
	if result.Error != nil {
		r.Logger.Error("Error deleting diet plan", zap.Error(result.Error), zap.Int("id", id))
		return domainErrors.NewAppErrorWithType(domainErrors.UnknownError)
	}
	if result.RowsAffected == 0 {
		return domainErrors.NewAppErrorWithType(domainErrors.NotFound)
	}
	return nil
}

// FindMatch returns the newest active plan matching a challenger's selection
func (r *DietPlanRepository) FindMatch(duration, category, subcategory, planType string) (*domainDietPlan.DietPlan, error) {
	query := r.DB.Model(&DietPlan{}).
		Where("is_active = ?", true).
		Where("duration = ?", duration).
		Where("category = ?", category)
	if subcategory != "" {
		query = query.Where("subcategory = ?", subcategory)
	}
	if planType != "" {
		query = query.Where("type = ?", planType)
	}

	var planModel DietPlan
	err := query.Order("created_at DESC").First(&planModel).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return &domainDietPlan.DietPlan{}, domainErrors.NewAppErrorWithType(domainErrors.NotFound)
		}
		r.Logger.Error("Error finding matching diet plan", zap.Error(err), zap.String("duration", duration), zap.String("category", category))
		return &domainDietPlan.DietPlan{}, domainErrors.NewAppErrorWithType(domainErrors.UnknownError)
	}
	return planModel.toDomainMapper(), nil
}

// Mappers
func (p *DietPlan) toDomainMapper() *domainDietPlan.DietPlan {
	return &domainDietPlan.DietPlan{
		ID:          p.ID,
		Name:        p.Name,
		Duration:    p.Duration,
		Type:        p.Type,
		Category:    p.Category,
		Subcategory: p.Subcategory,
		Description: p.Description,
		PDFKey:      p.PDFKey,
		PDFName:     p.PDFName,
		PDFSize:     p.PDFSize,
		CreatedBy:   p.CreatedBy,
		IsActive:    p.IsActive,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func dietPlanFromDomainMapper(p *domainDietPlan.DietPlan) *DietPlan {
	return &DietPlan{
		ID:          p.ID,
		Name:        p.Name,
		Duration:    p.Duration,
		Type:        p.Type,
		Category:    p.Category,
		Subcategory: p.Subcategory,
		Description: p.Description,
		PDFKey:      p.PDFKey,
		PDFName:     p.PDFName,
		PDFSize:     p.PDFSize,
		CreatedBy:   p.CreatedBy,
		IsActive:    p.IsActive,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func dietPlanArrayToDomainMapper(planModels *[]DietPlan) *[]domainDietPlan.DietPlan {
	plansDomain := make([]domainDietPlan.DietPlan, len(*planModels))
	for i, planModel := range *planModels {
		plansDomain[i] = *planModel.toDomainMapper()
	}
	return &plansDomain
}
