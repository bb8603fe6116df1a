package challenger

import (
	"fmt"
	"time"

	domainChallenger "diet-challenge-api/src/domain/challenger"
	domainErrors "diet-challenge-api/src/domain/errors"
	logger "diet-challenge-api/src/infrastructure/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Challenger is the database model for challenger registrations
type Challenger struct {
	ID           int       `gorm:"primaryKey"`
	Name         string    `gorm:"column:name"`
	Mobile       string    `gorm:"column:mobile;index"`
	CountryCode  string    `gorm:"column:country_code;default:+91"`
	Duration     string    `gorm:"column:duration"`
	Category     string    `gorm:"column:category"`
	Subcategory  string    `gorm:"column:subcategory"`
	Type         string    `gorm:"column:type"`
	OTP          string    `gorm:"column:otp"`
	OTPVerified  bool      `gorm:"column:otp_verified;default:false"`
	PDF          string    `gorm:"column:pdf"`
	ReminderSent bool      `gorm:"column:reminder_sent;default:false;index"`
	IsDeleted    bool      `gorm:"column:is_deleted;default:false"`
	IsDummy      bool      `gorm:"column:is_dummy;default:false"`
	IP           string    `gorm:"column:ip"`
	Referer      string    `gorm:"column:referer"`
	CreatedAt    time.Time `gorm:"autoCreateTime:mili"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime:mili"`
}

func (Challenger) TableName() string {
	return "challengers"
}

var ColumnsChallengerMapping = map[string]string{
	"id":           "id",
	"name":         "name",
	"mobile":       "mobile",
	"countryCode":  "country_code",
	"duration":     "duration",
	"category":     "category",
	"subcategory":  "subcategory",
	"type":         "type",
	"otp":          "otp",
	"otpVerified":  "otp_verified",
	"pdf":          "pdf",
	"reminderSent": "reminder_sent",
	"isDeleted":    "is_deleted",
	"isDummy":      "is_dummy",
	"ip":           "ip",
	"referer":      "referer",
	"createdAt":    "created_at",
	"updatedAt":    "updated_at",
}

// ChallengerRepositoryInterface defines the interface for challenger repository operations
type ChallengerRepositoryInterface interface {
	Create(challengerDomain *domainChallenger.Challenger) (*domainChallenger.Challenger, error)
	GetByID(id int) (*domainChallenger.Challenger, error)
	Update(id int, challengerMap map[string]interface{}) (*domainChallenger.Challenger, error)
	List(page, limit int, filters map[string]interface{}) (*[]domainChallenger.Challenger, int64, error)
	ListEligible(cohort domainChallenger.Cohort, excludedMobiles []string, offset, limit int) (*[]domainChallenger.Challenger, error)
	MarkReminderSentByMobile(mobile string) error
}

type ChallengerRepository struct {
	DB     *gorm.DB
	Logger *logger.Logger
}

func NewChallengerRepository(db *gorm.DB, loggerInstance *logger.Logger) ChallengerRepositoryInterface {
	return &ChallengerRepository{DB: db, Logger: loggerInstance}
}

func (r *ChallengerRepository) Create(challengerDomain *domainChallenger.Challenger) (*domainChallenger.Challenger, error) {
	challengerModel := challengerFromDomainMapper(challengerDomain)
	if err := r.DB.Create(challengerModel).Error; err != nil {
		r.Logger.Error("Error creating challenger", zap.Error(err), zap.String("mobile", challengerDomain.Mobile))
		return &domainChallenger.Challenger{}, domainErrors.NewAppErrorWithType(domainErrors.UnknownError)
	}
	r.Logger.Info("Successfully created challenger", zap.Int("id", challengerModel.ID), zap.String("mobile", challengerModel.Mobile))
	return challengerModel.toDomainMapper(), nil
}

func (r *ChallengerRepository) GetByID(id int) (*domainChallenger.Challenger, error) {
	var challengerModel Challenger
	err := r.DB.Where("id = ?", id).First(&challengerModel).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			r.Logger.Warn("Challenger not found", zap.Int("id", id))
			err = domainErrors.NewAppErrorWithType(domainErrors.NotFound)
		} else {
			r.Logger.Error("Error getting challenger by ID", zap.Error(err), zap.Int("id", id))
			err = domainErrors.NewAppErrorWithType(domainErrors.UnknownError)
		}
		return &domainChallenger.Challenger{}, err
	}
	return challengerModel.toDomainMapper(), nil
}

func (r *ChallengerRepository) Update(id int, challengerMap map[string]interface{}) (*domainChallenger.Challenger, error) {
	var challengerModel Challenger
	challengerModel.ID = id

	updateData := make(map[string]interface{})
	for k, v := range challengerMap {
		if column, ok := ColumnsChallengerMapping[k]; ok {
			updateData[column] = v
		} else {
			updateData[k] = v
		}
	}

	if err := r.DB.Model(&challengerModel).Updates(updateData).Error; err != nil {
		r.Logger.Error("Error updating challenger", zap.Error(err), zap.Int("id", id))
		return &domainChallenger.Challenger{}, domainErrors.NewAppErrorWithType(domainErrors.UnknownError)
	}
	if err := r.DB.Where("id = ?", id).First(&challengerModel).Error; err != nil {
		r.Logger.Error("Error retrieving updated challenger", zap.Error(err), zap.Int("id", id))
		return &domainChallenger.Challenger{}, domainErrors.NewAppErrorWithType(domainErrors.UnknownError)
	}
	return challengerModel.toDomainMapper(), nil
}

// List returns challengers for the admin dashboard with simple filters and
// page-based pagination
func (r *ChallengerRepository) List(page, limit int, filters map[string]interface{}) (*[]domainChallenger.Challenger, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	query := r.DB.Model(&Challenger{}).Where("is_deleted = ?", false)
	for k, v := range filters {
		if column, ok := ColumnsChallengerMapping[k]; ok {
			query = query.Where(fmt.Sprintf("%s = ?", column), v)
		}
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		r.Logger.Error("Error counting challengers", zap.Error(err))
		return nil, 0, domainErrors.NewAppErrorWithType(domainErrors.UnknownError)
	}

	var challengerModels []Challenger
	err := query.Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&challengerModels).Error
	if err != nil {
		r.Logger.Error("Error listing challengers", zap.Error(err))
		return nil, 0, domainErrors.NewAppErrorWithType(domainErrors.UnknownError)
	}

	return challengerArrayToDomainMapper(&challengerModels), total, nil
}

// ListEligible returns one page of challengers due for a reminder for the
// given cohort: OTP-verified, plan assigned, not yet notified, not deleted or
// synthetic, inside the cohort's time window and not on the denylist. Rows
// sharing a mobile number collapse to the most recent one by the cohort's
// reference field.
func (r *ChallengerRepository) ListEligible(cohort domainChallenger.Cohort, excludedMobiles []string, offset, limit int) (*[]domainChallenger.Challenger, error) {
	refColumn := string(cohort.ReferenceField)

	base := r.DB.Model(&Challenger{}).
		Where("otp_verified = ?", true).
		Where("pdf IS NOT NULL AND pdf <> ''").
		Where("reminder_sent = ?", false).
		Where("is_deleted = ?", false).
		Where("is_dummy = ?", false)
	if cohort.WindowStart != nil {
		base = base.Where(fmt.Sprintf("%s >= ?", refColumn), *cohort.WindowStart)
	}
	if cohort.WindowEnd != nil {
		base = base.Where(fmt.Sprintf("%s < ?", refColumn), *cohort.WindowEnd)
	}
	if len(excludedMobiles) > 0 {
		base = base.Where("mobile NOT IN ?", excludedMobiles)
	}

	// Latest row per mobile, mirroring the dashboard's group-by-mobile view.
	// Ties on the reference timestamp (double-submits land on the same
	// millisecond) resolve to the highest id, so a mobile never yields two
	// candidates in one run.
	latest := base.Session(&gorm.Session{}).
		Select(fmt.Sprintf("mobile, MAX(%s) AS max_ref", refColumn)).
		Group("mobile")

	winners := base.Session(&gorm.Session{}).
		Select("MAX(challengers.id) AS id").
		Joins(fmt.Sprintf("JOIN (?) latest ON challengers.mobile = latest.mobile AND challengers.%s = latest.max_ref", refColumn), latest).
		Group("challengers.mobile")

	var challengerModels []Challenger
	err := base.Session(&gorm.Session{}).
		Where("challengers.id IN (?)", winners).
		Order(fmt.Sprintf("challengers.%s ASC", refColumn)).
		Offset(offset).
		Limit(limit).
		Find(&challengerModels).Error
	if err != nil {
		r.Logger.Error("Error listing eligible challengers", zap.Error(err), zap.String("cohort", cohort.Name))
		return nil, domainErrors.NewAppErrorWithType(domainErrors.UnknownError)
	}

	return challengerArrayToDomainMapper(&challengerModels), nil
}

// MarkReminderSentByMobile flags every row sharing the mobile number, so a
// re-registered challenger is notified once
func (r *ChallengerRepository) MarkReminderSentByMobile(mobile string) error {
	err := r.DB.Model(&Challenger{}).
		Where("mobile = ?", mobile).
		Updates(map[string]interface{}{
			"reminder_sent": true,
			"updated_at":    time.Now(),
		}).Error
	if err != nil {
		r.Logger.Error("Error marking reminder sent", zap.Error(err), zap.String("mobile", mobile))
		return domainErrors.NewAppErrorWithType(domainErrors.UnknownError)
	}
	return nil
}

// Mappers
func (c *Challenger) toDomainMapper() *domainChallenger.Challenger {
	return &domainChallenger.Challenger{
		ID:           c.ID,
		Name:         c.Name,
		Mobile:       c.Mobile,
		CountryCode:  c.CountryCode,
		Duration:     c.Duration,
		Category:     c.Category,
		Subcategory:  c.Subcategory,
		Type:         c.Type,
		OTP:          c.OTP,
		OTPVerified:  c.OTPVerified,
		PDF:          c.PDF,
		ReminderSent: c.ReminderSent,
		IsDeleted:    c.IsDeleted,
		IsDummy:      c.IsDummy,
		IP:           c.IP,
		Referer:      c.Referer,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}

func challengerFromDomainMapper(c *domainChallenger.Challenger) *Challenger {
	return &Challenger{
		ID:           c.ID,
		Name:         c.Name,
		Mobile:       c.Mobile,
		CountryCode:  c.CountryCode,
		Duration:     c.Duration,
		Category:     c.Category,
		Subcategory:  c.Subcategory,
		Type:         c.Type,
		OTP:          c.OTP,
		OTPVerified:  c.OTPVerified,
		PDF:          c.PDF,
		ReminderSent: c.ReminderSent,
		IsDeleted:    c.IsDeleted,
		IsDummy:      c.IsDummy,
		IP:           c.IP,
		Referer:      c.Referer,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}

func challengerArrayToDomainMapper(challengerModels *[]Challenger) *[]domainChallenger.Challenger {
	challengersDomain := make([]domainChallenger.Challenger, len(*challengerModels))
	for i, challengerModel := range *challengerModels {
		challengersDomain[i] = *challengerModel.toDomainMapper()
	}
	return &challengersDomain
}
