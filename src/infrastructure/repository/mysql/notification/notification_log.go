package notification

import (
	"time"

	domainErrors "diet-challenge-api/src/domain/errors"
	domainNotification "diet-challenge-api/src/domain/notification"
	logger "diet-challenge-api/src/infrastructure/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// NotificationLog is the database model for the delivery ledger
type NotificationLog struct {
	ID             int       `gorm:"primaryKey"`
	ChallengerID   int       `gorm:"column:challenger_id;index"`
	Mobile         string    `gorm:"column:mobile;index"`
	CountryCode    string    `gorm:"column:country_code"`
	Duration       string    `gorm:"column:duration"`
	DurationActual int       `gorm:"column:duration_actual"`
	Status         string    `gorm:"column:status;index"`
	RetryCount     int       `gorm:"column:retry_count;default:0"`
	Payload        string    `gorm:"column:payload;type:text"`
	ResponseData   string    `gorm:"column:response_data;type:text"`
	ResponseID     string    `gorm:"column:response_id"`
	CreatedAt      time.Time `gorm:"autoCreateTime:mili"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime:mili;index"`
}

func (NotificationLog) TableName() string {
	return "notification_logs"
}

// NotificationLogRepositoryInterface defines the interface for delivery ledger operations
type NotificationLogRepositoryInterface interface {
	Create(logDomain *domainNotification.Log) (*domainNotification.Log, error)
	GetByID(id int) (*domainNotification.Log, error)
	ListFailedForRetry(windowStart, windowEnd time.Time, excludedMobiles []string, offset, limit int) (*[]domainNotification.RetryCandidate, error)
	MarkRetrySent(id int) error
	ListByChallenger(challengerID int) (*[]domainNotification.Log, error)
}

type NotificationLogRepository struct {
	DB     *gorm.DB
	Logger *logger.Logger
}

func NewNotificationLogRepository(db *gorm.DB, loggerInstance *logger.Logger) NotificationLogRepositoryInterface {
	return &NotificationLogRepository{DB: db, Logger: loggerInstance}
}

func (r *NotificationLogRepository) Create(logDomain *domainNotification.Log) (*domainNotification.Log, error) {
	logModel := notificationLogFromDomainMapper(logDomain)
	if err := r.DB.Create(logModel).Error; err != nil {
		r.Logger.Error("Error creating notification log", zap.Error(err), zap.String("mobile", logDomain.Mobile), zap.String("status", logDomain.Status))
		return &domainNotification.Log{}, domainErrors.NewAppErrorWithType(domainErrors.UnknownError)
	}
	r.Logger.Info("Notification log created", zap.Int("id", logModel.ID), zap.String("mobile", logModel.Mobile), zap.String("status", logModel.Status))
	return logModel.toDomainMapper(), nil
}

func (r *NotificationLogRepository) GetByID(id int) (*domainNotification.Log, error) {
	var logModel NotificationLog
	err := r.DB.Where("id = ?", id).First(&logModel).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			err = domainErrors.NewAppErrorWithType(domainErrors.NotFound)
		} else {
			r.Logger.Error("Error getting notification log by ID", zap.Error(err), zap.Int("id", id))
			err = domainErrors.NewAppErrorWithType(domainErrors.UnknownError)
		}
		return &domainNotification.Log{}, err
	}
	return logModel.toDomainMapper(), nil
}

// retryRow carries the joined ledger + challenger columns of one retry scan row
type retryRow struct {
	NotificationLog
	ChallengerName        string `gorm:"column:challenger_name"`
	ChallengerCountryCode string `gorm:"column:challenger_country_code"`
	ChallengerDuration    string `gorm:"column:challenger_duration"`
}

// ListFailedForRetry returns one page of Failed ledger rows inside the time
// window with the retry budget left, joined to the originating challenger
func (r *NotificationLogRepository) ListFailedForRetry(windowStart, windowEnd time.Time, excludedMobiles []string, offset, limit int) (*[]domainNotification.RetryCandidate, error) {
	query := r.DB.Model(&NotificationLog{}).
		Select("notification_logs.*, challengers.name AS challenger_name, challengers.country_code AS challenger_country_code, challengers.duration AS challenger_duration").
		Joins("LEFT JOIN challengers ON challengers.id = notification_logs.challenger_id").
		Where("notification_logs.status = ?", domainNotification.StatusFailed).
		Where("notification_logs.retry_count < ?", domainNotification.MaxRetryCount).
		Where("notification_logs.updated_at BETWEEN ? AND ?", windowStart, windowEnd)
	if len(excludedMobiles) > 0 {
		query = query.Where("notification_logs.mobile NOT IN ?", excludedMobiles)
	}

	var rows []retryRow
	err := query.Order("notification_logs.updated_at ASC").
		Offset(offset).
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		r.Logger.Error("Error listing failed notifications for retry", zap.Error(err))
		return nil, domainErrors.NewAppErrorWithType(domainErrors.UnknownError)
	}

	candidates := make([]domainNotification.RetryCandidate, len(rows))
	for i, row := range rows {
		countryCode := row.ChallengerCountryCode
		if countryCode == "" {
			countryCode = row.CountryCode
		}
		duration := row.ChallengerDuration
		if duration == "" {
			duration = row.Duration
		}
		candidates[i] = domainNotification.RetryCandidate{
			Log:            *row.NotificationLog.toDomainMapper(),
			ChallengerName: row.ChallengerName,
			Mobile:         row.Mobile,
			CountryCode:    countryCode,
			Duration:       duration,
		}
	}
	return &candidates, nil
}

// MarkRetrySent transitions a ledger row after a successful retry and spends
// one unit of its retry budget
func (r *NotificationLogRepository) MarkRetrySent(id int) error {
	err := r.DB.Model(&NotificationLog{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":      domainNotification.StatusRetrySent,
			"retry_count": gorm.Expr("retry_count + 1"),
			"updated_at":  time.Now(),
		}).Error
	if err != nil {
		r.Logger.Error("Error marking notification log retry sent", zap.Error(err), zap.Int("id", id))
		return domainErrors.NewAppErrorWithType(domainErrors.UnknownError)
	}
	return nil
}

func (r *NotificationLogRepository) ListByChallenger(challengerID int) (*[]domainNotification.Log, error) {
	var logModels []NotificationLog
	err := r.DB.Where("challenger_id = ?", challengerID).Order("created_at DESC").Find(&logModels).Error
	if err != nil {
		r.Logger.Error("Error listing notification logs by challenger", zap.Error(err), zap.Int("challengerID", challengerID))
		return nil, domainErrors.NewAppErrorWithType(domainErrors.UnknownError)
	}
	logsDomain := make([]domainNotification.Log, len(logModels))
	for i, logModel := range logModels {
		logsDomain[i] = *logModel.toDomainMapper()
	}
	return &logsDomain, nil
}

// Mappers
func (n *NotificationLog) toDomainMapper() *domainNotification.Log {
	return &domainNotification.Log{
		ID:             n.ID,
		ChallengerID:   n.ChallengerID,
		Mobile:         n.Mobile,
		CountryCode:    n.CountryCode,
		Duration:       n.Duration,
		DurationActual: n.DurationActual,
		Status:         n.Status,
		RetryCount:     n.RetryCount,
		Payload:        n.Payload,
		ResponseData:   n.ResponseData,
		ResponseID:     n.ResponseID,
		CreatedAt:      n.CreatedAt,
		UpdatedAt:      n.UpdatedAt,
	}
}

func notificationLogFromDomainMapper(n *domainNotification.Log) *NotificationLog {
	return &NotificationLog{
		ID:             n.ID,
		ChallengerID:   n.ChallengerID,
		Mobile:         n.Mobile,
		CountryCode:    n.CountryCode,
		Duration:       n.Duration,
		DurationActual: n.DurationActual,
		Status:         n.Status,
		RetryCount:     n.RetryCount,
		Payload:        n.Payload,
		ResponseData:   n.ResponseData,
		ResponseID:     n.ResponseID,
		CreatedAt:      n.CreatedAt,
		UpdatedAt:      n.UpdatedAt,
	}
}
