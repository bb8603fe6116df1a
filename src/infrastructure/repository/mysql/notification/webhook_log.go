package notification

import (
	"time"

	domainErrors "diet-challenge-api/src/domain/errors"
	domainNotification "diet-challenge-api/src/domain/notification"
	logger "diet-challenge-api/src/infrastructure/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// WebhookLog is the database model for provider delivery-status callbacks.
// The (message_id, status) pair is unique: the provider may deliver the same
// callback several times.
type WebhookLog struct {
	ID           int       `gorm:"primaryKey"`
	MessageID    string    `gorm:"column:message_id;uniqueIndex:idx_webhook_message_status"`
	Status       string    `gorm:"column:status;uniqueIndex:idx_webhook_message_status"`
	ResponseData string    `gorm:"column:response_data;type:text"`
	CreatedAt    time.Time `gorm:"autoCreateTime:mili"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime:mili"`
}

func (WebhookLog) TableName() string {
	return "webhook_logs"
}

// WebhookLogRepositoryInterface defines the interface for webhook callback storage
type WebhookLogRepositoryInterface interface {
	Upsert(messageID, status, responseData string) error
	ListByMessageID(messageID string) (*[]domainNotification.WebhookLog, error)
}

type WebhookLogRepository struct {
	DB     *gorm.DB
	Logger *logger.Logger
}

func NewWebhookLogRepository(db *gorm.DB, loggerInstance *logger.Logger) WebhookLogRepositoryInterface {
	return &WebhookLogRepository{DB: db, Logger: loggerInstance}
}

// Upsert records one (message_id, status) observation. A duplicate callback
// for an already-seen pair is a no-op; a new status for a known message id
// creates a new row, preserving the status history.
func (r *WebhookLogRepository) Upsert(messageID, status, responseData string) error {
	logModel := WebhookLog{
		MessageID:    messageID,
		Status:       status,
		ResponseData: responseData,
	}
	err := r.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "message_id"}, {Name: "status"}},
		DoNothing: true,
	}).Create(&logModel).Error
	if err != nil {
		r.Logger.Error("Error upserting webhook log", zap.Error(err), zap.String("messageID", messageID), zap.String("status", status))
		return domainErrors.NewAppErrorWithType(domainErrors.UnknownError)
	}
	return nil
}

func (r *WebhookLogRepository) ListByMessageID(messageID string) (*[]domainNotification.WebhookLog, error) {
	var logModels []WebhookLog
	err := r.DB.Where("message_id = ?", messageID).Order("created_at ASC").Find(&logModels).Error
	if err != nil {
		r.Logger.Error("Error listing webhook logs", zap.Error(err), zap.String("messageID", messageID))
		return nil, domainErrors.NewAppErrorWithType(domainErrors.UnknownError)
	}
	logsDomain := make([]domainNotification.WebhookLog, len(logModels))
	for i, logModel := range logModels {
		logsDomain[i] = domainNotification.WebhookLog{
			ID:           logModel.ID,
			MessageID:    logModel.MessageID,
			Status:       logModel.Status,
			ResponseData: logModel.ResponseData,
			CreatedAt:    logModel.CreatedAt,
			UpdatedAt:    logModel.UpdatedAt,
		}
	}
	return &logsDomain, nil
}
