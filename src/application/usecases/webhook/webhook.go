package webhook

import (
	domainNotification "diet-challenge-api/src/domain/notification"
	logger "diet-challenge-api/src/infrastructure/logger"
	notificationRepo "diet-challenge-api/src/infrastructure/repository/mysql/notification"

	"go.uber.org/zap"
)

// IWebhookUseCase records provider delivery-status callbacks
type IWebhookUseCase interface {
	RecordStatus(messageID, status, responseData string) error
	History(messageID string) (*[]domainNotification.WebhookLog, error)
}

type WebhookUseCase struct {
	webhookLogRepository notificationRepo.WebhookLogRepositoryInterface
	Logger               *logger.Logger
}

func NewWebhookUseCase(
	webhookLogRepository notificationRepo.WebhookLogRepositoryInterface,
	loggerInstance *logger.Logger,
) *WebhookUseCase {
	return &WebhookUseCase{
		webhookLogRepository: webhookLogRepository,
		Logger:               loggerInstance,
	}
}

// RecordStatus persists one (message_id, status) pair. Replays of the same
// pair are no-ops, so at-least-once provider delivery is safe.
func (s *WebhookUseCase) RecordStatus(messageID, status, responseData string) error {
	if err := s.webhookLogRepository.Upsert(messageID, status, responseData); err != nil {
		s.Logger.Error("Error recording webhook status",
			zap.Error(err),
			zap.String("messageID", messageID),
			zap.String("status", status))
		return err
	}
	s.Logger.Info("Webhook status recorded", zap.String("messageID", messageID), zap.String("status", status))
	return nil
}

// History lists every status callback seen for one message
func (s *WebhookUseCase) History(messageID string) (*[]domainNotification.WebhookLog, error) {
	return s.webhookLogRepository.ListByMessageID(messageID)
}
