package webhook

import (
	"encoding/json"
	"io"
	"net/http"

	useCaseWebhook "diet-challenge-api/src/application/usecases/webhook"
	logger "diet-challenge-api/src/infrastructure/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type IWebhookController interface {
	DeliveryStatus(ctx *gin.Context)
}

type WebhookController struct {
	webhookUseCase useCaseWebhook.IWebhookUseCase
	Logger         *logger.Logger
}

func NewWebhookController(webhookUseCase useCaseWebhook.IWebhookUseCase, loggerInstance *logger.Logger) IWebhookController {
	return &WebhookController{
		webhookUseCase: webhookUseCase,
		Logger:         loggerInstance,
	}
}

// DeliveryStatus ingests a provider status callback. The provider retries on
// any non-200, so this handler always answers 200; bad payloads are logged
// and dropped.
func (c *WebhookController) DeliveryStatus(ctx *gin.Context) {
	body, err := io.ReadAll(ctx.Request.Body)
	if err != nil {
		c.Logger.Error("Error reading webhook body", zap.Error(err))
		ctx.JSON(http.StatusOK, gin.H{"status": "ignored"})
		return
	}

	var payload StatusCallback
	if err := json.Unmarshal(body, &payload); err != nil {
		c.Logger.Warn("Malformed webhook payload", zap.Error(err), zap.ByteString("body", body))
		ctx.JSON(http.StatusOK, gin.H{"status": "ignored"})
		return
	}

	messageID, status, ok := payload.extract()
	if !ok {
		c.Logger.Warn("Webhook payload missing message id or status", zap.ByteString("body", body))
		ctx.JSON(http.StatusOK, gin.H{"status": "ignored"})
		return
	}

	if err := c.webhookUseCase.RecordStatus(messageID, status, string(body)); err != nil {
		// still 200: the provider must not retry a store-side failure forever
		ctx.JSON(http.StatusOK, gin.H{"status": "error"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
}
