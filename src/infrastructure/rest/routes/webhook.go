package routes

import (
	webhookController "diet-challenge-api/src/infrastructure/rest/controllers/webhook"

	"github.com/gin-gonic/gin"
)

// WebhookRoutes are unauthenticated: the provider signs nothing, the handler
// validates shape and stays idempotent instead
func WebhookRoutes(router *gin.RouterGroup, controller webhookController.IWebhookController) {
	webhooks := router.Group("/webhooks")
	{
		webhooks.POST("/delivery-status", controller.DeliveryStatus)
	}
}
