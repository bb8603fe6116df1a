package routes

import (
	"net/http"

	"diet-challenge-api/src/infrastructure/di"

	"github.com/gin-gonic/gin"
)

func ApplicationRouter(router *gin.Engine, appContext *di.ApplicationContext) {
	v1 := router.Group("/v1")

	v1.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Service is running",
		})
	})

	AuthRoutes(v1, appContext.AuthController)
	ChallengerRoutes(v1, appContext.ChallengerController)
	DietPlanRoutes(v1, appContext.DietPlanController, appContext)
	StoryRoutes(v1, appContext.StoryController, appContext)
	WebhookRoutes(v1, appContext.WebhookController)
}
