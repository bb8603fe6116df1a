package routes

import (
	"diet-challenge-api/src/infrastructure/di"
	dietPlanController "diet-challenge-api/src/infrastructure/rest/controllers/dietplan"
	"diet-challenge-api/src/infrastructure/rest/middlewares"

	"github.com/gin-gonic/gin"
)

func DietPlanRoutes(router *gin.RouterGroup, controller dietPlanController.IDietPlanController, appContext *di.ApplicationContext) {
	plans := router.Group("/diet-plans")
	plans.Use(middlewares.AuthJWTMiddleware())
	{
		plans.GET("", controller.List)
		plans.GET("/:id", controller.GetByID)
		plans.GET("/:id/download-url", controller.DownloadURL)
		plans.GET("/:id/download", controller.Download)
	}

	// mutations are admin-only
	adminPlans := router.Group("/diet-plans")
	adminPlans.Use(middlewares.RequiresRoleMiddleware("admin", appContext.Logger))
	{
		adminPlans.POST("", controller.Upload)
		adminPlans.PUT("/:id", controller.Update)
		adminPlans.DELETE("/:id", controller.Delete)
	}
}
