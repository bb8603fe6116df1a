package routes

import (
	"diet-challenge-api/src/infrastructure/di"
	storyController "diet-challenge-api/src/infrastructure/rest/controllers/story"
	"diet-challenge-api/src/infrastructure/rest/middlewares"

	"github.com/gin-gonic/gin"
)

func StoryRoutes(router *gin.RouterGroup, controller storyController.IStoryController, appContext *di.ApplicationContext) {
	public := router.Group("/stories")
	{
		public.GET("", controller.List)
		public.GET("/:id", controller.GetByID)
	}

	// mutations are admin-only
	admin := router.Group("/stories")
	admin.Use(middlewares.RequiresRoleMiddleware("admin", appContext.Logger))
	{
		admin.POST("", controller.Create)
		admin.PUT("/:id", controller.Update)
		admin.DELETE("/:id", controller.Delete)
	}
}
