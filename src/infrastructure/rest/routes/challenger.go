package routes

import (
	challengerController "diet-challenge-api/src/infrastructure/rest/controllers/challenger"
	"diet-challenge-api/src/infrastructure/rest/middlewares"

	"github.com/gin-gonic/gin"
)

func ChallengerRoutes(router *gin.RouterGroup, controller challengerController.IChallengerController) {
	public := router.Group("/challengers")
	{
		public.POST("", controller.Register)
		public.POST("/:id/verify-otp", controller.VerifyOTP)
		public.POST("/:id/resend-otp", controller.ResendOTP)
		public.POST("/:id/submit", controller.Submit)
		public.GET("/meta", controller.Meta)
	}

	admin := router.Group("/challengers")
	admin.Use(middlewares.AuthJWTMiddleware())
	{
		admin.GET("", controller.List)
		admin.GET("/:id", controller.GetByID)
	}
}
