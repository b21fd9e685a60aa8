package auth

import (
	"github.com/gin-gonic/gin"

	"tripcoach/internal/shared/config"
	"tripcoach/internal/shared/middleware"
)

func SetupAuthRoutes(router *gin.RouterGroup, cfg *config.Config, controller Controller) {
	authGroup := router.Group("/auth")
	{
		authGroup.POST("/register", controller.Register)
		authGroup.POST("/login", controller.Login)
		authGroup.POST("/logout", controller.Logout)
		authGroup.POST("/refresh", controller.RefreshToken)

		protected := authGroup.Group("")
		protected.Use(middleware.JWTAuthWithConfig(cfg))
		{
			protected.GET("/me", controller.GetMe)
			protected.POST("/change-password", controller.ChangePassword)
		}
	}
}
