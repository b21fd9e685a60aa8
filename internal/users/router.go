package users

import (
	"tripcoach/internal/shared/config"
	"tripcoach/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupUserRoutes(router *gin.RouterGroup, cfg *config.Config, controller Controller) {
	// Self-service routes - any authenticated role
	profile := router.Group("/profile")
	profile.Use(middleware.JWTAuthWithConfig(cfg))
	{
		profile.GET("", controller.GetProfile)      // GET /api/v1/profile
		profile.PATCH("", controller.UpdateProfile) // PATCH /api/v1/profile
	}

	// Admin routes - user management
	adminUsers := router.Group("/admin/users")
	adminUsers.Use(middleware.JWTAuthWithConfig(cfg), middleware.RequireAdmin())
	{
		adminUsers.GET("", controller.GetAllUsers)           // GET /api/v1/admin/users
		adminUsers.GET("/:userId", controller.GetUser)       // GET /api/v1/admin/users/:userId
		adminUsers.PATCH("/:userId", controller.UpdateUser)  // PATCH /api/v1/admin/users/:userId
		adminUsers.DELETE("/:userId", controller.DeleteUser) // DELETE /api/v1/admin/users/:userId
	}
}
