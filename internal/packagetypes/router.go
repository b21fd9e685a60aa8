package packagetypes

import (
	"github.com/gin-gonic/gin"

	"tripcoach/internal/shared/config"
	"tripcoach/internal/shared/middleware"
)

func SetupPackageTypeRoutes(router *gin.RouterGroup, cfg *config.Config, controller Controller) {
	// Public routes
	publicTypes := router.Group("/package-types")
	{
		publicTypes.GET("/active", controller.GetActivePackageTypes)
		publicTypes.GET("/slug/:slug", controller.GetPackageTypeBySlug)
	}

	// Admin routes
	adminTypes := router.Group("/admin/package-types")
	adminTypes.Use(middleware.JWTAuthWithConfig(cfg), middleware.RequireAdmin())
	{
		adminTypes.POST("", controller.CreatePackageType)
		adminTypes.GET("", controller.GetAllPackageTypes)
		adminTypes.GET("/:id", controller.GetPackageType)
		adminTypes.PUT("/:id", controller.UpdatePackageType)
		adminTypes.DELETE("/:id", controller.DeletePackageType)
	}
}
