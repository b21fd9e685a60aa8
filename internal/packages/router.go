package packages

import (
	"github.com/gin-gonic/gin"

	"tripcoach/internal/shared/config"
	"tripcoach/internal/shared/middleware"
)

func SetupPackageRoutes(router *gin.RouterGroup, cfg *config.Config, controller Controller) {
	// Public browsing
	publicPackages := router.Group("/packages")
	{
		publicPackages.GET("", controller.GetAllPackages)
		publicPackages.GET("/:id", controller.GetPackage)
	}

	// Guide package management
	guidePackages := router.Group("/guide/packages")
	guidePackages.Use(middleware.JWTAuthWithConfig(cfg), middleware.RequireRoles("GUIDE", "ADMIN"))
	{
		guidePackages.POST("", controller.CreatePackage)
		guidePackages.GET("", controller.GetMyPackages)
		guidePackages.PUT("/:id", controller.UpdatePackage)
		guidePackages.DELETE("/:id", controller.DeletePackage)
	}

	// Admin package management, all statuses visible
	adminPackages := router.Group("/admin/packages")
	adminPackages.Use(middleware.JWTAuthWithConfig(cfg), middleware.RequireAdmin())
	{
		adminPackages.GET("", controller.GetAllPackagesAdmin)
		adminPackages.PUT("/:id", controller.UpdatePackage)
		adminPackages.DELETE("/:id", controller.DeletePackage)
	}
}
