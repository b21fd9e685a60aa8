package dashboard

import (
	"github.com/gin-gonic/gin"

	"tripcoach/internal/shared/config"
	"tripcoach/internal/shared/middleware"
)

func SetupDashboardRoutes(router *gin.RouterGroup, cfg *config.Config, controller Controller) {
	adminDashboard := router.Group("/admin/dashboard")
	adminDashboard.Use(middleware.JWTAuthWithConfig(cfg), middleware.RequireAdmin())
	{
		adminDashboard.GET("", controller.GetAdminDashboard)
	}

	guideDashboard := router.Group("/guide/dashboard")
	guideDashboard.Use(middleware.JWTAuthWithConfig(cfg), middleware.RequireRoles("GUIDE", "ADMIN"))
	{
		guideDashboard.GET("", controller.GetGuideDashboard)
	}
}
