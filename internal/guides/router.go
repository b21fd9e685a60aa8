package guides

import (
	"github.com/gin-gonic/gin"

	"tripcoach/internal/shared/config"
	"tripcoach/internal/shared/middleware"
)

func SetupGuideRoutes(router *gin.RouterGroup, cfg *config.Config, controller Controller) {
	// Tourist application flow
	guideApplications := router.Group("/guides")
	guideApplications.Use(middleware.JWTAuthWithConfig(cfg))
	{
		guideApplications.POST("/apply", middleware.RequireTourist(), controller.Apply)
		guideApplications.GET("/apply/me", controller.GetMyApplication)
	}

	// Admin moderation
	adminGuides := router.Group("/admin/guides")
	adminGuides.Use(middleware.JWTAuthWithConfig(cfg), middleware.RequireAdmin())
	{
		adminGuides.GET("/pending", controller.GetPending)
		adminGuides.PATCH("/:id/approve", controller.Approve)
		adminGuides.PATCH("/:id/reject", controller.Reject)
	}
}
