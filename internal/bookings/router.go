package bookings

import (
	"github.com/gin-gonic/gin"

	"tripcoach/internal/shared/config"
	"tripcoach/internal/shared/middleware"
)

func SetupBookingRoutes(router *gin.RouterGroup, cfg *config.Config, controller Controller) {
	// Member bookings
	memberBookings := router.Group("/bookings")
	memberBookings.Use(middleware.JWTAuthWithConfig(cfg))
	{
		memberBookings.POST("", middleware.RequireTourist(), controller.CreateBooking)
		memberBookings.GET("/me", controller.GetMyBookings)
		memberBookings.GET("/:id", controller.GetBooking)
		memberBookings.PATCH("/me/:id/cancel", controller.CancelBooking)
	}

	// Guide view of bookings on own packages
	guideBookings := router.Group("/guide/bookings")
	guideBookings.Use(middleware.JWTAuthWithConfig(cfg), middleware.RequireRoles("GUIDE", "ADMIN"))
	{
		guideBookings.GET("", controller.GetGuideBookings)
	}

	// Admin booking management
	adminBookings := router.Group("/admin/bookings")
	adminBookings.Use(middleware.JWTAuthWithConfig(cfg), middleware.RequireAdmin())
	{
		adminBookings.GET("", controller.GetAllBookings)
		adminBookings.GET("/:id", controller.GetBooking)
		adminBookings.PATCH("/:id/status", controller.UpdateBookingStatus)
	}
}
