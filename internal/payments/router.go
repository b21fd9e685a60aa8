package payments

import (
	"github.com/gin-gonic/gin"

	"tripcoach/internal/shared/config"
	"tripcoach/internal/shared/middleware"
)

func SetupPaymentRoutes(router *gin.RouterGroup, cfg *config.Config, controller Controller) {
	// Member checkout flow
	memberPayments := router.Group("/payments")
	memberPayments.Use(middleware.JWTAuthWithConfig(cfg), middleware.RequireTourist())
	{
		memberPayments.POST("/checkout", controller.CreateCheckout)
		memberPayments.POST("/confirm", controller.ConfirmPayment)
	}

	// Admin payment projection
	adminPayments := router.Group("/admin/payments")
	adminPayments.Use(middleware.JWTAuthWithConfig(cfg), middleware.RequireAdmin())
	{
		adminPayments.GET("", controller.GetAllPayments)
		adminPayments.GET("/:id", controller.GetPayment)
	}
}
