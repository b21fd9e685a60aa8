// api/routes/router.go
package routes

import (
	"net/http"
	"time"

	"tripcoach/internal/auth"
	"tripcoach/internal/bookings"
	"tripcoach/internal/dashboard"
	"tripcoach/internal/guides"
	"tripcoach/internal/notifications"
	"tripcoach/internal/packages"
	"tripcoach/internal/packagetypes"
	"tripcoach/internal/payments"
	"tripcoach/internal/shared/config"
	"tripcoach/internal/shared/database"
	"tripcoach/internal/users"
	"tripcoach/pkg/cache"

	"github.com/gin-gonic/gin"
)

// Router holds all route dependencies
type Router struct {
	config   *config.Config
	db       *database.DB
	notifier *notifications.Adapter

	cacheService   cache.Service
	bookingService bookings.Service
}

// NewRouter creates a new router instance
func NewRouter(cfg *config.Config, db *database.DB, notifier *notifications.Adapter) *Router {
	return &Router{
		config:   cfg,
		db:       db,
		notifier: notifier,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes(engine *gin.Engine) {
	r.setupHealthRoutes(engine)

	r.cacheService = cache.NewService(r.db.GetRedis())

	api := engine.Group(r.config.GetAPIBasePath())
	{
		r.setupAuthRoutes(api)
		r.setupUserRoutes(api)
		r.setupPackageTypeRoutes(api)
		r.setupPackageRoutes(api)

		// Bookings must be wired before payments, which reuse the booking service
		r.setupBookingRoutes(api)
		r.setupPaymentRoutes(api)

		r.setupGuideRoutes(api)
		r.setupDashboardRoutes(api)
	}
}

// setupHealthRoutes sets up health check and system status routes
func (r *Router) setupHealthRoutes(engine *gin.Engine) {
	engine.GET("/health", func(c *gin.Context) {
		if err := r.db.HealthCheck(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":    "unhealthy",
				"error":     err.Error(),
				"timestamp": time.Now(),
				"service":   "tripcoach-backend",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now(),
			"service":   "tripcoach-backend",
		})
	})

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
			"version": r.config.APIVersion,
		})
	})

	engine.GET("/status", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":      "operational",
			"api_version": r.config.APIVersion,
			"timestamp":   time.Now(),
		})
	})
}

func (r *Router) setupAuthRoutes(rg *gin.RouterGroup) {
	authRepo := auth.NewRepository(r.db.GetPostgreSQL())
	authService := auth.NewService(authRepo, r.config)
	authController := auth.NewController(authService, r.config)

	auth.SetupAuthRoutes(rg, r.config, authController)
}

func (r *Router) setupUserRoutes(rg *gin.RouterGroup) {
	userRepo := users.NewRepository(r.db.GetPostgreSQL())
	userService := users.NewService(userRepo)
	userController := users.NewController(userService)

	users.SetupUserRoutes(rg, r.config, userController)
}

func (r *Router) setupPackageTypeRoutes(rg *gin.RouterGroup) {
	typeRepo := packagetypes.NewRepository(r.db.GetPostgreSQL())
	typeService := packagetypes.NewService(typeRepo, r.cacheService)
	typeController := packagetypes.NewController(typeService)

	packagetypes.SetupPackageTypeRoutes(rg, r.config, typeController)
}

func (r *Router) setupPackageRoutes(rg *gin.RouterGroup) {
	packageRepo := packages.NewRepository(r.db.GetPostgreSQL())
	packageService := packages.NewService(packageRepo, r.cacheService)
	packageController := packages.NewController(packageService)

	packages.SetupPackageRoutes(rg, r.config, packageController)
}

func (r *Router) setupBookingRoutes(rg *gin.RouterGroup) {
	bookingRepo := bookings.NewRepository(r.db.GetPostgreSQL())
	r.bookingService = bookings.NewServiceWithNotifier(bookingRepo, r.cacheService, r.notifier)
	bookingController := bookings.NewController(r.bookingService)

	bookings.SetupBookingRoutes(rg, r.config, bookingController)
}

func (r *Router) setupPaymentRoutes(rg *gin.RouterGroup) {
	provider := payments.NewHostedCheckoutProvider(r.config)
	paymentService := payments.NewService(r.bookingService, provider, r.config)
	paymentController := payments.NewController(paymentService, r.bookingService)

	payments.SetupPaymentRoutes(rg, r.config, paymentController)
}

func (r *Router) setupGuideRoutes(rg *gin.RouterGroup) {
	guideRepo := guides.NewRepository(r.db.GetPostgreSQL())
	userRepo := users.NewRepository(r.db.GetPostgreSQL())
	guideService := guides.NewService(guideRepo, userRepo, r.notifier)
	guideController := guides.NewController(guideService)

	guides.SetupGuideRoutes(rg, r.config, guideController)
}

func (r *Router) setupDashboardRoutes(rg *gin.RouterGroup) {
	dashboardRepo := dashboard.NewRepository(r.db.GetPostgreSQL())
	dashboardService := dashboard.NewService(dashboardRepo, r.cacheService)
	dashboardController := dashboard.NewController(dashboardService)

	dashboard.SetupDashboardRoutes(rg, r.config, dashboardController)
}
