package app

import (
	"github.com/gin-gonic/gin"
	"github.com/newrelic/go-agent/v3/integrations/nrgin"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/redis/go-redis/v9"

	"motorent/internal/handler"
	"motorent/internal/middleware"
	internalRedis "motorent/internal/redis"
)

// RouterDeps contains all dependencies needed for the router.
type RouterDeps struct {
	AuthHandler     *handler.AuthHandler
	UserHandler     *handler.UserHandler
	VendorHandler   *handler.VendorHandler
	VehicleHandler  *handler.VehicleHandler
	DriverHandler   *handler.DriverHandler
	BookingHandler  *handler.BookingHandler
	DeliveryHandler *handler.DeliveryHandler
	SearchHandler   *handler.SearchHandler
	TokenVerifier   middleware.TokenVerifier
	RateLimitStore  internalRedis.RateLimitStoreInterface
	RedisClient     *redis.Client
	NewRelicApp     *newrelic.Application
}

// NewRouter creates a new Gin router with all routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	router := gin.New()

	// Global middleware.
	router.Use(gin.Recovery())
	router.Use(gin.Logger())
	router.Use(middleware.CORSMiddleware())

	// Add New Relic middleware if enabled.
	if deps.NewRelicApp != nil {
		router.Use(nrgin.Middleware(deps.NewRelicApp))
	}

	if deps.RedisClient != nil {
		router.Use(middleware.IdempotencyMiddleware(deps.RedisClient))
	}

	strict := middleware.RateLimitMiddleware(deps.RateLimitStore, middleware.TierStrict)
	moderate := middleware.RateLimitMiddleware(deps.RateLimitStore, middleware.TierModerate)
	lenient := middleware.RateLimitMiddleware(deps.RateLimitStore, middleware.TierLenient)

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := router.Group("/api")
	{
		// Auth routes.
		auth := api.Group("/auth")
		{
			auth.POST("/register", strict, deps.AuthHandler.Register)
			auth.POST("/login", strict, deps.AuthHandler.Login)
			auth.GET("/profile", lenient, middleware.AuthMiddleware(deps.TokenVerifier), deps.AuthHandler.Profile)
		}

		// User routes.
		users := api.Group("/users")
		{
			users.GET("", lenient, deps.UserHandler.GetAll)
			users.GET("/:id", lenient, deps.UserHandler.GetUser)
		}

		// Vendor routes.
		vendors := api.Group("/vendors")
		{
			vendors.POST("", moderate, deps.VendorHandler.CreateVendor)
			vendors.GET("", lenient, deps.VendorHandler.ListVendors)
			vendors.GET("/:id", lenient, deps.VendorHandler.GetVendor)
		}

		// Vehicle routes.
		vehicles := api.Group("/vehicles")
		{
			vehicles.POST("", moderate, deps.VehicleHandler.CreateVehicle)
			vehicles.GET("", lenient, deps.VehicleHandler.ListVehicles)
			vehicles.GET("/:id", lenient, deps.VehicleHandler.GetVehicle)
			vehicles.GET("/vendor/:vendorId", lenient, deps.VehicleHandler.ListByVendor)
		}

		// Driver routes.
		drivers := api.Group("/drivers")
		{
			drivers.POST("", moderate, deps.DriverHandler.CreateDriver)
			drivers.GET("/:id", lenient, deps.DriverHandler.GetDriver)
			drivers.GET("/vendor/:vendorId", lenient, deps.DriverHandler.ListByVendor)
			drivers.PUT("/:id/location", moderate, deps.DriverHandler.UpdateLocation)
		}

		// Booking routes.
		bookings := api.Group("/bookings")
		{
			bookings.POST("", moderate, deps.BookingHandler.CreateBooking)
			bookings.GET("/:id", lenient, deps.BookingHandler.GetBooking)
			bookings.GET("/user/:userId", lenient, deps.BookingHandler.ListUserBookings)
			bookings.PATCH("/:id/status", moderate, deps.BookingHandler.UpdateStatus)
			bookings.POST("/:id/payment", moderate, deps.BookingHandler.ProcessPayment)
		}

		// Delivery routes.
		deliveries := api.Group("/deliveries")
		{
			deliveries.POST("", moderate, deps.DeliveryHandler.CreateDelivery)
			deliveries.GET("/:id", lenient, deps.DeliveryHandler.GetDelivery)
			deliveries.GET("/track/:trackingNumber", lenient, deps.DeliveryHandler.TrackDelivery)
			deliveries.PATCH("/:id/status", moderate, deps.DeliveryHandler.UpdateStatus)
		}

		// Search routes.
		search := api.Group("/search")
		{
			search.GET("/vehicles", lenient, deps.SearchHandler.SearchVehicles)
			search.GET("/drivers", lenient, deps.SearchHandler.SearchDrivers)
		}
	}

	return router
}
