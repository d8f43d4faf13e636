package routes

import (
	"os"
	"strings"

	"cleanfoss-backend/config"
	"cleanfoss-backend/controllers"
	"cleanfoss-backend/services"
	"cleanfoss-backend/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func SetupRouter() *gin.Engine {
	r := gin.Default()

	allowedOrigins := []string{"http://localhost:3000"}
	if env := os.Getenv("CORS_ORIGINS"); env != "" {
		allowedOrigins = strings.Split(env, ",")
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type", "X-Monitor-Secret"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.Use(config.PerformanceLogger())

	controllers.Payments = services.NewPaymentService(config.DB, services.NewStripeClient())

	auth := r.Group("/auth")
	{
		auth.POST("/register", controllers.Register)
		auth.POST("/login", controllers.Login)

		auth.Use(utils.AuthMiddleware())
		auth.GET("/me", controllers.Me)
		auth.POST("/logout", controllers.Logout)
	}

	// Public booking flow: guests book without an account, authenticated
	// customers get their identity reused.
	public := r.Group("/api")
	public.Use(utils.OptionalAuthMiddleware())
	{
		public.POST("/bookings", controllers.CreateBooking)
		public.GET("/bookings/:id", controllers.GetBooking)
		public.POST("/pricing/preview", controllers.PricingPreview)
		public.POST("/payments/create-intent", controllers.CreatePaymentIntent)
		public.POST("/payments/confirm", controllers.ConfirmPayment)
	}

	api := r.Group("/api")
	api.Use(utils.AuthMiddleware())
	{
		// Profile routes
		profile := api.Group("/profile")
		{
			profile.GET("", controllers.GetProfile)
			profile.PUT("", controllers.UpdateProfile)
			profile.PUT("/password", controllers.ChangePassword)
			profile.DELETE("", controllers.DeleteAccount)
		}

		// Vehicle routes
		vehicles := api.Group("/vehicles")
		{
			vehicles.GET("", controllers.GetVehicles)
			vehicles.POST("", controllers.CreateVehicle)
			vehicles.PUT("/:id", controllers.UpdateVehicle)
			vehicles.PUT("/:id/default", controllers.SetDefaultVehicle)
			vehicles.DELETE("/:id", controllers.DeleteVehicle)
		}

		// Back-office booking routes
		adminBookings := api.Group("/admin/bookings", utils.RequirePermission("manage", "bookings"))
		{
			adminBookings.GET("", controllers.GetBookings)
			adminBookings.PATCH("/:id/status", controllers.UpdateBookingStatus)
		}

		// Service catalog routes
		servicesGroup := api.Group("/services", utils.RequirePermission("manage", "services"))
		{
			servicesGroup.POST("", controllers.CreateService)
			servicesGroup.GET("", controllers.GetServices)
			servicesGroup.GET("/:id", controllers.GetService)
			servicesGroup.PUT("/:id", controllers.UpdateService)
			servicesGroup.DELETE("/:id", controllers.DeleteService)
			servicesGroup.POST("/:id/extras", controllers.AddServiceExtra)
			servicesGroup.DELETE("/:id/extras/:extraId", controllers.DeleteServiceExtra)
		}

		// Customer routes
		customers := api.Group("/customers", utils.RequirePermission("read", "customers"))
		{
			customers.GET("", controllers.GetCustomers)
			customers.GET("/:id", controllers.GetCustomer)
			customers.PUT("/:id", utils.RequirePermission("update", "customers"), controllers.UpdateCustomer)
		}

		// Company routes (superadmin)
		companies := api.Group("/companies", utils.RequirePermission("manage", "companies"))
		{
			companies.GET("", controllers.GetCompanies)
			companies.POST("", controllers.CreateCompany)
			companies.GET("/:id", controllers.GetCompany)
			companies.PUT("/:id", controllers.UpdateCompany)
			companies.DELETE("/:id", controllers.DeleteCompany)
		}

		// Dashboard routes
		api.GET("/dashboard", utils.RequirePermission("manage", "bookings"), controllers.GetDashboardOverview)
	}

	// Monitoring routes, gated by shared secret inside the handlers
	monitor := r.Group("/monitor")
	{
		monitor.GET("/health", controllers.Health)
		monitor.GET("/metrics", controllers.Metrics)
	}

	return r
}
